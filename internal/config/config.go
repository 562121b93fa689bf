package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"ledgerlens/internal/verify"
)

// Config is the complete application configuration. Struct defaults are
// overridden by LEDGERLENS_-prefixed environment variables; an optional YAML
// file overrides both for the keys it sets.
type Config struct {
	Server       ServerConfig       `yaml:"server" envconfig:"SERVER"`
	Logging      LoggingConfig      `yaml:"logging" envconfig:"LOGGING"`
	Security     SecurityConfig     `yaml:"security" envconfig:"SECURITY"`
	Verification VerificationConfig `yaml:"verification" envconfig:"VERIFICATION"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	// MaxImportBytes caps the multipart body of one import request.
	MaxImportBytes int64 `yaml:"max_import_bytes" envconfig:"MAX_IMPORT_BYTES" default:"104857600" validate:"min=1"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
}

// SecurityConfig contains the rate limit applied to the HTTP surface.
type SecurityConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"50" validate:"min=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"25" validate:"min=0"`
}

// VerificationConfig exposes every verification threshold as configuration.
// Defaults mirror internal/verify.
type VerificationConfig struct {
	OutlierThresholdAbs float64 `yaml:"outlier_threshold_abs" envconfig:"OUTLIER_THRESHOLD_ABS" default:"1e10" validate:"gt=0"`
	HotColumnRatio      float64 `yaml:"hot_column_ratio" envconfig:"HOT_COLUMN_RATIO" default:"0.1" validate:"gt=0,lte=1"`
	IQRMultiplier       float64 `yaml:"iqr_multiplier" envconfig:"IQR_MULTIPLIER" default:"1.5" validate:"gt=0"`
	ZScoreThreshold     float64 `yaml:"z_score_threshold" envconfig:"Z_SCORE_THRESHOLD" default:"3" validate:"gt=0"`
	MinIQRSamples       int     `yaml:"min_iqr_samples" envconfig:"MIN_IQR_SAMPLES" default:"4" validate:"min=2"`
	MinZScoreSamples    int     `yaml:"min_z_score_samples" envconfig:"MIN_Z_SCORE_SAMPLES" default:"3" validate:"min=2"`
}

// Engine converts the configuration into the engine's threshold set.
func (vc VerificationConfig) Engine() verify.Config {
	return verify.Config{
		OutlierThresholdAbs: vc.OutlierThresholdAbs,
		HotColumnRatio:      vc.HotColumnRatio,
		IQRMultiplier:       vc.IQRMultiplier,
		ZScoreThreshold:     vc.ZScoreThreshold,
		MinIQRSamples:       vc.MinIQRSamples,
		MinZScoreSamples:    vc.MinZScoreSamples,
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, then validates it.
func Load() (*Config, error) {
	return LoadFrom(configFilePath())
}

// LoadFrom loads configuration using the given YAML file path; a missing file
// is not an error.
func LoadFrom(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("LEDGERLENS", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	// The file only touches the keys it sets; everything else keeps the
	// env-or-default value.
	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := mergeFile(configFile, &cfg); err != nil {
				return nil, fmt.Errorf("load config file %s: %w", configFile, err)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration against its declared constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func mergeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func configFilePath() string {
	if p := os.Getenv("LEDGERLENS_CONFIG_FILE"); p != "" {
		return p
	}
	return "ledgerlens.yaml"
}
