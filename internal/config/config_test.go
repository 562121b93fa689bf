package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Security.RateLimit.Enabled)

	assert.InDelta(t, 1e10, cfg.Verification.OutlierThresholdAbs, 1)
	assert.InDelta(t, 0.1, cfg.Verification.HotColumnRatio, 1e-9)
	assert.InDelta(t, 1.5, cfg.Verification.IQRMultiplier, 1e-9)
	assert.InDelta(t, 3, cfg.Verification.ZScoreThreshold, 1e-9)
	assert.Equal(t, 4, cfg.Verification.MinIQRSamples)
	assert.Equal(t, 3, cfg.Verification.MinZScoreSamples)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LEDGERLENS_SERVER_PORT", "9999")
	t.Setenv("LEDGERLENS_VERIFICATION_HOT_COLUMN_RATIO", "0.25")

	cfg, err := LoadFrom("")
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.InDelta(t, 0.25, cfg.Verification.HotColumnRatio, 1e-9)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledgerlens.yaml")
	content := "server:\n  port: 7070\nverification:\n  z_score_threshold: 2.5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.InDelta(t, 2.5, cfg.Verification.ZScoreThreshold, 1e-9)
	// Untouched keys keep their defaults.
	assert.InDelta(t, 1.5, cfg.Verification.IQRMultiplier, 1e-9)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("LEDGERLENS_LOGGING_LEVEL", "loud")

	_, err := LoadFrom("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestEngineConversion(t *testing.T) {
	cfg, err := LoadFrom("")
	require.NoError(t, err)

	engine := cfg.Verification.Engine()
	assert.InDelta(t, cfg.Verification.OutlierThresholdAbs, engine.OutlierThresholdAbs, 1)
	assert.Equal(t, cfg.Verification.MinIQRSamples, engine.MinIQRSamples)
}
