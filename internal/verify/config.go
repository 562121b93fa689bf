package verify

import "ledgerlens/pkg/contracts/domain"

// Default thresholds. Each is independently tunable through Config.
const (
	// DefaultOutlierThresholdAbs flags amounts whose absolute value exceeds it.
	DefaultOutlierThresholdAbs = 1e10
	// DefaultHotColumnRatio is the minimum share of rows with an issue in a
	// column for the column to be reported as hot.
	DefaultHotColumnRatio = 0.1
	// DefaultIQRMultiplier widens the interquartile range into outlier bounds.
	DefaultIQRMultiplier = 1.5
	// DefaultZScoreThreshold flags amounts this many standard deviations away
	// from their company-month mean.
	DefaultZScoreThreshold = 3.0
	// DefaultMinIQRSamples is the minimum per-company sample size for the IQR
	// check; quartiles on smaller samples are unreliable.
	DefaultMinIQRSamples = 4
	// DefaultMinZScoreSamples is the minimum per-company-month sample size for
	// the z-score check.
	DefaultMinZScoreSamples = 3
)

// Keyword sets matched case-insensitively against the ledger-account text.
var (
	// revenueKeywords imply the amount must not be negative.
	revenueKeywords = []string{"venta", "ingres", "factur"}
	// expenseKeywords imply the amount is expected to be non-positive.
	expenseKeywords = []string{"gasto", "compr", "cost", "egreso"}
)

// requiredColumns must be non-empty on every row.
var requiredColumns = []string{domain.ColumnCompanyName, domain.ColumnCompanyCode, domain.ColumnSource}

// Issue messages, verbatim as consumers display them.
const (
	msgRequiredEmpty  = "Campo requerido vacío"
	msgInvalidAmount  = "Monto inválido (no numérico o no finito)"
	msgOutlier        = "Posible outlier por magnitud absoluta"
	msgDuplicate      = "Posible duplicado (mismos campos clave)"
	msgNegativeIncome = "Monto negativo inesperado para tipo 'Ingresos/Ventas'"
	msgPositiveCost   = "Monto positivo inesperado para tipo 'Gastos/Compras'"
	msgIQRAnomaly     = "Anomalía respecto a distribución histórica de la empresa (IQR)"
	msgMonthlyAnomaly = "Anomalía mensual por empresa (z-score > 3)"
)

// Config carries the tunable thresholds of one verification run.
type Config struct {
	OutlierThresholdAbs float64 `json:"outlier_threshold_abs"`
	HotColumnRatio      float64 `json:"hot_column_ratio"`
	IQRMultiplier       float64 `json:"iqr_multiplier"`
	ZScoreThreshold     float64 `json:"z_score_threshold"`
	MinIQRSamples       int     `json:"min_iqr_samples"`
	MinZScoreSamples    int     `json:"min_z_score_samples"`
}

// DefaultConfig returns the default thresholds.
func DefaultConfig() Config {
	return Config{
		OutlierThresholdAbs: DefaultOutlierThresholdAbs,
		HotColumnRatio:      DefaultHotColumnRatio,
		IQRMultiplier:       DefaultIQRMultiplier,
		ZScoreThreshold:     DefaultZScoreThreshold,
		MinIQRSamples:       DefaultMinIQRSamples,
		MinZScoreSamples:    DefaultMinZScoreSamples,
	}
}
