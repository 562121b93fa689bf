package domain

// Canonical column names as they appear in the unified dataset. Issue columns,
// export headers and the verification engine all refer to these, so they keep
// the spelling of the source extracts.
const (
	ColumnSource         = "_source"
	ColumnCompanyCode    = "SociedadCodigo"
	ColumnCompanyName    = "SociedadNombre"
	ColumnLedgerAccount  = "LibroMayor"
	ColumnMonth          = "Mes"
	ColumnAmount         = "MontoEstandarizado"
	ColumnRelatedRecords = "RelatedRecords"
	ColumnRelatedSources = "RelatedSources"
)

// RawRecord is one line of one imported extract: an open map of column name to
// cell value (string or float64, absent keys allowed). Schemas vary per batch.
type RawRecord map[string]any

// Batch is a set of raw records imported under a single source label,
// typically the originating file name.
type Batch struct {
	Label string      `json:"label"`
	Rows  []RawRecord `json:"rows"`
}

// SociedadMapping maps a company code to its display name. Mappings come from
// an optional auxiliary directory batch.
type SociedadMapping struct {
	Code string `json:"codigo"`
	Name string `json:"sociedad"`
}

// CanonicalRow is a unified ledger entry with resolved fields plus the
// original columns preserved in Extra for passthrough to downstream consumers.
type CanonicalRow struct {
	Source         string  `json:"_source"`
	CompanyCode    string  `json:"sociedad_codigo"`
	CompanyName    string  `json:"sociedad_nombre"`
	LedgerAccount  string  `json:"libro_mayor,omitempty"`
	Month          string  `json:"mes,omitempty"`
	Amount         float64 `json:"monto_estandarizado"`
	RelatedRecords int     `json:"related_records"`
	RelatedSources string  `json:"related_sources"`

	// AmountPresent reports whether any amount-bearing column existed on the
	// raw record; AmountParsed whether its value was a usable number. A row
	// whose amount column held garbage keeps Amount == 0 and
	// AmountParsed == false so verification can flag it.
	AmountPresent bool `json:"amount_present,omitempty"`
	AmountParsed  bool `json:"amount_parsed,omitempty"`

	// Extra holds every original column of the raw record, untouched.
	Extra map[string]any `json:"extra,omitempty"`
}

// AmountUsable reports whether Amount may participate in numeric checks and
// group statistics. A missing amount column counts as a usable zero; a
// present-but-unparseable one does not.
func (r CanonicalRow) AmountUsable() bool {
	return !r.AmountPresent || r.AmountParsed
}
