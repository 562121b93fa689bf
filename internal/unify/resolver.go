package unify

import (
	"fmt"
	"strconv"
	"strings"

	"ledgerlens/pkg/contracts/domain"
)

// Candidate header spellings per canonical field, tried in order. These cover
// the variants seen across source systems; a new spelling is a one-line
// addition to the relevant list.
var (
	companyCodeKeys = []string{"Sociedad", "Soc.", "SociedadCodigo", "codigo", "SOCIEDAD", "Codigo"}
	companyNameKeys = []string{"SociedadNombre", "sociedad", "Nombre"}
	ledgerKeys      = []string{"Libro Mayor", "Libro mayor", "Cuenta Contable", "libro_mayor", "cuenta_contable"}
	monthKeys       = []string{"Mes", "mes"}
	amountKeys      = []string{"MontoEstandarizado", "monto", "Importe en ML", "Saldo Contable", "importe_ml", "saldo_contable"}
)

// Directory-batch columns: code and name spellings used by the optional
// sociedad mapping file.
var (
	mappingCodeKeys = []string{"codigo", "Codigo", "SOCIEDAD", "Sociedad", "SociedadCodigo"}
	mappingNameKeys = []string{"sociedad", "SociedadNombre", "Nombre"}
)

// resolve returns the first non-empty trimmed value among the candidate keys,
// or "" when none matches.
func resolve(rec domain.RawRecord, keys []string) string {
	for _, k := range keys {
		v, ok := rec[k]
		if !ok || v == nil {
			continue
		}
		if s := strings.TrimSpace(cellString(v)); s != "" {
			return s
		}
	}
	return ""
}

// resolveAmount returns the value of the first amount-bearing column present
// on the record, together with whether any such column exists. Presence is
// independent of parseability: a column holding garbage still counts as
// present so verification can flag it.
func resolveAmount(rec domain.RawRecord) (any, bool) {
	for _, k := range amountKeys {
		if v, ok := rec[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// ResolveCompanyCode resolves the company code column of a raw record.
func ResolveCompanyCode(rec domain.RawRecord) string { return resolve(rec, companyCodeKeys) }

// ResolveCompanyName resolves the company display-name column of a raw record.
func ResolveCompanyName(rec domain.RawRecord) string { return resolve(rec, companyNameKeys) }

// ResolveLedgerAccount resolves the ledger account column of a raw record.
func ResolveLedgerAccount(rec domain.RawRecord) string { return resolve(rec, ledgerKeys) }

// ResolveMonth resolves the month column of a raw record.
func ResolveMonth(rec domain.RawRecord) string { return resolve(rec, monthKeys) }

// ResolveMapping extracts a code/name pair from a directory-batch record.
func ResolveMapping(rec domain.RawRecord) domain.SociedadMapping {
	return domain.SociedadMapping{
		Code: resolve(rec, mappingCodeKeys),
		Name: resolve(rec, mappingNameKeys),
	}
}

// cellString renders a raw cell value the way it was written in the source:
// floats without exponent notation, everything else via the default format.
func cellString(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32)
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case bool:
		return strconv.FormatBool(n)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
