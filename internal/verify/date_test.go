package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ledgerlens/pkg/contracts/domain"
)

func TestDetectDateColumn(t *testing.T) {
	tests := []struct {
		name     string
		extra    map[string]any
		expected string
	}{
		{
			name:     "candidate header with parseable date",
			extra:    map[string]any{"Fecha": "2024-02-15"},
			expected: "Fecha",
		},
		{
			name:     "candidate header order wins",
			extra:    map[string]any{"Periodo": "2024-02-01", "Fecha": "2024-02-15"},
			expected: "Fecha",
		},
		{
			name:     "candidate with unparseable value is skipped",
			extra:    map[string]any{"Fecha": "Febrero", "Date": "2024-02-15"},
			expected: "Date",
		},
		{
			name:     "fallback scans for ISO-looking columns",
			extra:    map[string]any{"Periodo contable": "2024-2-5"},
			expected: "Periodo contable",
		},
		{
			name:     "no date column at all",
			extra:    map[string]any{"Mes": "Febrero", "monto": "1,00"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := domain.CanonicalRow{Extra: tt.extra}
			assert.Equal(t, tt.expected, detectDateColumn(row))
		})
	}
}

func TestMonthKey(t *testing.T) {
	mk, ok := monthKey("2024-02-15")
	assert.True(t, ok)
	assert.Equal(t, "2024-02", mk)

	mk, ok = monthKey("15/02/2024")
	assert.True(t, ok)
	assert.Equal(t, "2024-02", mk)

	_, ok = monthKey("Febrero")
	assert.False(t, ok)

	_, ok = monthKey(nil)
	assert.False(t, ok)
}
