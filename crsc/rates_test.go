package crsc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTable(t *testing.T) {
	table, err := ParseTable([]byte(`year: 2026
rates:
  - {percentage: 10, monthly: 180.00}
  - {percentage: 20, monthly: 355.50}
`))
	require.NoError(t, err)
	assert.Equal(t, 2026, table.Year)

	r, ok := table.Lookup(29)
	require.True(t, ok)
	assert.Equal(t, 355.50, r.Monthly)

	calc := NewCalculator(table)
	res := calc.Calculate(workedExample())
	assert.Equal(t, 40, res.CombatRelatedPercentage)
	assert.Equal(t, 355.50, res.CRSCEligibleAmount)
}

func TestParseTable_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty":     `year: 2026`,
		"not ten":   "rates:\n  - {percentage: 15, monthly: 1}\n",
		"duplicate": "rates:\n  - {percentage: 10, monthly: 1}\n  - {percentage: 10, monthly: 2}\n",
		"negative":  "rates:\n  - {percentage: 10, monthly: -1}\n",
		"syntax":    "rates: [",
	}
	for name, in := range cases {
		_, err := ParseTable([]byte(in))
		assert.Error(t, err, name)
	}
}
