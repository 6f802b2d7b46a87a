package crsc

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Rate is the monthly amount paid at a combined percentage.
type Rate struct {
	Percentage int     `json:"percentage" yaml:"percentage"`
	Monthly    float64 `json:"monthly" yaml:"monthly"`
}

// CompensationTable holds veteran-alone monthly rates, no dependents.
type CompensationTable struct {
	Year  int    `json:"year" yaml:"year"`
	Rates []Rate `json:"rates" yaml:"rates"`
}

// DefaultTable is the VA veteran-alone rate table effective December 1, 2024.
var DefaultTable = CompensationTable{
	Year: 2025,
	Rates: []Rate{
		{10, 175.51},
		{20, 346.95},
		{30, 537.42},
		{40, 774.16},
		{50, 1102.04},
		{60, 1395.93},
		{70, 1759.19},
		{80, 2044.89},
		{90, 2297.96},
		{100, 3831.30},
	},
}

// Lookup returns the rate at the highest threshold not exceeding pct.
func (t CompensationTable) Lookup(pct int) (Rate, bool) {
	rates := append([]Rate(nil), t.Rates...)
	sort.Slice(rates, func(i, j int) bool { return rates[i].Percentage < rates[j].Percentage })

	var found Rate
	ok := false
	for _, r := range rates {
		if r.Percentage > pct {
			break
		}
		found, ok = r, true
	}
	return found, ok
}

// ParseTable reads a rate table from YAML (JSON is accepted too). Every
// percentage must be a multiple of 10 in [10,100] and appear once.
func ParseTable(data []byte) (CompensationTable, error) {
	var t CompensationTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return CompensationTable{}, fmt.Errorf("parse rate table: %w", err)
	}
	if len(t.Rates) == 0 {
		return CompensationTable{}, fmt.Errorf("rate table has no rates")
	}
	seen := make(map[int]bool, len(t.Rates))
	for _, r := range t.Rates {
		if r.Percentage < 10 || r.Percentage > 100 || r.Percentage%10 != 0 {
			return CompensationTable{}, fmt.Errorf("rate table: invalid percentage %d", r.Percentage)
		}
		if seen[r.Percentage] {
			return CompensationTable{}, fmt.Errorf("rate table: duplicate percentage %d", r.Percentage)
		}
		if r.Monthly < 0 {
			return CompensationTable{}, fmt.Errorf("rate table: negative amount at %d%%", r.Percentage)
		}
		seen[r.Percentage] = true
	}
	return t, nil
}
