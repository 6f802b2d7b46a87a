package utils

import (
	"regexp"
	"strings"

	"github.com/Aashish23092/va-benefits-estimator/dto"
)

// View selects which normalized view a pattern runs against.
type View int

const (
	ViewRaw View = iota
	ViewNormalized
)

// Pattern is one (matcher, extractor) pair in a field chain.
type Pattern struct {
	ID         string
	View       View
	Regexp     *regexp.Regexp
	Confidence float64
	// Extract turns submatches into a canonical value. Returning false makes
	// the chain fall through to the next pattern. Nil means "first group".
	Extract func(m []string) (string, bool)
}

// Chain is an ordered list of patterns, most structured first.
type Chain struct {
	Field    string
	Patterns []Pattern
}

// Run evaluates the chain in order. The first pattern that matches and
// extracts a non-empty value wins; nothing is merged across patterns.
func (c Chain) Run(t Text) (dto.ExtractedField, bool) {
	for _, p := range c.Patterns {
		src := t.Raw
		if p.View == ViewNormalized {
			src = t.Normalized
		}
		for _, m := range p.Regexp.FindAllStringSubmatch(src, -1) {
			value, ok := p.extract(m)
			if !ok || value == "" {
				continue
			}
			return dto.ExtractedField{
				Name:             c.Field,
				Value:            value,
				MatchedPatternID: p.ID,
				Confidence:       p.Confidence,
			}, true
		}
	}
	return dto.ExtractedField{}, false
}

func (p Pattern) extract(m []string) (string, bool) {
	if p.Extract != nil {
		return p.Extract(m)
	}
	if len(m) < 2 {
		return strings.TrimSpace(m[0]), true
	}
	return strings.TrimSpace(m[1]), true
}

// FirstGroup returns the first non-empty capture group.
func FirstGroup(m []string) string {
	for _, g := range m[1:] {
		if g = strings.TrimSpace(g); g != "" {
			return g
		}
	}
	return ""
}
