package ratingdecision

import (
	"regexp"
	"strings"

	"github.com/Aashish23092/va-benefits-estimator/dto"
	"github.com/Aashish23092/va-benefits-estimator/utils"
)

var (
	sentenceEnd    = regexp.MustCompile(`[.!?]`)
	leadIn         = regexp.MustCompile(`(?i)^\s*(?:entitlement\s+to\s+)?(?:service\s+connection\s+for\s+)+`)
	trailingModal  = regexp.MustCompile(`(?i)\s+(?:may|might|could|would|should|will)\s+be\b.*$`)
	disallowed     = regexp.MustCompile(`[^A-Za-z0-9 \-/()&]+`)
	spaceRun       = regexp.MustCompile(`\s+`)
	emptyParens    = regexp.MustCompile(`\(\s*\)`)
	diagnosticCode = regexp.MustCompile(`(?i)\(?\s*\b(?:DC|Diagnostic\s+Code)\s*:?\s*(\d{4})\b\s*\)?`)
	leftWord       = regexp.MustCompile(`(?i)\bleft\b`)
	rightWord      = regexp.MustCompile(`(?i)\bright\b`)
	bilateralWord  = regexp.MustCompile(`(?i)\bbilateral(?:ly)?\b`)
)

// cleanName turns a captured condition phrase into a display name. It
// returns "" when nothing usable is left.
func cleanName(s string) string {
	if loc := sentenceEnd.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	s = leadIn.ReplaceAllString(s, "")
	s = trailingModal.ReplaceAllString(s, "")
	s = disallowed.ReplaceAllString(s, " ")
	s = emptyParens.ReplaceAllString(s, " ")
	s = spaceRun.ReplaceAllString(s, " ")
	s = strings.Trim(s, " -/&")
	if len(s) < 2 {
		return ""
	}
	return utils.TitleCase(s)
}

// splitDiagnosticCode removes an inline "(DC 6260)" from a phrase.
func splitDiagnosticCode(s string) (string, string) {
	m := diagnosticCode.FindStringSubmatchIndex(s)
	if m == nil {
		return s, ""
	}
	code := s[m[2]:m[3]]
	return s[:m[0]] + " " + s[m[1]:], code
}

func findDiagnosticCode(s string) string {
	if m := diagnosticCode.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// sideOf reads laterality from a condition name or clause.
func sideOf(s string) dto.BilateralSide {
	left, right := leftWord.MatchString(s), rightWord.MatchString(s)
	switch {
	case bilateralWord.MatchString(s), left && right:
		return dto.SideBilateral
	case left:
		return dto.SideLeft
	case right:
		return dto.SideRight
	}
	return dto.SideNone
}
