package ratingdecision

import (
	"regexp"
	"strings"
)

const (
	denialWindow  = 1000
	reasonWindow  = 400
	defaultReason = "See letter for details"
)

type denialCategory struct {
	reason string
	re     *regexp.Regexp
}

// denialCategories are checked in order; the first hit wins.
var denialCategories = []denialCategory{
	{"No current diagnosis", regexp.MustCompile(`no\s+(?:current\s+|confirmed\s+|chronic\s+)?diagnos|not\s+show\s+(?:a\s+)?(?:current\s+|confirmed\s+)?diagnos|not\s+(?:been\s+)?diagnosed|diagnosis\s+(?:has\s+)?not\s+been\s+(?:established|shown|made)`)},
	{"Not directly related to military service", regexp.MustCompile(`not\s+(?:directly\s+)?related\s+to\s+(?:your\s+)?(?:active\s+)?(?:military\s+)?service`)},
	{"Not secondary to a service-connected condition", regexp.MustCompile(`not\s+(?:proximately\s+)?(?:due\s+to|caused\s+by|the\s+result\s+of|secondary\s+to)`)},
	{"Not eligible on a presumptive basis", regexp.MustCompile(`presumpti`)},
	{"Not aggravated by military service", regexp.MustCompile(`not\s+(?:permanently\s+)?(?:been\s+)?aggravated|no\s+aggravation`)},
	{"No medical evidence of the condition", regexp.MustCompile(`no\s+medical\s+evidence|medical\s+(?:records?|evidence)\s+(?:does|do)\s+not\s+show`)},
	{"Not service-connected", regexp.MustCompile(`not\s+service[\s-]*connected`)},
	{"Insufficient evidence", regexp.MustCompile(`insufficient\s+evidence|evidence\s+(?:is|was)\s+(?:insufficient|not\s+sufficient)|not\s+enough\s+evidence|no\s+evidence`)},
	{"No medical nexus to service", regexp.MustCompile(`nexus|no\s+link\s+between|not\s+(?:at\s+least\s+as\s+likely|likely)`)},
	{"Not incurred in service", regexp.MustCompile(`not\s+(?:incurred|shown)\s+in|did\s+not\s+(?:occur|begin|start)\s+(?:in|during)`)},
}

// denialReason classifies the text following "denied" near a condition
// name. It returns "" when "denied" does not appear within the window.
func denialReason(text string, nameStart int) string {
	if nameStart < 0 || nameStart >= len(text) {
		return ""
	}
	window := text[nameStart:min(len(text), nameStart+denialWindow)]
	loc := deniedWord.FindStringIndex(window)
	if loc == nil {
		return ""
	}
	from := nameStart + loc[1]
	following := strings.ToLower(text[from:min(len(text), from+reasonWindow)])
	for _, c := range denialCategories {
		if c.re.MatchString(following) {
			return c.reason
		}
	}
	return defaultReason
}
