package dd214

import (
	"regexp"
	"strings"
)

const (
	BranchArmy        = "Army"
	BranchNavy        = "Navy"
	BranchAirForce    = "Air Force"
	BranchMarineCorps = "Marine Corps"
	BranchCoastGuard  = "Coast Guard"
	BranchSpaceForce  = "Space Force"
)

const (
	RetirementNone      = "None"
	RetirementLongevity = "Longevity"
	RetirementChapter61 = "Chapter 61"
	RetirementTDRL      = "TDRL"
	RetirementPDRL      = "PDRL"
	RetirementUnknown   = "Retired"
)

var branchAliases = map[string]string{
	"army":         BranchArmy,
	"usa":          BranchArmy,
	"navy":         BranchNavy,
	"usn":          BranchNavy,
	"air force":    BranchAirForce,
	"usaf":         BranchAirForce,
	"marine corps": BranchMarineCorps,
	"marines":      BranchMarineCorps,
	"marine":       BranchMarineCorps,
	"usmc":         BranchMarineCorps,
	"coast guard":  BranchCoastGuard,
	"uscg":         BranchCoastGuard,
	"space force":  BranchSpaceForce,
	"ussf":         BranchSpaceForce,
}

var (
	branchPrefix = regexp.MustCompile(`^(?:u\s*\.?\s*s\s*\.?\s+|united\s+states\s+)`)
	spaces       = regexp.MustCompile(`\s+`)
)

// CanonicalBranch maps aliases ("USN", "U.S. Navy", "navy") to the branch name.
func CanonicalBranch(s string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = spaces.ReplaceAllString(key, " ")
	key = branchPrefix.ReplaceAllString(key, "")
	key = strings.Trim(key, ". ")
	if b, ok := branchAliases[key]; ok {
		return b, true
	}
	// "ARMY/RA" and similar: branch before the component slash
	if i := strings.Index(key, "/"); i > 0 {
		return CanonicalBranch(key[:i])
	}
	return "", false
}

var componentAliases = map[string]string{
	"ra":                  "Active",
	"regular army":        "Active",
	"regular":             "Active",
	"active":              "Active",
	"active duty":         "Active",
	"usn":                 "Active",
	"usaf":                "Active",
	"usmc":                "Active",
	"uscg":                "Active",
	"ar":                  "Reserve",
	"usar":                "Reserve",
	"usnr":                "Reserve",
	"usafr":               "Reserve",
	"usmcr":               "Reserve",
	"uscgr":               "Reserve",
	"reserve":             "Reserve",
	"reserves":            "Reserve",
	"army reserve":        "Reserve",
	"arng":                "National Guard",
	"ang":                 "National Guard",
	"ng":                  "National Guard",
	"national guard":      "National Guard",
	"army national guard": "National Guard",
	"air national guard":  "National Guard",
}

func CanonicalComponent(s string) (string, bool) {
	key := spaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
	c, ok := componentAliases[key]
	return c, ok
}

// CanonicalCharacter normalizes box 24 wording. Longer phrases are checked
// first so "OTHER THAN HONORABLE" never reads as "HONORABLE".
func CanonicalCharacter(s string) (string, bool) {
	u := spaces.ReplaceAllString(strings.ToUpper(s), " ")
	switch {
	case strings.Contains(u, "OTHER THAN HONORABLE"):
		return "Other Than Honorable", true
	case strings.Contains(u, "DISHONORABLE"):
		return "Dishonorable", true
	case strings.Contains(u, "BAD CONDUCT"):
		return "Bad Conduct", true
	case strings.Contains(u, "UNDER HONORABLE CONDITIONS"), strings.Contains(u, "GENERAL"):
		return "General (Under Honorable Conditions)", true
	case strings.Contains(u, "UNCHARACTERIZED"), strings.Contains(u, "UNCHARACTERISED"),
		strings.Contains(u, "ENTRY LEVEL"):
		return "Uncharacterized", true
	case strings.Contains(u, "HONORABLE"):
		return "Honorable", true
	}
	return "", false
}

// ClassifyRetirement reads a narrative reason or separation type. It returns
// RetirementNone for text that is clearly a non-retirement separation.
func ClassifyRetirement(s string) string {
	u := spaces.ReplaceAllString(strings.ToUpper(s), " ")
	switch {
	case strings.Contains(u, "SEVERANCE"):
		return RetirementNone
	case strings.Contains(u, "DISABILITY") && strings.Contains(u, "TEMPORARY"):
		return RetirementTDRL
	case strings.Contains(u, "DISABILITY") && strings.Contains(u, "PERMANENT"):
		return RetirementPDRL
	case strings.Contains(u, "DISABILITY") && strings.Contains(u, "RETIRE"):
		return RetirementChapter61
	case strings.Contains(u, "SUFFICIENT SERVICE FOR RETIREMENT"),
		strings.Contains(u, "VOLUNTARY RETIREMENT"),
		strings.Contains(u, "MANDATORY RETIREMENT"),
		strings.Contains(u, "RETIRED LIST"):
		return RetirementLongevity
	case strings.Contains(u, "RETIRE"):
		return RetirementUnknown
	}
	return RetirementNone
}
