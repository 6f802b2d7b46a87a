package ratingdecision

import (
	"regexp"
	"strings"

	"github.com/Aashish23092/va-benefits-estimator/dto"
	"github.com/Aashish23092/va-benefits-estimator/utils"
)

const dependentBlockLimit = 2000

const relationship = `spouse|husband|wife|step-?child|child|son|daughter|helpless\s+child|school\s+child|parent|mother|father`

var (
	dependentBlockStart = regexp.MustCompile(`(?i)(?:dependents?\s+(?:on|in|added\s+to)\s+your\s+award|dependency\s+(?:information|status)|dependents?\s+information|we\s+(?:added|have\s+added)\s+the\s+following\s+dependents?)`)
	dependentBlockEnd   = regexp.MustCompile(`(?i)what\s+we\s+decided|how\s+we\s+(?:made|reached)|payment\s+(?:start|information)|your\s+monthly\s+(?:entitlement|payment)|end\s+of\s+dependents|we\s+(?:have\s+)?removed`)

	// "Jane Doe   Spouse   01/01/2020"
	rowNameFirst = regexp.MustCompile(`(?m)^([A-Za-z][A-Za-z'.\-]*(?:[ \t]+[A-Za-z][A-Za-z'.\-]*){1,3}?)[ \t]+(?i:(` + relationship + `))\b[^\n\d]*(` + utils.DateFragment + `)?`)
	// "Spouse: Jane Doe, effective 01/01/2020"
	rowTypeFirst = regexp.MustCompile(`(?m)^(?i:(` + relationship + `))[ \t]*[:\-]?[ \t]+([A-Za-z][A-Za-z'.\-]*(?:[ \t]+[A-Za-z][A-Za-z'.\-]*){1,3}?)(?:[ \t]*,?[ \t]*(?i:effective)?[ \t]*(` + utils.DateFragment + `))?[ \t]*$`)

	removal = regexp.MustCompile(`(?:[Rr]emoved|[Rr]emoval\s+of)\s+(?:your\s+)?(?:((?i:` + relationship + `))\s*,?\s+)?` +
		`([A-Z][A-Za-z'.\-]*(?:\s+[A-Z][A-Za-z'.\-]*){0,3})\s*,?\s+` +
		`(?i:(?:from\s+(?:your|the)\s+award\s*,?\s*)?effective)\s+(` + utils.DateFragment + `)`)
)

// dependentBlock returns the raw text between the dependents heading and the
// next section heading, capped at dependentBlockLimit characters.
func dependentBlock(raw string) string {
	loc := dependentBlockStart.FindStringIndex(raw)
	if loc == nil {
		return ""
	}
	block := raw[loc[1]:min(len(raw), loc[1]+dependentBlockLimit)]
	if end := dependentBlockEnd.FindStringIndex(block); end != nil {
		block = block[:end[0]]
	}
	return block
}

func extractDependents(t utils.Text) []dto.Dependent {
	deps := []dto.Dependent{}
	seen := map[string]int{}
	add := func(d dto.Dependent) {
		key := utils.NameKey(d.Name)
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = len(deps)
		deps = append(deps, d)
	}

	if block := dependentBlock(t.Raw); block != "" {
		for _, m := range rowNameFirst.FindAllStringSubmatch(block, -1) {
			add(dto.Dependent{Name: utils.TitleCase(m[1]), Type: relationshipType(m[2]), EffectiveDate: utils.NormalizeDate(m[3])})
		}
		for _, m := range rowTypeFirst.FindAllStringSubmatch(block, -1) {
			add(dto.Dependent{Name: utils.TitleCase(m[2]), Type: relationshipType(m[1]), EffectiveDate: utils.NormalizeDate(m[3])})
		}
	}

	// Removals merge into an existing dependent by name or add a new one.
	for _, m := range removal.FindAllStringSubmatch(t.Normalized, -1) {
		name := utils.TitleCase(m[2])
		date := utils.NormalizeDate(m[3])
		if i, ok := seen[utils.NameKey(name)]; ok {
			deps[i].RemovalDate = date
			continue
		}
		typ := relationshipType(m[1])
		if typ == "" {
			typ = "Unknown"
		}
		add(dto.Dependent{Name: name, Type: typ, RemovalDate: date})
	}
	return deps
}

func relationshipType(s string) string {
	s = strings.ToLower(spaceRun.ReplaceAllString(strings.TrimSpace(s), " "))
	switch s {
	case "":
		return ""
	case "husband", "wife":
		return "Spouse"
	case "step-child", "stepchild":
		return "Stepchild"
	case "son", "daughter":
		return "Child"
	case "mother", "father":
		return "Parent"
	}
	return utils.TitleCase(s)
}
