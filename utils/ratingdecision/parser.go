// Package ratingdecision extracts service-connected conditions, ratings and
// dependents from VA rating decision letters.
//
// Extraction runs in three tiers: the structured decision sentence, then
// clause scanning, then a percentage fallback. The first tier that yields
// any condition is used as is; later tiers are never merged in.
package ratingdecision

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Aashish23092/va-benefits-estimator/dto"
	"github.com/Aashish23092/va-benefits-estimator/utils"
	"github.com/google/uuid"
)

const (
	TierStructured = 1
	TierClause     = 2
	TierFallback   = 3
)

var (
	conditionSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("va-benefits-estimator/condition"))
	versionSpace   = uuid.NewSHA1(uuid.NameSpaceURL, []byte("va-benefits-estimator/rating-decision"))
)

// ConditionID is stable for a name across extractions and edits.
func ConditionID(name string) string {
	return uuid.NewSHA1(conditionSpace, []byte(utils.NameKey(name))).String()
}

type tier struct {
	level   int
	extract func(utils.Text) []dto.ServiceCondition
}

var tiers = []tier{
	{TierStructured, structuredConditions},
	{TierClause, clauseConditions},
	{TierFallback, fallbackConditions},
}

// Parse extracts a rating decision. It never fails; problems are reported
// as warnings on the result.
func Parse(t utils.Text) dto.RatingDecisionResult {
	res := dto.RatingDecisionResult{
		Conditions:     []dto.ServiceCondition{},
		Dependents:     extractDependents(t),
		StatedCombined: statedCombined(t),
		Version:        uuid.NewSHA1(versionSpace, []byte(t.Raw)).String(),
	}
	if f, ok := veteranNameChain.Run(t); ok {
		res.VeteranName = f.Value
	}

	for _, tr := range tiers {
		conds := dedupe(tr.extract(t))
		if len(conds) == 0 {
			continue
		}
		for i := range conds {
			conds[i].ID = ConditionID(conds[i].Name)
			conds[i].Tier = tr.level
			conds[i].Source = dto.SourceExtraction
		}
		res.Conditions = conds
		res.Tier = tr.level
		break
	}

	res.Warnings = Validate(res.Conditions, res.StatedCombined)
	return res
}

// dedupe keeps the first condition for each case-insensitive trimmed name.
func dedupe(conds []dto.ServiceCondition) []dto.ServiceCondition {
	seen := make(map[string]bool, len(conds))
	out := make([]dto.ServiceCondition, 0, len(conds))
	for _, c := range conds {
		key := utils.NameKey(c.Name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

// Tier 1

var structured = regexp.MustCompile(`(?i)service\s+connection\s+for\s+([^.;,]{2,150}?)\s+is\s+(granted|denied)` +
	`(?:\s+(?:with\s+an?\s+(?:evaluation|rating)\s+of|at)\s+(\d{1,3})\s*(?:percent|%))?` +
	`(?:\s*,?\s*effective\s+(` + utils.DateFragment + `))?`)

func structuredConditions(t utils.Text) []dto.ServiceCondition {
	text := t.Normalized
	var out []dto.ServiceCondition
	for _, m := range structured.FindAllStringSubmatchIndex(text, -1) {
		phrase, dc := splitDiagnosticCode(text[m[2]:m[3]])
		name := cleanName(phrase)
		if name == "" {
			continue
		}
		c := dto.ServiceCondition{
			Name:           name,
			DiagnosticCode: dc,
			BilateralSide:  sideOf(name),
			Status:         dto.StatusGranted,
		}
		if strings.EqualFold(text[m[4]:m[5]], "denied") {
			c.Status = dto.StatusDenied
			c.DenialReason = denialReason(text, m[2])
		} else if m[6] >= 0 {
			c.Rating = atoi(text[m[6]:m[7]])
		}
		if m[8] >= 0 {
			c.EffectiveDate = utils.NormalizeDate(text[m[8]:m[9]])
		}
		out = append(out, c)
	}
	return out
}

// Tier 2

var (
	clauseBreak   = regexp.MustCompile(`\n|[.;]\s+`)
	clauseSubject = regexp.MustCompile(`(?i)service\s+connection\s+for\s+(.+?)(?:,|\(|\s+(?:is|was|has|have|remains|continues|at|with|evaluated|rated|granted|denied|effective)\b|$)`)
	boilerplate   = regexp.MustCompile(`(?i)dependen|entitlement|payment|additional\s+amount|spouse|child|basic\s+eligibility|chapter\s+35`)
	percentValue  = regexp.MustCompile(`(?i)(\d{1,3})\s*(?:percent|%)`)
	assignedValue = regexp.MustCompile(`(?i)(?:(?:increased|decreased|reduced|changed)\s+to|(?:evaluation|rating)\s+of)\s+(\d{1,3})\s*(?:percent|%)`)
	effectiveDate = regexp.MustCompile(`(?i)effective\s+(?:date\s+)?(?:of\s+)?(` + utils.DateFragment + `)`)
	anyDate       = regexp.MustCompile(utils.DateFragment)
	deniedWord    = regexp.MustCompile(`(?i)\bdenied\b`)
	grantedWord   = regexp.MustCompile(`(?i)\b(?:granted|established|continued|evaluated|rated|increased)\b`)
)

type clause struct {
	text  string
	start int
}

// splitClauses breaks s at newlines and sentence-like punctuation, keeping
// each clause's offset into s.
func splitClauses(s string) []clause {
	var out []clause
	start := 0
	for _, loc := range clauseBreak.FindAllStringIndex(s, -1) {
		if loc[0] > start {
			out = append(out, clause{text: s[start:loc[0]], start: start})
		}
		start = loc[1]
	}
	if start < len(s) {
		out = append(out, clause{text: s[start:], start: start})
	}
	return out
}

func clauseConditions(t utils.Text) []dto.ServiceCondition {
	var out []dto.ServiceCondition
	for _, cl := range splitClauses(t.Raw) {
		if boilerplate.MatchString(cl.text) {
			continue
		}
		m := clauseSubject.FindStringSubmatchIndex(cl.text)
		if m == nil {
			continue
		}
		phrase, dc := splitDiagnosticCode(cl.text[m[2]:m[3]])
		name := cleanName(phrase)
		if name == "" {
			continue
		}
		if dc == "" {
			dc = findDiagnosticCode(cl.text)
		}
		side := sideOf(name)
		if side == dto.SideNone {
			side = sideOf(cl.text)
		}
		c := dto.ServiceCondition{
			Name:           name,
			DiagnosticCode: dc,
			BilateralSide:  side,
			EffectiveDate:  clauseDate(cl.text),
			Status:         dto.StatusUnknown,
		}
		pct := clausePercent(cl.text)
		switch {
		case deniedWord.MatchString(cl.text):
			c.Status = dto.StatusDenied
			c.DenialReason = denialReason(t.Raw, cl.start+m[2])
		case pct != nil || grantedWord.MatchString(cl.text):
			c.Status = dto.StatusGranted
			if pct != nil {
				c.Rating = atoi(pct[1])
			}
		}
		out = append(out, c)
	}
	return out
}

// clausePercent prefers the rating the clause assigns ("increased to 50
// percent") over earlier mentions, and otherwise takes the last percentage.
func clausePercent(s string) []string {
	if m := assignedValue.FindStringSubmatch(s); m != nil {
		return m
	}
	all := percentValue.FindAllStringSubmatch(s, -1)
	if len(all) == 0 {
		return nil
	}
	return all[len(all)-1]
}

func clauseDate(s string) string {
	if m := effectiveDate.FindStringSubmatch(s); m != nil {
		if d := utils.NormalizeDate(m[1]); d != "" {
			return d
		}
	}
	for _, d := range anyDate.FindAllString(s, -1) {
		if iso := utils.NormalizeDate(d); iso != "" {
			return iso
		}
	}
	return ""
}

// Tier 3

var (
	percentLine   = regexp.MustCompile(`^(.*?)(\d{1,3})\s*%`)
	summaryLabel  = regexp.MustCompile(`(?i)^\W*(?:(?:your|the)\s+)?(?:(?:combined|total|overall)\b\W*)+(?:(?:service[- ]connected\s+)?(?:rating|evaluation|disability|degree|percentage)\b|\d)`)
	listMarker    = regexp.MustCompile(`^(?:\d{1,2}[.)]|[-*])\s+`)
	trailingJoin  = regexp.MustCompile(`(?i)(?:\s*[-:=,]\s*|\s+(?:at|rated|evaluated|is|was|with|of))+\s*$`)
	genericRating = regexp.MustCompile(`([A-Za-z][A-Za-z \-/()&]{2,60}?)\s+(\d{1,3})\s*%`)
)

func fallbackConditions(t utils.Text) []dto.ServiceCondition {
	var out []dto.ServiceCondition
	for _, line := range t.Lines() {
		if summaryLabel.MatchString(line) {
			continue
		}
		m := percentLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		phrase, dc := splitDiagnosticCode(listMarker.ReplaceAllString(m[1], ""))
		name := cleanName(trailingJoin.ReplaceAllString(phrase, ""))
		if name == "" {
			continue
		}
		if dc == "" {
			dc = findDiagnosticCode(line)
		}
		c := dto.ServiceCondition{
			Name:           name,
			DiagnosticCode: dc,
			BilateralSide:  sideOf(name),
			EffectiveDate:  clauseDate(line),
			Status:         dto.StatusGranted,
			Rating:         atoi(m[2]),
		}
		if deniedWord.MatchString(line) {
			c.Status = dto.StatusDenied
			c.Rating = 0
			c.DenialReason = defaultReason
		}
		out = append(out, c)
	}
	if len(out) > 0 {
		return out
	}

	for _, m := range genericRating.FindAllStringSubmatch(t.Normalized, -1) {
		if summaryLabel.MatchString(m[1] + " " + m[2]) {
			continue
		}
		name := cleanName(trailingJoin.ReplaceAllString(m[1], ""))
		if name == "" {
			continue
		}
		out = append(out, dto.ServiceCondition{
			Name:          name,
			BilateralSide: sideOf(name),
			Status:        dto.StatusGranted,
			Rating:        atoi(m[2]),
		})
	}
	return out
}

// Letter metadata

var statedCombinedRe = regexp.MustCompile(`(?i)combined\s+(?:evaluation|rating|disability\s+rating|degree\s+of\s+disability)[^0-9]{0,60}?(\d{1,3})\s*(?:percent|%)`)

func statedCombined(t utils.Text) *int {
	m := statedCombinedRe.FindStringSubmatch(t.Normalized)
	if m == nil {
		return nil
	}
	v := atoi(m[1])
	return &v
}

var veteranNameChain = utils.Chain{Field: "veteran_name", Patterns: []utils.Pattern{
	{
		ID:         "veteran_name.label",
		View:       utils.ViewRaw,
		Regexp:     regexp.MustCompile(`(?im)^\s*(?:veteran(?:'s)?\s+name|name\s+of\s+veteran)\s*[:\-]\s*([A-Za-z.'\-, ]{3,60})$`),
		Confidence: 0.85,
		Extract:    personName,
	},
	{
		ID:         "veteran_name.salutation",
		View:       utils.ViewRaw,
		Regexp:     regexp.MustCompile(`(?m)^\s*Dear\s+(?:Mr\.?|Ms\.?|Mrs\.?|Dr\.?)?\s*([A-Z][A-Za-z.'\- ]{2,60}?)\s*[:,]`),
		Confidence: 0.7,
		Extract:    personName,
	},
}}

func personName(m []string) (string, bool) {
	name := strings.Trim(strings.TrimSpace(m[1]), ",")
	if first, last, ok := strings.Cut(name, ","); ok {
		name = strings.TrimSpace(last) + " " + strings.TrimSpace(first)
	}
	name = spaceRun.ReplaceAllString(name, " ")
	if len(strings.Fields(name)) < 2 {
		return "", false
	}
	return utils.TitleCase(name), true
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
