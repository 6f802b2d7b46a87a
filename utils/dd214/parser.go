// Package dd214 extracts service facts from DD-214 discharge certificate text.
//
// Every field has an ordered chain of patterns, from official box numbers down
// to loose keyword matches anywhere in the document. The first hit wins and
// records its pattern id; a field with no hit is left unset and reported in
// MissingFields so the caller can ask the veteran.
package dd214

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Aashish23092/va-benefits-estimator/dto"
	"github.com/Aashish23092/va-benefits-estimator/utils"
)

const (
	FieldName               = "name"
	FieldBranch             = "branch"
	FieldComponent          = "component"
	FieldRank               = "rank"
	FieldPayGrade           = "pay_grade"
	FieldEntryDate          = "entry_date"
	FieldSeparationDate     = "separation_date"
	FieldCharacterOfService = "character_of_service"
	FieldRetirement         = "retirement"
	FieldCombat             = "combat_service"
)

const (
	confBox     = 0.95
	confLabel   = 0.85
	confKeyword = 0.6
	confLoose   = 0.4
)

// date is DateFragment wrapped in a capture group.
const date = `(` + utils.DateFragment + `)`

const branchWords = `ARMY|NAVY|AIR\s+FORCE|MARINE\s+CORPS|COAST\s+GUARD|SPACE\s+FORCE|USAF|USMC|USCG|USSF|USN|USA`

const characterWords = `UNDER\s+HONORABLE\s+CONDITIONS\s*\(?\s*GENERAL\s*\)?|GENERAL\s*\(?\s*UNDER\s+HONORABLE\s+CONDITIONS\s*\)?|UNDER\s+HONORABLE\s+CONDITIONS|OTHER\s+THAN\s+HONORABLE(?:\s+CONDITIONS)?|BAD\s+CONDUCT|DISHONORABLE|UNCHARACTERI[ZS]ED|ENTRY\s+LEVEL\s+SEPARATION|HONORABLE|GENERAL`

var nameChain = utils.Chain{Field: FieldName, Patterns: []utils.Pattern{
	{
		ID:         "name.box1.next_line",
		View:       utils.ViewRaw,
		Regexp:     regexp.MustCompile(`(?m)(?i:NAME\s*\(\s*Last,?\s*First,?\s*Middle\s*\))[^\n]*\n\s*([A-Z][A-Za-z'\-]+)\s*,\s*([A-Z][A-Za-z'\-]+)(?:\s+([A-Z][A-Za-z'\-]*\.?))?`),
		Confidence: confBox,
		Extract:    lastFirstMiddle,
	},
	{
		ID:         "name.box1.inline",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`(?i:NAME\s*\(\s*Last,?\s*First,?\s*Middle\s*\))\s*[:\-]?\s*([A-Z][A-Za-z'\-]+)\s*,\s*([A-Z][A-Za-z'\-]+)(?:\s+([A-Z][A-Za-z'\-]*\.?))?`),
		Confidence: confBox,
		Extract:    lastFirstMiddle,
	},
	{
		ID:         "name.label",
		View:       utils.ViewRaw,
		Regexp:     regexp.MustCompile(`(?im)\b(?:veteran'?s?\s+name|name\s+of\s+veteran|service\s*member'?s?\s+name)\s*[:\-]\s*([A-Za-z'\-. ,]{3,60})$`),
		Confidence: confLabel,
		Extract:    labelledName,
	},
	{
		ID:         "name.last_first.anywhere",
		View:       utils.ViewRaw,
		Regexp:     regexp.MustCompile(`(?m)^([A-Z][A-Z'\-]+),\s*([A-Z][A-Z'\-]+)(?:\s+([A-Z][A-Z'\-]*))?\b`),
		Confidence: confLoose,
		Extract:    lastFirstMiddle,
	},
}}

var branchChain = utils.Chain{Field: FieldBranch, Patterns: []utils.Pattern{
	{
		ID:         "branch.box2.next_line",
		View:       utils.ViewRaw,
		Regexp:     regexp.MustCompile(`(?i:DEPARTMENT,?\s*COMPONENT\s*AND\s*BRANCH)[^\n]*\n[^\n]*?\b(` + branchWords + `)\b`),
		Confidence: confBox,
		Extract:    canonicalBranch,
	},
	{
		ID:         "branch.box2.inline",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`(?i)DEPARTMENT,?\s*COMPONENT\s*AND\s*BRANCH\s*[:\-]?\s*((?:U\.?\s?S\.?\s+)?(?:` + branchWords + `))\b`),
		Confidence: confBox,
		Extract:    canonicalBranch,
	},
	{
		ID:         "branch.us_prefixed",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`(?i)\b((?:U\.\s?S\.|UNITED\s+STATES)\s+(?:ARMY|NAVY|AIR\s+FORCE|MARINE\s+CORPS|COAST\s+GUARD|SPACE\s+FORCE))\b`),
		Confidence: confLabel,
		Extract:    canonicalBranch,
	},
	{
		ID:         "branch.acronym",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`\b(USAF|USMC|USCG|USSF|USN|USA)\b`),
		Confidence: confKeyword,
		Extract:    canonicalBranch,
	},
	{
		ID:         "branch.keyword",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`(?i)\b(air\s+force|marine\s+corps|marines|coast\s+guard|space\s+force|army|navy)\b`),
		Confidence: confLoose,
		Extract:    canonicalBranch,
	},
}}

var componentChain = utils.Chain{Field: FieldComponent, Patterns: []utils.Pattern{
	{
		ID:         "component.box2.slash",
		View:       utils.ViewRaw,
		Regexp:     regexp.MustCompile(`(?i:DEPARTMENT,?\s*COMPONENT\s*AND\s*BRANCH)[^\n]*\n[^\n]*?\b(?i:` + branchWords + `)\s*/\s*([A-Za-z]{2,6})\b`),
		Confidence: confBox,
		Extract:    canonicalComponent,
	},
	{
		ID:         "component.slash",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`\b(?:` + branchWords + `)\s*/\s*([A-Z]{2,6})\b`),
		Confidence: confLabel,
		Extract:    canonicalComponent,
	},
	{
		ID:         "component.keyword",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`(?i)\b(army\s+national\s+guard|air\s+national\s+guard|national\s+guard|regular\s+army|army\s+reserve|reserves?|active\s+duty|USAR|USNR|USAFR|USMCR|USCGR|ARNG)\b`),
		Confidence: confKeyword,
		Extract:    canonicalComponent,
	},
}}

var rankChain = utils.Chain{Field: FieldRank, Patterns: []utils.Pattern{
	{
		ID:         "rank.box4a.next_line",
		View:       utils.ViewRaw,
		Regexp:     regexp.MustCompile(`(?i:GRADE,?\s*RATE\s*OR\s*RANK)[^\n]*\n\s*([A-Z0-9]{2,7})\b`),
		Confidence: confBox,
	},
	{
		ID:         "rank.box4a.inline",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`(?i:GRADE,?\s*RATE\s*OR\s*RANK)\s*[:\-]?\s*([A-Z][A-Z0-9]{1,6})\b`),
		Confidence: confBox,
	},
	{
		ID:         "rank.abbreviation",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`\b(PVT|PV2|PFC|SPC|CPL|SGT|SSG|SFC|MSG|1SG|SGM|CSM|2LT|1LT|CPT|MAJ|LTC|COL|BG|MG|LTG|CW[1-5]|WO1|LCPL|SSGT|GYSGT|MSGT|SGTMAJ|AMN|A1C|SRA|TSGT|SMSGT|CMSGT|PO[1-3]|CPO|SCPO|MCPO|ENS|LTJG|LCDR|CDR|CAPT)\b`),
		Confidence: confKeyword,
	},
}}

var payGradeChain = utils.Chain{Field: FieldPayGrade, Patterns: []utils.Pattern{
	{
		ID:         "pay_grade.box4b.next_line",
		View:       utils.ViewRaw,
		Regexp:     regexp.MustCompile(`(?i:PAY\s*GRADE)[^\n]*\n[^\n]*?\b([EOW])\s*-?\s*(\d{1,2})\b`),
		Confidence: confBox,
		Extract:    payGrade,
	},
	{
		ID:         "pay_grade.label",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`(?i:PAY\s*GRADE)\s*[:\-]?\s*([EOW])\s*-?\s*(\d{1,2})\b`),
		Confidence: confLabel,
		Extract:    payGrade,
	},
	{
		ID:         "pay_grade.anywhere",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`\b([EOW])(?:-|0)(\d)\b`),
		Confidence: confLoose,
		Extract:    payGrade,
	},
}}

var entryDateChain = utils.Chain{Field: FieldEntryDate, Patterns: []utils.Pattern{
	{
		ID:         "entry_date.box12a",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`(?i)\ba\.?\s*DATE\s+ENTERED\s+A(?:CTIVE\s+)?D(?:UTY)?\s+THIS\s+PERIOD\s*[:\-]?\s*` + date),
		Confidence: confBox,
		Extract:    isoDate,
	},
	{
		ID:         "entry_date.label",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`(?i)DATE\s+(?:ENTERED|OF\s+ENTRY)\s*(?:ON\s+)?(?:ACTIVE\s+DUTY|AD|SERVICE)?(?:\s+THIS\s+PERIOD)?\s*[:\-]?\s*` + date),
		Confidence: confLabel,
		Extract:    isoDate,
	},
	{
		ID:         "entry_date.entered_service",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`(?i)\b(?:entered|enlisted|inducted)\s+(?:on\s+)?(?:active\s+)?(?:duty|service)?\s*(?:on)?\s*[:\-]?\s*` + date),
		Confidence: confKeyword,
		Extract:    isoDate,
	},
	{
		ID:         "entry_date.service_range",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`(?i)\b(?:service|period\s+of\s+service|served)\s*(?:from)?\s*[:\-]?\s*` + date + `\s*(?:to|through|thru|-)\s*` + utils.DateFragment),
		Confidence: confLoose,
		Extract:    isoDate,
	},
}}

var separationDateChain = utils.Chain{Field: FieldSeparationDate, Patterns: []utils.Pattern{
	{
		ID:         "separation_date.box12b",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`(?i)\bb\.?\s*SEPARATION\s+DATE\s+THIS\s+PERIOD\s*[:\-]?\s*` + date),
		Confidence: confBox,
		Extract:    isoDate,
	},
	{
		ID:         "separation_date.label",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`(?i)\b(?:SEPARATION|DISCHARGE|RELEASE|RETIREMENT)\s+DATE\s*[:\-]?\s*` + date),
		Confidence: confLabel,
		Extract:    isoDate,
	},
	{
		ID:         "separation_date.separated_on",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`(?i)\b(?:separated|discharged|released\s+from\s+active\s+duty|released|retired)\s+(?:on\s+)?` + date),
		Confidence: confKeyword,
		Extract:    isoDate,
	},
	{
		ID:         "separation_date.service_range",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`(?i)\b(?:service|period\s+of\s+service|served)\s*(?:from)?\s*[:\-]?\s*` + utils.DateFragment + `\s*(?:to|through|thru|-)\s*` + date),
		Confidence: confLoose,
		Extract:    isoDate,
	},
}}

var characterChain = utils.Chain{Field: FieldCharacterOfService, Patterns: []utils.Pattern{
	{
		ID:         "character.box24.next_line",
		View:       utils.ViewRaw,
		Regexp:     regexp.MustCompile(`(?i:CHARACTER\s+OF\s+SERVICE)[^\n]*\n[^\n]*?\b(?i:(` + characterWords + `))`),
		Confidence: confBox,
		Extract:    canonicalCharacter,
	},
	{
		ID:         "character.box24",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`(?i)CHARACTER\s+OF\s+SERVICE\s*(?:\(\s*Include\s+upgrades?\s*\))?\s*[:\-]?\s*(` + characterWords + `)`),
		Confidence: confBox,
		Extract:    canonicalCharacter,
	},
	{
		ID:         "character.discharge_label",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`(?i)\b(?:type\s+of\s+discharge|discharge\s+type|discharged\s+under)\s*[:\-]?\s*(` + characterWords + `)`),
		Confidence: confLabel,
		Extract:    canonicalCharacter,
	},
	{
		ID:         "character.keyword",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`(?i)\b(` + characterWords + `)\s+(?:discharge|conditions|service)\b`),
		Confidence: confKeyword,
		Extract:    canonicalCharacter,
	},
}}

var retirementChain = utils.Chain{Field: FieldRetirement, Patterns: []utils.Pattern{
	{
		ID:         "retirement.box28",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`(?i)NARRATIVE\s+REASON\s+FOR\s+SEPARATION\s*[:\-]?\s*(.{3,120})`),
		Confidence: confBox,
		Extract:    retirementType,
	},
	{
		ID:         "retirement.box23",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`(?i)TYPE\s+OF\s+SEPARATION\s*[:\-]?\s*(RETIREMENT|RETIRED|DISCHARGE|RELEASE\s+FROM\s+ACTIVE\s+DUTY|SEPARATION)`),
		Confidence: confBox,
		Extract:    retirementType,
	},
	{
		ID:         "retirement.keyword",
		View:       utils.ViewNormalized,
		Regexp:     regexp.MustCompile(`(?i)\b((?:temporary|permanent)\s+disability\s+retire\w*|disability\s+retire\w*|sufficient\s+service\s+for\s+retirement|retired\s+list|transferred\s+to\s+the\s+retired\s+\w+|retirement)\b`),
		Confidence: confKeyword,
		Extract:    retirementType,
	},
}}

// Parse extracts the service period from DD-214 text.
func Parse(t utils.Text) dto.DD214Result {
	result := dto.DD214Result{
		Fields:        []dto.ExtractedField{},
		MissingFields: []string{},
	}

	run := func(c utils.Chain) (string, bool) {
		f, ok := c.Run(t)
		if !ok {
			result.MissingFields = append(result.MissingFields, c.Field)
			return "", false
		}
		result.Fields = append(result.Fields, f)
		return f.Value, true
	}

	p := &result.Period
	result.VeteranName, _ = run(nameChain)
	p.Branch, _ = run(branchChain)
	p.Component, _ = run(componentChain)
	p.Rank, _ = run(rankChain)
	p.PayGrade, _ = run(payGradeChain)
	p.EntryDate, _ = run(entryDateChain)
	p.SeparationDate, _ = run(separationDateChain)
	p.CharacterOfService, _ = run(characterChain)
	if rt, ok := run(retirementChain); ok && rt != RetirementNone {
		p.IsRetirement = true
		p.RetirementType = rt
	}

	if f, hits, ok := detectCombat(t); ok {
		result.Fields = append(result.Fields, f)
		p.HasCombatService = true
		p.CombatIndicators = hits
	}

	return result
}

// lastFirstMiddle turns "DOE, JOHN ALLEN" into "John Allen Doe".
func lastFirstMiddle(m []string) (string, bool) {
	if len(m) < 3 || m[1] == "" || m[2] == "" {
		return "", false
	}
	parts := []string{m[2]}
	if len(m) > 3 && m[3] != "" {
		middle := strings.TrimSuffix(m[3], ".")
		if _, isBranch := CanonicalBranch(middle); !isBranch && !strings.Contains(middle, "/") {
			parts = append(parts, middle)
		}
	}
	parts = append(parts, m[1])
	return utils.TitleCase(strings.Join(parts, " ")), true
}

func labelledName(m []string) (string, bool) {
	s := strings.TrimSpace(m[1])
	if strings.Contains(s, ",") {
		pieces := strings.SplitN(s, ",", 2)
		fields := strings.Fields(pieces[1])
		if len(fields) == 0 {
			return "", false
		}
		sub := []string{"", strings.TrimSpace(pieces[0]), fields[0], ""}
		if len(fields) > 1 {
			sub[3] = fields[1]
		}
		return lastFirstMiddle(sub)
	}
	if len(strings.Fields(s)) < 2 {
		return "", false
	}
	return utils.TitleCase(s), true
}

func canonicalBranch(m []string) (string, bool) {
	return CanonicalBranch(m[1])
}

func canonicalComponent(m []string) (string, bool) {
	return CanonicalComponent(m[1])
}

func canonicalCharacter(m []string) (string, bool) {
	return CanonicalCharacter(m[1])
}

func retirementType(m []string) (string, bool) {
	return ClassifyRetirement(m[1]), true
}

func payGrade(m []string) (string, bool) {
	letter := strings.ToUpper(m[1])
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", false
	}
	limit := map[string]int{"E": 9, "O": 10, "W": 5}[letter]
	if n < 1 || n > limit {
		return "", false
	}
	return fmt.Sprintf("%s-%d", letter, n), true
}

func isoDate(m []string) (string, bool) {
	d := utils.NormalizeDate(m[1])
	return d, d != ""
}
