// Package evidence links a veteran's supporting documents to conditions and
// grades how well each CRSC claim is supported.
package evidence

import (
	"slices"
	"strings"

	"github.com/Aashish23092/va-benefits-estimator/crsc"
	"github.com/Aashish23092/va-benefits-estimator/dto"
)

// RequiredTypes is the evidence a CRSC claim is expected to carry, in the
// order gaps are reported.
var RequiredTypes = []dto.EvidenceType{
	dto.EvidenceServiceTreatmentRecord,
	dto.EvidenceLineOfDuty,
	dto.EvidenceAfterActionReport,
	dto.EvidenceAwardCitation,
}

// TypeLabel is the display name for an evidence type.
func TypeLabel(t dto.EvidenceType) string {
	switch t {
	case dto.EvidenceServiceTreatmentRecord:
		return "service treatment record entry"
	case dto.EvidenceLineOfDuty:
		return "line-of-duty determination"
	case dto.EvidenceAfterActionReport:
		return "after-action report"
	case dto.EvidenceAwardCitation:
		return "award citation"
	}
	return "other evidence"
}

// Map returns one result per condition, in input order.
func Map(conds []dto.CombatCondition, items []dto.EvidenceItem) []dto.EvidenceMappingResult {
	out := make([]dto.EvidenceMappingResult, 0, len(conds))
	for _, cc := range conds {
		out = append(out, mapOne(cc, items))
	}
	return out
}

func mapOne(cc dto.CombatCondition, items []dto.EvidenceItem) dto.EvidenceMappingResult {
	cond := cc.Condition
	category, resolved := crsc.Classify(cc.Flags)
	if !resolved && !cc.Flags.NotCombatRelated && cond.CombatCategory != dto.CombatNone {
		category, resolved = cond.CombatCategory, true
	}

	res := dto.EvidenceMappingResult{
		ConditionID:    cond.ID,
		ConditionName:  cond.Name,
		CombatCategory: category,
		Evidence:       []dto.EvidenceItem{},
		Gaps:           []dto.EvidenceType{},
	}
	have := map[dto.EvidenceType]bool{}
	for _, item := range items {
		if linked(cond, item) {
			res.Evidence = append(res.Evidence, item)
			have[item.Type] = true
		}
	}
	for _, t := range RequiredTypes {
		if !have[t] {
			res.Gaps = append(res.Gaps, t)
		}
	}

	hasEvidence := len(res.Evidence) > 0
	switch {
	case resolved && hasEvidence:
		res.Confidence = dto.ConfidenceHigh
	case resolved || hasEvidence:
		res.Confidence = dto.ConfidenceMedium
	default:
		res.Confidence = dto.ConfidenceLow
	}
	return res
}

// linked is true for an explicit id link, a keyword that appears as a word
// in the condition name, or the condition name appearing in the item text.
func linked(cond dto.ServiceCondition, item dto.EvidenceItem) bool {
	if cond.ID != "" && slices.Contains(item.LinkedConditionIDs, cond.ID) {
		return true
	}

	name := strings.ToLower(strings.TrimSpace(cond.Name))
	if name == "" {
		return false
	}
	nameWords := strings.Fields(name)
	for _, kw := range item.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if kw == name || slices.Contains(nameWords, kw) {
			return true
		}
	}

	if len(name) < 3 {
		return false
	}
	text := strings.ToLower(item.Title + " " + item.Description)
	return strings.Contains(text, name)
}
