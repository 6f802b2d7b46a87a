package explain

import (
	"fmt"
	"strings"

	"github.com/Aashish23092/va-benefits-estimator/dto"
	"github.com/Aashish23092/va-benefits-estimator/evidence"
)

// Viability grades an appeal from the number of conditions with open issues.
func Viability(issueCount int) dto.Viability {
	switch {
	case issueCount == 0:
		return dto.ViabilityHigh
	case issueCount <= 2:
		return dto.ViabilityMedium
	}
	return dto.ViabilityLow
}

// BuildAppealStrategy lists the open issues from the evidence mapping and
// grades the appeal. A condition counts once however many issues it has.
func BuildAppealStrategy(mappings []dto.EvidenceMappingResult) dto.AppealStrategy {
	s := dto.AppealStrategy{Issues: []string{}, Steps: []string{}}

	missing := map[dto.EvidenceType]bool{}
	unresolved := false
	for _, m := range mappings {
		var problems []string
		if m.CombatCategory == dto.CombatNone {
			problems = append(problems, "no combat category")
			unresolved = true
		}
		if len(m.Gaps) > 0 {
			labels := make([]string, len(m.Gaps))
			for i, g := range m.Gaps {
				labels[i] = evidence.TypeLabel(g)
				missing[g] = true
			}
			problems = append(problems, "missing "+strings.Join(labels, ", "))
		}
		if len(problems) == 0 {
			continue
		}
		s.IssueCount++
		s.Issues = append(s.Issues, fmt.Sprintf("%s: %s", m.ConditionName, strings.Join(problems, "; ")))
	}
	s.Viability = Viability(s.IssueCount)

	if unresolved {
		s.Steps = append(s.Steps, "Identify the combat category (armed conflict, hazardous service, simulated war, instrumentality of war or Purple Heart) for each condition.")
	}
	for _, t := range evidence.RequiredTypes {
		if missing[t] {
			s.Steps = append(s.Steps, "Obtain the "+evidence.TypeLabel(t)+" and link it to the affected conditions.")
		}
	}
	s.Steps = append(s.Steps, "Submit DD Form 2860 with the evidence to your branch's CRSC board.")

	s.Text = render("appeal", s)
	return s
}
