// Package estimate runs the full benefit estimate over already-acquired
// document text. It is a pure function of its request; callers decide when
// to run it again.
package estimate

import (
	"fmt"

	"github.com/Aashish23092/va-benefits-estimator/crsc"
	"github.com/Aashish23092/va-benefits-estimator/dto"
	"github.com/Aashish23092/va-benefits-estimator/evidence"
	"github.com/Aashish23092/va-benefits-estimator/explain"
	"github.com/Aashish23092/va-benefits-estimator/rating"
	"github.com/Aashish23092/va-benefits-estimator/utils"
	"github.com/Aashish23092/va-benefits-estimator/utils/dd214"
	"github.com/Aashish23092/va-benefits-estimator/utils/ratingdecision"
)

// nameMatchThreshold is the similarity above which differing names are
// reported as a probable OCR difference rather than a mismatch.
const nameMatchThreshold = 0.8

type Pipeline struct {
	calc *crsc.Calculator
}

func New(table crsc.CompensationTable) *Pipeline {
	return &Pipeline{calc: crsc.NewCalculator(table)}
}

// Run parses whichever documents are present, applies user edits and flags,
// and computes every downstream result.
func (p *Pipeline) Run(req dto.EstimateRequest) dto.BenefitReport {
	var report dto.BenefitReport

	if len(req.DD214Pages) > 0 {
		dd := dd214.Parse(utils.NormalizePages(req.DD214Pages))
		report.ServiceRecord = &dd
	}

	var conds []dto.ServiceCondition
	if len(req.RatingDecisionPages) > 0 {
		rd := ratingdecision.Parse(utils.NormalizePages(req.RatingDecisionPages))
		if len(req.Edits) > 0 {
			rd = ratingdecision.Revise(rd, req.Edits)
		}
		report.RatingDecision = &rd
		conds = rd.Conditions
	}

	report.Combined = rating.CombineConditions(conds)

	combat := CombatConditions(conds, req.CombatFlags)
	report.CRSC = p.calc.Calculate(dto.CRSCInput{
		Conditions:       combat,
		IsRetired:        isRetired(req, report.ServiceRecord),
		RetiredPayAmount: req.RetiredPayAmount,
		VAWaiverAmount:   req.VAWaiverAmount,
	})
	report.Evidence = evidence.Map(crscCandidates(combat), req.Evidence)
	report.CrossCheck = CrossCheck(report.ServiceRecord, report.RatingDecision, report.CRSC)
	report.Explanation = explain.Report(conds, report.Combined, report.CRSC)
	report.Appeal = explain.BuildAppealStrategy(report.Evidence)
	return report
}

// CombatConditions pairs each condition with its flags, looked up by
// condition ID and then by case-insensitive name.
func CombatConditions(conds []dto.ServiceCondition, flags map[string]dto.CombatFlags) []dto.CombatCondition {
	out := make([]dto.CombatCondition, 0, len(conds))
	for _, c := range conds {
		f, ok := flags[c.ID]
		if !ok {
			f = flags[utils.NameKey(c.Name)]
		}
		if category, ok := crsc.Classify(f); ok {
			c.CombatCategory = category
		}
		out = append(out, dto.CombatCondition{Condition: c, Flags: f})
	}
	return out
}

// crscCandidates drops denied conditions and those the veteran marked not
// combat-related; neither has evidence left to gather.
func crscCandidates(combat []dto.CombatCondition) []dto.CombatCondition {
	out := make([]dto.CombatCondition, 0, len(combat))
	for _, cc := range combat {
		if cc.Condition.Status == dto.StatusDenied || cc.Flags.NotCombatRelated {
			continue
		}
		out = append(out, cc)
	}
	return out
}

func isRetired(req dto.EstimateRequest, dd *dto.DD214Result) bool {
	if req.IsRetired != nil {
		return *req.IsRetired
	}
	return dd != nil && dd.Period.IsRetirement
}

// CrossCheck compares the two documents for consistency. Findings are notes
// only; nothing is changed.
func CrossCheck(dd *dto.DD214Result, rd *dto.RatingDecisionResult, crscRes dto.CRSCComputationResult) dto.CrossCheckResult {
	res := dto.CrossCheckResult{Notes: []string{}}
	if dd == nil || rd == nil {
		res.Notes = append(res.Notes, "Both a DD-214 and a rating decision are needed to cross-check the veteran's identity.")
		return res
	}

	switch {
	case dd.VeteranName == "" || rd.VeteranName == "":
		res.Notes = append(res.Notes, "The veteran's name was not found on both documents.")
	default:
		res.NameMatch = utils.CompareNames(dd.VeteranName, rd.VeteranName)
		res.NameSimilarity = utils.CalculateNameSimilarity(dd.VeteranName, rd.VeteranName)
		switch {
		case res.NameMatch:
		case res.NameSimilarity >= nameMatchThreshold:
			res.Notes = append(res.Notes, fmt.Sprintf("Names differ slightly (%q vs %q); likely a scanning difference.", dd.VeteranName, rd.VeteranName))
		default:
			res.Notes = append(res.Notes, fmt.Sprintf("Names do not match (%q vs %q); confirm both documents belong to the same veteran.", dd.VeteranName, rd.VeteranName))
		}
	}

	if len(crscRes.CombatRelatedConditions) > 0 && !dd.Period.HasCombatService {
		res.Notes = append(res.Notes, "Combat-related conditions were claimed but the DD-214 shows no combat indicators.")
	}
	return res
}
