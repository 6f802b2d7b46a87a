package crsc

import (
	"fmt"
	"strings"

	"github.com/Aashish23092/va-benefits-estimator/dto"
	"github.com/Aashish23092/va-benefits-estimator/rating"
)

// Calculator computes CRSC against a compensation table.
type Calculator struct {
	table CompensationTable
}

// NewCalculator creates a calculator. An empty table falls back to DefaultTable.
func NewCalculator(table CompensationTable) *Calculator {
	if len(table.Rates) == 0 {
		table = DefaultTable
	}
	return &Calculator{table: table}
}

// Calculate never fails. Inputs that make CRSC impossible produce a zero
// result whose rationale says why. Each step adds one rationale line.
func (c *Calculator) Calculate(in dto.CRSCInput) dto.CRSCComputationResult {
	res := dto.CRSCComputationResult{
		CombatRelatedConditions: []dto.ServiceCondition{},
		Rationale:               []string{},
	}
	note := func(format string, args ...any) {
		res.Rationale = append(res.Rationale, fmt.Sprintf(format, args...))
	}

	if !in.IsRetired {
		note("Not receiving military retired pay, so CRSC does not apply.")
		return res
	}
	waiver := max(in.VAWaiverAmount, 0)
	if waiver == 0 {
		note("No VA waiver amount was entered; CRSC only restores retired pay that is waived for VA compensation.")
		return res
	}

	var ratings []int
	for _, cc := range in.Conditions {
		cond := cc.Condition
		if cond.Status == dto.StatusDenied {
			note("%s: excluded, service connection denied.", cond.Name)
			continue
		}
		category, ok := Classify(cc.Flags)
		if !ok {
			if cc.Flags.NotCombatRelated {
				note("%s (%d%%): excluded, marked not combat-related.", cond.Name, cond.Rating)
			} else {
				note("%s (%d%%): excluded, no combat category selected.", cond.Name, cond.Rating)
			}
			continue
		}
		cond.CombatCategory = category
		res.CombatRelatedConditions = append(res.CombatRelatedConditions, cond)
		ratings = append(ratings, cond.Rating)
		note("%s (%d%%): combat-related, %s.", cond.Name, cond.Rating, category)
	}

	if len(res.CombatRelatedConditions) == 0 {
		note("No combat-related conditions, so the CRSC payment is $0.00.")
		return res
	}

	res.CombatRelatedPercentage = rating.CombinePercentages(ratings...)
	note("Combined combat-related ratings %s = %d%%.", joinPercents(ratings), res.CombatRelatedPercentage)

	rate, ok := c.table.Lookup(res.CombatRelatedPercentage)
	if ok {
		res.CRSCEligibleAmount = rate.Monthly
		note("%d compensation table: %d%% pays $%.2f per month (veteran alone).", c.table.Year, rate.Percentage, rate.Monthly)
	} else {
		note("%d%% is below the lowest compensation table threshold; eligible amount is $0.00.", res.CombatRelatedPercentage)
	}

	retired := max(in.RetiredPayAmount, 0)
	res.RetiredPayOffset = min(retired, waiver)
	note("Retired pay offset = min(retired pay $%.2f, VA waiver $%.2f) = $%.2f.", retired, waiver, res.RetiredPayOffset)

	res.CRSCFinalPayment = min(waiver, res.CRSCEligibleAmount)
	note("CRSC payment = min(VA waiver $%.2f, eligible $%.2f) = $%.2f per month.", waiver, res.CRSCEligibleAmount, res.CRSCFinalPayment)
	return res
}

func joinPercents(ratings []int) string {
	parts := make([]string, len(ratings))
	for i, r := range ratings {
		parts[i] = fmt.Sprintf("%d%%", r)
	}
	return strings.Join(parts, ", ")
}
