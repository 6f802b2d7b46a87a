package crsc

import (
	"testing"

	"github.com/Aashish23092/va-benefits-estimator/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func granted(name string, pct int) dto.ServiceCondition {
	return dto.ServiceCondition{Name: name, Rating: pct, Status: dto.StatusGranted}
}

func workedExample() dto.CRSCInput {
	return dto.CRSCInput{
		IsRetired:        true,
		RetiredPayAmount: 2500,
		VAWaiverAmount:   1200,
		Conditions: []dto.CombatCondition{
			{Condition: granted("PTSD", 30), Flags: dto.CombatFlags{ArmedConflict: true}},
			{Condition: granted("Tinnitus", 10), Flags: dto.CombatFlags{HazardousService: true}},
			{Condition: granted("Sleep Apnea", 50)},
		},
	}
}

func TestCalculate_WorkedExample(t *testing.T) {
	res := NewCalculator(DefaultTable).Calculate(workedExample())

	assert.Equal(t, 40, res.CombatRelatedPercentage)
	require.Len(t, res.CombatRelatedConditions, 2)
	assert.Equal(t, dto.CombatArmedConflict, res.CombatRelatedConditions[0].CombatCategory)
	assert.Equal(t, dto.CombatHazardousService, res.CombatRelatedConditions[1].CombatCategory)
	assert.Equal(t, 774.16, res.CRSCEligibleAmount)
	assert.Equal(t, 1200.0, res.RetiredPayOffset)
	assert.Equal(t, 774.16, res.CRSCFinalPayment)
	assert.LessOrEqual(t, res.CRSCFinalPayment, 1200.0)

	assert.Equal(t, []string{
		"PTSD (30%): combat-related, Armed Conflict.",
		"Tinnitus (10%): combat-related, Hazardous Service.",
		"Sleep Apnea (50%): excluded, no combat category selected.",
		"Combined combat-related ratings 30%, 10% = 40%.",
		"2025 compensation table: 40% pays $774.16 per month (veteran alone).",
		"Retired pay offset = min(retired pay $2500.00, VA waiver $1200.00) = $1200.00.",
		"CRSC payment = min(VA waiver $1200.00, eligible $774.16) = $774.16 per month.",
	}, res.Rationale)
}

func TestCalculate_WaiverCapsPayment(t *testing.T) {
	in := workedExample()
	in.VAWaiverAmount = 300
	res := NewCalculator(DefaultTable).Calculate(in)

	assert.Equal(t, 300.0, res.CRSCFinalPayment)
	assert.Equal(t, 300.0, res.RetiredPayOffset)
	assert.LessOrEqual(t, res.CRSCFinalPayment, min(in.VAWaiverAmount, res.CRSCEligibleAmount))
}

func TestCalculate_NoCombatConditions(t *testing.T) {
	in := workedExample()
	for i := range in.Conditions {
		in.Conditions[i].Flags = dto.CombatFlags{}
	}
	in.Conditions[0].Flags.NotCombatRelated = true
	in.Conditions[0].Flags.ArmedConflict = true

	res := NewCalculator(DefaultTable).Calculate(in)

	assert.Equal(t, 0, res.CombatRelatedPercentage)
	assert.Equal(t, 0.0, res.CRSCFinalPayment)
	assert.Empty(t, res.CombatRelatedConditions)
	assert.Contains(t, res.Rationale, "PTSD (30%): excluded, marked not combat-related.")
	assert.Equal(t, "No combat-related conditions, so the CRSC payment is $0.00.", res.Rationale[len(res.Rationale)-1])
}

func TestCalculate_ImpossibleInputsGiveZeroResult(t *testing.T) {
	notRetired := workedExample()
	notRetired.IsRetired = false
	res := NewCalculator(DefaultTable).Calculate(notRetired)
	assert.Equal(t, 0.0, res.CRSCFinalPayment)
	assert.Equal(t, 0, res.CombatRelatedPercentage)
	assert.Len(t, res.Rationale, 1)

	noWaiver := workedExample()
	noWaiver.VAWaiverAmount = 0
	res = NewCalculator(DefaultTable).Calculate(noWaiver)
	assert.Equal(t, 0.0, res.CRSCFinalPayment)
	assert.Len(t, res.Rationale, 1)
}

func TestCalculate_DeniedConditionsExcluded(t *testing.T) {
	in := workedExample()
	in.Conditions[0].Condition.Status = dto.StatusDenied

	res := NewCalculator(DefaultTable).Calculate(in)

	assert.Equal(t, 10, res.CombatRelatedPercentage)
	assert.Equal(t, 175.51, res.CRSCFinalPayment)
	assert.Equal(t, "PTSD: excluded, service connection denied.", res.Rationale[0])
}

func TestCalculate_StatusOmittedOrUnknown(t *testing.T) {
	in := workedExample()
	for i := range in.Conditions {
		in.Conditions[i].Condition.Status = ""
	}
	in.Conditions[1].Condition.Status = dto.StatusUnknown

	res := NewCalculator(DefaultTable).Calculate(in)

	assert.Equal(t, 40, res.CombatRelatedPercentage)
	require.Len(t, res.CombatRelatedConditions, 2)
	assert.Equal(t, 774.16, res.CRSCFinalPayment)
}

func TestCalculate_BelowLowestThreshold(t *testing.T) {
	in := dto.CRSCInput{
		IsRetired:      true,
		VAWaiverAmount: 500,
		Conditions: []dto.CombatCondition{
			{Condition: granted("Scar", 0), Flags: dto.CombatFlags{PurpleHeart: true}},
		},
	}
	res := NewCalculator(CompensationTable{}).Calculate(in)

	assert.Equal(t, 0, res.CombatRelatedPercentage)
	assert.Equal(t, 0.0, res.CRSCEligibleAmount)
	assert.Equal(t, 0.0, res.CRSCFinalPayment)
	assert.Len(t, res.CombatRelatedConditions, 1)
}

func TestCalculate_NoBilateralFactor(t *testing.T) {
	in := dto.CRSCInput{
		IsRetired:      true,
		VAWaiverAmount: 5000,
		Conditions: []dto.CombatCondition{
			{Condition: dto.ServiceCondition{Name: "Left Knee", Rating: 30, Status: dto.StatusGranted, BilateralSide: dto.SideLeft}, Flags: dto.CombatFlags{ArmedConflict: true}},
			{Condition: dto.ServiceCondition{Name: "Right Knee", Rating: 30, Status: dto.StatusGranted, BilateralSide: dto.SideRight}, Flags: dto.CombatFlags{ArmedConflict: true}},
		},
	}
	res := NewCalculator(DefaultTable).Calculate(in)
	assert.Equal(t, 50, res.CombatRelatedPercentage)
}

func TestCompensationTableLookup(t *testing.T) {
	r, ok := DefaultTable.Lookup(40)
	assert.True(t, ok)
	assert.Equal(t, 774.16, r.Monthly)

	r, ok = DefaultTable.Lookup(45)
	assert.True(t, ok)
	assert.Equal(t, 40, r.Percentage)

	_, ok = DefaultTable.Lookup(5)
	assert.False(t, ok)

	r, ok = DefaultTable.Lookup(100)
	assert.True(t, ok)
	assert.Equal(t, 3831.30, r.Monthly)
}
