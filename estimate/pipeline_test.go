package estimate

import (
	"testing"

	"github.com/Aashish23092/va-benefits-estimator/crsc"
	"github.com/Aashish23092/va-benefits-estimator/dto"
	"github.com/Aashish23092/va-benefits-estimator/utils/ratingdecision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dd214Page = `1. NAME (Last, First, Middle)
DOE, JOHN A
2. DEPARTMENT, COMPONENT AND BRANCH
ARMY/RA
13. DECORATIONS: PURPLE HEART
28. NARRATIVE REASON FOR SEPARATION
SUFFICIENT SERVICE FOR RETIREMENT`

const letterPage = `Dear John A. Doe:
Service connection for PTSD is granted with an evaluation of 30 percent effective January 1, 2020.
Service connection for tinnitus is granted with an evaluation of 10 percent effective January 1, 2020.
Service connection for sleep apnea is granted with an evaluation of 50 percent effective January 1, 2020.
Service connection for anxiety is denied.`

func TestRun_FullEstimate(t *testing.T) {
	req := dto.EstimateRequest{
		DD214Pages:          []string{dd214Page},
		RatingDecisionPages: []string{letterPage},
		CombatFlags: map[string]dto.CombatFlags{
			ratingdecision.ConditionID("PTSD"): {ArmedConflict: true},
			"tinnitus":                         {HazardousService: true},
		},
		RetiredPayAmount: 2500,
		VAWaiverAmount:   1200,
	}

	report := New(crsc.DefaultTable).Run(req)

	require.NotNil(t, report.ServiceRecord)
	require.NotNil(t, report.RatingDecision)
	assert.True(t, report.ServiceRecord.Period.IsRetirement)
	assert.Len(t, report.RatingDecision.Conditions, 4)

	// 50, 30, 10 -> 68.5 -> 70
	assert.Equal(t, 70, report.Combined.CombinedPercentage)
	assert.Equal(t, []int{50, 30, 10}, report.Combined.InputRatings)

	assert.Equal(t, 40, report.CRSC.CombatRelatedPercentage)
	assert.Equal(t, 774.16, report.CRSC.CRSCFinalPayment)
	assert.Equal(t, 1200.0, report.CRSC.RetiredPayOffset)

	// anxiety is denied and has nothing to gather
	require.Len(t, report.Evidence, 3)
	assert.Equal(t, dto.CombatArmedConflict, report.Evidence[0].CombatCategory)
	assert.Equal(t, dto.ConfidenceMedium, report.Evidence[0].Confidence)

	assert.True(t, report.CrossCheck.NameMatch)
	assert.Empty(t, report.CrossCheck.Notes)

	assert.Contains(t, report.Explanation, "PTSD (30%): combat-related, Armed Conflict.")
	assert.Equal(t, dto.ViabilityLow, report.Appeal.Viability)
}

func TestRun_IsPure(t *testing.T) {
	req := dto.EstimateRequest{RatingDecisionPages: []string{letterPage}, VAWaiverAmount: 100}
	p := New(crsc.DefaultTable)

	assert.Equal(t, p.Run(req), p.Run(req))
}

func TestRun_EditsProduceNewVersion(t *testing.T) {
	p := New(crsc.DefaultTable)
	base := p.Run(dto.EstimateRequest{RatingDecisionPages: []string{letterPage}})

	rating := 70
	edited := p.Run(dto.EstimateRequest{
		RatingDecisionPages: []string{letterPage},
		Edits:               []dto.ConditionEdit{{ConditionID: ratingdecision.ConditionID("PTSD"), Rating: &rating}},
	})

	assert.Equal(t, base.RatingDecision.Version, edited.RatingDecision.ParentVersion)
	assert.Equal(t, 90, edited.Combined.CombinedPercentage)
	assert.Equal(t, 70, base.Combined.CombinedPercentage)
}

func TestRun_NotRetiredGivesZeroCRSC(t *testing.T) {
	retired := false
	report := New(crsc.DefaultTable).Run(dto.EstimateRequest{
		RatingDecisionPages: []string{letterPage},
		CombatFlags:         map[string]dto.CombatFlags{"ptsd": {ArmedConflict: true}},
		VAWaiverAmount:      1200,
		IsRetired:           &retired,
	})

	assert.Equal(t, 0.0, report.CRSC.CRSCFinalPayment)
	assert.NotEmpty(t, report.CRSC.Rationale)
}

func TestRun_NoDocuments(t *testing.T) {
	report := New(crsc.DefaultTable).Run(dto.EstimateRequest{})

	assert.Nil(t, report.ServiceRecord)
	assert.Nil(t, report.RatingDecision)
	assert.Equal(t, 0, report.Combined.CombinedPercentage)
	assert.Empty(t, report.Evidence)
	assert.Equal(t, dto.ViabilityHigh, report.Appeal.Viability)
	assert.NotEmpty(t, report.CrossCheck.Notes)
}

func TestCrossCheck(t *testing.T) {
	dd := &dto.DD214Result{VeteranName: "John A Doe"}
	rd := &dto.RatingDecisionResult{VeteranName: "Jane Smith"}

	res := CrossCheck(dd, rd, dto.CRSCComputationResult{})
	assert.False(t, res.NameMatch)
	assert.Len(t, res.Notes, 1)
	assert.Contains(t, res.Notes[0], "do not match")

	rd.VeteranName = "Jonn A Doe"
	res = CrossCheck(dd, rd, dto.CRSCComputationResult{
		CombatRelatedConditions: []dto.ServiceCondition{{Name: "PTSD"}},
	})
	assert.False(t, res.NameMatch)
	assert.Len(t, res.Notes, 2)
	assert.Contains(t, res.Notes[0], "differ slightly")
	assert.Contains(t, res.Notes[1], "no combat indicators")
}

func TestRun_AppealSkipsDeniedAndNotCombatRelated(t *testing.T) {
	report := New(crsc.DefaultTable).Run(dto.EstimateRequest{
		RatingDecisionPages: []string{letterPage},
		CombatFlags: map[string]dto.CombatFlags{
			"ptsd":        {ArmedConflict: true},
			"tinnitus":    {HazardousService: true},
			"sleep apnea": {NotCombatRelated: true},
		},
		Evidence: []dto.EvidenceItem{{
			ID:       "e1",
			Type:     dto.EvidenceServiceTreatmentRecord,
			Title:    "STR entry",
			Keywords: []string{"ptsd", "tinnitus"},
		}},
	})

	require.Len(t, report.Evidence, 2)
	assert.Equal(t, "PTSD", report.Evidence[0].ConditionName)
	assert.Equal(t, "Tinnitus", report.Evidence[1].ConditionName)
	for _, m := range report.Evidence {
		assert.Equal(t, dto.ConfidenceHigh, m.Confidence)
	}
	assert.Equal(t, 2, report.Appeal.IssueCount)
	assert.Equal(t, dto.ViabilityMedium, report.Appeal.Viability)
	assert.NotContains(t, report.Appeal.Text, "no combat category")
}
