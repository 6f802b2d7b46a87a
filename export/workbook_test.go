package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Aashish23092/va-benefits-estimator/dto"
)

func sampleReport() dto.BenefitReport {
	stated := 40
	return dto.BenefitReport{
		ServiceRecord: &dto.DD214Result{
			VeteranName: "John A Doe",
			Period: dto.ServicePeriod{
				Branch:         "Army",
				EntryDate:      "2001-06-15",
				SeparationDate: "2021-06-30",
				RetirementType: "Longevity",
			},
		},
		RatingDecision: &dto.RatingDecisionResult{
			VeteranName:    "John A. Doe",
			StatedCombined: &stated,
			Version:        "v1",
			Conditions: []dto.ServiceCondition{
				{ID: "c1", Name: "PTSD", Rating: 30, Status: dto.StatusGranted, Source: dto.SourceExtraction},
				{ID: "c2", Name: "Anxiety", Status: dto.StatusDenied, DenialReason: "Not service-connected", Source: dto.SourceExtraction},
			},
		},
		Combined: dto.CombinedRatingResult{CombinedPercentage: 40},
		CRSC: dto.CRSCComputationResult{
			CombatRelatedPercentage: 30,
			CRSCFinalPayment:        537.42,
			Rationale:               []string{"PTSD (30%): combat-related, Armed Conflict."},
		},
		Evidence: []dto.EvidenceMappingResult{{
			ConditionID:    "c1",
			ConditionName:  "PTSD",
			CombatCategory: dto.CombatArmedConflict,
			Confidence:     dto.ConfidenceLow,
			Gaps:           []dto.EvidenceType{dto.EvidenceLineOfDuty},
		}},
		CrossCheck: dto.CrossCheckResult{NameMatch: true},
		Appeal:     dto.AppealStrategy{Viability: dto.ViabilityMedium},
	}
}

func cell(t *testing.T, f *excelize.File, sheet, axis string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, axis)
	require.NoError(t, err)
	return v
}

func TestExport(t *testing.T) {
	f, err := NewExporter().Export(sampleReport())
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetSummary, SheetConditions, SheetCRSC, SheetEvidence}, f.GetSheetList())

	assert.Equal(t, "Item", cell(t, f, SheetSummary, "A1"))
	assert.Equal(t, "John A Doe", cell(t, f, SheetSummary, "B2"))
	assert.Equal(t, "2001-06-15 to 2021-06-30", cell(t, f, SheetSummary, "B4"))

	assert.Equal(t, "PTSD", cell(t, f, SheetConditions, "A2"))
	assert.Equal(t, "30", cell(t, f, SheetConditions, "B2"))
	assert.Equal(t, "Armed Conflict", cell(t, f, SheetConditions, "G2"))
	assert.Equal(t, "Not service-connected", cell(t, f, SheetConditions, "I3"))

	assert.Equal(t, "PTSD (30%): combat-related, Armed Conflict.", cell(t, f, SheetCRSC, "A6"))
	assert.Equal(t, "line-of-duty determination", cell(t, f, SheetEvidence, "E2"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	assert.Positive(t, buf.Len())
}

func TestExport_EmptyReport(t *testing.T) {
	f, err := NewExporter().Export(dto.BenefitReport{})
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "Combined rating", cell(t, f, SheetSummary, "A2"))
	assert.Equal(t, "0%", cell(t, f, SheetSummary, "B2"))
	assert.Equal(t, "", cell(t, f, SheetConditions, "A2"))
}

func TestDateRange(t *testing.T) {
	assert.Equal(t, "2001-06-15", dateRange("2001-06-15", ""))
	assert.Equal(t, "2021-06-30", dateRange("", "2021-06-30"))
	assert.Equal(t, "", dateRange("", ""))
}
