package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Aashish23092/va-benefits-estimator/crsc"
	"github.com/Aashish23092/va-benefits-estimator/dto"
	"github.com/Aashish23092/va-benefits-estimator/metrics"
)

const dd214Text = `1. NAME (Last, First, Middle)
DOE, JOHN A
2. DEPARTMENT, COMPONENT AND BRANCH
ARMY/RA
13. DECORATIONS: PURPLE HEART
28. NARRATIVE REASON FOR SEPARATION
SUFFICIENT SERVICE FOR RETIREMENT`

const decisionText = `Dear John A. Doe:
Service connection for PTSD is granted with an evaluation of 30 percent effective January 1, 2020.
Service connection for tinnitus is granted with an evaluation of 10 percent effective January 1, 2020.
Service connection for anxiety is denied.`

func newTestEstimateService() *EstimateService {
	docs := newTestDocumentService(&fakeOCR{}, &fakePDF{})
	svc := NewEstimateService(docs, crsc.DefaultTable, metrics.New(), zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestParseDD214(t *testing.T) {
	svc := newTestEstimateService()

	resp, err := svc.ParseDD214(context.Background(), "dd214.txt", []byte(dd214Text), "")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ExtractionID)
	assert.Equal(t, "2025-03-01T12:00:00Z", resp.ProcessedAt)
	assert.Equal(t, "John A Doe", resp.Result.VeteranName)
	assert.True(t, resp.Result.Period.IsRetirement)
	assert.Equal(t, dto.TextSourcePlain, resp.Document.Source)
}

func TestParseRatingDecision(t *testing.T) {
	svc := newTestEstimateService()

	resp, err := svc.ParseRatingDecision(context.Background(), "decision.txt", []byte(decisionText), "")
	require.NoError(t, err)
	require.Len(t, resp.Result.Conditions, 3)
	assert.Equal(t, 40, resp.Combined.CombinedPercentage)
	assert.NotEmpty(t, resp.Result.Version)
}

func TestParseRatingDecision_PropagatesTextErrors(t *testing.T) {
	svc := newTestEstimateService()

	_, err := svc.ParseRatingDecision(context.Background(), "decision.txt", []byte("  \f "), "")
	assert.ErrorIs(t, err, dto.ErrNoText)
}

func TestEstimate_StampsProcessedAt(t *testing.T) {
	svc := newTestEstimateService()

	report := svc.Estimate(dto.EstimateRequest{
		DD214Pages:          []string{dd214Text},
		RatingDecisionPages: []string{decisionText},
		CombatFlags:         map[string]dto.CombatFlags{"ptsd": {ArmedConflict: true}},
		VAWaiverAmount:      500,
		RetiredPayAmount:    2000,
	})

	assert.Equal(t, "2025-03-01T12:00:00Z", report.ProcessedAt)
	assert.Equal(t, 40, report.Combined.CombinedPercentage)
	assert.Equal(t, 30, report.CRSC.CombatRelatedPercentage)
	assert.Equal(t, 500.0, report.CRSC.CRSCFinalPayment)
}

func TestCombineAndCRSC(t *testing.T) {
	svc := newTestEstimateService()

	assert.Equal(t, 60, svc.Combine([]dto.RatingInput{{Percentage: 50}, {Percentage: 20}}).CombinedPercentage)

	res := svc.CalculateCRSC(dto.CRSCInput{IsRetired: false})
	assert.Zero(t, res.CRSCFinalPayment)
	assert.Len(t, res.Rationale, 1)
}
