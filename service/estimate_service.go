package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Aashish23092/va-benefits-estimator/crsc"
	"github.com/Aashish23092/va-benefits-estimator/dto"
	"github.com/Aashish23092/va-benefits-estimator/estimate"
	"github.com/Aashish23092/va-benefits-estimator/evidence"
	"github.com/Aashish23092/va-benefits-estimator/metrics"
	"github.com/Aashish23092/va-benefits-estimator/rating"
	"github.com/Aashish23092/va-benefits-estimator/utils"
	"github.com/Aashish23092/va-benefits-estimator/utils/dd214"
	"github.com/Aashish23092/va-benefits-estimator/utils/ratingdecision"
)

// EstimateService wires document text acquisition to the extraction and
// calculation packages. It is the only layer that logs or records metrics.
type EstimateService struct {
	docs     *DocumentService
	pipeline *estimate.Pipeline
	calc     *crsc.Calculator
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

func NewEstimateService(docs *DocumentService, table crsc.CompensationTable, m *metrics.Metrics, logger *zap.Logger) *EstimateService {
	return &EstimateService{
		docs:     docs,
		pipeline: estimate.New(table),
		calc:     crsc.NewCalculator(table),
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// ExtractText returns the page text of a document without parsing it.
func (s *EstimateService) ExtractText(ctx context.Context, filename string, data []byte, password string) (dto.DocumentText, error) {
	return s.docs.ExtractText(ctx, filename, data, password)
}

func (s *EstimateService) processedAt() string {
	return s.now().UTC().Format(time.RFC3339)
}

// ParseDD214 extracts the service record from an uploaded DD-214.
func (s *EstimateService) ParseDD214(ctx context.Context, filename string, data []byte, password string) (*dto.DD214Response, error) {
	doc, err := s.docs.ExtractText(ctx, filename, data, password)
	if err != nil {
		return nil, err
	}

	res := dd214.Parse(utils.NormalizePages(doc.Pages))
	if s.metrics != nil {
		s.metrics.RecordDD214(res, doc.Source)
	}
	s.logger.Info("dd214 parsed",
		zap.String("filename", filename),
		zap.Int("fields", len(res.Fields)),
		zap.Strings("missing_fields", res.MissingFields),
		zap.Bool("retirement", res.Period.IsRetirement),
		zap.Bool("combat_service", res.Period.HasCombatService),
	)

	return &dto.DD214Response{
		ExtractionID: uuid.New().String(),
		Document:     doc,
		Result:       res,
		ProcessedAt:  s.processedAt(),
	}, nil
}

// ParseRatingDecision extracts conditions and dependents from an uploaded
// rating decision letter and combines the granted ratings.
func (s *EstimateService) ParseRatingDecision(ctx context.Context, filename string, data []byte, password string) (*dto.RatingDecisionResponse, error) {
	doc, err := s.docs.ExtractText(ctx, filename, data, password)
	if err != nil {
		return nil, err
	}

	res := ratingdecision.Parse(utils.NormalizePages(doc.Pages))
	combined := rating.CombineConditions(res.Conditions)
	if s.metrics != nil {
		s.metrics.RecordRatingDecision(res, doc.Source)
	}
	s.logger.Info("rating decision parsed",
		zap.String("filename", filename),
		zap.Int("tier", res.Tier),
		zap.Int("conditions", len(res.Conditions)),
		zap.Int("dependents", len(res.Dependents)),
		zap.Int("combined_rating", combined.CombinedPercentage),
		zap.Int("warnings", len(res.Warnings)),
	)

	return &dto.RatingDecisionResponse{
		ExtractionID: uuid.New().String(),
		Document:     doc,
		Result:       res,
		Combined:     combined,
		ProcessedAt:  s.processedAt(),
	}, nil
}

func (s *EstimateService) Combine(ratings []dto.RatingInput) dto.CombinedRatingResult {
	return rating.Combine(ratings)
}

func (s *EstimateService) CalculateCRSC(in dto.CRSCInput) dto.CRSCComputationResult {
	res := s.calc.Calculate(in)
	s.logger.Debug("crsc calculated",
		zap.Int("combat_percentage", res.CombatRelatedPercentage),
		zap.Float64("payment", res.CRSCFinalPayment),
	)
	return res
}

func (s *EstimateService) MapEvidence(req dto.EvidenceMapRequest) []dto.EvidenceMappingResult {
	return evidence.Map(req.Conditions, req.Evidence)
}

// Estimate runs the whole pipeline over text the caller already holds.
func (s *EstimateService) Estimate(req dto.EstimateRequest) dto.BenefitReport {
	report := s.pipeline.Run(req)
	report.ProcessedAt = s.processedAt()

	if s.metrics != nil {
		if report.ServiceRecord != nil {
			s.metrics.RecordDD214(*report.ServiceRecord, dto.TextSourcePlain)
		}
		if report.RatingDecision != nil {
			s.metrics.RecordRatingDecision(*report.RatingDecision, dto.TextSourcePlain)
		}
	}
	s.logger.Info("benefit estimate computed",
		zap.Bool("has_dd214", report.ServiceRecord != nil),
		zap.Bool("has_rating_decision", report.RatingDecision != nil),
		zap.Int("combined_rating", report.Combined.CombinedPercentage),
		zap.Float64("crsc_payment", report.CRSC.CRSCFinalPayment),
		zap.String("appeal_viability", string(report.Appeal.Viability)),
	)
	return report
}
