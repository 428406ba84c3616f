// Package service orchestrates comparison evaluation and persistence.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/juliocesarjcrs/investment-compare/internal/calculator"
	"github.com/juliocesarjcrs/investment-compare/internal/config"
	"github.com/juliocesarjcrs/investment-compare/internal/finance"
	"github.com/juliocesarjcrs/investment-compare/internal/logger"
	"github.com/juliocesarjcrs/investment-compare/internal/metrics"
	"github.com/juliocesarjcrs/investment-compare/internal/models"
	"github.com/juliocesarjcrs/investment-compare/internal/recommendation"
	"github.com/juliocesarjcrs/investment-compare/internal/repository"
)

// TaxDefaults fill in scenario tax fields left at zero.
type TaxDefaults struct {
	UVTValue        float64
	WithholdingRate float64
	InflationRate   float64
}

// DefaultTaxDefaults returns the statutory values with no inflation adjustment.
func DefaultTaxDefaults() TaxDefaults {
	return TaxDefaults{
		UVTValue:        finance.DefaultUVTValue,
		WithholdingRate: finance.DefaultWithholdingRate,
	}
}

// TaxDefaultsFromConfig maps the tax section of the configuration.
func TaxDefaultsFromConfig(cfg config.TaxConfig) TaxDefaults {
	return TaxDefaults{
		UVTValue:        cfg.UVTValue,
		WithholdingRate: cfg.WithholdingRate,
		InflationRate:   cfg.InflationRate,
	}
}

// Evaluation is a comparison together with everything computed from it.
type Evaluation struct {
	Comparison     models.ComparisonData  `json:"comparison"`
	Results        models.ScenarioResults `json:"results"`
	Recommendation *models.Recommendation `json:"recommendation"`
	EvaluatedAt    time.Time              `json:"evaluatedAt"`
}

// ComparisonService evaluates comparisons and manages the saved ones
type ComparisonService struct {
	repo          repository.ComparisonRepository
	validate      *validator.Validate
	tax           TaxDefaults
	logger        *logrus.Logger
	comparisonLog *logger.ComparisonLogger
	audit         *logger.AuditLogger
	now           func() time.Time
}

// NewComparisonService creates a new comparison service
func NewComparisonService(
	repo repository.ComparisonRepository,
	tax TaxDefaults,
	log *logrus.Logger,
) *ComparisonService {
	return &ComparisonService{
		repo:          repo,
		validate:      validator.New(),
		tax:           tax,
		logger:        log,
		comparisonLog: logger.NewComparisonLogger(log),
		audit:         logger.NewAuditLogger(log),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Evaluate computes every configured scenario, scores them and builds the recommendation.
// The caller's comparison is not modified.
func (s *ComparisonService) Evaluate(ctx context.Context, data models.ComparisonData) (*Evaluation, error) {
	start := time.Now()

	evaluation, err := s.evaluate(ctx, data)
	status := "success"
	if err != nil {
		status = "error"
		s.comparisonLog.LogEvaluationFailed(data.ID, err)
	}
	metrics.RecordEvaluation(status, time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	rec := evaluation.Recommendation
	s.comparisonLog.LogRecommendation(
		data.ID,
		string(data.UserProfile.RiskProfile),
		string(rec.RecommendedScenario),
		rec.Scores[0].TotalScore,
		len(rec.Scores),
		len(rec.Warnings),
		float64(time.Since(start).Microseconds())/1000,
	)
	return evaluation, nil
}

func (s *ComparisonService) evaluate(ctx context.Context, data models.ComparisonData) (*Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validateComparison(&data); err != nil {
		return nil, err
	}

	data.Scenarios = s.applyTaxDefaults(data.Scenarios)

	results, err := calculator.CalculateAll(data.Scenarios)
	if err != nil {
		return nil, err
	}
	for _, scenarioType := range results.Computed() {
		metrics.RecordScenarioCalculation(string(scenarioType))
		annualized, total := headline(scenarioType, results)
		s.comparisonLog.LogScenarioCalculated(data.ID, string(scenarioType), annualized, total)
	}

	rec, err := recommendation.Generate(data, results)
	if err != nil {
		return nil, fmt.Errorf("failed to generate recommendation: %w", err)
	}
	for _, score := range rec.Scores {
		metrics.RecordScenarioScore(string(score.ScenarioType), score.TotalScore)
	}
	metrics.RecordRecommendation(string(rec.RecommendedScenario), string(data.UserProfile.RiskProfile), len(rec.Warnings))

	return &Evaluation{
		Comparison:     data,
		Results:        results,
		Recommendation: rec,
		EvaluatedAt:    s.now(),
	}, nil
}

func (s *ComparisonService) validateComparison(data *models.ComparisonData) error {
	if err := s.validate.Struct(data); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidComparison, err)
	}
	return data.Validate()
}

// applyTaxDefaults returns copies of the tax-bearing configurations with zero
// fields replaced by the service defaults.
func (s *ComparisonService) applyTaxDefaults(scenarios models.Scenarios) models.Scenarios {
	if scenarios.Savings != nil {
		cfg := *scenarios.Savings
		cfg.UVTValue = orDefault(cfg.UVTValue, s.tax.UVTValue)
		cfg.WithholdingRate = orDefault(cfg.WithholdingRate, s.tax.WithholdingRate)
		cfg.InflationRate = orDefault(cfg.InflationRate, s.tax.InflationRate)
		scenarios.Savings = &cfg
	}
	if scenarios.ExistingProperty != nil {
		cfg := *scenarios.ExistingProperty
		cfg.UVTValue = orDefault(cfg.UVTValue, s.tax.UVTValue)
		cfg.WithholdingRate = orDefault(cfg.WithholdingRate, s.tax.WithholdingRate)
		scenarios.ExistingProperty = &cfg
	}
	return scenarios
}

func orDefault(value, fallback float64) float64 {
	if value == 0 {
		return fallback
	}
	return value
}

// headline picks the figures worth logging for a computed scenario.
func headline(scenarioType models.ScenarioType, results models.ScenarioResults) (float64, float64) {
	switch scenarioType {
	case models.ScenarioSavings:
		return results.Savings.EffectiveAnnualRate, results.Savings.NetEarnings
	case models.ScenarioFutureProperty:
		return results.FutureProperty.AnnualizedReturn, results.FutureProperty.TotalReturn
	case models.ScenarioImmediateRent:
		return results.ImmediateRent.AnnualizedReturn, results.ImmediateRent.TotalReturn
	case models.ScenarioExistingProperty:
		return results.ExistingProperty.Maintain.AnnualizedReturn, results.ExistingProperty.Maintain.TotalReturn
	default:
		return 0, 0
	}
}

// SaveComparison stores the comparison, assigning an ID and creation time when missing.
// It returns the stored ID.
func (s *ComparisonService) SaveComparison(ctx context.Context, data *models.ComparisonData) (string, error) {
	if err := s.validateComparison(data); err != nil {
		return "", err
	}
	if data.ID == "" {
		data.ID = uuid.New().String()
	}
	if data.CreatedAt.IsZero() {
		data.CreatedAt = s.now()
	}

	start := time.Now()
	err := s.repo.Save(ctx, data)
	s.observe("save", data.ID, start, err)
	if err != nil {
		return "", err
	}

	s.audit.LogComparisonSaved(data.ID, data.Name, len(data.Scenarios.Configured()), data.CreatedAt)
	return data.ID, nil
}

// GetComparison returns a saved comparison or models.ErrNotFound.
func (s *ComparisonService) GetComparison(ctx context.Context, id string) (*models.ComparisonData, error) {
	start := time.Now()
	comparison, err := s.repo.Get(ctx, id)
	s.observe("get", id, start, err)
	return comparison, err
}

// GetRecentComparisons returns the most recently saved comparisons, newest first.
// Ids whose record has disappeared are skipped.
func (s *ComparisonService) GetRecentComparisons(ctx context.Context) ([]*models.ComparisonData, error) {
	start := time.Now()
	ids, err := s.repo.ListRecentIDs(ctx)
	s.observe("list_recent", "", start, err)
	if err != nil {
		return nil, err
	}
	metrics.UpdateRecentComparisons(len(ids))

	comparisons := make([]*models.ComparisonData, 0, len(ids))
	for _, id := range ids {
		comparison, err := s.GetComparison(ctx, id)
		if errors.Is(err, models.ErrNotFound) {
			s.logger.WithField("comparison_id", id).Debug("Recent comparison no longer stored")
			continue
		}
		if err != nil {
			return nil, err
		}
		comparisons = append(comparisons, comparison)
	}
	return comparisons, nil
}

// DeleteComparison removes a saved comparison.
func (s *ComparisonService) DeleteComparison(ctx context.Context, id string) error {
	start := time.Now()
	err := s.repo.Delete(ctx, id)
	s.observe("delete", id, start, err)
	if err != nil {
		return err
	}

	s.audit.LogComparisonDeleted(id)
	return nil
}

// ClearAllComparisons removes every saved comparison and returns how many were removed.
func (s *ComparisonService) ClearAllComparisons(ctx context.Context) (int, error) {
	start := time.Now()
	removed, err := s.repo.ClearAll(ctx)
	s.observe("clear", "", start, err)
	if err != nil {
		return removed, err
	}

	s.audit.LogComparisonsCleared(removed)
	metrics.UpdateRecentComparisons(0)
	return removed, nil
}

func (s *ComparisonService) observe(operation, id string, start time.Time, err error) {
	metrics.RecordStoreOperation(operation, err, time.Since(start).Seconds())
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		s.audit.LogStoreFailure(operation, id, err)
	}
}
