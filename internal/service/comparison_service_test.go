package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/juliocesarjcrs/investment-compare/internal/calculator"
	"github.com/juliocesarjcrs/investment-compare/internal/config"
	"github.com/juliocesarjcrs/investment-compare/internal/models"
	"github.com/juliocesarjcrs/investment-compare/internal/repository"
)

// MockComparisonRepository mocks the comparison repository
type MockComparisonRepository struct {
	mock.Mock
}

func (m *MockComparisonRepository) Save(ctx context.Context, comparison *models.ComparisonData) error {
	return m.Called(ctx, comparison).Error(0)
}

func (m *MockComparisonRepository) Get(ctx context.Context, id string) (*models.ComparisonData, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ComparisonData), args.Error(1)
}

func (m *MockComparisonRepository) ListRecentIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *MockComparisonRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockComparisonRepository) ClearAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestService() *ComparisonService {
	store := repository.NewComparisonStore(repository.NewMemoryKV(), 0)
	return NewComparisonService(store, DefaultTaxDefaults(), testLogger())
}

func testComparison() models.ComparisonData {
	savings := models.SavingsConfig{
		Mode:             models.SavingsModeRecurring,
		InitialCapital:   20000000,
		AnnualRate:       8.25,
		HorizonMonths:    12,
		ApplyWithholding: true,
	}
	rent := models.ImmediateRentConfig{
		PropertyPrice:      250000000,
		DownPaymentPercent: 30,
		MortgageRate:       12.5,
		MortgageTermYears:  20,
		PurchaseCosts:      models.PurchaseCosts{NotaryPercent: 1, RegistrationPercent: 1.5},
		Rental: models.RentalTerms{
			MonthlyRent:            1800000,
			VacancyMonthsPerYear:   1,
			AdministrationFee:      200000,
			AdministrationIncrease: 5,
			MaintenancePercent:     1,
			PropertyTaxPercent:     0.6,
			AnnualAppreciationRate: 5,
		},
		HorizonMonths: 120,
	}
	return models.ComparisonData{
		Name: "CDT vs arriendo",
		UserProfile: models.UserProfile{
			RiskProfile: models.RiskModerate,
			Priorities:  []models.Priority{models.PriorityProfitability},
		},
		Scenarios: models.Scenarios{Savings: &savings, ImmediateRent: &rent},
	}
}

func TestEvaluate(t *testing.T) {
	svc := newTestService()

	evaluation, err := svc.Evaluate(context.Background(), testComparison())

	require.NoError(t, err)
	require.NotNil(t, evaluation.Results.Savings)
	require.NotNil(t, evaluation.Results.ImmediateRent)
	expected, err := calculator.CalculateAll(evaluation.Comparison.Scenarios)
	require.NoError(t, err)
	assert.Equal(t, expected, evaluation.Results)
	rec := evaluation.Recommendation
	require.Len(t, rec.Scores, 2)
	assert.Equal(t, rec.Scores[0].ScenarioType, rec.RecommendedScenario)
	assert.GreaterOrEqual(t, rec.Scores[0].TotalScore, rec.Scores[1].TotalScore)
	assert.False(t, evaluation.EvaluatedAt.IsZero())
}

func TestEvaluateAppliesTaxDefaultsWithoutMutatingInput(t *testing.T) {
	svc := NewComparisonService(
		repository.NewComparisonStore(repository.NewMemoryKV(), 0),
		TaxDefaultsFromConfig(config.TaxConfig{UVTValue: 47065, WithholdingRate: 7, InflationRate: 5}),
		testLogger(),
	)
	data := testComparison()

	evaluation, err := svc.Evaluate(context.Background(), data)

	require.NoError(t, err)
	assert.Equal(t, 0.0, data.Scenarios.Savings.UVTValue)
	assert.Equal(t, 47065.0, evaluation.Comparison.Scenarios.Savings.UVTValue)
	assert.Equal(t, 5.0, evaluation.Comparison.Scenarios.Savings.InflationRate)
	assert.InDelta(t, evaluation.Results.Savings.GrossEarnings*0.07, evaluation.Results.Savings.WithholdingAmount, 1e-6)
	assert.Less(t, evaluation.Results.Savings.RealReturn, evaluation.Results.Savings.EffectiveAnnualRate)
}

func TestEvaluateRejectsInvalidComparisons(t *testing.T) {
	svc := newTestService()

	t.Run("no scenarios", func(t *testing.T) {
		data := testComparison()
		data.Scenarios = models.Scenarios{}

		_, err := svc.Evaluate(context.Background(), data)

		assert.ErrorIs(t, err, models.ErrNoScenarios)
	})

	t.Run("unknown risk profile", func(t *testing.T) {
		data := testComparison()
		data.UserProfile.RiskProfile = "reckless"

		_, err := svc.Evaluate(context.Background(), data)

		assert.ErrorIs(t, err, models.ErrInvalidComparison)
	})

	t.Run("unknown priority", func(t *testing.T) {
		data := testComparison()
		data.UserProfile.Priorities = []models.Priority{"fame"}

		_, err := svc.Evaluate(context.Background(), data)

		assert.ErrorIs(t, err, models.ErrInvalidComparison)
	})

	t.Run("duplicate priorities", func(t *testing.T) {
		data := testComparison()
		data.UserProfile.Priorities = []models.Priority{models.PriorityLiquidity, models.PriorityLiquidity}

		_, err := svc.Evaluate(context.Background(), data)

		assert.ErrorIs(t, err, models.ErrInvalidComparison)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := svc.Evaluate(ctx, testComparison())

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSaveAndGetComparison(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	fixed := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	data := testComparison()

	id, err := svc.SaveComparison(ctx, &data)

	require.NoError(t, err)
	_, parseErr := uuid.Parse(id)
	assert.NoError(t, parseErr)
	assert.Equal(t, id, data.ID)
	assert.Equal(t, fixed, data.CreatedAt)

	loaded, err := svc.GetComparison(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, &data, loaded)
}

func TestSaveComparisonKeepsExistingID(t *testing.T) {
	svc := newTestService()
	data := testComparison()
	data.ID = "mi-comparacion"

	id, err := svc.SaveComparison(context.Background(), &data)

	require.NoError(t, err)
	assert.Equal(t, "mi-comparacion", id)
}

func TestGetRecentComparisonsSkipsVanishedRecords(t *testing.T) {
	ctx := context.Background()
	repo := new(MockComparisonRepository)
	svc := NewComparisonService(repo, DefaultTaxDefaults(), testLogger())
	kept := testComparison()
	kept.ID = "b"

	repo.On("ListRecentIDs", ctx).Return([]string{"a", "b"}, nil)
	repo.On("Get", ctx, "a").Return(nil, models.ErrNotFound)
	repo.On("Get", ctx, "b").Return(&kept, nil)

	comparisons, err := svc.GetRecentComparisons(ctx)

	require.NoError(t, err)
	require.Len(t, comparisons, 1)
	assert.Equal(t, "b", comparisons[0].ID)
	repo.AssertExpectations(t)
}

func TestGetRecentComparisonsNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	for _, id := range []string{"uno", "dos", "tres"} {
		data := testComparison()
		data.ID = id
		_, err := svc.SaveComparison(ctx, &data)
		require.NoError(t, err)
	}

	comparisons, err := svc.GetRecentComparisons(ctx)

	require.NoError(t, err)
	require.Len(t, comparisons, 3)
	assert.Equal(t, "tres", comparisons[0].ID)
	assert.Equal(t, "uno", comparisons[2].ID)
}

func TestDeleteAndClearComparisons(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	var ids []string
	for i := 0; i < 3; i++ {
		data := testComparison()
		id, err := svc.SaveComparison(ctx, &data)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	require.NoError(t, svc.DeleteComparison(ctx, ids[0]))
	_, err := svc.GetComparison(ctx, ids[0])
	assert.ErrorIs(t, err, models.ErrNotFound)

	removed, err := svc.ClearAllComparisons(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	recent, err := svc.GetRecentComparisons(ctx)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestStoreFailuresPropagate(t *testing.T) {
	ctx := context.Background()
	storageErr := errors.New("redis: connection refused")
	repo := new(MockComparisonRepository)
	svc := NewComparisonService(repo, DefaultTaxDefaults(), testLogger())
	data := testComparison()

	repo.On("Save", ctx, mock.AnythingOfType("*models.ComparisonData")).Return(storageErr)
	repo.On("ListRecentIDs", ctx).Return(nil, storageErr)
	repo.On("Delete", ctx, "x").Return(storageErr)
	repo.On("ClearAll", ctx).Return(0, storageErr)

	_, err := svc.SaveComparison(ctx, &data)
	assert.ErrorIs(t, err, storageErr)
	_, err = svc.GetRecentComparisons(ctx)
	assert.ErrorIs(t, err, storageErr)
	assert.ErrorIs(t, svc.DeleteComparison(ctx, "x"), storageErr)
	_, err = svc.ClearAllComparisons(ctx)
	assert.ErrorIs(t, err, storageErr)
}
