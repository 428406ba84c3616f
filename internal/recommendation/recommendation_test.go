package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juliocesarjcrs/investment-compare/internal/calculator"
	"github.com/juliocesarjcrs/investment-compare/internal/models"
)

func score(t models.ScenarioType, total float64, sub models.SubScores) models.ScenarioScore {
	return models.ScenarioScore{ScenarioType: t, TotalScore: total, Scores: sub}
}

func TestFromScoresSortsDescendingAndPicksFirst(t *testing.T) {
	scores := []models.ScenarioScore{
		score(models.ScenarioSavings, 55, models.SubScores{}),
		score(models.ScenarioImmediateRent, 72, models.SubScores{}),
		score(models.ScenarioFutureProperty, 61, models.SubScores{}),
	}

	rec, err := FromScores(models.UserProfile{RiskProfile: models.RiskModerate}, scores)

	require.NoError(t, err)
	require.Len(t, rec.Scores, 3)
	assert.Equal(t, rec.Scores[0].ScenarioType, rec.RecommendedScenario)
	assert.Equal(t, models.ScenarioImmediateRent, rec.RecommendedScenario)
	for i := 1; i < len(rec.Scores); i++ {
		assert.GreaterOrEqual(t, rec.Scores[i-1].TotalScore, rec.Scores[i].TotalScore)
	}
	assert.Equal(t, models.ScenarioSavings, scores[0].ScenarioType, "input must not be reordered")
}

func TestFromScoresKeepsOrderOnTies(t *testing.T) {
	scores := []models.ScenarioScore{
		score(models.ScenarioFutureProperty, 50, models.SubScores{}),
		score(models.ScenarioSavings, 50, models.SubScores{}),
	}

	rec, err := FromScores(models.UserProfile{RiskProfile: models.RiskModerate}, scores)

	require.NoError(t, err)
	assert.Equal(t, models.ScenarioFutureProperty, rec.RecommendedScenario)
}

func TestFromScoresEmpty(t *testing.T) {
	rec, err := FromScores(models.UserProfile{RiskProfile: models.RiskModerate}, nil)

	assert.Nil(t, rec)
	assert.ErrorIs(t, err, models.ErrNoScenarios)
}

func TestGenerateWithoutResults(t *testing.T) {
	_, err := Generate(models.ComparisonData{UserProfile: models.UserProfile{RiskProfile: models.RiskModerate}}, models.ScenarioResults{})

	assert.ErrorIs(t, err, models.ErrNoScenarios)
}

func TestReasoning(t *testing.T) {
	scores := []models.ScenarioScore{
		score(models.ScenarioSavings, 80.3, models.SubScores{Profitability: 40, Liquidity: 100, Security: 95, CashFlow: 20}),
		score(models.ScenarioFutureProperty, 60, models.SubScores{}),
	}

	rec, err := FromScores(models.UserProfile{RiskProfile: models.RiskConservative}, scores)

	require.NoError(t, err)
	require.Len(t, rec.Reasoning, 4)
	assert.Contains(t, rec.Reasoning[0], "80.3")
	assert.Contains(t, rec.Reasoning[0], "20.3")
	assert.Contains(t, rec.Reasoning[1], "liquidez")
	assert.Contains(t, rec.Reasoning[2], "seguridad")
	assert.Contains(t, rec.Reasoning[3], "conservador")
}

func TestSavingsWinnerHasNoWarnings(t *testing.T) {
	scores := []models.ScenarioScore{
		score(models.ScenarioSavings, 80, models.SubScores{Profitability: 40, Liquidity: 100, Security: 95, CashFlow: 20}),
	}

	rec, err := FromScores(models.UserProfile{RiskProfile: models.RiskModerate}, scores)

	require.NoError(t, err)
	assert.Empty(t, rec.Warnings)
	assert.Empty(t, rec.Alternatives)
}

func TestWarnings(t *testing.T) {
	tests := []struct {
		name       string
		winner     models.ScenarioScore
		priorities []models.Priority
		want       int
	}{
		{
			name:   "liquid property only carries the real estate warning",
			winner: score(models.ScenarioFutureProperty, 70, models.SubScores{Liquidity: 45, Security: 60, CashFlow: 10}),
			want:   1,
		},
		{
			name:   "illiquid and risky property",
			winner: score(models.ScenarioImmediateRent, 70, models.SubScores{Liquidity: 30, Security: 45, CashFlow: 50}),
			want:   3,
		},
		{
			name:       "low cash flow only warns when prioritized",
			winner:     score(models.ScenarioFutureProperty, 70, models.SubScores{Liquidity: 45, Security: 60, CashFlow: 10}),
			priorities: []models.Priority{models.PriorityCashFlow},
			want:       2,
		},
		{
			name:   "existing property adds management and liquidity notices",
			winner: score(models.ScenarioExistingProperty, 70, models.SubScores{Liquidity: 40, Security: 70, CashFlow: 50}),
			want:   3,
		},
		{
			name:   "existing property with liquidity at fifty skips the liquidity notice",
			winner: score(models.ScenarioExistingProperty, 70, models.SubScores{Liquidity: 50, Security: 70, CashFlow: 50}),
			want:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := models.UserProfile{RiskProfile: models.RiskModerate, Priorities: tt.priorities}

			rec, err := FromScores(profile, []models.ScenarioScore{tt.winner})

			require.NoError(t, err)
			assert.Len(t, rec.Warnings, tt.want)
		})
	}
}

func TestAlternativesCiteRunnerUp(t *testing.T) {
	scores := []models.ScenarioScore{
		score(models.ScenarioSavings, 70, models.SubScores{}),
		score(models.ScenarioExistingProperty, 64.5, models.SubScores{}),
	}

	rec, err := FromScores(models.UserProfile{RiskProfile: models.RiskModerate}, scores)

	require.NoError(t, err)
	require.Len(t, rec.Alternatives, 2)
	assert.Contains(t, rec.Alternatives[0], models.ScenarioExistingProperty.DisplayName())
	assert.Contains(t, rec.Alternatives[0], "64.5")
	assert.Contains(t, rec.Alternatives[1], "diversificar")
}

func TestGenerateEndToEnd(t *testing.T) {
	savings := models.SavingsConfig{
		Mode:             models.SavingsModeCDT,
		InitialCapital:   100000000,
		AnnualRate:       10,
		TermDays:         360,
		ApplyWithholding: true,
	}
	existing := models.ExistingPropertyConfig{
		CurrentValue:        100000000,
		MonthlyRent:         700000,
		MonthsRentedPerYear: 11,
		MaintenancePercent:  1,
		HorizonYears:        5,
	}
	data := models.ComparisonData{
		UserProfile: models.UserProfile{
			RiskProfile: models.RiskConservative,
			Priorities:  []models.Priority{models.PrioritySecurity, models.PriorityLiquidity},
		},
		Scenarios: models.Scenarios{Savings: &savings, ExistingProperty: &existing},
	}

	results, err := calculator.CalculateAll(data.Scenarios)
	require.NoError(t, err)

	rec, err := Generate(data, results)

	require.NoError(t, err)
	assert.Equal(t, models.ScenarioSavings, rec.RecommendedScenario)
	assert.Len(t, rec.Scores, 2)
	assert.NotEmpty(t, rec.Alternatives)
}
