// Package scoring maps computed scenario results onto four 0-100 criteria and
// weighs them according to the user's risk profile and priorities.
package scoring

import (
	"math"

	"github.com/juliocesarjcrs/investment-compare/internal/finance"
	"github.com/juliocesarjcrs/investment-compare/internal/models"
)

const (
	// PriorityBoostStep is added per rank step to a prioritized criterion's weight.
	PriorityBoostStep = 0.05

	// PriorityBoostRanks is the number of ranks that receive a boost.
	PriorityBoostRanks = 3
)

// calibration holds the fixed per-scenario constants.
type calibration struct {
	profitabilityCap float64
	liquidity        float64
	security         float64
	cashFlowScale    float64
}

var calibrations = map[models.ScenarioType]calibration{
	models.ScenarioSavings:          {profitabilityCap: 12, liquidity: 100, security: 95, cashFlowScale: 5},
	models.ScenarioFutureProperty:   {profitabilityCap: 15, liquidity: 25, security: 60, cashFlowScale: 10},
	models.ScenarioImmediateRent:    {profitabilityCap: 20, liquidity: 30, security: 65, cashFlowScale: 10},
	models.ScenarioExistingProperty: {profitabilityCap: 15, liquidity: 40, security: 70, cashFlowScale: 10},
}

const (
	// termDepositLiquidity replaces the savings liquidity when the money is locked in a CDT.
	termDepositLiquidity = 85

	// leveragePenalty is subtracted from immediate-rent security per unit of loan-to-price.
	leveragePenalty = 20
)

var baseWeights = map[models.RiskProfile]models.SubScores{
	models.RiskConservative: {Profitability: 0.15, Liquidity: 0.30, Security: 0.40, CashFlow: 0.15},
	models.RiskModerate:     {Profitability: 0.30, Liquidity: 0.20, Security: 0.25, CashFlow: 0.25},
	models.RiskAggressive:   {Profitability: 0.45, Liquidity: 0.10, Security: 0.10, CashFlow: 0.35},
}

// Weights returns the criteria weights for a profile. They always sum to 1.
// Unknown risk profiles fall back to the moderate table.
func Weights(profile models.UserProfile) models.SubScores {
	weights, ok := baseWeights[profile.RiskProfile]
	if !ok {
		weights = baseWeights[models.RiskModerate]
	}

	seen := make(map[models.Priority]bool, len(profile.Priorities))
	for rank, priority := range profile.Priorities {
		if seen[priority] {
			continue
		}
		seen[priority] = true

		boost := math.Max(0, float64(PriorityBoostRanks-rank)) * PriorityBoostStep
		switch priority {
		case models.PriorityProfitability:
			weights.Profitability += boost
		case models.PriorityLiquidity:
			weights.Liquidity += boost
		case models.PrioritySecurity:
			weights.Security += boost
		case models.PriorityCashFlow:
			weights.CashFlow += boost
		}
	}

	total := weights.Profitability + weights.Liquidity + weights.Security + weights.CashFlow
	return models.SubScores{
		Profitability: weights.Profitability / total,
		Liquidity:     weights.Liquidity / total,
		Security:      weights.Security / total,
		CashFlow:      weights.CashFlow / total,
	}
}

// ScoreScenarios scores every computed scenario in display order.
func ScoreScenarios(profile models.UserProfile, results models.ScenarioResults) []models.ScenarioScore {
	weights := Weights(profile)
	computed := results.Computed()

	scores := make([]models.ScenarioScore, 0, len(computed))
	for _, scenarioType := range computed {
		sub, annualized := subScores(scenarioType, results)
		scores = append(scores, models.ScenarioScore{
			ScenarioType:   scenarioType,
			TotalScore:     totalScore(sub, weights),
			Scores:         sub,
			AdjustedReturn: annualized,
		})
	}
	return scores
}

func totalScore(sub, weights models.SubScores) float64 {
	return sub.Profitability*weights.Profitability +
		sub.Liquidity*weights.Liquidity +
		sub.Security*weights.Security +
		sub.CashFlow*weights.CashFlow
}

// subScores also returns the annualized return the profitability score was derived from.
func subScores(scenarioType models.ScenarioType, results models.ScenarioResults) (models.SubScores, float64) {
	cal := calibrations[scenarioType]
	liquidity := cal.liquidity
	security := cal.security

	var annualized, cashFlowYield float64
	switch scenarioType {
	case models.ScenarioSavings:
		r := results.Savings
		annualized = r.EffectiveAnnualRate
		cashFlowYield = r.EffectiveAnnualRate
		if r.Mode == models.SavingsModeCDT {
			liquidity = termDepositLiquidity
		}
	case models.ScenarioFutureProperty:
		r := results.FutureProperty
		annualized = r.AnnualizedReturn
		cashFlowYield = percent(finance.Ratio(r.AverageMonthlyCashFlow*12, r.TotalInitialInvestment))
	case models.ScenarioImmediateRent:
		r := results.ImmediateRent
		annualized = r.AnnualizedReturn
		cashFlowYield = r.CashOnCashReturn
		loanRatio := finance.Ratio(r.LoanAmount, r.LoanAmount+r.DownPayment)
		security -= leveragePenalty * loanRatio
	case models.ScenarioExistingProperty:
		r := results.ExistingProperty
		annualized = r.Maintain.AnnualizedReturn
		cashFlowYield = r.Maintain.CashOnCashReturn
	}

	return models.SubScores{
		Profitability: clamp(annualized / cal.profitabilityCap * 100),
		Liquidity:     clamp(liquidity),
		Security:      clamp(security),
		CashFlow:      clamp(cashFlowYield * cal.cashFlowScale),
	}, annualized
}

func percent(fraction float64) float64 {
	return fraction * 100
}

// clamp bounds a sub-score to [0, 100]; NaN scores as 0.
func clamp(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	return math.Min(100, math.Max(0, score))
}
