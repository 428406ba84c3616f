// Package calculator maps each scenario configuration to its result record.
// Every function here is pure and safe to call concurrently.
package calculator

import (
	"fmt"

	"github.com/juliocesarjcrs/investment-compare/internal/models"
)

// Calculate runs the calculator for a single configured scenario type.
func Calculate(scenarioType models.ScenarioType, scenarios models.Scenarios, results *models.ScenarioResults) error {
	switch scenarioType {
	case models.ScenarioSavings:
		if scenarios.Savings == nil {
			return nil
		}
		result := CalculateSavingsScenario(*scenarios.Savings)
		results.Savings = &result
	case models.ScenarioFutureProperty:
		if scenarios.FutureProperty == nil {
			return nil
		}
		result := CalculateFuturePropertyScenario(*scenarios.FutureProperty)
		results.FutureProperty = &result
	case models.ScenarioImmediateRent:
		if scenarios.ImmediateRent == nil {
			return nil
		}
		result := CalculateImmediateRentScenario(*scenarios.ImmediateRent)
		results.ImmediateRent = &result
	case models.ScenarioExistingProperty:
		if scenarios.ExistingProperty == nil {
			return nil
		}
		result := CalculateExistingPropertyScenario(*scenarios.ExistingProperty)
		results.ExistingProperty = &result
	default:
		return fmt.Errorf("%w: %s", models.ErrUnknownScenario, scenarioType)
	}
	return nil
}

// CalculateAll computes every configured scenario independently.
func CalculateAll(scenarios models.Scenarios) (models.ScenarioResults, error) {
	var results models.ScenarioResults
	for _, scenarioType := range scenarios.Configured() {
		if err := Calculate(scenarioType, scenarios, &results); err != nil {
			return models.ScenarioResults{}, fmt.Errorf("failed to calculate %s: %w", scenarioType, err)
		}
	}
	return results, nil
}
