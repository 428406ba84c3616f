package logger

import (
	"github.com/sirupsen/logrus"
)

// ComparisonLogger provides dedicated logging for comparison evaluation.
type ComparisonLogger struct {
	*logrus.Entry
}

// NewComparisonLogger creates a new comparison logger.
func NewComparisonLogger(baseLogger *logrus.Logger) *ComparisonLogger {
	return &ComparisonLogger{
		Entry: baseLogger.WithField("component", "comparison"),
	}
}

// LogScenarioCalculated logs the headline figures of one computed scenario.
func (cl *ComparisonLogger) LogScenarioCalculated(comparisonID, scenarioType string, annualizedReturn, totalReturn float64) {
	cl.WithFields(logrus.Fields{
		"comparison_id":     comparisonID,
		"scenario_type":     scenarioType,
		"annualized_return": annualizedReturn,
		"total_return":      totalReturn,
	}).Debug("Scenario calculated")
}

// LogRecommendation logs the outcome of an evaluation.
func (cl *ComparisonLogger) LogRecommendation(comparisonID, riskProfile, recommended string, totalScore float64, scenarios, warnings int, durationMs float64) {
	cl.WithFields(logrus.Fields{
		"comparison_id":        comparisonID,
		"risk_profile":         riskProfile,
		"recommended_scenario": recommended,
		"total_score":          totalScore,
		"scenarios_compared":   scenarios,
		"warnings":             warnings,
		"duration_ms":          durationMs,
	}).Info("Recommendation generated")
}

// LogEvaluationFailed logs an evaluation that could not produce a recommendation.
func (cl *ComparisonLogger) LogEvaluationFailed(comparisonID string, err error) {
	cl.WithFields(logrus.Fields{
		"comparison_id": comparisonID,
	}).WithError(err).Warn("Comparison evaluation failed")
}
