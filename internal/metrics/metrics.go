// Package metrics provides the centralized Prometheus registry for the comparison engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "invest_compare"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	EvaluationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "evaluations_total",
		Help:      "Total number of comparison evaluations by outcome",
	}, []string{"status"})
	ScenarioCalculationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scenario_calculations_total",
		Help:      "Total number of scenario calculations by scenario type",
	}, []string{"scenario_type"})
	RecommendationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommendations_total",
		Help:      "Total number of recommendations by winning scenario and risk profile",
	}, []string{"scenario_type", "risk_profile"})
	RecommendationWarningsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommendation_warnings_total",
		Help:      "Total number of warnings attached to recommendations",
	})
)

// Histogram metrics
var (
	ScenarioTotalScore = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "scenario_total_score",
		Help:      "Weighted total score per scenario type",
		Buckets:   prometheus.LinearBuckets(10, 10, 10),
	}, []string{"scenario_type"})
	EvaluationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "evaluation_duration_seconds",
		Help:      "Duration of a full comparison evaluation in seconds",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(EvaluationsTotal)
		registry.MustRegister(ScenarioCalculationsTotal)
		registry.MustRegister(RecommendationsTotal)
		registry.MustRegister(RecommendationWarningsTotal)

		registry.MustRegister(ScenarioTotalScore)
		registry.MustRegister(EvaluationDuration)

		registry.MustRegister(StoreOperationsTotal)
		registry.MustRegister(StoreOperationDuration)
		registry.MustRegister(StoredComparisons)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordEvaluation records a finished evaluation.
func RecordEvaluation(status string, durationSeconds float64) {
	EvaluationsTotal.WithLabelValues(status).Inc()
	EvaluationDuration.Observe(durationSeconds)
}

// RecordScenarioCalculation records one scenario calculation.
func RecordScenarioCalculation(scenarioType string) {
	ScenarioCalculationsTotal.WithLabelValues(scenarioType).Inc()
}

// RecordScenarioScore records a scenario's weighted total score.
func RecordScenarioScore(scenarioType string, score float64) {
	ScenarioTotalScore.WithLabelValues(scenarioType).Observe(score)
}

// RecordRecommendation records the winning scenario and how many warnings it carried.
func RecordRecommendation(scenarioType, riskProfile string, warnings int) {
	RecommendationsTotal.WithLabelValues(scenarioType, riskProfile).Inc()
	RecommendationWarningsTotal.Add(float64(warnings))
}
