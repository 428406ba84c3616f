package models

// SubScores are the four normalized criteria, each in [0, 100].
type SubScores struct {
	Profitability float64 `json:"profitability"`
	Liquidity     float64 `json:"liquidity"`
	Security      float64 `json:"security"`
	CashFlow      float64 `json:"cashFlow"`
}

// Get returns the sub-score matching a priority.
func (s SubScores) Get(p Priority) float64 {
	switch p {
	case PriorityProfitability:
		return s.Profitability
	case PriorityLiquidity:
		return s.Liquidity
	case PrioritySecurity:
		return s.Security
	case PriorityCashFlow:
		return s.CashFlow
	default:
		return 0
	}
}

// ScenarioScore is the scored view of one computed scenario.
type ScenarioScore struct {
	ScenarioType   ScenarioType `json:"scenarioType"`
	TotalScore     float64      `json:"totalScore"`
	Scores         SubScores    `json:"scores"`
	AdjustedReturn float64      `json:"adjustedReturn"`
}

// Recommendation is the ranked and explained outcome of a comparison.
type Recommendation struct {
	RecommendedScenario ScenarioType    `json:"recommendedScenario"`
	Scores              []ScenarioScore `json:"scores"`
	Reasoning           []string        `json:"reasoning"`
	Warnings            []string        `json:"warnings"`
	Alternatives        []string        `json:"alternatives"`
}
