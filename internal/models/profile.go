package models

// RiskProfile is the user's declared tolerance for risk.
type RiskProfile string

const (
	RiskConservative RiskProfile = "conservative"
	RiskModerate     RiskProfile = "moderate"
	RiskAggressive   RiskProfile = "aggressive"
)

// Priority is one of the four criteria a scenario is scored on.
type Priority string

const (
	PriorityProfitability Priority = "profitability"
	PriorityLiquidity     Priority = "liquidity"
	PrioritySecurity      Priority = "security"
	PriorityCashFlow      Priority = "cashFlow"
)

// AllPriorities lists the criteria in their canonical order.
var AllPriorities = []Priority{
	PriorityProfitability,
	PriorityLiquidity,
	PrioritySecurity,
	PriorityCashFlow,
}

// TimeHorizon is descriptive only; it never changes a calculation.
type TimeHorizon string

const (
	HorizonShort  TimeHorizon = "short"
	HorizonMedium TimeHorizon = "medium"
	HorizonLong   TimeHorizon = "long"
)

// UserProfile captures who the comparison is being tailored to.
// Priorities are ordered most-important first.
type UserProfile struct {
	RiskProfile RiskProfile `json:"riskProfile" yaml:"riskProfile" validate:"required,oneof=conservative moderate aggressive"`
	Priorities  []Priority  `json:"priorities" yaml:"priorities" validate:"max=4,unique,dive,oneof=profitability liquidity security cashFlow"`
	TimeHorizon TimeHorizon `json:"timeHorizon,omitempty" yaml:"timeHorizon,omitempty" validate:"omitempty,oneof=short medium long"`
}

// HasPriority reports whether p appears in the profile's priorities.
func (u UserProfile) HasPriority(p Priority) bool {
	return u.PriorityRank(p) >= 0
}

// PriorityRank returns the zero-based rank of p, or -1 when absent.
func (u UserProfile) PriorityRank(p Priority) int {
	for i, candidate := range u.Priorities {
		if candidate == p {
			return i
		}
	}
	return -1
}
