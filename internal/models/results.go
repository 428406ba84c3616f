package models

// NoPayback is the payback sentinel for an investment whose average monthly
// cash flow is not positive.
const NoPayback = 999

// PaybackMonths is the number of months needed to recover the initial investment.
type PaybackMonths float64

// PaysBack reports whether the value is a real payback period rather than the NoPayback sentinel.
func (p PaybackMonths) PaysBack() bool {
	return p < NoPayback
}

// SavingsResult is the outcome of a savings account or CDT.
type SavingsResult struct {
	Mode                  SavingsMode `json:"mode"`
	TotalDeposited        float64     `json:"totalDeposited"`
	GrossEarnings         float64     `json:"grossEarnings"`
	FourPerThousandCharge float64     `json:"fourPerThousandCharge"`
	WithholdingAmount     float64     `json:"withholdingAmount"`
	NetEarnings           float64     `json:"netEarnings"`
	FinalAmount           float64     `json:"finalAmount"`
	RealReturn            float64     `json:"realReturn"`
	EffectiveAnnualRate   float64     `json:"effectiveAnnualRate"`
	HorizonDays           float64     `json:"horizonDays"`
}

// FuturePropertyResult is the outcome of saving, buying and renting a property.
type FuturePropertyResult struct {
	SavedAmount            float64       `json:"savedAmount"`
	SavingsEarnings        float64       `json:"savingsEarnings"`
	PurchaseCosts          float64       `json:"purchaseCosts"`
	TotalInitialInvestment float64       `json:"totalInitialInvestment"`
	RentalMonths           int           `json:"rentalMonths"`
	TotalGrossRent         float64       `json:"totalGrossRent"`
	TotalExpenses          float64       `json:"totalExpenses"`
	NetRentalCashFlow      float64       `json:"netRentalCashFlow"`
	AverageMonthlyCashFlow float64       `json:"averageMonthlyCashFlow"`
	PropertyValueAtEnd     float64       `json:"propertyValueAtEnd"`
	TotalReturn            float64       `json:"totalReturn"`
	ROI                    float64       `json:"roi"`
	AnnualizedReturn       float64       `json:"annualizedReturn"`
	PaybackMonths          PaybackMonths `json:"paybackMonths"`
}

// ImmediateRentResult is the outcome of buying a property to rent right away.
type ImmediateRentResult struct {
	DownPayment            float64       `json:"downPayment"`
	LoanAmount             float64       `json:"loanAmount"`
	MonthlyMortgagePayment float64       `json:"monthlyMortgagePayment"`
	TotalMortgagePaid      float64       `json:"totalMortgagePaid"`
	RemainingLoanBalance   float64       `json:"remainingLoanBalance"`
	PurchaseCosts          float64       `json:"purchaseCosts"`
	TotalInitialInvestment float64       `json:"totalInitialInvestment"`
	RentalMonths           int           `json:"rentalMonths"`
	TotalGrossRent         float64       `json:"totalGrossRent"`
	TotalExpenses          float64       `json:"totalExpenses"`
	NetCashFlow            float64       `json:"netCashFlow"`
	MonthlyNetCashFlow     float64       `json:"monthlyNetCashFlow"`
	PropertyValueAtEnd     float64       `json:"propertyValueAtEnd"`
	EquityAtEnd            float64       `json:"equityAtEnd"`
	TotalReturn            float64       `json:"totalReturn"`
	ROI                    float64       `json:"roi"`
	AnnualizedReturn       float64       `json:"annualizedReturn"`
	CashOnCashReturn       float64       `json:"cashOnCashReturn"`
	PaybackMonths          PaybackMonths `json:"paybackMonths"`
}

// YearProjection is one row of the existing-property yearly breakdown.
type YearProjection struct {
	Year               int     `json:"year"`
	GrossRent          float64 `json:"grossRent"`
	Expenses           float64 `json:"expenses"`
	NetCashFlow        float64 `json:"netCashFlow"`
	CumulativeCashFlow float64 `json:"cumulativeCashFlow"`
	PropertyValue      float64 `json:"propertyValue"`
}

// MaintainOption projects keeping and renting the property.
type MaintainOption struct {
	TotalGrossRent     float64          `json:"totalGrossRent"`
	TotalExpenses      float64          `json:"totalExpenses"`
	TotalNetCashFlow   float64          `json:"totalNetCashFlow"`
	PropertyValueAtEnd float64          `json:"propertyValueAtEnd"`
	CapitalGain        float64          `json:"capitalGain"`
	TotalReturn        float64          `json:"totalReturn"`
	ROI                float64          `json:"roi"`
	AnnualizedReturn   float64          `json:"annualizedReturn"`
	CashOnCashReturn   float64          `json:"cashOnCashReturn"`
	YearlyBreakdown    []YearProjection `json:"yearlyBreakdown"`
}

// SellOption projects selling the property and rolling the proceeds through CDTs.
type SellOption struct {
	SaleValue        float64 `json:"saleValue"`
	SaleCosts        float64 `json:"saleCosts"`
	NetProceeds      float64 `json:"netProceeds"`
	WholeTerms       int     `json:"wholeTerms"`
	RemainderDays    int     `json:"remainderDays"`
	TotalInterest    float64 `json:"totalInterest"`
	TotalWithholding float64 `json:"totalWithholding"`
	FourPerThousand  float64 `json:"fourPerThousand"`
	FinalAmount      float64 `json:"finalAmount"`
	TotalReturn      float64 `json:"totalReturn"`
	ROI              float64 `json:"roi"`
	AnnualizedReturn float64 `json:"annualizedReturn"`
}

// SaleComparison contrasts keeping against selling.
type SaleComparison struct {
	MaintainBetter    bool    `json:"maintainBetter"`
	Difference        float64 `json:"difference"`
	DifferencePercent float64 `json:"differencePercent"`
	Recommendation    string  `json:"recommendation"`
}

// ExistingPropertyResult is the outcome of an owned property projection.
// Sell and Comparison are only set when the sale comparison was requested.
type ExistingPropertyResult struct {
	Maintain   MaintainOption  `json:"maintain"`
	Sell       *SellOption     `json:"sell,omitempty"`
	Comparison *SaleComparison `json:"comparison,omitempty"`
}

// ScenarioResults holds one result per computed scenario.
type ScenarioResults struct {
	Savings          *SavingsResult          `json:"SAVINGS,omitempty"`
	FutureProperty   *FuturePropertyResult   `json:"FUTURE_PROPERTY,omitempty"`
	ImmediateRent    *ImmediateRentResult    `json:"IMMEDIATE_RENT,omitempty"`
	ExistingProperty *ExistingPropertyResult `json:"EXISTING_PROPERTY,omitempty"`
}

// Computed returns the scenario types that have a result, in display order.
func (r ScenarioResults) Computed() []ScenarioType {
	types := make([]ScenarioType, 0, len(AllScenarioTypes))
	if r.Savings != nil {
		types = append(types, ScenarioSavings)
	}
	if r.FutureProperty != nil {
		types = append(types, ScenarioFutureProperty)
	}
	if r.ImmediateRent != nil {
		types = append(types, ScenarioImmediateRent)
	}
	if r.ExistingProperty != nil {
		types = append(types, ScenarioExistingProperty)
	}
	return types
}
