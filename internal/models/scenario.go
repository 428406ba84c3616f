package models

// ScenarioType identifies one of the mutually exclusive ways to deploy capital.
type ScenarioType string

const (
	ScenarioSavings          ScenarioType = "SAVINGS"
	ScenarioFutureProperty   ScenarioType = "FUTURE_PROPERTY"
	ScenarioImmediateRent    ScenarioType = "IMMEDIATE_RENT"
	ScenarioExistingProperty ScenarioType = "EXISTING_PROPERTY"
)

// AllScenarioTypes lists every scenario type in display order.
var AllScenarioTypes = []ScenarioType{
	ScenarioSavings,
	ScenarioFutureProperty,
	ScenarioImmediateRent,
	ScenarioExistingProperty,
}

// DisplayName returns the user-facing name of the scenario.
func (s ScenarioType) DisplayName() string {
	switch s {
	case ScenarioSavings:
		return "Ahorro / CDT"
	case ScenarioFutureProperty:
		return "Comprar propiedad a futuro"
	case ScenarioImmediateRent:
		return "Comprar para arrendar ya"
	case ScenarioExistingProperty:
		return "Propiedad existente"
	default:
		return string(s)
	}
}

// IsRealEstate reports whether the scenario ties capital to a property.
func (s ScenarioType) IsRealEstate() bool {
	return s != ScenarioSavings
}

// SavingsMode discriminates recurring savings from a fixed-term deposit.
type SavingsMode string

const (
	SavingsModeRecurring SavingsMode = "savings"
	SavingsModeCDT       SavingsMode = "cdt"
)

// SavingsConfig holds the inputs for a savings account or a CDT.
type SavingsConfig struct {
	Mode                 SavingsMode `json:"mode" yaml:"mode"`
	InitialCapital       float64     `json:"initialCapital" yaml:"initialCapital"`
	MonthlyContribution  float64     `json:"monthlyContribution" yaml:"monthlyContribution"`
	AnnualRate           float64     `json:"annualRate" yaml:"annualRate"`
	HorizonMonths        int         `json:"horizonMonths" yaml:"horizonMonths"`
	TermDays             int         `json:"termDays" yaml:"termDays"`
	ApplyFourPerThousand bool        `json:"applyFourPerThousand" yaml:"applyFourPerThousand"`
	ApplyWithholding     bool        `json:"applyWithholding" yaml:"applyWithholding"`
	WithholdingRate      float64     `json:"withholdingRate" yaml:"withholdingRate"`
	UVTValue             float64     `json:"uvtValue" yaml:"uvtValue"`
	InflationRate        float64     `json:"inflationRate" yaml:"inflationRate"`
}

// PurchaseCosts are the one-time percentages charged on a property's price.
type PurchaseCosts struct {
	NotaryPercent       float64 `json:"notaryPercent" yaml:"notaryPercent"`
	RegistrationPercent float64 `json:"registrationPercent" yaml:"registrationPercent"`
	TaxPercent          float64 `json:"taxPercent" yaml:"taxPercent"`
	VATPercent          float64 `json:"vatPercent" yaml:"vatPercent"`
}

// TotalPercent sums every purchase cost percentage.
func (p PurchaseCosts) TotalPercent() float64 {
	return p.NotaryPercent + p.RegistrationPercent + p.TaxPercent + p.VATPercent
}

// RentalTerms describe the operating side of a rented property.
type RentalTerms struct {
	MonthlyRent            float64 `json:"monthlyRent" yaml:"monthlyRent"`
	VacancyMonthsPerYear   float64 `json:"vacancyMonthsPerYear" yaml:"vacancyMonthsPerYear"`
	AdministrationFee      float64 `json:"administrationFee" yaml:"administrationFee"`
	AdministrationIncrease float64 `json:"administrationIncrease" yaml:"administrationIncrease"`
	MaintenancePercent     float64 `json:"maintenancePercent" yaml:"maintenancePercent"`
	PropertyTaxPercent     float64 `json:"propertyTaxPercent" yaml:"propertyTaxPercent"`
	IncomeTaxRate          float64 `json:"incomeTaxRate" yaml:"incomeTaxRate"`
	AnnualAppreciationRate float64 `json:"annualAppreciationRate" yaml:"annualAppreciationRate"`
	RefurbishmentCost      float64 `json:"refurbishmentCost" yaml:"refurbishmentCost"`
	RefurbishmentMonths    int     `json:"refurbishmentMonths" yaml:"refurbishmentMonths"`
}

// FuturePropertyConfig saves a down payment first and buys later.
type FuturePropertyConfig struct {
	InitialCapital float64       `json:"initialCapital" yaml:"initialCapital"`
	MonthlySaving  float64       `json:"monthlySaving" yaml:"monthlySaving"`
	SavingsRate    float64       `json:"savingsRate" yaml:"savingsRate"`
	SavingMonths   int           `json:"savingMonths" yaml:"savingMonths"`
	PropertyPrice  float64       `json:"propertyPrice" yaml:"propertyPrice"`
	PurchaseCosts  PurchaseCosts `json:"purchaseCosts" yaml:"purchaseCosts"`
	Rental         RentalTerms   `json:"rental" yaml:"rental"`
	HorizonMonths  int           `json:"horizonMonths" yaml:"horizonMonths"`
}

// ImmediateRentConfig buys a property now, optionally with a mortgage.
type ImmediateRentConfig struct {
	PropertyPrice      float64       `json:"propertyPrice" yaml:"propertyPrice"`
	DownPaymentPercent float64       `json:"downPaymentPercent" yaml:"downPaymentPercent"`
	MortgageRate       float64       `json:"mortgageRate" yaml:"mortgageRate"`
	MortgageTermYears  int           `json:"mortgageTermYears" yaml:"mortgageTermYears"`
	PurchaseCosts      PurchaseCosts `json:"purchaseCosts" yaml:"purchaseCosts"`
	Rental             RentalTerms   `json:"rental" yaml:"rental"`
	HorizonMonths      int           `json:"horizonMonths" yaml:"horizonMonths"`
}

// ExistingPropertyConfig projects an owned property and, optionally, its sale.
type ExistingPropertyConfig struct {
	CurrentValue           float64 `json:"currentValue" yaml:"currentValue"`
	MonthlyRent            float64 `json:"monthlyRent" yaml:"monthlyRent"`
	MonthsRentedPerYear    float64 `json:"monthsRentedPerYear" yaml:"monthsRentedPerYear"`
	AdministrationFee      float64 `json:"administrationFee" yaml:"administrationFee"`
	AdministrationIncrease float64 `json:"administrationIncrease" yaml:"administrationIncrease"`
	MaintenancePercent     float64 `json:"maintenancePercent" yaml:"maintenancePercent"`
	PropertyTaxPercent     float64 `json:"propertyTaxPercent" yaml:"propertyTaxPercent"`
	IncomeTaxRate          float64 `json:"incomeTaxRate" yaml:"incomeTaxRate"`
	AnnualAppreciationRate float64 `json:"annualAppreciationRate" yaml:"annualAppreciationRate"`
	HorizonYears           int     `json:"horizonYears" yaml:"horizonYears"`

	CompareWithSale      bool    `json:"compareWithSale" yaml:"compareWithSale"`
	SaleCostsPercent     float64 `json:"saleCostsPercent" yaml:"saleCostsPercent"`
	CDTRate              float64 `json:"cdtRate" yaml:"cdtRate"`
	CDTTermDays          int     `json:"cdtTermDays" yaml:"cdtTermDays"`
	ApplyFourPerThousand bool    `json:"applyFourPerThousand" yaml:"applyFourPerThousand"`
	ApplyWithholding     bool    `json:"applyWithholding" yaml:"applyWithholding"`
	WithholdingRate      float64 `json:"withholdingRate" yaml:"withholdingRate"`
	UVTValue             float64 `json:"uvtValue" yaml:"uvtValue"`
}

// Scenarios is the partial map from ScenarioType to its configuration.
// One field per type keeps "at most one configuration per type" true by construction.
type Scenarios struct {
	Savings          *SavingsConfig          `json:"SAVINGS,omitempty" yaml:"SAVINGS,omitempty"`
	FutureProperty   *FuturePropertyConfig   `json:"FUTURE_PROPERTY,omitempty" yaml:"FUTURE_PROPERTY,omitempty"`
	ImmediateRent    *ImmediateRentConfig    `json:"IMMEDIATE_RENT,omitempty" yaml:"IMMEDIATE_RENT,omitempty"`
	ExistingProperty *ExistingPropertyConfig `json:"EXISTING_PROPERTY,omitempty" yaml:"EXISTING_PROPERTY,omitempty"`
}

// Configured returns the scenario types that carry a configuration.
func (s Scenarios) Configured() []ScenarioType {
	types := make([]ScenarioType, 0, len(AllScenarioTypes))
	for _, t := range AllScenarioTypes {
		if s.Has(t) {
			types = append(types, t)
		}
	}
	return types
}

// Has reports whether the scenario type is configured.
func (s Scenarios) Has(t ScenarioType) bool {
	switch t {
	case ScenarioSavings:
		return s.Savings != nil
	case ScenarioFutureProperty:
		return s.FutureProperty != nil
	case ScenarioImmediateRent:
		return s.ImmediateRent != nil
	case ScenarioExistingProperty:
		return s.ExistingProperty != nil
	default:
		return false
	}
}
