package calculator

import (
	"math"

	"github.com/juliocesarjcrs/investment-compare/internal/finance"
	"github.com/juliocesarjcrs/investment-compare/internal/models"
)

// rentalPhase accumulates the operating figures of a rented property.
type rentalPhase struct {
	months         int
	grossRent      float64
	vacancy        float64
	administration float64
	maintenance    float64
	propertyTax    float64
	incomeTax      float64
}

func (r rentalPhase) years() float64 {
	return float64(r.months) / 12
}

func (r rentalPhase) expenses() float64 {
	return r.vacancy + r.administration + r.maintenance + r.propertyTax + r.incomeTax
}

func (r rentalPhase) netCashFlow() float64 {
	return r.grossRent - r.expenses()
}

// projectRental walks the rental months one by one. The administration fee
// steps up every 12 months, so the order of compounding matters.
func projectRental(price float64, terms models.RentalTerms, months int) rentalPhase {
	if months < 0 {
		months = 0
	}
	phase := rentalPhase{months: months}

	fee := terms.AdministrationFee
	for month := 0; month < months; month++ {
		if month > 0 && month%12 == 0 {
			fee *= 1 + terms.AdministrationIncrease/100
		}
		phase.grossRent += terms.MonthlyRent
		phase.administration += fee
	}

	years := phase.years()
	phase.vacancy = terms.MonthlyRent * terms.VacancyMonthsPerYear * years
	phase.maintenance = price * terms.MaintenancePercent / 100 * years
	phase.propertyTax = price * terms.PropertyTaxPercent / 100 * years
	phase.incomeTax = math.Max(0, phase.grossRent-phase.vacancy) * terms.IncomeTaxRate / 100

	return phase
}

func purchaseCosts(price float64, costs models.PurchaseCosts) float64 {
	return price * costs.TotalPercent() / 100
}

func appreciate(value, annualRatePercent, years float64) float64 {
	return value * math.Pow(1+annualRatePercent/100, years)
}

// paybackMonths returns models.NoPayback when the investment is never recovered.
func paybackMonths(investment, averageMonthlyCashFlow float64) models.PaybackMonths {
	if averageMonthlyCashFlow <= 0 {
		return models.NoPayback
	}
	months := investment / averageMonthlyCashFlow
	if months >= models.NoPayback {
		return models.NoPayback
	}
	return models.PaybackMonths(months)
}

func percentOf(fraction float64) float64 {
	return fraction * 100
}

// roiFigures derives ROI and annualized return, both as percentages.
func roiFigures(totalReturn, investment, years float64) (float64, float64) {
	roi := finance.Ratio(totalReturn, investment)
	return percentOf(roi), finance.AnnualizeReturn(roi, years)
}
