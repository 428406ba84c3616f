package calculator

import (
	"math"

	"github.com/juliocesarjcrs/investment-compare/internal/finance"
	"github.com/juliocesarjcrs/investment-compare/internal/models"
)

// CalculateImmediateRentScenario buys a property now, financing the part not
// covered by the down payment, and rents it for the horizon.
func CalculateImmediateRentScenario(cfg models.ImmediateRentConfig) models.ImmediateRentResult {
	price := cfg.PropertyPrice
	horizon := cfg.HorizonMonths
	if horizon < 0 {
		horizon = 0
	}

	downPayment := price * cfg.DownPaymentPercent / 100
	loan := math.Max(0, price-downPayment)
	termMonths := cfg.MortgageTermYears * 12
	monthlyRate := finance.EffectiveMonthlyRate(cfg.MortgageRate)
	payment := finance.LoanPayment(loan, monthlyRate, termMonths)

	paymentsMade := min(horizon, termMonths)
	if paymentsMade < 0 {
		paymentsMade = 0
	}
	mortgagePaid := payment * float64(paymentsMade)
	remaining := finance.RemainingLoanBalance(payment, monthlyRate, termMonths-paymentsMade)

	costs := purchaseCosts(price, cfg.PurchaseCosts)
	investment := downPayment + costs + cfg.Rental.RefurbishmentCost

	phase := projectRental(price, cfg.Rental, horizon-cfg.Rental.RefurbishmentMonths)
	years := float64(horizon) / 12
	endValue := appreciate(price, cfg.Rental.AnnualAppreciationRate, years)
	equity := endValue - remaining
	netCashFlow := phase.netCashFlow() - mortgagePaid
	totalReturn := equity + netCashFlow - investment
	roi, annualized := roiFigures(totalReturn, investment, years)

	annualCashFlow := finance.Ratio(netCashFlow, years)
	monthlyCosts := cfg.Rental.AdministrationFee +
		price*cfg.Rental.MaintenancePercent/100/12 +
		price*cfg.Rental.PropertyTaxPercent/100/12 +
		payment
	average := finance.Ratio(netCashFlow, float64(phase.months))

	return models.ImmediateRentResult{
		DownPayment:            downPayment,
		LoanAmount:             loan,
		MonthlyMortgagePayment: payment,
		TotalMortgagePaid:      mortgagePaid,
		RemainingLoanBalance:   remaining,
		PurchaseCosts:          costs,
		TotalInitialInvestment: investment,
		RentalMonths:           phase.months,
		TotalGrossRent:         phase.grossRent,
		TotalExpenses:          phase.expenses(),
		NetCashFlow:            netCashFlow,
		MonthlyNetCashFlow:     cfg.Rental.MonthlyRent - monthlyCosts,
		PropertyValueAtEnd:     endValue,
		EquityAtEnd:            equity,
		TotalReturn:            totalReturn,
		ROI:                    roi,
		AnnualizedReturn:       annualized,
		CashOnCashReturn:       percentOf(finance.Ratio(annualCashFlow, investment)),
		PaybackMonths:          paybackMonths(investment, average),
	}
}
