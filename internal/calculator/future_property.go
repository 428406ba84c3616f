package calculator

import (
	"math"

	"github.com/juliocesarjcrs/investment-compare/internal/finance"
	"github.com/juliocesarjcrs/investment-compare/internal/models"
)

// CalculateFuturePropertyScenario saves towards a property, buys it, refurbishes
// it and rents it out for the rest of the horizon.
func CalculateFuturePropertyScenario(cfg models.FuturePropertyConfig) models.FuturePropertyResult {
	savingMonths := cfg.SavingMonths
	if savingMonths < 0 {
		savingMonths = 0
	}

	// Saving phase
	monthlyRate := finance.EffectiveMonthlyRate(cfg.SavingsRate)
	saved := cfg.InitialCapital*math.Pow(1+monthlyRate, float64(savingMonths)) +
		finance.FutureValueOfAnnuity(cfg.MonthlySaving, monthlyRate, savingMonths)
	deposited := cfg.InitialCapital + cfg.MonthlySaving*float64(savingMonths)

	// Purchase phase
	costs := purchaseCosts(cfg.PropertyPrice, cfg.PurchaseCosts)
	investment := saved + costs + cfg.Rental.RefurbishmentCost

	// Rental phase
	phase := projectRental(cfg.PropertyPrice, cfg.Rental, cfg.HorizonMonths-cfg.Rental.RefurbishmentMonths)
	years := phase.years()
	endValue := appreciate(cfg.PropertyPrice, cfg.Rental.AnnualAppreciationRate, years)
	net := phase.netCashFlow()
	totalReturn := endValue + net - investment
	roi, annualized := roiFigures(totalReturn, investment, years)
	average := finance.Ratio(net, float64(phase.months))

	return models.FuturePropertyResult{
		SavedAmount:            saved,
		SavingsEarnings:        saved - deposited,
		PurchaseCosts:          costs,
		TotalInitialInvestment: investment,
		RentalMonths:           phase.months,
		TotalGrossRent:         phase.grossRent,
		TotalExpenses:          phase.expenses(),
		NetRentalCashFlow:      net,
		AverageMonthlyCashFlow: average,
		PropertyValueAtEnd:     endValue,
		TotalReturn:            totalReturn,
		ROI:                    roi,
		AnnualizedReturn:       annualized,
		PaybackMonths:          paybackMonths(investment, average),
	}
}
