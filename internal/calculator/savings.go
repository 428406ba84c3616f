package calculator

import (
	"github.com/juliocesarjcrs/investment-compare/internal/finance"
	"github.com/juliocesarjcrs/investment-compare/internal/models"
)

// CalculateSavingsScenario runs a recurring savings plan or a fixed-term deposit,
// depending on the configured mode.
func CalculateSavingsScenario(cfg models.SavingsConfig) models.SavingsResult {
	if cfg.Mode == models.SavingsModeCDT {
		return calculateTermDeposit(cfg)
	}
	return calculateRecurringSavings(cfg)
}

// calculateRecurringSavings compounds the balance month by month. Withholding is
// assessed on each month's interest and only the net interest keeps compounding.
// Contributions are deposited at the end of each month.
func calculateRecurringSavings(cfg models.SavingsConfig) models.SavingsResult {
	months := cfg.HorizonMonths
	if months < 0 {
		months = 0
	}

	monthlyRate := finance.EffectiveMonthlyRate(cfg.AnnualRate)
	uvt, rate := taxRules(cfg.UVTValue, cfg.WithholdingRate)
	daysPerMonth := finance.DaysInMonths(1)

	balance := cfg.InitialCapital
	var gross, withholding float64
	for month := 1; month <= months; month++ {
		interest := balance * monthlyRate
		withheld := 0.0
		if cfg.ApplyWithholding && interest > 0 {
			withheld = finance.WithholdingIfAboveThreshold(interest/daysPerMonth, uvt, rate) * daysPerMonth
		}
		gross += interest
		withholding += withheld
		balance += interest - withheld + cfg.MonthlyContribution
	}

	deposited := cfg.InitialCapital + cfg.MonthlyContribution*float64(months)
	return settleSavings(cfg, models.SavingsModeRecurring, deposited, gross, withholding, finance.DaysInMonths(months))
}

func calculateTermDeposit(cfg models.SavingsConfig) models.SavingsResult {
	days := cfg.TermDays
	if days < 0 {
		days = 0
	}

	interest := cfg.InitialCapital * cfg.AnnualRate / 100 * float64(days) / finance.DaysPerYear

	withholding := 0.0
	if cfg.ApplyWithholding && days > 0 && interest > 0 {
		uvt, rate := taxRules(cfg.UVTValue, cfg.WithholdingRate)
		withholding = finance.WithholdingIfAboveThreshold(interest/float64(days), uvt, rate) * float64(days)
	}

	return settleSavings(cfg, models.SavingsModeCDT, cfg.InitialCapital, interest, withholding, float64(days))
}

// settleSavings charges the 4x1000 and derives the returns. The GMF is charged
// on entry over the initial capital and on exit over the balance left after
// withholding.
func settleSavings(cfg models.SavingsConfig, mode models.SavingsMode, deposited, gross, withholding, days float64) models.SavingsResult {
	afterTax := deposited + gross - withholding

	gmf := 0.0
	if cfg.ApplyFourPerThousand {
		gmf = finance.FourPerThousand(cfg.InitialCapital) + finance.FourPerThousand(afterTax)
	}

	net := gross - withholding - gmf
	years := days / finance.DaysPerYear
	nominal := finance.Ratio(net, deposited)

	return models.SavingsResult{
		Mode:                  mode,
		TotalDeposited:        deposited,
		GrossEarnings:         gross,
		FourPerThousandCharge: gmf,
		WithholdingAmount:     withholding,
		NetEarnings:           net,
		FinalAmount:           afterTax - gmf,
		RealReturn:            finance.RealReturn(nominal, cfg.InflationRate),
		EffectiveAnnualRate:   finance.AnnualizeReturn(nominal, years),
		HorizonDays:           days,
	}
}

// taxRules falls back to the statutory defaults when a value was not supplied.
func taxRules(uvtValue, withholdingRate float64) (float64, float64) {
	if uvtValue <= 0 {
		uvtValue = finance.DefaultUVTValue
	}
	if withholdingRate <= 0 {
		withholdingRate = finance.DefaultWithholdingRate
	}
	return uvtValue, withholdingRate
}
