package calculator

import (
	"fmt"
	"math"

	"github.com/juliocesarjcrs/investment-compare/internal/finance"
	"github.com/juliocesarjcrs/investment-compare/internal/models"
)

// DefaultCDTTermDays is used when a sale comparison does not name a CDT term.
const DefaultCDTTermDays = 360

// CalculateExistingPropertyScenario projects keeping an owned property year by
// year and, when requested, compares it with selling and rolling the proceeds
// through consecutive CDTs.
func CalculateExistingPropertyScenario(cfg models.ExistingPropertyConfig) models.ExistingPropertyResult {
	result := models.ExistingPropertyResult{
		Maintain: projectMaintain(cfg),
	}
	if !cfg.CompareWithSale {
		return result
	}

	sell := projectSale(cfg)
	comparison := compareMaintainAndSell(result.Maintain, sell)
	result.Sell = &sell
	result.Comparison = &comparison
	return result
}

func projectMaintain(cfg models.ExistingPropertyConfig) models.MaintainOption {
	horizon := max(cfg.HorizonYears, 0)
	option := models.MaintainOption{
		YearlyBreakdown: make([]models.YearProjection, 0, horizon),
	}

	value := cfg.CurrentValue
	fee := cfg.AdministrationFee
	for year := 1; year <= horizon; year++ {
		if year > 1 {
			fee *= 1 + cfg.AdministrationIncrease/100
		}

		grossRent := cfg.MonthlyRent * cfg.MonthsRentedPerYear
		expenses := fee*12 +
			value*cfg.MaintenancePercent/100 +
			value*cfg.PropertyTaxPercent/100 +
			grossRent*cfg.IncomeTaxRate/100
		net := grossRent - expenses
		value *= 1 + cfg.AnnualAppreciationRate/100

		option.TotalGrossRent += grossRent
		option.TotalExpenses += expenses
		option.TotalNetCashFlow += net
		option.YearlyBreakdown = append(option.YearlyBreakdown, models.YearProjection{
			Year:               year,
			GrossRent:          grossRent,
			Expenses:           expenses,
			NetCashFlow:        net,
			CumulativeCashFlow: option.TotalNetCashFlow,
			PropertyValue:      value,
		})
	}

	years := float64(horizon)
	option.PropertyValueAtEnd = value
	option.CapitalGain = value - cfg.CurrentValue
	option.TotalReturn = option.TotalNetCashFlow + option.CapitalGain
	option.ROI, option.AnnualizedReturn = roiFigures(option.TotalReturn, cfg.CurrentValue, years)
	option.CashOnCashReturn = percentOf(finance.Ratio(finance.Ratio(option.TotalNetCashFlow, years), cfg.CurrentValue))
	return option
}

// projectSale liquidates at the current value and reinvests in as many whole
// CDT terms as fit the horizon plus one partial term for the remaining days.
// Each term starts from the after-tax balance of the previous one.
func projectSale(cfg models.ExistingPropertyConfig) models.SellOption {
	termDays := cfg.CDTTermDays
	if termDays <= 0 {
		termDays = DefaultCDTTermDays
	}
	totalDays := max(cfg.HorizonYears, 0) * int(finance.DaysPerYear)

	option := models.SellOption{
		SaleValue:     cfg.CurrentValue,
		SaleCosts:     cfg.CurrentValue * cfg.SaleCostsPercent / 100,
		WholeTerms:    totalDays / termDays,
		RemainderDays: totalDays % termDays,
	}
	option.NetProceeds = option.SaleValue - option.SaleCosts

	balance := option.NetProceeds
	roll := func(days int) {
		term := CalculateSavingsScenario(models.SavingsConfig{
			Mode:             models.SavingsModeCDT,
			InitialCapital:   balance,
			AnnualRate:       cfg.CDTRate,
			TermDays:         days,
			ApplyWithholding: cfg.ApplyWithholding,
			WithholdingRate:  cfg.WithholdingRate,
			UVTValue:         cfg.UVTValue,
		})
		option.TotalInterest += term.GrossEarnings
		option.TotalWithholding += term.WithholdingAmount
		balance = term.FinalAmount
	}
	for i := 0; i < option.WholeTerms; i++ {
		roll(termDays)
	}
	if option.RemainderDays > 0 {
		roll(option.RemainderDays)
	}

	if cfg.ApplyFourPerThousand {
		option.FourPerThousand = finance.FourPerThousand(balance)
		balance -= option.FourPerThousand
	}

	option.FinalAmount = balance
	option.TotalReturn = balance - cfg.CurrentValue
	option.ROI, option.AnnualizedReturn = roiFigures(option.TotalReturn, cfg.CurrentValue, float64(totalDays)/finance.DaysPerYear)
	return option
}

func compareMaintainAndSell(maintain models.MaintainOption, sell models.SellOption) models.SaleComparison {
	difference := math.Abs(maintain.TotalReturn - sell.TotalReturn)
	comparison := models.SaleComparison{
		MaintainBetter:    maintain.TotalReturn > sell.TotalReturn,
		Difference:        difference,
		DifferencePercent: percentOf(finance.Ratio(difference, math.Abs(sell.TotalReturn))),
	}

	if comparison.MaintainBetter {
		comparison.Recommendation = fmt.Sprintf(
			"Mantener la propiedad genera %s más que venderla e invertir en CDT.",
			finance.FormatMoney(difference))
	} else {
		comparison.Recommendation = fmt.Sprintf(
			"Vender la propiedad e invertir en CDT genera %s más que mantenerla.",
			finance.FormatMoney(difference))
	}
	return comparison
}
