package calculator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/juliocesarjcrs/investment-compare/internal/models"
)

func recurringSavings(capital float64) models.SavingsConfig {
	return models.SavingsConfig{
		Mode:             models.SavingsModeRecurring,
		InitialCapital:   capital,
		AnnualRate:       8.25,
		HorizonMonths:    12,
		ApplyWithholding: true,
		WithholdingRate:  7,
		UVTValue:         47065,
	}
}

func TestSavingsBelowUVTThresholdHasNoWithholding(t *testing.T) {
	result := CalculateSavingsScenario(recurringSavings(10000000))

	assert.InDelta(t, 825000, result.GrossEarnings, 1000)
	assert.InDelta(t, 2260, result.GrossEarnings/result.HorizonDays, 1)
	assert.Equal(t, 0.0, result.WithholdingAmount)
	assert.Equal(t, 0.0, result.FourPerThousandCharge)
	assert.InDelta(t, result.GrossEarnings, result.NetEarnings, 1e-6)
	assert.InDelta(t, 8.25, result.EffectiveAnnualRate, 1e-6)
}

func TestSavingsAboveUVTThresholdWithholds(t *testing.T) {
	result := CalculateSavingsScenario(recurringSavings(20000000))

	assert.InDelta(t, 1645764, result.GrossEarnings, 1000)
	assert.Greater(t, result.GrossEarnings/result.HorizonDays, 4509.0)
	assert.InDelta(t, result.GrossEarnings*0.07, result.WithholdingAmount, 1e-6)
	assert.InDelta(t, 115203.5, result.WithholdingAmount, 100)
	assert.InDelta(t, result.GrossEarnings-result.WithholdingAmount, result.NetEarnings, 1e-6)
	assert.InDelta(t, 20000000+1645764-115203.5, result.FinalAmount, 1)
}

func TestSavingsCompoundsOnlyNetInterest(t *testing.T) {
	withheld := CalculateSavingsScenario(recurringSavings(20000000))

	cfg := recurringSavings(20000000)
	cfg.ApplyWithholding = false
	untaxed := CalculateSavingsScenario(cfg)

	assert.InDelta(t, 1650000, untaxed.GrossEarnings, 1e-3)
	assert.Less(t, withheld.GrossEarnings, untaxed.GrossEarnings)
	assert.Less(t, withheld.FinalAmount, untaxed.FinalAmount)
}

func TestSavingsWithholdingFollowsMonthlyInterest(t *testing.T) {
	// 14M earns about 3,050 a day in the first month, above 0.055 UVT, so every
	// month is withheld; 11M stays below the threshold for the whole year.
	above := CalculateSavingsScenario(recurringSavings(14000000))
	below := CalculateSavingsScenario(recurringSavings(11000000))

	assert.InDelta(t, above.GrossEarnings*0.07, above.WithholdingAmount, 1e-6)
	assert.Equal(t, 0.0, below.WithholdingAmount)
}

func TestSavingsFourPerThousandOnEntryAndExit(t *testing.T) {
	cfg := recurringSavings(10000000)
	cfg.ApplyWithholding = false
	cfg.ApplyFourPerThousand = true

	result := CalculateSavingsScenario(cfg)

	assert.InDelta(t, 40000+0.004*10825000, result.FourPerThousandCharge, 1)
	assert.InDelta(t, 825000-83300, result.NetEarnings, 1)
	assert.InDelta(t, result.TotalDeposited+result.NetEarnings, result.FinalAmount, 1e-6)
}

func TestSavingsNeverLosesPrincipalAtNonNegativeRates(t *testing.T) {
	capitals := []float64{0, 1000000, 20000000, 500000000}
	rates := []float64{0, 0.5, 8.25, 15}
	horizons := []int{1, 6, 12, 60}

	for _, capital := range capitals {
		for _, rate := range rates {
			for _, months := range horizons {
				t.Run(fmt.Sprintf("capital=%.0f/rate=%.2f/months=%d", capital, rate, months), func(t *testing.T) {
					cfg := recurringSavings(capital)
					cfg.AnnualRate = rate
					cfg.HorizonMonths = months
					cfg.MonthlyContribution = 250000

					result := CalculateSavingsScenario(cfg)
					assert.GreaterOrEqual(t, result.FinalAmount, result.TotalDeposited)
				})
			}
		}
	}
}

func TestSavingsMonthlyContributionsCompound(t *testing.T) {
	cfg := recurringSavings(0)
	cfg.ApplyWithholding = false
	cfg.MonthlyContribution = 1000000

	result := CalculateSavingsScenario(cfg)

	assert.Equal(t, 12000000.0, result.TotalDeposited)
	assert.Greater(t, result.GrossEarnings, 0.0)
	assert.Less(t, result.GrossEarnings, 12000000*0.0825)
}

func TestSavingsRealReturnDiscountsInflation(t *testing.T) {
	cfg := recurringSavings(10000000)
	cfg.InflationRate = 5

	result := CalculateSavingsScenario(cfg)

	assert.InDelta(t, (1.0825/1.05-1)*100, result.RealReturn, 1e-6)

	cfg.InflationRate = 0
	assert.InDelta(t, 8.25, CalculateSavingsScenario(cfg).RealReturn, 1e-6)
}

func TestSavingsRealReturnUsesSingleInflationPeriod(t *testing.T) {
	cfg := recurringSavings(10000000)
	cfg.HorizonMonths = 36
	cfg.InflationRate = 5

	result := CalculateSavingsScenario(cfg)

	nominal := result.NetEarnings / result.TotalDeposited
	assert.InDelta(t, ((1+nominal)/1.05-1)*100, result.RealReturn, 1e-6)
}

func TestTermDepositInterestIsLinearInTerm(t *testing.T) {
	cfg := models.SavingsConfig{
		Mode:           models.SavingsModeCDT,
		InitialCapital: 10000000,
		AnnualRate:     10,
		TermDays:       90,
	}
	short := CalculateSavingsScenario(cfg)

	cfg.TermDays = 180
	long := CalculateSavingsScenario(cfg)

	assert.InDelta(t, 10000000*0.10*90/365, short.GrossEarnings, 1e-6)
	assert.InDelta(t, 2.0, long.GrossEarnings/short.GrossEarnings, 1e-9)
	assert.Equal(t, models.SavingsModeCDT, long.Mode)
}

func TestTermDepositWithholdingScalesToTermDays(t *testing.T) {
	cfg := models.SavingsConfig{
		Mode:             models.SavingsModeCDT,
		InitialCapital:   100000000,
		AnnualRate:       10,
		TermDays:         360,
		ApplyWithholding: true,
	}

	result := CalculateSavingsScenario(cfg)

	interest := 100000000 * 0.10 * 360 / 365
	assert.InDelta(t, interest, result.GrossEarnings, 1e-6)
	assert.InDelta(t, interest*0.07, result.WithholdingAmount, 1e-6)
	assert.Equal(t, 360.0, result.HorizonDays)
}

func TestTermDepositWithoutDaysEarnsNothing(t *testing.T) {
	result := CalculateSavingsScenario(models.SavingsConfig{
		Mode:           models.SavingsModeCDT,
		InitialCapital: 5000000,
		AnnualRate:     12,
	})

	assert.Equal(t, 0.0, result.GrossEarnings)
	assert.Equal(t, 0.0, result.EffectiveAnnualRate)
	assert.Equal(t, 5000000.0, result.FinalAmount)
}
