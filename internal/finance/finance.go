// Package finance provides the interest, amortization and Colombian tax
// primitives shared by every scenario calculator.
package finance

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// FourPerThousandRate is the financial transaction tax (GMF) applied to withdrawals and deposits.
	FourPerThousandRate = 0.004

	// DailyInterestUVTThreshold is the daily interest, in UVT, below which no withholding applies.
	DailyInterestUVTThreshold = 0.055

	// DefaultUVTValue is the 2024 UVT in pesos.
	DefaultUVTValue = 47065.0

	// DefaultWithholdingRate is the withholding percentage on financial yields.
	DefaultWithholdingRate = 7.0

	// DaysPerYear is the day-count basis for term deposits and horizons.
	DaysPerYear = 365.0
)

// EffectiveMonthlyRate converts an annual effective (E.A.) percentage into the
// equivalent monthly compounding rate, as a fraction.
func EffectiveMonthlyRate(annualEffectiveRatePercent float64) float64 {
	return math.Pow(1+annualEffectiveRatePercent/100, 1.0/12.0) - 1
}

// FutureValueOfAnnuity compounds each of the monthly contributions for the
// months that remain after it is deposited.
func FutureValueOfAnnuity(monthlyContribution, monthlyRate float64, months int) float64 {
	total := 0.0
	for month := 1; month <= months; month++ {
		remaining := months - month
		total += monthlyContribution * math.Pow(1+monthlyRate, float64(remaining))
	}
	return total
}

// LoanPayment is the fixed monthly payment that amortizes principal over termMonths.
// It returns 0 when there is no loan.
func LoanPayment(principal, monthlyRate float64, termMonths int) float64 {
	if principal <= 0 || termMonths <= 0 {
		return 0
	}
	if monthlyRate == 0 {
		return principal / float64(termMonths)
	}
	factor := math.Pow(1+monthlyRate, float64(termMonths))
	return principal * monthlyRate * factor / (factor - 1)
}

// RemainingLoanBalance is the present value of the payments still owed.
func RemainingLoanBalance(payment, monthlyRate float64, remainingMonths int) float64 {
	if remainingMonths <= 0 || payment <= 0 {
		return 0
	}
	if monthlyRate == 0 {
		return payment * float64(remainingMonths)
	}
	return payment * (1 - math.Pow(1+monthlyRate, -float64(remainingMonths))) / monthlyRate
}

// FourPerThousand is the GMF charged on moving amount.
func FourPerThousand(amount float64) float64 {
	return amount * FourPerThousandRate
}

// WithholdingIfAboveThreshold returns the withholding on one day of interest.
// Nothing is withheld while the daily interest stays at or below 0.055 UVT.
func WithholdingIfAboveThreshold(dailyInterest, uvtValue, withholdingRatePercent float64) float64 {
	if uvtValue <= 0 || dailyInterest <= 0 {
		return 0
	}
	if dailyInterest/uvtValue > DailyInterestUVTThreshold {
		return dailyInterest * withholdingRatePercent / 100
	}
	return 0
}

// DaysInMonths spreads a horizon in months over the 365-day year.
func DaysInMonths(months int) float64 {
	return float64(months) * DaysPerYear / 12
}

// AnnualizeReturn converts a total return fraction earned over years into an
// annual percentage. A total loss is reported as -100.
func AnnualizeReturn(totalReturn, years float64) float64 {
	if years <= 0 {
		return 0
	}
	if 1+totalReturn <= 0 {
		return -100
	}
	return (math.Pow(1+totalReturn, 1/years) - 1) * 100
}

// RealReturn discounts a nominal return fraction by one period of inflation,
// returning a percentage: (1+nominal)/(1+inflation) - 1.
func RealReturn(nominalReturn, inflationPercent float64) float64 {
	inflation := 1 + inflationPercent/100
	if inflation <= 0 {
		return nominalReturn * 100
	}
	return ((1+nominalReturn)/inflation - 1) * 100
}

// Ratio divides without producing NaN or Inf.
func Ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// FormatMoney renders an amount rounded to whole pesos with thousands separators.
func FormatMoney(amount float64) string {
	rounded := decimal.NewFromFloat(amount).Round(0)
	digits := rounded.Abs().StringFixed(0)

	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, d)
	}
	if rounded.IsNegative() {
		return "-$" + string(grouped)
	}
	return "$" + string(grouped)
}

// FormatPercent renders a percentage with two decimals.
func FormatPercent(percent float64) string {
	return decimal.NewFromFloat(percent).StringFixed(2) + "%"
}
