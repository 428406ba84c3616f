// Package report renders evaluated comparisons for terminals and spreadsheets.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/juliocesarjcrs/investment-compare/internal/finance"
	"github.com/juliocesarjcrs/investment-compare/internal/models"
	"github.com/juliocesarjcrs/investment-compare/internal/service"
)

// GenerateConsoleReport formats an evaluation for terminal output
func GenerateConsoleReport(evaluation *service.Evaluation) string {
	var builder strings.Builder
	comparison := evaluation.Comparison
	rec := evaluation.Recommendation

	builder.WriteString("Comparación de inversiones\n")
	builder.WriteString("==========================\n")
	if comparison.Name != "" {
		builder.WriteString(fmt.Sprintf("Nombre: %s\n", comparison.Name))
	}
	if comparison.ID != "" {
		builder.WriteString(fmt.Sprintf("ID: %s\n", comparison.ID))
	}
	builder.WriteString(fmt.Sprintf("Perfil de riesgo: %s\n", comparison.UserProfile.RiskProfile))
	if len(comparison.UserProfile.Priorities) > 0 {
		priorities := make([]string, len(comparison.UserProfile.Priorities))
		for i, p := range comparison.UserProfile.Priorities {
			priorities[i] = string(p)
		}
		builder.WriteString(fmt.Sprintf("Prioridades: %s\n", strings.Join(priorities, ", ")))
	}
	builder.WriteString("\n")

	builder.WriteString(fmt.Sprintf("Recomendación: %s\n", rec.RecommendedScenario.DisplayName()))
	builder.WriteString("\nPuntajes\n")
	builder.WriteString("--------\n")
	builder.WriteString(fmt.Sprintf("%-28s %7s %7s %7s %7s %7s %10s\n",
		"Escenario", "Total", "Rent.", "Liq.", "Seg.", "Flujo", "Aj. (%)"))
	for _, score := range rec.Scores {
		builder.WriteString(fmt.Sprintf("%-28s %7.1f %7.1f %7.1f %7.1f %7.1f %10.2f\n",
			score.ScenarioType.DisplayName(),
			score.TotalScore,
			score.Scores.Profitability,
			score.Scores.Liquidity,
			score.Scores.Security,
			score.Scores.CashFlow,
			score.AdjustedReturn,
		))
	}

	builder.WriteString("\nResultados\n")
	builder.WriteString("----------\n")
	for _, line := range resultLines(evaluation.Results) {
		builder.WriteString(line)
		builder.WriteString("\n")
	}

	writeSection(&builder, "Razones", rec.Reasoning)
	writeSection(&builder, "Advertencias", rec.Warnings)
	writeSection(&builder, "Alternativas", rec.Alternatives)
	return builder.String()
}

func writeSection(builder *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	builder.WriteString(fmt.Sprintf("\n%s\n", title))
	for _, line := range lines {
		builder.WriteString(fmt.Sprintf("  - %s\n", line))
	}
}

func resultLines(results models.ScenarioResults) []string {
	var lines []string
	if r := results.Savings; r != nil {
		lines = append(lines,
			fmt.Sprintf("%s: depositado %s, ganancia neta %s, final %s, tasa efectiva %s, retorno real %s",
				models.ScenarioSavings.DisplayName(),
				finance.FormatMoney(r.TotalDeposited),
				finance.FormatMoney(r.NetEarnings),
				finance.FormatMoney(r.FinalAmount),
				finance.FormatPercent(r.EffectiveAnnualRate),
				finance.FormatPercent(r.RealReturn),
			))
	}
	if r := results.FutureProperty; r != nil {
		lines = append(lines,
			fmt.Sprintf("%s: inversión %s, flujo neto %s, valor final %s, ROI %s, anual %s, %s",
				models.ScenarioFutureProperty.DisplayName(),
				finance.FormatMoney(r.TotalInitialInvestment),
				finance.FormatMoney(r.NetRentalCashFlow),
				finance.FormatMoney(r.PropertyValueAtEnd),
				finance.FormatPercent(r.ROI),
				finance.FormatPercent(r.AnnualizedReturn),
				payback(r.PaybackMonths),
			))
	}
	if r := results.ImmediateRent; r != nil {
		lines = append(lines,
			fmt.Sprintf("%s: inversión %s, cuota %s, flujo mensual %s, patrimonio final %s, ROI %s, anual %s, %s",
				models.ScenarioImmediateRent.DisplayName(),
				finance.FormatMoney(r.TotalInitialInvestment),
				finance.FormatMoney(r.MonthlyMortgagePayment),
				finance.FormatMoney(r.MonthlyNetCashFlow),
				finance.FormatMoney(r.EquityAtEnd),
				finance.FormatPercent(r.ROI),
				finance.FormatPercent(r.AnnualizedReturn),
				payback(r.PaybackMonths),
			))
	}
	if r := results.ExistingProperty; r != nil {
		m := r.Maintain
		lines = append(lines,
			fmt.Sprintf("%s (mantener): flujo neto %s, valor final %s, ROI %s, anual %s",
				models.ScenarioExistingProperty.DisplayName(),
				finance.FormatMoney(m.TotalNetCashFlow),
				finance.FormatMoney(m.PropertyValueAtEnd),
				finance.FormatPercent(m.ROI),
				finance.FormatPercent(m.AnnualizedReturn),
			))
		if r.Sell != nil {
			lines = append(lines,
				fmt.Sprintf("%s (vender): neto venta %s, final %s, ROI %s, anual %s",
					models.ScenarioExistingProperty.DisplayName(),
					finance.FormatMoney(r.Sell.NetProceeds),
					finance.FormatMoney(r.Sell.FinalAmount),
					finance.FormatPercent(r.Sell.ROI),
					finance.FormatPercent(r.Sell.AnnualizedReturn),
				))
		}
		if r.Comparison != nil {
			lines = append(lines, "  "+r.Comparison.Recommendation)
		}
	}
	return lines
}

func payback(months models.PaybackMonths) string {
	if !months.PaysBack() {
		return "sin recuperación"
	}
	return fmt.Sprintf("recuperación %.1f meses", float64(months))
}

// WriteCSV writes one row per scored scenario, best first.
func WriteCSV(w io.Writer, evaluation *service.Evaluation) error {
	writer := csv.NewWriter(w)
	header := []string{
		"scenario_type", "recommended", "total_score", "profitability",
		"liquidity", "security", "cash_flow", "adjusted_return",
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	rec := evaluation.Recommendation
	for _, score := range rec.Scores {
		row := []string{
			string(score.ScenarioType),
			strconv.FormatBool(score.ScenarioType == rec.RecommendedScenario),
			formatFloat(score.TotalScore),
			formatFloat(score.Scores.Profitability),
			formatFloat(score.Scores.Liquidity),
			formatFloat(score.Scores.Security),
			formatFloat(score.Scores.CashFlow),
			formatFloat(score.AdjustedReturn),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// GenerateCSVExport exports the scores for spreadsheets
func GenerateCSVExport(evaluation *service.Evaluation, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create csv export: %w", err)
	}
	if err := WriteCSV(file, evaluation); err != nil {
		file.Close()
		return fmt.Errorf("failed to write csv export: %w", err)
	}
	return file.Close()
}

// ExportToJSON writes the full evaluation to a JSON file
func ExportToJSON(evaluation *service.Evaluation, outputPath string) error {
	if outputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	data, err := json.MarshalIndent(evaluation, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal evaluation: %w", err)
	}
	return os.WriteFile(outputPath, data, 0o644)
}
