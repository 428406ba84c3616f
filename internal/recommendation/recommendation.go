// Package recommendation ranks scored scenarios and explains the winner.
package recommendation

import (
	"fmt"
	"sort"

	"github.com/juliocesarjcrs/investment-compare/internal/models"
	"github.com/juliocesarjcrs/investment-compare/internal/scoring"
)

const (
	strengthThreshold       = 70
	lowLiquidityThreshold   = 40
	lowSecurityThreshold    = 50
	lowCashFlowThreshold    = 30
	existingLiquidityNotice = 50
)

var criterionNames = map[models.Priority]string{
	models.PriorityProfitability: "rentabilidad",
	models.PriorityLiquidity:     "liquidez",
	models.PrioritySecurity:      "seguridad",
	models.PriorityCashFlow:      "flujo de caja",
}

var riskProfileNotes = map[models.RiskProfile]string{
	models.RiskConservative: "Para un perfil conservador se priorizaron la seguridad y la liquidez del capital.",
	models.RiskModerate:     "Para un perfil moderado se buscó un balance entre rentabilidad, seguridad y flujo de caja.",
	models.RiskAggressive:   "Para un perfil agresivo se dio más peso a la rentabilidad y al flujo de caja.",
}

// Generate scores the computed results for the comparison's profile and builds
// the recommendation. It fails with models.ErrNoScenarios when nothing was computed.
func Generate(data models.ComparisonData, results models.ScenarioResults) (*models.Recommendation, error) {
	return FromScores(data.UserProfile, scoring.ScoreScenarios(data.UserProfile, results))
}

// FromScores ranks already computed scores. The input slice is not modified.
func FromScores(profile models.UserProfile, scores []models.ScenarioScore) (*models.Recommendation, error) {
	if len(scores) == 0 {
		return nil, models.ErrNoScenarios
	}

	ranked := make([]models.ScenarioScore, len(scores))
	copy(ranked, scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})

	winner := ranked[0]
	var runnerUp *models.ScenarioScore
	if len(ranked) > 1 {
		runnerUp = &ranked[1]
	}

	return &models.Recommendation{
		RecommendedScenario: winner.ScenarioType,
		Scores:              ranked,
		Reasoning:           reasoning(profile, winner, runnerUp),
		Warnings:            warnings(profile, winner),
		Alternatives:        alternatives(winner, runnerUp),
	}, nil
}

func reasoning(profile models.UserProfile, winner models.ScenarioScore, runnerUp *models.ScenarioScore) []string {
	lines := make([]string, 0, 6)

	headline := fmt.Sprintf("%s obtiene el mayor puntaje (%.1f/100)",
		winner.ScenarioType.DisplayName(), winner.TotalScore)
	if runnerUp != nil {
		headline += fmt.Sprintf(", %.1f puntos por encima de %s",
			winner.TotalScore-runnerUp.TotalScore, runnerUp.ScenarioType.DisplayName())
	}
	lines = append(lines, headline+".")

	for _, criterion := range models.AllPriorities {
		if score := winner.Scores.Get(criterion); score > strengthThreshold {
			lines = append(lines, fmt.Sprintf("Fortaleza en %s (%.0f/100).", criterionNames[criterion], score))
		}
	}

	if note, ok := riskProfileNotes[profile.RiskProfile]; ok {
		lines = append(lines, note)
	}
	return lines
}

func warnings(profile models.UserProfile, winner models.ScenarioScore) []string {
	var out []string

	if winner.Scores.Liquidity < lowLiquidityThreshold {
		out = append(out, "Baja liquidez: recuperar el dinero puede tomar meses y tener costos.")
	}
	if winner.Scores.Security < lowSecurityThreshold {
		out = append(out, "Riesgo elevado: el resultado depende de supuestos que pueden no cumplirse.")
	}
	if winner.ScenarioType.IsRealEstate() {
		out = append(out, "La inversión inmobiliaria está expuesta a vacancia, daños, cambios del mercado y arrendatarios morosos.")
	}
	if winner.Scores.CashFlow < lowCashFlowThreshold && profile.HasPriority(models.PriorityCashFlow) {
		out = append(out, "Flujo de caja bajo frente a su prioridad de ingresos periódicos.")
	}
	if winner.ScenarioType == models.ScenarioExistingProperty {
		out = append(out, "Mantener la propiedad exige gestión continua: arrendatarios, reparaciones y trámites.")
		if winner.Scores.Liquidity < existingLiquidityNotice {
			out = append(out, "El capital seguirá inmovilizado en la propiedad; vender más adelante puede tomar tiempo.")
		}
	}
	return out
}

func alternatives(winner models.ScenarioScore, runnerUp *models.ScenarioScore) []string {
	if runnerUp == nil {
		return []string{}
	}
	return []string{
		fmt.Sprintf("%s es la segunda opción con %.1f/100.",
			runnerUp.ScenarioType.DisplayName(), runnerUp.TotalScore),
		fmt.Sprintf("Considere diversificar su capital entre %s y %s.",
			winner.ScenarioType.DisplayName(), runnerUp.ScenarioType.DisplayName()),
	}
}
