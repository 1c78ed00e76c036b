package portfolio

import (
	"strings"
	"time"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
)

// ParseCondition acepta "above"/"below" sin distinguir mayúsculas
func ParseCondition(s string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case models.AlertConditionAbove:
		return models.AlertConditionAbove, nil
	case models.AlertConditionBelow:
		return models.AlertConditionBelow, nil
	}
	return "", invalidParameter("condición %q inválida, debe ser ABOVE o BELOW", s)
}

// ValidateAlert normaliza ticker y condición y verifica el precio objetivo
func ValidateAlert(a *models.PriceAlert) error {
	a.Ticker = NormalizeTicker(a.Ticker)
	if a.Ticker == "" {
		return invalidParameter("el ticker es obligatorio")
	}
	condition, err := ParseCondition(a.Condition)
	if err != nil {
		return err
	}
	a.Condition = condition
	if a.TargetPrice <= 0 {
		return invalidParameter("el precio objetivo debe ser mayor a 0")
	}
	return nil
}

// ShouldTrigger compara el precio contra el objetivo; ambos límites son inclusivos
func ShouldTrigger(a models.PriceAlert, price float64) bool {
	switch a.Condition {
	case models.AlertConditionAbove:
		return price >= a.TargetPrice
	case models.AlertConditionBelow:
		return price <= a.TargetPrice
	}
	return false
}

// Check evalúa las alertas activas y no disparadas contra las cotizaciones.
// TotalChecked cuenta las alertas elegibles, tengan o no cotización. Las
// alertas disparadas se devuelven con TriggeredAt y TriggeredPrice asignados;
// persistirlas es responsabilidad del llamador.
func Check(alerts []models.PriceAlert, quotes map[string]*models.Quote, now time.Time) models.AlertCheckResult {
	result := models.AlertCheckResult{Triggered: []models.PriceAlert{}}

	for _, alert := range alerts {
		if !alert.IsActive || alert.IsTriggered {
			continue
		}
		result.TotalChecked++

		quote := quotes[NormalizeTicker(alert.Ticker)]
		if quote == nil || quote.CurrentPrice == nil {
			continue
		}

		price := *quote.CurrentPrice
		if !ShouldTrigger(alert, price) {
			continue
		}

		triggeredAt := now
		alert.IsTriggered = true
		alert.TriggeredAt = &triggeredAt
		alert.TriggeredPrice = &price
		result.Triggered = append(result.Triggered, alert)
	}

	return result
}

// Reset limpia el disparo para que la alerta pueda volver a dispararse.
// No modifica IsActive.
func Reset(a *models.PriceAlert) {
	a.IsTriggered = false
	a.TriggeredAt = nil
	a.TriggeredPrice = nil
}

func Activate(a *models.PriceAlert) {
	a.IsActive = true
}

func Deactivate(a *models.PriceAlert) {
	a.IsActive = false
}
