package portfolio

import (
	"strings"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
)

// NormalizeTicker limpia espacios y pasa el símbolo a mayúsculas
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// ValidateHolding normaliza el ticker y verifica cantidad y costo promedio
func ValidateHolding(h *models.Holding) error {
	h.Ticker = NormalizeTicker(h.Ticker)
	if h.Ticker == "" {
		return invalidParameter("el ticker es obligatorio")
	}
	if h.Quantity <= 0 {
		return invalidParameter("la cantidad debe ser mayor a 0")
	}
	if h.AvgCostBasis <= 0 {
		return invalidParameter("el costo promedio debe ser mayor a 0")
	}
	return nil
}
