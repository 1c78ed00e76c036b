// Package portfolio contiene los cálculos sobre el portafolio: valuación,
// distribución, rendimiento histórico, alertas, objetivos y dividendos.
// Todas las funciones son puras: reciben los datos ya resueltos.
package portfolio

import (
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
)

// Enrich calcula los campos derivados de una tenencia a partir de su cotización.
// Sin cotización (o sin precio actual) solo TotalCost queda definido.
func Enrich(h models.Holding, quote *models.Quote) models.EnrichedHolding {
	enriched := models.EnrichedHolding{
		Holding:   h,
		Name:      h.Ticker, // Usar el ticker como nombre por defecto
		TotalCost: h.Quantity * h.AvgCostBasis,
	}

	if quote == nil || quote.CurrentPrice == nil {
		return enriched
	}

	if quote.Name != "" {
		enriched.Name = quote.Name
	}

	price := *quote.CurrentPrice
	currentValue := h.Quantity * price
	profitLoss := currentValue - enriched.TotalCost

	enriched.CurrentPrice = &price
	enriched.CurrentValue = &currentValue
	enriched.ProfitLoss = &profitLoss
	enriched.ProfitLossPercent = percentOf(profitLoss, enriched.TotalCost)

	// El cambio diario necesita el cierre anterior
	if quote.PreviousClose != nil {
		previousClose := *quote.PreviousClose
		dayChange := h.Quantity * (price - previousClose)

		enriched.PreviousClose = &previousClose
		enriched.DayChange = &dayChange
		enriched.DayChangePercent = percentOf(dayChange, h.Quantity*previousClose)
	}

	return enriched
}

// Summarize valoriza todas las tenencias y calcula los totales del portafolio.
//
// TotalValue suma solo las tenencias con cotización; TotalCost las suma todas.
// TotalProfitLoss es TotalValue - TotalCost y queda en nil cuando ninguna
// tenencia pudo valorizarse, para no reportar una pérdida total ficticia.
func Summarize(holdings []models.Holding, quotes map[string]*models.Quote) models.PortfolioSummary {
	summary := models.PortfolioSummary{
		HoldingsCount:   len(holdings),
		UnpricedTickers: []string{},
		Holdings:        make([]models.EnrichedHolding, 0, len(holdings)),
	}

	var dayChange, dayBase float64
	dayChangeCount := 0

	for _, holding := range holdings {
		enriched := Enrich(holding, quotes[NormalizeTicker(holding.Ticker)])
		summary.TotalCost += enriched.TotalCost

		if enriched.HasQuote() {
			summary.TotalValue += *enriched.CurrentValue
			summary.PricedCount++
		} else {
			summary.UnpricedTickers = append(summary.UnpricedTickers, holding.Ticker)
		}

		if enriched.DayChange != nil {
			dayChange += *enriched.DayChange
			dayBase += holding.Quantity * *enriched.PreviousClose
			dayChangeCount++
		}

		summary.Holdings = append(summary.Holdings, enriched)
	}

	if summary.PricedCount > 0 {
		totalProfitLoss := summary.TotalValue - summary.TotalCost
		summary.TotalProfitLoss = &totalProfitLoss
		summary.TotalProfitLossPercent = percentOf(totalProfitLoss, summary.TotalCost)
	}

	if dayChangeCount > 0 {
		summary.DayChange = &dayChange
		summary.DayChangePercent = percentOf(dayChange, dayBase)
	}

	return summary
}

// MarketDataUnavailable indica que había tenencias pero no se obtuvo ninguna cotización
func MarketDataUnavailable(summary models.PortfolioSummary) bool {
	return summary.HoldingsCount > 0 && summary.PricedCount == 0
}
