package models

import "time"

// Holding representa la tenencia de un usuario en un ticker
type Holding struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Ticker       string    `json:"ticker"`
	Quantity     float64   `json:"quantity"`
	AvgCostBasis float64   `json:"avg_cost_basis"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EnrichedHolding es una tenencia combinada con su cotización.
// Los campos que dependen de la cotización son nil cuando no hay datos.
type EnrichedHolding struct {
	Holding
	Name              string   `json:"name"`
	CurrentPrice      *float64 `json:"current_price"`
	PreviousClose     *float64 `json:"previous_close"`
	CurrentValue      *float64 `json:"current_value"`
	TotalCost         float64  `json:"total_cost"`
	ProfitLoss        *float64 `json:"profit_loss"`
	ProfitLossPercent *float64 `json:"profit_loss_percent"`
	DayChange         *float64 `json:"day_change"`
	DayChangePercent  *float64 `json:"day_change_percent"`
}

// HasQuote indica si la tenencia pudo valorizarse
func (h EnrichedHolding) HasQuote() bool {
	return h.CurrentValue != nil
}

// PortfolioSummary agrega todas las tenencias de un usuario
type PortfolioSummary struct {
	TotalValue             float64           `json:"total_value"`
	TotalCost              float64           `json:"total_cost"`
	TotalProfitLoss        *float64          `json:"total_profit_loss"`
	TotalProfitLossPercent *float64          `json:"total_profit_loss_percent"`
	DayChange              *float64          `json:"day_change"`
	DayChangePercent       *float64          `json:"day_change_percent"`
	HoldingsCount          int               `json:"holdings_count"`
	PricedCount            int               `json:"priced_count"`
	UnpricedTickers        []string          `json:"unpriced_tickers"`
	Holdings               []EnrichedHolding `json:"holdings"`
}

// Allocation es el peso de una tenencia sobre el valor total
type Allocation struct {
	Ticker  string  `json:"ticker"`
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"` // Porcentaje del portafolio (0-100)
}

// AllocationReport contiene la distribución y los tickers excluidos por falta de cotización
type AllocationReport struct {
	TotalValue  float64      `json:"total_value"`
	Allocations []Allocation `json:"allocations"`
	Excluded    []string     `json:"excluded"`
}

// PieChartData contiene los datos formateados para un gráfico de torta
type PieChartData struct {
	Labels   []string  `json:"labels"`   // Etiquetas (tickers)
	Values   []float64 `json:"values"`   // Valores (porcentajes)
	Colors   []string  `json:"colors"`   // Colores para cada segmento
	Currency string    `json:"currency"` // Moneda (USD)
}
