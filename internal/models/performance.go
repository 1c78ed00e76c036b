package models

import "time"

// PerformancePoint es el valor del portafolio en una sesión
type PerformancePoint struct {
	Date           time.Time `json:"date"`
	PortfolioValue float64   `json:"portfolio_value"`
}

// PortfolioPerformance es la serie de valor del portafolio en un período
type PortfolioPerformance struct {
	Period              string             `json:"period"`
	Points              []PerformancePoint `json:"points"`
	StartValue          float64            `json:"start_value"`
	EndValue            float64            `json:"end_value"`
	High                float64            `json:"high"` // Valor más alto en el período
	Low                 float64            `json:"low"`  // Valor más bajo en el período
	PeriodReturn        float64            `json:"period_return"`
	PeriodReturnPercent *float64           `json:"period_return_percent"`
	TotalCost           float64            `json:"total_cost"`
	TotalReturn         float64            `json:"total_return"`
	TotalReturnPercent  *float64           `json:"total_return_percent"`
	MissingTickers      []string           `json:"missing_tickers"`
}
