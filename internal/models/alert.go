package models

import "time"

// Condiciones de las alertas de precio
const (
	AlertConditionAbove = "ABOVE"
	AlertConditionBelow = "BELOW"
)

// PriceAlert representa una alerta sobre el precio de un ticker.
// TriggeredAt y TriggeredPrice se asignan juntos.
type PriceAlert struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Ticker         string     `json:"ticker"`
	Condition      string     `json:"condition"`
	TargetPrice    float64    `json:"target_price"`
	IsActive       bool       `json:"is_active"`
	IsTriggered    bool       `json:"is_triggered"`
	TriggeredAt    *time.Time `json:"triggered_at"`
	TriggeredPrice *float64   `json:"triggered_price"`
	CreatedAt      time.Time  `json:"created_at"`
}

// AlertWithQuote es la alerta enriquecida con el precio actual
type AlertWithQuote struct {
	PriceAlert
	CurrentPrice *float64 `json:"current_price"`
	StockName    *string  `json:"stock_name"`
}

// AlertCheckResult es el resultado de evaluar un conjunto de alertas
type AlertCheckResult struct {
	Triggered    []PriceAlert `json:"triggered_alerts"`
	TotalChecked int          `json:"total_checked"`
}
