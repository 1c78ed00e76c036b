package models

import "time"

// Estados de progreso de un objetivo
const (
	GoalStatusPending   = "pending"
	GoalStatusCompleted = "completed"
	GoalStatusExceeded  = "exceeded"
)

// Goal representa un objetivo de valor para el portafolio
type Goal struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Name         string     `json:"name"`
	TargetAmount float64    `json:"target_amount"`
	TargetDate   *time.Time `json:"target_date"`
	Description  *string    `json:"description"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ProgressInfo contiene información sobre el progreso hacia el objetivo
type ProgressInfo struct {
	Percent       float64 `json:"percent"`                  // Porcentaje de progreso (0-100)
	RawPercent    float64 `json:"raw_percent"`              // Porcentaje real sin limitar a 100%
	Status        string  `json:"status"`                   // "pending", "completed", "exceeded"
	ExcessAmount  float64 `json:"excess_amount,omitempty"`  // Cantidad que excede el objetivo
	ExcessPercent float64 `json:"excess_percent,omitempty"` // Porcentaje que excede el objetivo
}

// GoalProgress es el objetivo con sus campos derivados
type GoalProgress struct {
	Goal
	CurrentAmount   float64       `json:"current_amount"`
	ProgressPercent *float64      `json:"progress_percent"`
	AmountRemaining float64       `json:"amount_remaining"`
	DaysRemaining   *int          `json:"days_remaining"`
	OnTrack         *bool         `json:"on_track"`
	Progress        *ProgressInfo `json:"progress,omitempty"`
}
