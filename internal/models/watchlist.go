package models

import "time"

// WatchlistItem es un ticker seguido por el usuario
type WatchlistItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Ticker    string    `json:"ticker"`
	CreatedAt time.Time `json:"created_at"`
}

// WatchlistWithQuote es el ítem con los datos de mercado actuales
type WatchlistWithQuote struct {
	WatchlistItem
	Name             string   `json:"name"`
	CurrentPrice     *float64 `json:"current_price"`
	DayChange        *float64 `json:"day_change"`
	DayChangePercent *float64 `json:"day_change_percent"`
}
