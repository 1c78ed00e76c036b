package models

import "time"

// Dividend es un pago de dividendos recibido
type Dividend struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Ticker      string    `json:"ticker"`
	Amount      float64   `json:"amount"`
	Shares      float64   `json:"shares"`
	PerShare    float64   `json:"per_share"`
	PaymentDate time.Time `json:"payment_date"`
	CreatedAt   time.Time `json:"created_at"`
}

type TickerDividendTotal struct {
	Ticker string  `json:"ticker"`
	Total  float64 `json:"total"`
}

type MonthlyDividendTotal struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

// DividendSummary agrega los dividendos de un usuario
type DividendSummary struct {
	TotalDividends  float64                `json:"total_dividends"`
	TotalThisYear   float64                `json:"total_this_year"`
	TotalThisMonth  float64                `json:"total_this_month"`
	ByTicker        []TickerDividendTotal  `json:"by_ticker"`
	ByMonth         []MonthlyDividendTotal `json:"by_month"`
	RecentDividends []Dividend             `json:"recent_dividends"`
}
