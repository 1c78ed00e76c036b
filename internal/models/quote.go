package models

import "time"

// Quote es una cotización puntual; cualquier campo numérico puede faltar.
type Quote struct {
	Ticker           string   `json:"ticker"`
	Name             string   `json:"name"`
	CurrentPrice     *float64 `json:"current_price"`
	PreviousClose    *float64 `json:"previous_close"`
	DayChange        *float64 `json:"day_change"`
	DayChangePercent *float64 `json:"day_change_percent"`
	DayHigh          *float64 `json:"day_high"`
	DayLow           *float64 `json:"day_low"`
	Volume           *float64 `json:"volume"`
	MarketCap        *float64 `json:"market_cap"`
	FiftyTwoWeekHigh *float64 `json:"fifty_two_week_high"`
	FiftyTwoWeekLow  *float64 `json:"fifty_two_week_low"`
}

// OHLC es un punto diario del historial de precios
type OHLC struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// TickerSearchResult es un resultado de búsqueda de símbolos
type TickerSearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Type     string `json:"type"`
}

// StockComparison agrupa cotización e historial para comparar tickers
type StockComparison struct {
	Quote
	MonthlyReturn *float64 `json:"monthly_return,omitempty"`
	History       []OHLC   `json:"history,omitempty"`
}
