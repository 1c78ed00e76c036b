package middleware

import (
	"errors"
	"net/http"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/portfolio"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/repository"
	"github.com/gin-gonic/gin"
)

func (h *Handlers) AddToWatchlist(c *gin.Context) {
	var request struct {
		Ticker string `json:"ticker" binding:"required"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := &models.WatchlistItem{
		UserID: c.GetString("userId"),
		Ticker: portfolio.NormalizeTicker(request.Ticker),
	}
	if item.Ticker == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El ticker es obligatorio"})
		return
	}

	if _, ok := h.lookupTicker(c, item.Ticker); !ok {
		return
	}

	if err := h.watchlistRepo.AddTicker(c.Request.Context(), item); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": item.Ticker + " ya está en tu watchlist"})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// GetWatchlist lista la watchlist con los datos de mercado actuales
func (h *Handlers) GetWatchlist(c *gin.Context) {
	ctx := c.Request.Context()
	items, err := h.watchlistRepo.GetWatchlist(ctx, c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]models.WatchlistWithQuote, 0, len(items))
	if len(items) == 0 {
		c.JSON(http.StatusOK, result)
		return
	}

	tickers := make([]string, 0, len(items))
	for _, item := range items {
		tickers = append(tickers, item.Ticker)
	}
	quotes := h.market.GetQuotes(ctx, tickers)

	for _, item := range items {
		entry := models.WatchlistWithQuote{WatchlistItem: item, Name: item.Ticker}
		if quote := quotes[item.Ticker]; quote != nil {
			if quote.Name != "" {
				entry.Name = quote.Name
			}
			entry.CurrentPrice = quote.CurrentPrice
			entry.DayChange = quote.DayChange
			entry.DayChangePercent = quote.DayChangePercent
		}
		result = append(result, entry)
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handlers) RemoveFromWatchlist(c *gin.Context) {
	ticker := portfolio.NormalizeTicker(c.Param("ticker"))
	if err := h.watchlistRepo.RemoveTicker(c.Request.Context(), c.GetString("userId"), ticker); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
