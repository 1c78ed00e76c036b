package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/portfolio"
	"github.com/gin-gonic/gin"
)

// summarize valoriza las tenencias del usuario con cotizaciones en lote
func (h *Handlers) summarize(ctx context.Context, userID string) (models.PortfolioSummary, error) {
	holdings, err := h.holdingsRepo.GetHoldings(ctx, userID)
	if err != nil {
		return models.PortfolioSummary{}, err
	}

	var quotes map[string]*models.Quote
	if len(holdings) > 0 {
		tickers := make([]string, 0, len(holdings))
		for _, holding := range holdings {
			tickers = append(tickers, holding.Ticker)
		}
		quotes = h.market.GetQuotes(ctx, tickers)
	}

	return portfolio.Summarize(holdings, quotes), nil
}

// GetPortfolioSummary devuelve la valuación del portafolio
func (h *Handlers) GetPortfolioSummary(c *gin.Context) {
	summary, err := h.summarize(c.Request.Context(), c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if portfolio.MarketDataUnavailable(summary) {
		respondError(c, errMarketDataUnavailable)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetPortfolioAllocation devuelve la distribución y los datos del gráfico de torta
func (h *Handlers) GetPortfolioAllocation(c *gin.Context) {
	summary, err := h.summarize(c.Request.Context(), c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if portfolio.MarketDataUnavailable(summary) {
		respondError(c, errMarketDataUnavailable)
		return
	}

	report := portfolio.Allocate(summary)

	c.JSON(http.StatusOK, gin.H{
		"total_value": report.TotalValue,
		"allocations": report.Allocations,
		"excluded":    report.Excluded,
		"chart_data":  portfolio.PieChart(report, portfolio.OthersThreshold),
	})
}

// GetPortfolioPerformance reconstruye el valor histórico del portafolio
func (h *Handlers) GetPortfolioPerformance(c *gin.Context) {
	period, err := portfolio.ParsePeriod(c.DefaultQuery("period", portfolio.DefaultPeriod))
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	holdings, err := h.holdingsRepo.GetHoldings(ctx, c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	var histories map[string][]models.OHLC
	if len(holdings) > 0 {
		tickers := make([]string, 0, len(holdings))
		for _, holding := range holdings {
			tickers = append(tickers, holding.Ticker)
		}
		histories = h.market.GetHistories(ctx, tickers, period)
	}

	c.JSON(http.StatusOK, portfolio.BuildSeries(holdings, histories, period, time.Now().UTC()))
}
