package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/portfolio"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Límites de la comparación de acciones
const (
	minCompareTickers  = 2
	maxCompareTickers  = 5
	defaultSearchLimit = 10
	maxSearchLimit     = 50
	comparePeriod      = "3mo"
	quickComparePeriod = "1mo"
)

func (h *Handlers) GetQuote(c *gin.Context) {
	quote, err := h.market.GetQuote(c.Request.Context(), c.Param("ticker"))
	if err != nil {
		if errors.Is(err, services.ErrTickerNotFound) {
			respondError(c, err)
			return
		}
		log.Warn().Err(err).Str("ticker", c.Param("ticker")).Msg("error al obtener cotización")
		c.JSON(http.StatusBadGateway, gin.H{"error": "No se pudo obtener la cotización"})
		return
	}

	c.JSON(http.StatusOK, quote)
}

// GetHistory devuelve el historial diario del ticker para el período pedido
func (h *Handlers) GetHistory(c *gin.Context) {
	period, err := portfolio.ParsePeriod(c.DefaultQuery("period", portfolio.DefaultPeriod))
	if err != nil {
		respondError(c, err)
		return
	}

	ticker := portfolio.NormalizeTicker(c.Param("ticker"))
	history, err := h.market.GetHistory(c.Request.Context(), ticker, period)
	if err != nil && !errors.Is(err, services.ErrTickerNotFound) {
		log.Warn().Err(err).Str("ticker", ticker).Msg("error al obtener historial")
		c.JSON(http.StatusBadGateway, gin.H{"error": "No se pudo obtener el historial"})
		return
	}
	if len(history) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No hay datos históricos para " + ticker})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ticker":  ticker,
		"period":  period.String(),
		"history": history,
	})
}

func (h *Handlers) SearchTickers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El parámetro q es obligatorio"})
		return
	}

	limit := defaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "El límite debe ser un entero positivo"})
			return
		}
		limit = min(parsed, maxSearchLimit)
	}

	results, err := h.market.SearchTickers(c.Request.Context(), query, limit)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("error al buscar tickers")
		c.JSON(http.StatusBadGateway, gin.H{"error": "No se pudo completar la búsqueda"})
		return
	}

	c.JSON(http.StatusOK, results)
}

// CompareStocks compara entre 2 y 5 tickers con su historial de 3 meses
func (h *Handlers) CompareStocks(c *gin.Context) {
	var request struct {
		Tickers []string `json:"tickers"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tickers := make([]string, 0, len(request.Tickers))
	seen := make(map[string]struct{}, len(request.Tickers))
	for _, t := range request.Tickers {
		t = portfolio.NormalizeTicker(t)
		if _, ok := seen[t]; ok || t == "" {
			continue
		}
		seen[t] = struct{}{}
		tickers = append(tickers, t)
	}

	if len(tickers) < minCompareTickers {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Se necesitan al menos 2 tickers para comparar"})
		return
	}
	if len(tickers) > maxCompareTickers {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Se pueden comparar como máximo 5 tickers"})
		return
	}

	period, _ := portfolio.ParsePeriod(comparePeriod)
	ctx := c.Request.Context()
	stocks := make([]models.StockComparison, 0, len(tickers))
	for _, ticker := range tickers {
		quote, ok := h.lookupTicker(c, ticker)
		if !ok {
			return
		}

		history, err := h.market.GetHistory(ctx, ticker, period)
		if err != nil {
			log.Warn().Err(err).Str("ticker", ticker).Msg("error al obtener historial para comparar")
		}

		stocks = append(stocks, models.StockComparison{
			Quote:         *quote,
			MonthlyReturn: portfolio.MonthlyReturn(history),
			History:       history,
		})
	}

	c.JSON(http.StatusOK, gin.H{"stocks": stocks})
}

// QuickCompare compara dos tickers por su rendimiento del último mes
func (h *Handlers) QuickCompare(c *gin.Context) {
	period, _ := portfolio.ParsePeriod(quickComparePeriod)
	ctx := c.Request.Context()

	stocks := make([]models.StockComparison, 0, 2)
	for _, ticker := range []string{c.Param("a"), c.Param("b")} {
		ticker = portfolio.NormalizeTicker(ticker)
		quote, ok := h.lookupTicker(c, ticker)
		if !ok {
			return
		}

		history, err := h.market.GetHistory(ctx, ticker, period)
		if err != nil {
			log.Warn().Err(err).Str("ticker", ticker).Msg("error al obtener historial para comparar")
		}

		stocks = append(stocks, models.StockComparison{
			Quote:         *quote,
			MonthlyReturn: portfolio.MonthlyReturn(history),
		})
	}

	c.JSON(http.StatusOK, gin.H{"stocks": stocks})
}
