package middleware

import (
	"net/http"
	"time"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/portfolio"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/services"
	"github.com/gin-gonic/gin"
)

// CreateAlert crea una alerta de precio. El ticker se valida con una cotización.
func (h *Handlers) CreateAlert(c *gin.Context) {
	var request struct {
		Ticker      string  `json:"ticker" binding:"required"`
		Condition   string  `json:"condition" binding:"required"`
		TargetPrice float64 `json:"target_price"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alert := &models.PriceAlert{
		UserID:      c.GetString("userId"),
		Ticker:      request.Ticker,
		Condition:   request.Condition,
		TargetPrice: request.TargetPrice,
	}
	if err := portfolio.ValidateAlert(alert); err != nil {
		respondError(c, err)
		return
	}

	quote, ok := h.lookupTicker(c, alert.Ticker)
	if !ok {
		return
	}

	if err := h.alertRepo.CreateAlert(c.Request.Context(), alert); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, withQuote(*alert, quote))
}

// GetAlerts lista las alertas del usuario con el precio actual de cada ticker
func (h *Handlers) GetAlerts(c *gin.Context) {
	ctx := c.Request.Context()
	alerts, err := h.alertRepo.GetAlerts(ctx, c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]models.AlertWithQuote, 0, len(alerts))
	if len(alerts) == 0 {
		c.JSON(http.StatusOK, result)
		return
	}

	tickers := make([]string, 0, len(alerts))
	for _, a := range alerts {
		tickers = append(tickers, a.Ticker)
	}
	quotes := h.market.GetQuotes(ctx, tickers)

	for _, a := range alerts {
		result = append(result, withQuote(a, quotes[portfolio.NormalizeTicker(a.Ticker)]))
	}

	c.JSON(http.StatusOK, result)
}

func withQuote(alert models.PriceAlert, quote *models.Quote) models.AlertWithQuote {
	enriched := models.AlertWithQuote{PriceAlert: alert}
	if quote != nil {
		enriched.CurrentPrice = quote.CurrentPrice
		if quote.Name != "" {
			name := quote.Name
			enriched.StockName = &name
		}
	}
	return enriched
}

// CheckAlerts evalúa las alertas activas del usuario y persiste las disparadas
func (h *Handlers) CheckAlerts(c *gin.Context) {
	ctx := c.Request.Context()
	alerts, err := h.alertRepo.GetAlerts(ctx, c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := services.EvaluateAlerts(ctx, alerts, h.market, h.alertRepo, time.Now().UTC())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateAlert modifica el precio objetivo y el estado activo
func (h *Handlers) UpdateAlert(c *gin.Context) {
	var request struct {
		TargetPrice *float64 `json:"target_price"`
		IsActive    *bool    `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	alert, err := h.alertRepo.GetAlert(c.Request.Context(), c.Param("id"), c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	if request.TargetPrice != nil {
		if *request.TargetPrice <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "El precio objetivo debe ser mayor a 0"})
			return
		}
		alert.TargetPrice = *request.TargetPrice
	}
	if request.IsActive != nil {
		if *request.IsActive {
			portfolio.Activate(alert)
		} else {
			portfolio.Deactivate(alert)
		}
	}

	ctx := c.Request.Context()
	if err := h.alertRepo.UpdateSettings(ctx, alert); err != nil {
		respondError(c, err)
		return
	}

	// Releer para devolver el estado de disparo vigente
	updated, err := h.alertRepo.GetAlert(ctx, alert.ID, alert.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// ResetAlert limpia el disparo y vuelve a activar la alerta
func (h *Handlers) ResetAlert(c *gin.Context) {
	alert, err := h.alertRepo.GetAlert(c.Request.Context(), c.Param("id"), c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	portfolio.Reset(alert)
	portfolio.Activate(alert)

	if err := h.alertRepo.SaveAlert(c.Request.Context(), alert); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, alert)
}

func (h *Handlers) DeleteAlert(c *gin.Context) {
	if err := h.alertRepo.DeleteAlert(c.Request.Context(), c.Param("id"), c.GetString("userId")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
