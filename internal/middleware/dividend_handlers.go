package middleware

import (
	"net/http"
	"time"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/portfolio"
	"github.com/gin-gonic/gin"
)

// CreateDividend registra un pago de dividendos; el ticker se valida con una cotización
func (h *Handlers) CreateDividend(c *gin.Context) {
	var request struct {
		Ticker      string    `json:"ticker" binding:"required"`
		Amount      float64   `json:"amount"`
		Shares      float64   `json:"shares"`
		PerShare    float64   `json:"per_share"`
		PaymentDate time.Time `json:"payment_date" binding:"required"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dividend := &models.Dividend{
		UserID:      c.GetString("userId"),
		Ticker:      request.Ticker,
		Amount:      request.Amount,
		Shares:      request.Shares,
		PerShare:    request.PerShare,
		PaymentDate: request.PaymentDate,
	}
	if err := portfolio.ValidateDividend(dividend); err != nil {
		respondError(c, err)
		return
	}

	if _, ok := h.lookupTicker(c, dividend.Ticker); !ok {
		return
	}

	if err := h.dividendRepo.CreateDividend(c.Request.Context(), dividend); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dividend)
}

func (h *Handlers) GetDividends(c *gin.Context) {
	dividends, err := h.dividendRepo.GetDividends(c.Request.Context(), c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dividends)
}

func (h *Handlers) GetDividendSummary(c *gin.Context) {
	dividends, err := h.dividendRepo.GetDividends(c.Request.Context(), c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, portfolio.SummarizeDividends(dividends, time.Now().UTC()))
}

func (h *Handlers) DeleteDividend(c *gin.Context) {
	if err := h.dividendRepo.DeleteDividend(c.Request.Context(), c.Param("id"), c.GetString("userId")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
