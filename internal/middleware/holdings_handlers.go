package middleware

import (
	"errors"
	"net/http"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/portfolio"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/repository"
	"github.com/gin-gonic/gin"
)

func (h *Handlers) CreateHolding(c *gin.Context) {
	var request struct {
		Ticker       string  `json:"ticker" binding:"required"`
		Quantity     float64 `json:"quantity" binding:"required"`
		AvgCostBasis float64 `json:"avg_cost_basis" binding:"required"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	holding := &models.Holding{
		UserID:       c.GetString("userId"),
		Ticker:       request.Ticker,
		Quantity:     request.Quantity,
		AvgCostBasis: request.AvgCostBasis,
	}
	if err := portfolio.ValidateHolding(holding); err != nil {
		respondError(c, err)
		return
	}

	if err := h.holdingsRepo.CreateHolding(c.Request.Context(), holding); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "Ya tienes una tenencia de " + holding.Ticker + ". Usa PUT para actualizarla."})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, holding)
}

func (h *Handlers) GetHoldings(c *gin.Context) {
	holdings, err := h.holdingsRepo.GetHoldings(c.Request.Context(), c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, holdings)
}

func (h *Handlers) GetHolding(c *gin.Context) {
	holding, err := h.holdingsRepo.GetHolding(c.Request.Context(), c.Param("id"), c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, holding)
}

// UpdateHolding actualiza solo los campos enviados
func (h *Handlers) UpdateHolding(c *gin.Context) {
	var request struct {
		Ticker       *string  `json:"ticker"`
		Quantity     *float64 `json:"quantity"`
		AvgCostBasis *float64 `json:"avg_cost_basis"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	holding, err := h.holdingsRepo.GetHolding(c.Request.Context(), c.Param("id"), c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	if request.Ticker != nil {
		holding.Ticker = *request.Ticker
	}
	if request.Quantity != nil {
		holding.Quantity = *request.Quantity
	}
	if request.AvgCostBasis != nil {
		holding.AvgCostBasis = *request.AvgCostBasis
	}

	if err := portfolio.ValidateHolding(holding); err != nil {
		respondError(c, err)
		return
	}

	if err := h.holdingsRepo.UpdateHolding(c.Request.Context(), holding); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, holding)
}

func (h *Handlers) DeleteHolding(c *gin.Context) {
	if err := h.holdingsRepo.DeleteHolding(c.Request.Context(), c.Param("id"), c.GetString("userId")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
