package middleware

import (
	"net/http"
	"time"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/portfolio"
	"github.com/gin-gonic/gin"
)

type goalRequest struct {
	Name         *string    `json:"name"`
	TargetAmount *float64   `json:"target_amount"`
	TargetDate   *time.Time `json:"target_date"`
	Description  *string    `json:"description"`
}

// apply copia los campos enviados sobre el objetivo
func (r goalRequest) apply(g *models.Goal) {
	if r.Name != nil {
		g.Name = *r.Name
	}
	if r.TargetAmount != nil {
		g.TargetAmount = *r.TargetAmount
	}
	if r.TargetDate != nil {
		g.TargetDate = r.TargetDate
	}
	if r.Description != nil {
		g.Description = r.Description
	}
}

// portfolioValue devuelve el valor actual del portafolio del usuario
func (h *Handlers) portfolioValue(c *gin.Context) (float64, bool) {
	summary, err := h.summarize(c.Request.Context(), c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return 0, false
	}
	return summary.TotalValue, true
}

func (h *Handlers) CreateGoal(c *gin.Context) {
	var request goalRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal := &models.Goal{UserID: c.GetString("userId")}
	request.apply(goal)
	if err := portfolio.ValidateGoal(goal); err != nil {
		respondError(c, err)
		return
	}

	if err := h.goalRepo.CreateGoal(c.Request.Context(), goal); err != nil {
		respondError(c, err)
		return
	}

	current, ok := h.portfolioValue(c)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, portfolio.ProgressFor(*goal, current, time.Now().UTC()))
}

// GetGoals lista los objetivos con su progreso contra el valor actual
func (h *Handlers) GetGoals(c *gin.Context) {
	goals, err := h.goalRepo.GetGoals(c.Request.Context(), c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	result := make([]models.GoalProgress, 0, len(goals))
	if len(goals) == 0 {
		c.JSON(http.StatusOK, result)
		return
	}

	current, ok := h.portfolioValue(c)
	if !ok {
		return
	}

	now := time.Now().UTC()
	for _, g := range goals {
		result = append(result, portfolio.ProgressFor(g, current, now))
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handlers) GetGoal(c *gin.Context) {
	goal, err := h.goalRepo.GetGoal(c.Request.Context(), c.Param("id"), c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	current, ok := h.portfolioValue(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, portfolio.ProgressFor(*goal, current, time.Now().UTC()))
}

func (h *Handlers) UpdateGoal(c *gin.Context) {
	var request goalRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.goalRepo.GetGoal(c.Request.Context(), c.Param("id"), c.GetString("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	request.apply(goal)
	if err := portfolio.ValidateGoal(goal); err != nil {
		respondError(c, err)
		return
	}

	if err := h.goalRepo.UpdateGoal(c.Request.Context(), goal); err != nil {
		respondError(c, err)
		return
	}

	current, ok := h.portfolioValue(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, portfolio.ProgressFor(*goal, current, time.Now().UTC()))
}

func (h *Handlers) DeleteGoal(c *gin.Context) {
	if err := h.goalRepo.DeleteGoal(c.Request.Context(), c.Param("id"), c.GetString("userId")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
