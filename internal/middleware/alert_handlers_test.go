package middleware

import (
	"net/http"
	"testing"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlerts_CreateAndList(t *testing.T) {
	s := newTestServer(t)
	_, token := s.createUser(t, "ana@example.com", "secreto1")
	s.market.setPrice("AAPL", 180)

	w := s.do(t, http.MethodPost, "/alerts", token, gin.H{"ticker": "aapl", "condition": "above", "target_price": 200})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.AlertWithQuote](t, w)
	assert.Equal(t, "AAPL", created.Ticker)
	assert.Equal(t, models.AlertConditionAbove, created.Condition)
	assert.True(t, created.IsActive)
	assert.False(t, created.IsTriggered)

	w = s.do(t, http.MethodGet, "/alerts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	alerts := decode[[]models.AlertWithQuote](t, w)
	require.Len(t, alerts, 1)
	require.NotNil(t, alerts[0].CurrentPrice)
	assert.Equal(t, 180.0, *alerts[0].CurrentPrice)
	require.NotNil(t, alerts[0].StockName)
	assert.Equal(t, "AAPL Inc.", *alerts[0].StockName)
}

func TestAlerts_CreateValidation(t *testing.T) {
	s := newTestServer(t)
	_, token := s.createUser(t, "ana@example.com", "secreto1")
	s.market.setPrice("AAPL", 180)

	w := s.do(t, http.MethodPost, "/alerts", token, gin.H{"ticker": "AAPL", "condition": "sideways", "target_price": 200})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/alerts", token, gin.H{"ticker": "AAPL", "condition": "below", "target_price": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/alerts", token, gin.H{"ticker": "ZZZZ", "condition": "below", "target_price": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ZZZZ")

	s.market.down = true
	w = s.do(t, http.MethodPost, "/alerts", token, gin.H{"ticker": "AAPL", "condition": "below", "target_price": 10})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestAlerts_CheckResetAndRetrigger(t *testing.T) {
	s := newTestServer(t)
	_, token := s.createUser(t, "ana@example.com", "secreto1")
	s.market.setPrice("AAPL", 180)

	w := s.do(t, http.MethodPost, "/alerts", token, gin.H{"ticker": "AAPL", "condition": "ABOVE", "target_price": 200})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[models.AlertWithQuote](t, w).ID

	w = s.do(t, http.MethodGet, "/alerts/check", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	result := decode[models.AlertCheckResult](t, w)
	assert.Equal(t, 1, result.TotalChecked)
	assert.Empty(t, result.Triggered)

	s.market.setPrice("AAPL", 200)
	w = s.do(t, http.MethodGet, "/alerts/check", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	result = decode[models.AlertCheckResult](t, w)
	require.Len(t, result.Triggered, 1)
	require.NotNil(t, result.Triggered[0].TriggeredPrice)
	assert.Equal(t, 200.0, *result.Triggered[0].TriggeredPrice)

	// Una alerta disparada no se vuelve a evaluar
	w = s.do(t, http.MethodGet, "/alerts/check", token, nil)
	result = decode[models.AlertCheckResult](t, w)
	assert.Zero(t, result.TotalChecked)
	assert.Empty(t, result.Triggered)

	w = s.do(t, http.MethodPost, "/alerts/"+id+"/reset", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	reset := decode[models.PriceAlert](t, w)
	assert.True(t, reset.IsActive)
	assert.False(t, reset.IsTriggered)
	assert.Nil(t, reset.TriggeredAt)
	assert.Nil(t, reset.TriggeredPrice)

	w = s.do(t, http.MethodGet, "/alerts/check", token, nil)
	result = decode[models.AlertCheckResult](t, w)
	assert.Len(t, result.Triggered, 1)
}

func TestAlerts_UpdateAndDelete(t *testing.T) {
	s := newTestServer(t)
	_, token := s.createUser(t, "ana@example.com", "secreto1")
	_, intruder := s.createUser(t, "beto@example.com", "secreto1")
	s.market.setPrice("AAPL", 180)

	w := s.do(t, http.MethodPost, "/alerts", token, gin.H{"ticker": "AAPL", "condition": "BELOW", "target_price": 150})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[models.AlertWithQuote](t, w).ID

	w = s.do(t, http.MethodPut, "/alerts/"+id, token, gin.H{"target_price": 170, "is_active": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.PriceAlert](t, w)
	assert.Equal(t, 170.0, updated.TargetPrice)
	assert.False(t, updated.IsActive)

	w = s.do(t, http.MethodPut, "/alerts/"+id, token, gin.H{"target_price": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Inactiva: no se evalúa aunque el precio cruce el objetivo
	s.market.setPrice("AAPL", 100)
	result := decode[models.AlertCheckResult](t, s.do(t, http.MethodGet, "/alerts/check", token, nil))
	assert.Zero(t, result.TotalChecked)

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodDelete, "/alerts/"+id, intruder, nil).Code)
	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodDelete, "/alerts/"+id, token, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/alerts/"+id, token, nil).Code)
}

func TestAlerts_UpdateKeepsTriggerState(t *testing.T) {
	s := newTestServer(t)
	_, token := s.createUser(t, "ana@example.com", "secreto1")
	s.market.setPrice("AAPL", 210)

	w := s.do(t, http.MethodPost, "/alerts", token, gin.H{"ticker": "AAPL", "condition": "ABOVE", "target_price": 200})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[models.AlertWithQuote](t, w).ID

	result := decode[models.AlertCheckResult](t, s.do(t, http.MethodGet, "/alerts/check", token, nil))
	require.Len(t, result.Triggered, 1)

	w = s.do(t, http.MethodPut, "/alerts/"+id, token, gin.H{"target_price": 250})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.PriceAlert](t, w)
	assert.Equal(t, 250.0, updated.TargetPrice)
	assert.True(t, updated.IsTriggered)
	require.NotNil(t, updated.TriggeredPrice)
	assert.Equal(t, 210.0, *updated.TriggeredPrice)
}
