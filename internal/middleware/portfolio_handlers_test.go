package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolioSummary(t *testing.T) {
	s := newTestServer(t)
	_, token := s.createUser(t, "ana@example.com", "secreto1")
	s.market.setPrice("AAA", 12)

	s.do(t, http.MethodPost, "/holdings", token, gin.H{"ticker": "AAA", "quantity": 10, "avg_cost_basis": 10})
	s.do(t, http.MethodPost, "/holdings", token, gin.H{"ticker": "BBB", "quantity": 5, "avg_cost_basis": 20})

	w := s.do(t, http.MethodGet, "/portfolio/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	summary := decode[models.PortfolioSummary](t, w)
	assert.Equal(t, 120.0, summary.TotalValue)
	assert.Equal(t, 200.0, summary.TotalCost)
	assert.Equal(t, 2, summary.HoldingsCount)
	assert.Equal(t, 1, summary.PricedCount)
	assert.Equal(t, []string{"BBB"}, summary.UnpricedTickers)
}

func TestPortfolioSummary_EmptyPortfolio(t *testing.T) {
	s := newTestServer(t)
	_, token := s.createUser(t, "ana@example.com", "secreto1")

	w := s.do(t, http.MethodGet, "/portfolio/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	summary := decode[models.PortfolioSummary](t, w)
	assert.Zero(t, summary.TotalValue)
	assert.Zero(t, summary.HoldingsCount)
}

func TestPortfolioSummary_MarketDataDown(t *testing.T) {
	s := newTestServer(t)
	_, token := s.createUser(t, "ana@example.com", "secreto1")
	s.do(t, http.MethodPost, "/holdings", token, gin.H{"ticker": "AAA", "quantity": 1, "avg_cost_basis": 1})
	s.market.down = true

	assert.Equal(t, http.StatusBadGateway, s.do(t, http.MethodGet, "/portfolio/summary", token, nil).Code)
	assert.Equal(t, http.StatusBadGateway, s.do(t, http.MethodGet, "/portfolio/allocation", token, nil).Code)
}

func TestPortfolioAllocation(t *testing.T) {
	s := newTestServer(t)
	_, token := s.createUser(t, "ana@example.com", "secreto1")
	s.market.setPrice("AAA", 75)
	s.market.setPrice("BBB", 25)

	s.do(t, http.MethodPost, "/holdings", token, gin.H{"ticker": "AAA", "quantity": 1, "avg_cost_basis": 50})
	s.do(t, http.MethodPost, "/holdings", token, gin.H{"ticker": "BBB", "quantity": 1, "avg_cost_basis": 50})

	w := s.do(t, http.MethodGet, "/portfolio/allocation", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode[struct {
		TotalValue  float64             `json:"total_value"`
		Allocations []models.Allocation `json:"allocations"`
		ChartData   models.PieChartData `json:"chart_data"`
	}](t, w)
	assert.Equal(t, 100.0, body.TotalValue)
	require.Len(t, body.Allocations, 2)
	assert.Equal(t, "AAA", body.Allocations[0].Ticker)
	assert.Equal(t, 75.0, body.Allocations[0].Percent)
	assert.Equal(t, []string{"AAA", "BBB"}, body.ChartData.Labels)
}

func TestPortfolioPerformance(t *testing.T) {
	s := newTestServer(t)
	_, token := s.createUser(t, "ana@example.com", "secreto1")
	s.do(t, http.MethodPost, "/holdings", token, gin.H{"ticker": "AAA", "quantity": 2, "avg_cost_basis": 10})

	today := time.Now().UTC().Truncate(24 * time.Hour)
	s.market.histories["AAA"] = []models.OHLC{{Date: today, Close: 15}}

	w := s.do(t, http.MethodGet, "/portfolio/performance", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	perf := decode[models.PortfolioPerformance](t, w)
	assert.Equal(t, "1mo", perf.Period)
	require.Len(t, perf.Points, 1)
	assert.Equal(t, 30.0, perf.EndValue)
	assert.Equal(t, 20.0, perf.TotalCost)
	assert.Equal(t, 10.0, perf.TotalReturn)
}

func TestPortfolioPerformance_InvalidPeriod(t *testing.T) {
	s := newTestServer(t)
	_, token := s.createUser(t, "ana@example.com", "secreto1")

	w := s.do(t, http.MethodGet, "/portfolio/performance?period=2w", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "2w")
}
