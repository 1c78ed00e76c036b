package middleware

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/database"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/portfolio"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/repository"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

// fakeMarket devuelve cotizaciones e historiales fijos por ticker
type fakeMarket struct {
	mu        sync.Mutex
	quotes    map[string]*models.Quote
	histories map[string][]models.OHLC
	down      bool
}

func newFakeMarket() *fakeMarket {
	return &fakeMarket{
		quotes:    map[string]*models.Quote{},
		histories: map[string][]models.OHLC{},
	}
}

func (m *fakeMarket) setPrice(ticker string, price float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes[ticker] = &models.Quote{Ticker: ticker, Name: ticker + " Inc.", CurrentPrice: models.Float(price)}
}

func (m *fakeMarket) GetQuote(ctx context.Context, ticker string) (*models.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return nil, errors.New("proveedor caído")
	}
	quote, ok := m.quotes[portfolio.NormalizeTicker(ticker)]
	if !ok {
		return nil, services.ErrTickerNotFound
	}
	return quote, nil
}

func (m *fakeMarket) GetQuotes(ctx context.Context, tickers []string) map[string]*models.Quote {
	out := make(map[string]*models.Quote, len(tickers))
	for _, t := range tickers {
		t = portfolio.NormalizeTicker(t)
		quote, _ := m.GetQuote(ctx, t)
		out[t] = quote
	}
	return out
}

func (m *fakeMarket) GetHistory(ctx context.Context, ticker string, period portfolio.Period) ([]models.OHLC, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	history, ok := m.histories[portfolio.NormalizeTicker(ticker)]
	if !ok {
		return nil, services.ErrTickerNotFound
	}
	return history, nil
}

func (m *fakeMarket) GetHistories(ctx context.Context, tickers []string, period portfolio.Period) map[string][]models.OHLC {
	out := map[string][]models.OHLC{}
	for _, t := range tickers {
		if history, err := m.GetHistory(ctx, t, period); err == nil {
			out[portfolio.NormalizeTicker(t)] = history
		}
	}
	return out
}

func (m *fakeMarket) SearchTickers(ctx context.Context, query string, limit int) ([]models.TickerSearchResult, error) {
	var results []models.TickerSearchResult
	for ticker, quote := range m.quotes {
		if strings.Contains(ticker, strings.ToUpper(query)) && len(results) < limit {
			results = append(results, models.TickerSearchResult{Symbol: ticker, Name: quote.Name, Type: "EQUITY"})
		}
	}
	return results, nil
}

type testServer struct {
	router *gin.Engine
	db     *sql.DB
	market *fakeMarket
	h      *Handlers
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	t.Cleanup(func() { db.Close() })

	market := newFakeMarket()
	h := NewHandlers(db, market, testSecret)

	router := gin.New()
	router.POST("/signup", h.Signup)
	router.POST("/login", h.Login)
	router.GET("/market/quote/:ticker", h.GetQuote)
	router.GET("/market/history/:ticker", h.GetHistory)
	router.GET("/market/search", h.SearchTickers)
	router.POST("/market/compare", h.CompareStocks)
	router.GET("/market/compare/:a/:b", h.QuickCompare)
	router.POST("/webhooks/clerk", h.ClerkWebhookHandler(testWebhookSecret))

	protected := router.Group("/")
	protected.Use(AuthMiddleware(testSecret))
	protected.GET("/me", h.Me)
	protected.POST("/settings/change-password", h.ChangePassword)
	protected.DELETE("/settings/account", h.DeleteAccount)
	protected.GET("/holdings", h.GetHoldings)
	protected.POST("/holdings", h.CreateHolding)
	protected.GET("/holdings/:id", h.GetHolding)
	protected.PUT("/holdings/:id", h.UpdateHolding)
	protected.DELETE("/holdings/:id", h.DeleteHolding)
	protected.GET("/portfolio/summary", h.GetPortfolioSummary)
	protected.GET("/portfolio/allocation", h.GetPortfolioAllocation)
	protected.GET("/portfolio/performance", h.GetPortfolioPerformance)
	protected.POST("/alerts", h.CreateAlert)
	protected.GET("/alerts", h.GetAlerts)
	protected.GET("/alerts/check", h.CheckAlerts)
	protected.PUT("/alerts/:id", h.UpdateAlert)
	protected.POST("/alerts/:id/reset", h.ResetAlert)
	protected.DELETE("/alerts/:id", h.DeleteAlert)
	protected.POST("/goals", h.CreateGoal)
	protected.GET("/goals", h.GetGoals)
	protected.GET("/goals/:id", h.GetGoal)
	protected.PUT("/goals/:id", h.UpdateGoal)
	protected.DELETE("/goals/:id", h.DeleteGoal)
	protected.POST("/dividends", h.CreateDividend)
	protected.GET("/dividends", h.GetDividends)
	protected.GET("/dividends/summary", h.GetDividendSummary)
	protected.DELETE("/dividends/:id", h.DeleteDividend)
	protected.POST("/watchlist", h.AddToWatchlist)
	protected.GET("/watchlist", h.GetWatchlist)
	protected.DELETE("/watchlist/:ticker", h.RemoveFromWatchlist)

	admin := router.Group("/admin")
	admin.Use(AdminAuth("admin-key"))
	admin.GET("/users", h.GetUsers)
	admin.GET("/users/:id", h.GetUser)
	admin.DELETE("/users/:id", h.DeleteUserByAdmin)

	return &testServer{router: router, db: db, market: market, h: h}
}

// createUser registra un usuario con contraseña y devuelve su token
func (s *testServer) createUser(t *testing.T, email, password string) (*models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{Email: email, Password: string(hash), Name: "Test"}
	require.NoError(t, repository.NewUserRepository(s.db).CreateUser(context.Background(), user))

	token, err := GenerateToken(testSecret, user.ID)
	require.NoError(t, err)
	return user, token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
