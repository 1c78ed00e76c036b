package middleware

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/portfolio"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/repository"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// MarketData es el proveedor de cotizaciones que usan los handlers
type MarketData interface {
	GetQuote(ctx context.Context, ticker string) (*models.Quote, error)
	GetQuotes(ctx context.Context, tickers []string) map[string]*models.Quote
	GetHistory(ctx context.Context, ticker string, period portfolio.Period) ([]models.OHLC, error)
	GetHistories(ctx context.Context, tickers []string, period portfolio.Period) map[string][]models.OHLC
	SearchTickers(ctx context.Context, query string, limit int) ([]models.TickerSearchResult, error)
}

// Handlers agrupa los repositorios y servicios de la API
type Handlers struct {
	userRepo      *repository.UserRepository
	holdingsRepo  *repository.HoldingsRepository
	alertRepo     *repository.AlertRepository
	goalRepo      *repository.GoalRepository
	dividendRepo  *repository.DividendRepository
	watchlistRepo *repository.WatchlistRepository
	market        MarketData
	jwtSecret     string
}

// NewHandlers crea los handlers sobre la base de datos y el proveedor de mercado
func NewHandlers(db *sql.DB, market MarketData, jwtSecret string) *Handlers {
	return &Handlers{
		userRepo:      repository.NewUserRepository(db),
		holdingsRepo:  repository.NewHoldingsRepository(db),
		alertRepo:     repository.NewAlertRepository(db),
		goalRepo:      repository.NewGoalRepository(db),
		dividendRepo:  repository.NewDividendRepository(db),
		watchlistRepo: repository.NewWatchlistRepository(db),
		market:        market,
		jwtSecret:     jwtSecret,
	}
}

// AlertRepository expone el repositorio para el servicio de alertas en segundo plano
func (h *Handlers) AlertRepository() *repository.AlertRepository {
	return h.alertRepo
}

// errMarketDataUnavailable indica que había tenencias pero no se obtuvo ninguna cotización
var errMarketDataUnavailable = errors.New("no se pudieron obtener datos de mercado")

// respondError traduce los errores de dominio a códigos HTTP
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Error interno del servidor"

	switch {
	case errors.Is(err, portfolio.ErrInvalidParameter):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, repository.ErrNotFound):
		status, message = http.StatusNotFound, "Registro no encontrado"
	case errors.Is(err, repository.ErrForbidden):
		status, message = http.StatusForbidden, "No tienes permiso sobre este registro"
	case errors.Is(err, repository.ErrDuplicate):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, services.ErrTickerNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, errMarketDataUnavailable):
		status, message = http.StatusBadGateway, err.Error()
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Str("user_id", c.GetString("userId")).Msg("error en la solicitud")
	}

	c.JSON(status, gin.H{"error": message})
}

// lookupTicker verifica que el ticker exista consultando su cotización
func (h *Handlers) lookupTicker(c *gin.Context, ticker string) (*models.Quote, bool) {
	quote, err := h.market.GetQuote(c.Request.Context(), ticker)
	if err != nil {
		if errors.Is(err, services.ErrTickerNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ticker inválido: " + ticker})
			return nil, false
		}
		log.Warn().Err(err).Str("ticker", ticker).Msg("error al validar ticker")
		c.JSON(http.StatusBadGateway, gin.H{"error": "No se pudo validar el ticker"})
		return nil, false
	}
	return quote, true
}
