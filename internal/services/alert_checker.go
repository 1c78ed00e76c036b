package services

import (
	"context"
	"sync"
	"time"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/portfolio"
	"github.com/rs/zerolog/log"
)

// AlertStore define las operaciones que necesitamos del repositorio de alertas
type AlertStore interface {
	GetActiveAlerts(ctx context.Context) ([]models.PriceAlert, error)
	MarkTriggered(ctx context.Context, alert models.PriceAlert) (bool, error)
}

// QuoteSource obtiene cotizaciones en lote
type QuoteSource interface {
	GetQuotes(ctx context.Context, tickers []string) map[string]*models.Quote
}

// EvaluateAlerts obtiene las cotizaciones de las alertas, las evalúa y
// persiste las que se dispararon. El resultado solo incluye las alertas que
// este llamado marcó como disparadas.
func EvaluateAlerts(ctx context.Context, alerts []models.PriceAlert, quotes QuoteSource, store AlertStore, now time.Time) (models.AlertCheckResult, error) {
	tickers := make([]string, 0, len(alerts))
	for _, a := range alerts {
		if a.IsActive && !a.IsTriggered {
			tickers = append(tickers, a.Ticker)
		}
	}

	var quoteMap map[string]*models.Quote
	if len(tickers) > 0 {
		quoteMap = quotes.GetQuotes(ctx, tickers)
	}

	result := portfolio.Check(alerts, quoteMap, now)

	persisted := make([]models.PriceAlert, 0, len(result.Triggered))
	for _, alert := range result.Triggered {
		marked, err := store.MarkTriggered(ctx, alert)
		if err != nil {
			return result, err
		}
		if marked {
			persisted = append(persisted, alert)
		}
	}
	result.Triggered = persisted

	return result, nil
}

// AlertChecker evalúa periódicamente las alertas activas de todos los usuarios
type AlertChecker struct {
	interval    time.Duration
	store       AlertStore
	quotes      QuoteSource
	isRunning   bool
	stopChan    chan struct{}
	doneChan    chan struct{}
	mutex       sync.Mutex
	lastChecked time.Time
}

// NewAlertChecker crea el servicio de verificación de alertas
func NewAlertChecker(interval time.Duration, store AlertStore, quotes QuoteSource) *AlertChecker {
	return &AlertChecker{
		interval: interval,
		store:    store,
		quotes:   quotes,
	}
}

// Start inicia el servicio de verificación en segundo plano
func (c *AlertChecker) Start() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.isRunning || c.interval <= 0 {
		return
	}

	c.isRunning = true
	c.stopChan = make(chan struct{})
	c.doneChan = make(chan struct{})

	go c.run(c.stopChan, c.doneChan)

	log.Info().Dur("interval", c.interval).Msg("servicio de alertas iniciado")
}

// Stop detiene el servicio y espera a que termine la verificación en curso
func (c *AlertChecker) Stop() {
	c.mutex.Lock()
	if !c.isRunning {
		c.mutex.Unlock()
		return
	}
	c.isRunning = false
	close(c.stopChan)
	done := c.doneChan
	c.mutex.Unlock()

	<-done
	log.Info().Msg("servicio de alertas detenido")
}

// IsRunning indica si el servicio está activo
func (c *AlertChecker) IsRunning() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.isRunning
}

// LastChecked devuelve la hora de la última verificación completa
func (c *AlertChecker) LastChecked() time.Time {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.lastChecked
}

func (c *AlertChecker) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-stop
		cancel()
	}()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := c.CheckNow(ctx); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("error al verificar alertas")
			}
		case <-stop:
			return
		}
	}
}

// CheckNow evalúa todas las alertas activas, usuario por usuario
func (c *AlertChecker) CheckNow(ctx context.Context) (models.AlertCheckResult, error) {
	total := models.AlertCheckResult{Triggered: []models.PriceAlert{}}

	alerts, err := c.store.GetActiveAlerts(ctx)
	if err != nil {
		return total, err
	}

	byUser := make(map[string][]models.PriceAlert)
	var users []string
	for _, a := range alerts {
		if _, ok := byUser[a.UserID]; !ok {
			users = append(users, a.UserID)
		}
		byUser[a.UserID] = append(byUser[a.UserID], a)
	}

	for _, userID := range users {
		result, err := EvaluateAlerts(ctx, byUser[userID], c.quotes, c.store, time.Now().UTC())
		if err != nil {
			return total, err
		}

		total.TotalChecked += result.TotalChecked
		total.Triggered = append(total.Triggered, result.Triggered...)

		for _, a := range result.Triggered {
			log.Info().
				Str("user_id", userID).
				Str("ticker", a.Ticker).
				Str("condition", a.Condition).
				Float64("target_price", a.TargetPrice).
				Float64("price", *a.TriggeredPrice).
				Msg("alerta disparada")
		}
	}

	c.mutex.Lock()
	c.lastChecked = time.Now()
	c.mutex.Unlock()

	log.Debug().Int("checked", total.TotalChecked).Int("triggered", len(total.Triggered)).Msg("verificación de alertas completa")
	return total, nil
}
