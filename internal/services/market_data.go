package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/portfolio"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	DefaultMarketDataURL   = "https://query1.finance.yahoo.com"
	DefaultMarketTimeout   = 10 * time.Second
	DefaultMarketRateLimit = 5 // solicitudes por segundo
)

// ErrTickerNotFound se devuelve cuando el proveedor no tiene datos del ticker
var ErrTickerNotFound = errors.New("ticker no encontrado")

// MarketDataClient obtiene cotizaciones, historial y búsquedas de Yahoo Finance
type MarketDataClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// MarketDataOption configura el cliente
type MarketDataOption func(*MarketDataClient)

func WithBaseURL(baseURL string) MarketDataOption {
	return func(c *MarketDataClient) {
		c.baseURL = baseURL
	}
}

func WithTimeout(timeout time.Duration) MarketDataOption {
	return func(c *MarketDataClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithRateLimit limita las solicitudes por segundo hacia el proveedor
func WithRateLimit(requestsPerSecond float64) MarketDataOption {
	return func(c *MarketDataClient) {
		// Ráfaga de al menos 1 para que tasas fraccionarias como 0.5 no bloqueen
		burst := int(math.Ceil(requestsPerSecond))
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}
}

// NewMarketDataClient crea el cliente de datos de mercado
func NewMarketDataClient(opts ...MarketDataOption) *MarketDataClient {
	c := &MarketDataClient{
		baseURL: DefaultMarketDataURL,
		httpClient: &http.Client{
			Timeout: DefaultMarketTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultMarketRateLimit), DefaultMarketRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// chartResponse es la respuesta de /v8/finance/chart; cualquier valor puede ser null
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string   `json:"symbol"`
				ShortName          string   `json:"shortName"`
				LongName           string   `json:"longName"`
				RegularMarketPrice *float64 `json:"regularMarketPrice"`
				PreviousClose      *float64 `json:"previousClose"`
				ChartPreviousClose *float64 `json:"chartPreviousClose"`
				DayHigh            *float64 `json:"regularMarketDayHigh"`
				DayLow             *float64 `json:"regularMarketDayLow"`
				Volume             *float64 `json:"regularMarketVolume"`
				FiftyTwoWeekHigh   *float64 `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow    *float64 `json:"fiftyTwoWeekLow"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type searchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		ShortName string `json:"shortname"`
		LongName  string `json:"longname"`
		Exchange  string `json:"exchange"`
		QuoteType string `json:"quoteType"`
	} `json:"quotes"`
}

// get ejecuta la solicitud respetando el límite y decodifica el JSON
func (c *MarketDataClient) get(ctx context.Context, endpoint, ticker string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("espera del límite de solicitudes: %w", err)
	}

	reqURL := c.baseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("error al crear la solicitud: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		log.Error().Err(err).Str("ticker", ticker).Dur("elapsed", elapsed).Msg("error en la solicitud de datos de mercado")
		return fmt.Errorf("error al ejecutar la solicitud: %w", err)
	}
	defer resp.Body.Close()

	log.Debug().Str("endpoint", endpoint).Str("ticker", ticker).Int("status", resp.StatusCode).Dur("elapsed", elapsed).Msg("solicitud de datos de mercado")

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("error del proveedor de datos: status %d para %s", resp.StatusCode, ticker)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error al decodificar la respuesta: %w", err)
	}
	return nil
}

func (c *MarketDataClient) chart(ctx context.Context, ticker, rangeParam string) (*chartResponse, error) {
	params := url.Values{}
	params.Set("range", rangeParam)
	params.Set("interval", "1d")

	var resp chartResponse
	if err := c.get(ctx, "/v8/finance/chart/"+url.PathEscape(ticker), ticker, params, &resp); err != nil {
		return nil, err
	}
	if resp.Chart.Error != nil || len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}
	return &resp, nil
}

// GetQuote obtiene la cotización actual. Sin precio de mercado devuelve ErrTickerNotFound.
func (c *MarketDataClient) GetQuote(ctx context.Context, ticker string) (*models.Quote, error) {
	ticker = portfolio.NormalizeTicker(ticker)
	if ticker == "" {
		return nil, fmt.Errorf("%w: ticker vacío", ErrTickerNotFound)
	}

	resp, err := c.chart(ctx, ticker, "5d")
	if err != nil {
		return nil, err
	}

	result := resp.Chart.Result[0]
	meta := result.Meta
	if meta.RegularMarketPrice == nil {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}

	quote := &models.Quote{
		Ticker:           ticker,
		Name:             meta.ShortName,
		CurrentPrice:     meta.RegularMarketPrice,
		DayHigh:          meta.DayHigh,
		DayLow:           meta.DayLow,
		Volume:           meta.Volume,
		FiftyTwoWeekHigh: meta.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:  meta.FiftyTwoWeekLow,
	}
	if quote.Name == "" {
		quote.Name = meta.LongName
	}
	if quote.Name == "" {
		quote.Name = ticker
	}

	// Cierre anterior: el informado, o el penúltimo cierre de la serie
	quote.PreviousClose = meta.PreviousClose
	if quote.PreviousClose == nil && len(result.Indicators.Quote) > 0 {
		quote.PreviousClose = previousClose(result.Indicators.Quote[0].Close)
	}
	if quote.PreviousClose == nil {
		quote.PreviousClose = meta.ChartPreviousClose
	}

	if quote.PreviousClose != nil {
		change := *quote.CurrentPrice - *quote.PreviousClose
		quote.DayChange = &change
		if *quote.PreviousClose != 0 {
			pct := change / *quote.PreviousClose * 100
			quote.DayChangePercent = &pct
		}
	}

	return quote, nil
}

// previousClose devuelve el penúltimo cierre no nulo
func previousClose(closes []*float64) *float64 {
	seen := 0
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] == nil {
			continue
		}
		seen++
		if seen == 2 {
			v := *closes[i]
			return &v
		}
	}
	return nil
}

// GetQuotes obtiene las cotizaciones de varios tickers. Los errores por
// ticker se registran y quedan como entrada nil en el mapa.
func (c *MarketDataClient) GetQuotes(ctx context.Context, tickers []string) map[string]*models.Quote {
	quotes := make(map[string]*models.Quote, len(tickers))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, ticker := range uniqueTickers(tickers) {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()

			quote, err := c.GetQuote(ctx, ticker)
			if err != nil {
				log.Warn().Err(err).Str("ticker", ticker).Msg("error al obtener cotización")
			}

			mu.Lock()
			quotes[ticker] = quote
			mu.Unlock()
		}(ticker)
	}

	wg.Wait()
	return quotes
}

// GetHistory obtiene los cierres diarios del período
func (c *MarketDataClient) GetHistory(ctx context.Context, ticker string, period portfolio.Period) ([]models.OHLC, error) {
	ticker = portfolio.NormalizeTicker(ticker)

	resp, err := c.chart(ctx, ticker, period.String())
	if err != nil {
		return nil, err
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: %s sin historial", ErrTickerNotFound, ticker)
	}
	series := result.Indicators.Quote[0]

	history := make([]models.OHLC, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		closeValue, ok := at(series.Close, i)
		if !ok {
			continue
		}
		open, _ := at(series.Open, i)
		high, _ := at(series.High, i)
		low, _ := at(series.Low, i)

		var volume int64
		if i < len(series.Volume) && series.Volume[i] != nil {
			volume = *series.Volume[i]
		}

		history = append(history, models.OHLC{
			Date:   time.Unix(ts, 0).UTC(),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closeValue,
			Volume: volume,
		})
	}

	if len(history) == 0 {
		return nil, fmt.Errorf("%w: %s sin historial", ErrTickerNotFound, ticker)
	}
	return history, nil
}

func at(values []*float64, i int) (float64, bool) {
	if i >= len(values) || values[i] == nil {
		return 0, false
	}
	return *values[i], true
}

// GetHistories obtiene el historial de varios tickers; los que fallan se omiten
func (c *MarketDataClient) GetHistories(ctx context.Context, tickers []string, period portfolio.Period) map[string][]models.OHLC {
	histories := make(map[string][]models.OHLC, len(tickers))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, ticker := range uniqueTickers(tickers) {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()

			history, err := c.GetHistory(ctx, ticker, period)
			if err != nil {
				log.Warn().Err(err).Str("ticker", ticker).Str("period", period.String()).Msg("error al obtener historial")
				return
			}

			mu.Lock()
			histories[ticker] = history
			mu.Unlock()
		}(ticker)
	}

	wg.Wait()
	return histories
}

// SearchTickers busca acciones y ETFs por nombre o símbolo
func (c *MarketDataClient) SearchTickers(ctx context.Context, query string, limit int) ([]models.TickerSearchResult, error) {
	results := []models.TickerSearchResult{}
	if query == "" {
		return results, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("quotesCount", strconv.Itoa(limit))
	params.Set("newsCount", "0")
	params.Set("enableFuzzyQuery", "false")
	params.Set("quotesQueryId", "tss_match_phrase_query")

	var resp searchResponse
	if err := c.get(ctx, "/v1/finance/search", query, params, &resp); err != nil {
		return nil, err
	}

	for _, q := range resp.Quotes {
		if q.QuoteType != "EQUITY" && q.QuoteType != "ETF" {
			continue
		}
		name := q.ShortName
		if name == "" {
			name = q.LongName
		}
		results = append(results, models.TickerSearchResult{
			Symbol:   q.Symbol,
			Name:     name,
			Exchange: q.Exchange,
			Type:     q.QuoteType,
		})
		if limit > 0 && len(results) >= limit {
			break
		}
	}

	return results, nil
}

func uniqueTickers(tickers []string) []string {
	seen := make(map[string]struct{}, len(tickers))
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		t = portfolio.NormalizeTicker(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
