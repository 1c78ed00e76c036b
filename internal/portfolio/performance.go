package portfolio

import (
	"sort"
	"time"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
)

// BuildSeries reconstruye el valor diario del portafolio en el período
// aplicando las cantidades de cada tenencia al cierre de ese día.
//
// Las fechas son la unión de las sesiones informadas por los tickers
// tenidos. Un ticker sin sesión en una fecha arrastra su último cierre;
// antes de su primer cierre en la ventana aporta 0. Una tenencia creada
// después de una fecha aporta 0 a esa fecha. Los tickers sin historial
// aportan 0 y se listan en MissingTickers. Los valores se redondean a 2
// decimales después de sumar.
func BuildSeries(holdings []models.Holding, historyByTicker map[string][]models.OHLC, period Period, now time.Time) models.PortfolioPerformance {
	from := period.Start(now)
	to := now.UTC()

	result := models.PortfolioPerformance{
		Period:         period.String(),
		Points:         []models.PerformancePoint{},
		MissingTickers: []string{},
	}

	series := make(map[string][]models.OHLC)
	dateSet := make(map[time.Time]struct{})

	for _, h := range holdings {
		result.TotalCost += h.Quantity * h.AvgCostBasis

		ticker := NormalizeTicker(h.Ticker)
		if _, seen := series[ticker]; seen {
			continue
		}

		bars := windowBars(historyByTicker[ticker], from, to)
		if len(bars) == 0 {
			result.MissingTickers = append(result.MissingTickers, h.Ticker)
			continue
		}

		series[ticker] = bars
		for _, bar := range bars {
			dateSet[bar.Date] = struct{}{}
		}
	}

	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	// Cursor por ticker sobre sus cierres ordenados; -1 hasta su primer cierre
	cursor := make(map[string]int, len(series))
	for ticker := range series {
		cursor[ticker] = -1
	}

	for _, date := range dates {
		for ticker, bars := range series {
			i := cursor[ticker]
			for i+1 < len(bars) && !bars[i+1].Date.After(date) {
				i++
			}
			cursor[ticker] = i
		}

		var value float64
		for _, h := range holdings {
			ticker := NormalizeTicker(h.Ticker)
			bars, ok := series[ticker]
			if !ok || cursor[ticker] < 0 || !heldOn(h, date) {
				continue
			}
			value += h.Quantity * bars[cursor[ticker]].Close
		}

		result.Points = append(result.Points, models.PerformancePoint{
			Date:           date,
			PortfolioValue: RoundMoney(value),
		})
	}

	if len(result.Points) == 0 {
		return result
	}

	result.StartValue = result.Points[0].PortfolioValue
	result.EndValue = result.Points[len(result.Points)-1].PortfolioValue
	result.High = result.StartValue
	result.Low = result.StartValue
	for _, p := range result.Points {
		if p.PortfolioValue > result.High {
			result.High = p.PortfolioValue
		}
		if p.PortfolioValue < result.Low {
			result.Low = p.PortfolioValue
		}
	}

	result.TotalCost = RoundMoney(result.TotalCost)
	result.PeriodReturn = RoundMoney(result.EndValue - result.StartValue)
	result.PeriodReturnPercent = percentOf(result.PeriodReturn, result.StartValue)

	// Rendimiento total contra el costo, no contra el inicio del período
	result.TotalReturn = RoundMoney(result.EndValue - result.TotalCost)
	result.TotalReturnPercent = percentOf(result.TotalReturn, result.TotalCost)

	return result
}

// windowBars normaliza las fechas a día UTC, elimina duplicados (gana el
// último) y filtra al rango [from, to].
func windowBars(bars []models.OHLC, from, to time.Time) []models.OHLC {
	byDay := make(map[time.Time]models.OHLC, len(bars))
	for _, bar := range bars {
		day := startOfDay(bar.Date)
		if day.Before(from) || day.After(to) {
			continue
		}
		bar.Date = day
		byDay[day] = bar
	}

	out := make([]models.OHLC, 0, len(byDay))
	for _, bar := range byDay {
		out = append(out, bar)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// heldOn indica si la tenencia ya existía en la fecha
func heldOn(h models.Holding, date time.Time) bool {
	if h.CreatedAt.IsZero() {
		return true
	}
	return !startOfDay(h.CreatedAt).After(date)
}

// MonthlyReturn es la variación porcentual entre el primer y el último cierre
func MonthlyReturn(history []models.OHLC) *float64 {
	if len(history) < 2 {
		return nil
	}
	first := history[0].Close
	last := history[len(history)-1].Close
	pct := percentOf(last-first, first)
	if pct == nil {
		return nil
	}
	rounded := RoundMoney(*pct)
	return &rounded
}
