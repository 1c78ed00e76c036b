package portfolio

import (
	"sort"
	"time"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
)

// RecentDividendsLimit es la cantidad de dividendos recientes en el resumen
const RecentDividendsLimit = 5

// ValidateDividend normaliza el ticker y verifica los importes. Si no se
// informa el monto por acción se deriva de amount/shares.
func ValidateDividend(d *models.Dividend) error {
	d.Ticker = NormalizeTicker(d.Ticker)
	if d.Ticker == "" {
		return invalidParameter("el ticker es obligatorio")
	}
	if d.Amount < 0 {
		return invalidParameter("el monto no puede ser negativo")
	}
	if d.Shares < 0 {
		return invalidParameter("la cantidad de acciones no puede ser negativa")
	}
	if d.PerShare < 0 {
		return invalidParameter("el monto por acción no puede ser negativo")
	}
	if d.PaymentDate.IsZero() {
		return invalidParameter("la fecha de pago es obligatoria")
	}
	if d.PerShare == 0 && d.Shares > 0 {
		d.PerShare = d.Amount / d.Shares
	}
	return nil
}

// SummarizeDividends agrega los dividendos por ticker y por mes. Año y mes
// actuales se comparan en UTC.
func SummarizeDividends(dividends []models.Dividend, now time.Time) models.DividendSummary {
	now = now.UTC()

	summary := models.DividendSummary{
		ByTicker:        []models.TickerDividendTotal{},
		ByMonth:         []models.MonthlyDividendTotal{},
		RecentDividends: []models.Dividend{},
	}

	type monthKey struct {
		year  int
		month int
	}

	var all, thisYear, thisMonth []float64
	byTicker := make(map[string][]float64)
	byMonth := make(map[monthKey][]float64)

	for _, d := range dividends {
		paid := d.PaymentDate.UTC()
		all = append(all, d.Amount)

		if paid.Year() == now.Year() {
			thisYear = append(thisYear, d.Amount)
			if paid.Month() == now.Month() {
				thisMonth = append(thisMonth, d.Amount)
			}
		}

		ticker := NormalizeTicker(d.Ticker)
		byTicker[ticker] = append(byTicker[ticker], d.Amount)

		key := monthKey{year: paid.Year(), month: int(paid.Month())}
		byMonth[key] = append(byMonth[key], d.Amount)
	}

	summary.TotalDividends = sumAmounts(all...)
	summary.TotalThisYear = sumAmounts(thisYear...)
	summary.TotalThisMonth = sumAmounts(thisMonth...)

	for ticker, amounts := range byTicker {
		summary.ByTicker = append(summary.ByTicker, models.TickerDividendTotal{
			Ticker: ticker,
			Total:  sumAmounts(amounts...),
		})
	}
	sort.Slice(summary.ByTicker, func(i, j int) bool {
		a, b := summary.ByTicker[i], summary.ByTicker[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Ticker < b.Ticker
	})

	for key, amounts := range byMonth {
		summary.ByMonth = append(summary.ByMonth, models.MonthlyDividendTotal{
			Year:  key.year,
			Month: key.month,
			Total: sumAmounts(amounts...),
		})
	}
	sort.Slice(summary.ByMonth, func(i, j int) bool {
		a, b := summary.ByMonth[i], summary.ByMonth[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Month < b.Month
	})

	recent := make([]models.Dividend, len(dividends))
	copy(recent, dividends)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].PaymentDate.After(recent[j].PaymentDate)
	})
	if len(recent) > RecentDividendsLimit {
		recent = recent[:RecentDividendsLimit]
	}
	summary.RecentDividends = recent

	return summary
}
