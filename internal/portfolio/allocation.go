package portfolio

import (
	"sort"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
)

// OthersThreshold es el peso mínimo para tener segmento propio en el gráfico
const OthersThreshold = 5.0

const othersLabel = "OTHERS"

var chartColors = []string{"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF", "#FF9F40"}

// Allocate calcula el porcentaje de cada tenencia sobre el valor total.
// Las tenencias sin cotización se listan en Excluded y no participan del
// cálculo. Con valor total cero la distribución queda vacía.
func Allocate(summary models.PortfolioSummary) models.AllocationReport {
	report := models.AllocationReport{
		TotalValue:  summary.TotalValue,
		Allocations: []models.Allocation{},
		Excluded:    []string{},
	}

	for _, h := range summary.Holdings {
		if !h.HasQuote() {
			report.Excluded = append(report.Excluded, h.Ticker)
		}
	}

	if summary.TotalValue <= 0 {
		return report
	}

	for _, h := range summary.Holdings {
		if !h.HasQuote() {
			continue
		}
		report.Allocations = append(report.Allocations, models.Allocation{
			Ticker:  h.Ticker,
			Name:    h.Name,
			Value:   *h.CurrentValue,
			Percent: *h.CurrentValue / summary.TotalValue * 100,
		})
	}

	// Ordenar por valor (de mayor a menor)
	sort.SliceStable(report.Allocations, func(i, j int) bool {
		if report.Allocations[i].Value == report.Allocations[j].Value {
			return report.Allocations[i].Ticker < report.Allocations[j].Ticker
		}
		return report.Allocations[i].Value > report.Allocations[j].Value
	})

	return report
}

// PieChart arma los datos del gráfico de torta, acumulando en "OTHERS"
// las tenencias cuyo peso está por debajo del umbral.
func PieChart(report models.AllocationReport, threshold float64) models.PieChartData {
	chart := models.PieChartData{
		Labels:   []string{},
		Values:   []float64{},
		Colors:   []string{},
		Currency: "USD",
	}

	var othersPercent float64
	hasOthers := false

	for _, a := range report.Allocations {
		if a.Percent < threshold {
			othersPercent += a.Percent
			hasOthers = true
			continue
		}
		chart.Labels = append(chart.Labels, a.Ticker)
		chart.Values = append(chart.Values, RoundMoney(a.Percent))
		chart.Colors = append(chart.Colors, chartColors[len(chart.Colors)%len(chartColors)])
	}

	if hasOthers {
		chart.Labels = append(chart.Labels, othersLabel)
		chart.Values = append(chart.Values, RoundMoney(othersPercent))
		chart.Colors = append(chart.Colors, "#FF3B30") // Rojo para "OTHERS"
	}

	return chart
}
