package portfolio

import "github.com/shopspring/decimal"

// RoundMoney redondea a dos decimales para presentación
func RoundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// sumAmounts suma importes sin arrastrar error de punto flotante
func sumAmounts(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.InexactFloat64()
}
