package portfolio

import (
	"strings"
	"time"
)

// Period es una ventana fija hacia atrás ("1mo", "1y", ...)
type Period struct {
	name   string
	years  int
	months int
	days   int
}

// DefaultPeriod es el período usado cuando el cliente no indica ninguno
const DefaultPeriod = "1mo"

// ValidPeriods lista los períodos aceptados, de menor a mayor
var ValidPeriods = []string{"1d", "5d", "1mo", "3mo", "6mo", "1y", "5y"}

var periods = map[string]Period{
	"1d":  {name: "1d", days: 1},
	"5d":  {name: "5d", days: 5},
	"1mo": {name: "1mo", months: 1},
	"3mo": {name: "3mo", months: 3},
	"6mo": {name: "6mo", months: 6},
	"1y":  {name: "1y", years: 1},
	"5y":  {name: "5y", years: 5},
}

// ParsePeriod convierte el texto del período; un valor desconocido es un
// ErrInvalidParameter, nunca se reemplaza por el período por defecto.
func ParsePeriod(s string) (Period, error) {
	p, ok := periods[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Period{}, invalidParameter("período %q inválido, debe ser uno de: %s", s, strings.Join(ValidPeriods, ", "))
	}
	return p, nil
}

func (p Period) String() string {
	return p.name
}

// Start devuelve el inicio (a medianoche UTC) de la ventana que termina en now
func (p Period) Start(now time.Time) time.Time {
	return startOfDay(now.AddDate(-p.years, -p.months, -p.days))
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
