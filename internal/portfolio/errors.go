package portfolio

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter se devuelve ante entradas mal formadas: período
// desconocido, cantidades no positivas, condición de alerta inválida.
var ErrInvalidParameter = errors.New("parámetro inválido")

func invalidParameter(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

// percentOf devuelve num/base*100, o nil si la base es cero
func percentOf(num, base float64) *float64 {
	if base == 0 {
		return nil
	}
	pct := num / base * 100
	return &pct
}
