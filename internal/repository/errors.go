package repository

import (
	"errors"
	"time"
)

var (
	// ErrNotFound se devuelve cuando la fila no existe
	ErrNotFound = errors.New("registro no encontrado")
	// ErrForbidden se devuelve cuando la fila existe pero pertenece a otro usuario
	ErrForbidden = errors.New("no tienes permiso sobre este registro")
	// ErrDuplicate se devuelve al repetir un ticker en tenencias o watchlist
	ErrDuplicate = errors.New("el registro ya existe")
)

// scanner abstrae *sql.Row y *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

// checkOwner traduce el dueño de una fila existente en ErrForbidden
func checkOwner(ownerID, userID string) error {
	if ownerID != userID {
		return ErrForbidden
	}
	return nil
}

// now devuelve la hora actual en UTC, sin monotónico, para guardar en la base
func now() time.Time {
	return time.Now().UTC().Round(0)
}
