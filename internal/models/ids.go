package models

import "github.com/google/uuid"

// GenerateUUID - Función auxiliar para generar IDs de entidades
func GenerateUUID() string {
	return uuid.NewString()
}

// Float devuelve un puntero al valor, útil para campos opcionales
func Float(v float64) *float64 {
	return &v
}
