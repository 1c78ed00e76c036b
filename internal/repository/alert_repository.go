package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
)

// AlertRepository maneja las alertas de precio
type AlertRepository struct {
	db *sql.DB
}

func NewAlertRepository(db *sql.DB) *AlertRepository {
	return &AlertRepository{
		db: db,
	}
}

const alertColumns = `id, user_id, ticker, condition_type, target_price, is_active, is_triggered, triggered_at, triggered_price, created_at`

func scanAlert(s scanner) (models.PriceAlert, error) {
	var a models.PriceAlert
	var triggeredAt sql.NullTime
	var triggeredPrice sql.NullFloat64

	err := s.Scan(&a.ID, &a.UserID, &a.Ticker, &a.Condition, &a.TargetPrice,
		&a.IsActive, &a.IsTriggered, &triggeredAt, &triggeredPrice, &a.CreatedAt)
	if err != nil {
		return a, err
	}

	if triggeredAt.Valid {
		t := triggeredAt.Time
		a.TriggeredAt = &t
	}
	if triggeredPrice.Valid {
		p := triggeredPrice.Float64
		a.TriggeredPrice = &p
	}
	return a, nil
}

func (r *AlertRepository) queryAlerts(ctx context.Context, query string, args ...any) ([]models.PriceAlert, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	alerts := []models.PriceAlert{}
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// CreateAlert guarda una alerta nueva, activa y sin disparar
func (r *AlertRepository) CreateAlert(ctx context.Context, a *models.PriceAlert) error {
	a.ID = models.GenerateUUID()
	a.CreatedAt = now()
	a.IsActive = true
	a.IsTriggered = false
	a.TriggeredAt = nil
	a.TriggeredPrice = nil

	query := `
		INSERT INTO price_alerts (id, user_id, ticker, condition_type, target_price, is_active, is_triggered, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query, a.ID, a.UserID, a.Ticker, a.Condition, a.TargetPrice, a.IsActive, a.IsTriggered, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("error al crear alerta: %w", err)
	}
	return nil
}

// GetAlerts devuelve las alertas del usuario, las más nuevas primero
func (r *AlertRepository) GetAlerts(ctx context.Context, userID string) ([]models.PriceAlert, error) {
	return r.queryAlerts(ctx, `SELECT `+alertColumns+` FROM price_alerts WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

// GetActiveAlerts devuelve las alertas activas y sin disparar de todos los usuarios
func (r *AlertRepository) GetActiveAlerts(ctx context.Context) ([]models.PriceAlert, error) {
	return r.queryAlerts(ctx, `SELECT `+alertColumns+` FROM price_alerts WHERE is_active = $1 AND is_triggered = $2 ORDER BY user_id, created_at`, true, false)
}

func (r *AlertRepository) GetAlert(ctx context.Context, id, userID string) (*models.PriceAlert, error) {
	a, err := scanAlert(r.db.QueryRowContext(ctx, `SELECT `+alertColumns+` FROM price_alerts WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := checkOwner(a.UserID, userID); err != nil {
		return nil, err
	}
	return &a, nil
}

// SaveAlert persiste la fila completa, incluido el estado de disparo.
// Solo la usa el reset; las ediciones van por UpdateSettings.
func (r *AlertRepository) SaveAlert(ctx context.Context, a *models.PriceAlert) error {
	var triggeredAt sql.NullTime
	var triggeredPrice sql.NullFloat64
	if a.TriggeredAt != nil {
		triggeredAt = sql.NullTime{Time: a.TriggeredAt.UTC(), Valid: true}
	}
	if a.TriggeredPrice != nil {
		triggeredPrice = sql.NullFloat64{Float64: *a.TriggeredPrice, Valid: true}
	}

	query := `
		UPDATE price_alerts
		SET target_price = $1, is_active = $2, is_triggered = $3, triggered_at = $4, triggered_price = $5
		WHERE id = $6 AND user_id = $7`

	res, err := r.db.ExecContext(ctx, query, a.TargetPrice, a.IsActive, a.IsTriggered, triggeredAt, triggeredPrice, a.ID, a.UserID)
	if err != nil {
		return fmt.Errorf("error al guardar alerta: %w", err)
	}
	return expectAffected(res)
}

// UpdateSettings guarda el precio objetivo y el estado activo sin tocar
// las columnas de disparo, que solo cambian MarkTriggered y el reset.
func (r *AlertRepository) UpdateSettings(ctx context.Context, a *models.PriceAlert) error {
	query := `
		UPDATE price_alerts
		SET target_price = $1, is_active = $2
		WHERE id = $3 AND user_id = $4`

	res, err := r.db.ExecContext(ctx, query, a.TargetPrice, a.IsActive, a.ID, a.UserID)
	if err != nil {
		return fmt.Errorf("error al actualizar alerta: %w", err)
	}
	return expectAffected(res)
}

// MarkTriggered registra el disparo solo si la alerta seguía activa y sin
// disparar. Devuelve false si otra evaluación ya la había marcado o si se
// desactivó mientras tanto.
func (r *AlertRepository) MarkTriggered(ctx context.Context, a models.PriceAlert) (bool, error) {
	if a.TriggeredAt == nil || a.TriggeredPrice == nil {
		return false, fmt.Errorf("alerta %s sin datos de disparo", a.ID)
	}

	query := `
		UPDATE price_alerts
		SET is_triggered = $1, triggered_at = $2, triggered_price = $3
		WHERE id = $4 AND is_triggered = $5 AND is_active = $6`

	res, err := r.db.ExecContext(ctx, query, true, a.TriggeredAt.UTC(), *a.TriggeredPrice, a.ID, false, true)
	if err != nil {
		return false, fmt.Errorf("error al marcar alerta disparada: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *AlertRepository) DeleteAlert(ctx context.Context, id, userID string) error {
	if _, err := r.GetAlert(ctx, id, userID); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM price_alerts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
