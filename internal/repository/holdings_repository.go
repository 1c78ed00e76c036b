package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
)

// HoldingsRepository maneja las tenencias de acciones de los usuarios
type HoldingsRepository struct {
	db *sql.DB
}

// NewHoldingsRepository crea un nuevo repositorio de tenencias
func NewHoldingsRepository(db *sql.DB) *HoldingsRepository {
	return &HoldingsRepository{
		db: db,
	}
}

const holdingColumns = `id, user_id, ticker, quantity, avg_cost_basis, created_at, updated_at`

func scanHolding(s scanner) (models.Holding, error) {
	var h models.Holding
	err := s.Scan(&h.ID, &h.UserID, &h.Ticker, &h.Quantity, &h.AvgCostBasis, &h.CreatedAt, &h.UpdatedAt)
	return h, err
}

// CreateHolding guarda una tenencia nueva. Un segundo registro del mismo
// ticker para el usuario devuelve ErrDuplicate.
func (r *HoldingsRepository) CreateHolding(ctx context.Context, h *models.Holding) error {
	exists, err := r.tickerTaken(ctx, h.UserID, h.Ticker, "")
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicate
	}

	h.ID = models.GenerateUUID()
	h.CreatedAt = now()
	h.UpdatedAt = h.CreatedAt

	query := `
		INSERT INTO holdings (` + holdingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query, h.ID, h.UserID, h.Ticker, h.Quantity, h.AvgCostBasis, h.CreatedAt, h.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error al crear tenencia: %w", err)
	}
	return nil
}

// GetHoldings obtiene las tenencias de un usuario ordenadas por ticker
func (r *HoldingsRepository) GetHoldings(ctx context.Context, userID string) ([]models.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings WHERE user_id = $1 ORDER BY ticker`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holdings := []models.Holding{}
	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}

	return holdings, rows.Err()
}

// GetHolding obtiene una tenencia verificando que pertenezca al usuario
func (r *HoldingsRepository) GetHolding(ctx context.Context, id, userID string) (*models.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings WHERE id = $1`

	h, err := scanHolding(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := checkOwner(h.UserID, userID); err != nil {
		return nil, err
	}

	return &h, nil
}

// UpdateHolding guarda ticker, cantidad y costo promedio y refresca updated_at
func (r *HoldingsRepository) UpdateHolding(ctx context.Context, h *models.Holding) error {
	exists, err := r.tickerTaken(ctx, h.UserID, h.Ticker, h.ID)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicate
	}

	h.UpdatedAt = now()

	query := `
		UPDATE holdings
		SET ticker = $1, quantity = $2, avg_cost_basis = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6`

	res, err := r.db.ExecContext(ctx, query, h.Ticker, h.Quantity, h.AvgCostBasis, h.UpdatedAt, h.ID, h.UserID)
	if err != nil {
		return fmt.Errorf("error al actualizar tenencia: %w", err)
	}
	return expectAffected(res)
}

func (r *HoldingsRepository) DeleteHolding(ctx context.Context, id, userID string) error {
	if _, err := r.GetHolding(ctx, id, userID); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM holdings WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// tickerTaken indica si el usuario ya tiene otra tenencia con ese ticker
func (r *HoldingsRepository) tickerTaken(ctx context.Context, userID, ticker, exceptID string) (bool, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM holdings WHERE user_id = $1 AND ticker = $2`, userID, ticker).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return id != exceptID, nil
}
