package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
)

// DividendRepository maneja los dividendos registrados
type DividendRepository struct {
	db *sql.DB
}

func NewDividendRepository(db *sql.DB) *DividendRepository {
	return &DividendRepository{
		db: db,
	}
}

const dividendColumns = `id, user_id, ticker, amount, shares, per_share, payment_date, created_at`

func scanDividend(s scanner) (models.Dividend, error) {
	var d models.Dividend
	err := s.Scan(&d.ID, &d.UserID, &d.Ticker, &d.Amount, &d.Shares, &d.PerShare, &d.PaymentDate, &d.CreatedAt)
	return d, err
}

func (r *DividendRepository) CreateDividend(ctx context.Context, d *models.Dividend) error {
	d.ID = models.GenerateUUID()
	d.CreatedAt = now()
	d.PaymentDate = d.PaymentDate.UTC()

	query := `
		INSERT INTO dividends (` + dividendColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query, d.ID, d.UserID, d.Ticker, d.Amount, d.Shares, d.PerShare, d.PaymentDate, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("error al registrar dividendo: %w", err)
	}
	return nil
}

// GetDividends devuelve los dividendos del usuario, el pago más reciente primero
func (r *DividendRepository) GetDividends(ctx context.Context, userID string) ([]models.Dividend, error) {
	query := `SELECT ` + dividendColumns + ` FROM dividends WHERE user_id = $1 ORDER BY payment_date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dividends := []models.Dividend{}
	for rows.Next() {
		d, err := scanDividend(rows)
		if err != nil {
			return nil, err
		}
		dividends = append(dividends, d)
	}
	return dividends, rows.Err()
}

func (r *DividendRepository) GetDividend(ctx context.Context, id, userID string) (*models.Dividend, error) {
	d, err := scanDividend(r.db.QueryRowContext(ctx, `SELECT `+dividendColumns+` FROM dividends WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := checkOwner(d.UserID, userID); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DividendRepository) DeleteDividend(ctx context.Context, id, userID string) error {
	if _, err := r.GetDividend(ctx, id, userID); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM dividends WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
