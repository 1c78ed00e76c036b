package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
)

// WatchlistRepository maneja los tickers seguidos por cada usuario
type WatchlistRepository struct {
	db *sql.DB
}

func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{
		db: db,
	}
}

// AddTicker agrega el ticker a la watchlist; repetido devuelve ErrDuplicate
func (r *WatchlistRepository) AddTicker(ctx context.Context, item *models.WatchlistItem) error {
	var id string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM watchlist WHERE user_id = $1 AND ticker = $2`, item.UserID, item.Ticker).Scan(&id)
	if err == nil {
		return ErrDuplicate
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	item.ID = models.GenerateUUID()
	item.CreatedAt = now()

	query := `
		INSERT INTO watchlist (id, user_id, ticker, created_at)
		VALUES ($1, $2, $3, $4)`

	if _, err := r.db.ExecContext(ctx, query, item.ID, item.UserID, item.Ticker, item.CreatedAt); err != nil {
		return fmt.Errorf("error al agregar a la watchlist: %w", err)
	}
	return nil
}

// GetWatchlist devuelve la watchlist en el orden en que se agregó
func (r *WatchlistRepository) GetWatchlist(ctx context.Context, userID string) ([]models.WatchlistItem, error) {
	query := `SELECT id, user_id, ticker, created_at FROM watchlist WHERE user_id = $1 ORDER BY created_at, ticker`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.WatchlistItem{}
	for rows.Next() {
		var item models.WatchlistItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.Ticker, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *WatchlistRepository) RemoveTicker(ctx context.Context, userID, ticker string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM watchlist WHERE user_id = $1 AND ticker = $2`, userID, ticker)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
