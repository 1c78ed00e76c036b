package repository

import (
	"context"
	"testing"
	"time"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDividendRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewDividendRepository(db)
	user := createTestUser(t, db, "ana@example.com")
	other := createTestUser(t, db, "luis@example.com")

	older := &models.Dividend{UserID: user.ID, Ticker: "KO", Amount: 10, Shares: 20, PerShare: 0.5, PaymentDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)}
	newer := &models.Dividend{UserID: user.ID, Ticker: "PG", Amount: 5, PaymentDate: time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.CreateDividend(ctx, older))
	require.NoError(t, repo.CreateDividend(ctx, newer))

	list, err := repo.GetDividends(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, 0.5, list[1].PerShare)
	assert.True(t, older.PaymentDate.Equal(list[1].PaymentDate))

	assert.ErrorIs(t, repo.DeleteDividend(ctx, older.ID, other.ID), ErrForbidden)
	require.NoError(t, repo.DeleteDividend(ctx, older.ID, user.ID))

	_, err = repo.GetDividend(ctx, older.ID, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
