package repository

import (
	"context"
	"testing"
	"time"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAlertRepository(db)
	user := createTestUser(t, db, "ana@example.com")

	alert := &models.PriceAlert{UserID: user.ID, Ticker: "AAPL", Condition: models.AlertConditionAbove, TargetPrice: 200}
	require.NoError(t, repo.CreateAlert(ctx, alert))
	assert.True(t, alert.IsActive)

	got, err := repo.GetAlert(ctx, alert.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AlertConditionAbove, got.Condition)
	assert.True(t, got.IsActive)
	assert.False(t, got.IsTriggered)
	assert.Nil(t, got.TriggeredAt)
	assert.Nil(t, got.TriggeredPrice)

	active, err := repo.GetActiveAlerts(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	at := time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC)
	price := 201.5
	got.IsTriggered = true
	got.TriggeredAt = &at
	got.TriggeredPrice = &price

	marked, err := repo.MarkTriggered(ctx, *got)
	require.NoError(t, err)
	assert.True(t, marked)

	// Segunda marca sobre una alerta ya disparada no modifica nada
	marked, err = repo.MarkTriggered(ctx, *got)
	require.NoError(t, err)
	assert.False(t, marked)

	triggered, err := repo.GetAlert(ctx, alert.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, triggered.IsTriggered)
	require.NotNil(t, triggered.TriggeredAt)
	assert.True(t, at.Equal(*triggered.TriggeredAt))
	assert.Equal(t, 201.5, *triggered.TriggeredPrice)

	active, err = repo.GetActiveAlerts(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	// Reset vía SaveAlert
	triggered.IsTriggered = false
	triggered.TriggeredAt = nil
	triggered.TriggeredPrice = nil
	triggered.TargetPrice = 250
	require.NoError(t, repo.SaveAlert(ctx, triggered))

	reset, err := repo.GetAlert(ctx, alert.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, reset.IsTriggered)
	assert.Nil(t, reset.TriggeredAt)
	assert.Equal(t, 250.0, reset.TargetPrice)

	require.NoError(t, repo.DeleteAlert(ctx, alert.ID, user.ID))
	_, err = repo.GetAlert(ctx, alert.ID, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAlertRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAlertRepository(db)
	user := createTestUser(t, db, "ana@example.com")
	other := createTestUser(t, db, "luis@example.com")

	first := &models.PriceAlert{UserID: user.ID, Ticker: "AAPL", Condition: models.AlertConditionAbove, TargetPrice: 1}
	require.NoError(t, repo.CreateAlert(ctx, first))
	time.Sleep(2 * time.Millisecond)
	second := &models.PriceAlert{UserID: user.ID, Ticker: "MSFT", Condition: models.AlertConditionBelow, TargetPrice: 1}
	require.NoError(t, repo.CreateAlert(ctx, second))
	require.NoError(t, repo.CreateAlert(ctx, &models.PriceAlert{UserID: other.ID, Ticker: "KO", Condition: models.AlertConditionBelow, TargetPrice: 1}))

	alerts, err := repo.GetAlerts(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, second.ID, alerts[0].ID)

	_, err = repo.GetAlert(ctx, first.ID, other.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAlertRepository_UpdateSettingsKeepsTrigger(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAlertRepository(db)
	user := createTestUser(t, db, "ana@example.com")

	alert := &models.PriceAlert{UserID: user.ID, Ticker: "AAPL", Condition: models.AlertConditionAbove, TargetPrice: 200}
	require.NoError(t, repo.CreateAlert(ctx, alert))

	// Lectura previa a la edición, antes de que dispare el chequeo
	snapshot, err := repo.GetAlert(ctx, alert.ID, user.ID)
	require.NoError(t, err)

	at := time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC)
	price := 205.0
	fired := *snapshot
	fired.TriggeredAt = &at
	fired.TriggeredPrice = &price
	marked, err := repo.MarkTriggered(ctx, fired)
	require.NoError(t, err)
	require.True(t, marked)

	snapshot.TargetPrice = 250
	require.NoError(t, repo.UpdateSettings(ctx, snapshot))

	got, err := repo.GetAlert(ctx, alert.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 250.0, got.TargetPrice)
	assert.True(t, got.IsTriggered)
	require.NotNil(t, got.TriggeredAt)
	assert.True(t, at.Equal(*got.TriggeredAt))
	require.NotNil(t, got.TriggeredPrice)
	assert.Equal(t, 205.0, *got.TriggeredPrice)
}

func TestAlertRepository_UpdateSettingsOtherUser(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAlertRepository(db)
	user := createTestUser(t, db, "ana@example.com")
	other := createTestUser(t, db, "luis@example.com")

	alert := &models.PriceAlert{UserID: user.ID, Ticker: "AAPL", Condition: models.AlertConditionAbove, TargetPrice: 200}
	require.NoError(t, repo.CreateAlert(ctx, alert))

	foreign := *alert
	foreign.UserID = other.ID
	assert.ErrorIs(t, repo.UpdateSettings(ctx, &foreign), ErrNotFound)
}

func TestAlertRepository_MarkTriggeredSkipsInactive(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewAlertRepository(db)
	user := createTestUser(t, db, "ana@example.com")

	alert := &models.PriceAlert{UserID: user.ID, Ticker: "AAPL", Condition: models.AlertConditionBelow, TargetPrice: 100}
	require.NoError(t, repo.CreateAlert(ctx, alert))

	// El chequeo cargó la alerta activa; luego el usuario la desactiva
	loaded, err := repo.GetAlert(ctx, alert.ID, user.ID)
	require.NoError(t, err)

	deactivated := *loaded
	deactivated.IsActive = false
	require.NoError(t, repo.UpdateSettings(ctx, &deactivated))

	at := time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC)
	price := 95.0
	loaded.TriggeredAt = &at
	loaded.TriggeredPrice = &price
	marked, err := repo.MarkTriggered(ctx, *loaded)
	require.NoError(t, err)
	assert.False(t, marked)

	got, err := repo.GetAlert(ctx, alert.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.False(t, got.IsTriggered)
	assert.Nil(t, got.TriggeredAt)
}
