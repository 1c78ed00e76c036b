package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/database"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *sql.DB, email string) *models.User {
	t.Helper()

	user := &models.User{Email: email, Password: "hash", Name: "Test"}
	require.NoError(t, NewUserRepository(db).CreateUser(context.Background(), user))
	return user
}
