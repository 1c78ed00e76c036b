package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// userTables son las tablas con datos del usuario, borradas junto con la cuenta
var userTables = []string{"holdings", "price_alerts", "goals", "dividends", "watchlist"}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = models.GenerateUUID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now()
	}

	query := `
		INSERT INTO users (id, email, password, name, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query, user.ID, user.Email, user.Password, user.Name, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("error al crear usuario: %w", err)
	}
	return nil
}

func (r *UserRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	query := `SELECT id, email, name, created_at FROM users ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Name,
			&user.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *UserRepository) GetUserById(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, name, created_at FROM users WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.Name,
		&user.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, name, created_at FROM users WHERE email = $1`

	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.Name,
		&user.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpsertUser crea el usuario o actualiza su email y nombre si ya existe.
// Lo usa la sincronización de usuarios de Clerk.
func (r *UserRepository) UpsertUser(ctx context.Context, user *models.User) error {
	existing, err := r.GetUserById(ctx, user.ID)
	if errors.Is(err, ErrNotFound) {
		return r.CreateUser(ctx, user)
	}
	if err != nil {
		return err
	}

	query := `
		UPDATE users
		SET email = $1, name = $2
		WHERE id = $3`

	if _, err := r.db.ExecContext(ctx, query, user.Email, user.Name, existing.ID); err != nil {
		return fmt.Errorf("error al actualizar usuario: %w", err)
	}
	user.CreatedAt = existing.CreatedAt
	return nil
}

// UpdatePassword guarda el hash ya calculado de la nueva contraseña
func (r *UserRepository) UpdatePassword(ctx context.Context, id, hashedPassword string) error {
	query := `UPDATE users SET password = $1 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, hashedPassword, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// DeleteUser borra el usuario y todos sus datos en una transacción
func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range userTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE user_id = $1", id); err != nil {
			return fmt.Errorf("error al borrar %s del usuario: %w", table, err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if err := expectAffected(res); err != nil {
		return err
	}

	return tx.Commit()
}

// expectAffected devuelve ErrNotFound si la sentencia no modificó filas
func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
