package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
)

// GoalRepository maneja los objetivos de inversión
type GoalRepository struct {
	db *sql.DB
}

func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{
		db: db,
	}
}

const goalColumns = `id, user_id, name, target_amount, target_date, description, created_at`

func scanGoal(s scanner) (models.Goal, error) {
	var g models.Goal
	var targetDate sql.NullTime
	var description sql.NullString

	if err := s.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &targetDate, &description, &g.CreatedAt); err != nil {
		return g, err
	}

	if targetDate.Valid {
		t := targetDate.Time
		g.TargetDate = &t
	}
	if description.Valid {
		d := description.String
		g.Description = &d
	}
	return g, nil
}

func goalNullables(g *models.Goal) (sql.NullTime, sql.NullString) {
	var targetDate sql.NullTime
	var description sql.NullString
	if g.TargetDate != nil {
		targetDate = sql.NullTime{Time: g.TargetDate.UTC(), Valid: true}
	}
	if g.Description != nil {
		description = sql.NullString{String: *g.Description, Valid: true}
	}
	return targetDate, description
}

func (r *GoalRepository) CreateGoal(ctx context.Context, g *models.Goal) error {
	g.ID = models.GenerateUUID()
	g.CreatedAt = now()
	targetDate, description := goalNullables(g)

	query := `
		INSERT INTO goals (` + goalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query, g.ID, g.UserID, g.Name, g.TargetAmount, targetDate, description, g.CreatedAt)
	if err != nil {
		return fmt.Errorf("error al crear objetivo: %w", err)
	}
	return nil
}

// GetGoals devuelve los objetivos ordenados por fecha límite; los que no
// tienen fecha van primero.
func (r *GoalRepository) GetGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	query := `
		SELECT ` + goalColumns + `
		FROM goals
		WHERE user_id = $1
		ORDER BY target_date IS NULL DESC, target_date ASC, created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *GoalRepository) GetGoal(ctx context.Context, id, userID string) (*models.Goal, error) {
	g, err := scanGoal(r.db.QueryRowContext(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := checkOwner(g.UserID, userID); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GoalRepository) UpdateGoal(ctx context.Context, g *models.Goal) error {
	targetDate, description := goalNullables(g)

	query := `
		UPDATE goals
		SET name = $1, target_amount = $2, target_date = $3, description = $4
		WHERE id = $5 AND user_id = $6`

	res, err := r.db.ExecContext(ctx, query, g.Name, g.TargetAmount, targetDate, description, g.ID, g.UserID)
	if err != nil {
		return fmt.Errorf("error al actualizar objetivo: %w", err)
	}
	return expectAffected(res)
}

func (r *GoalRepository) DeleteGoal(ctx context.Context, id, userID string) error {
	if _, err := r.GetGoal(ctx, id, userID); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return expectAffected(res)
}
