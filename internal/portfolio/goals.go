package portfolio

import (
	"math"
	"strings"
	"time"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
)

// ValidateGoal verifica nombre y monto objetivo
func ValidateGoal(g *models.Goal) error {
	g.Name = strings.TrimSpace(g.Name)
	if g.Name == "" {
		return invalidParameter("el nombre es obligatorio")
	}
	if g.TargetAmount <= 0 {
		return invalidParameter("el monto objetivo debe ser mayor a 0")
	}
	return nil
}

// ProgressFor calcula el progreso del objetivo con el valor actual del portafolio
func ProgressFor(goal models.Goal, currentAmount float64, now time.Time) models.GoalProgress {
	progress := models.GoalProgress{
		Goal:            goal,
		CurrentAmount:   currentAmount,
		AmountRemaining: math.Max(0, goal.TargetAmount-currentAmount),
	}

	progress.ProgressPercent = percentOf(currentAmount, goal.TargetAmount)
	if progress.ProgressPercent != nil {
		progress.Progress = progressInfo(currentAmount, goal.TargetAmount, *progress.ProgressPercent)
	}

	if goal.TargetDate != nil {
		days := int(math.Floor(goal.TargetDate.Sub(now).Hours() / 24))
		progress.DaysRemaining = &days
		progress.OnTrack = onTrack(goal, progress.ProgressPercent, now)
	}

	return progress
}

// progressInfo clasifica el progreso en pendiente, completado o excedido
func progressInfo(current, target, rawPercent float64) *models.ProgressInfo {
	info := &models.ProgressInfo{
		Percent:    rawPercent,
		RawPercent: rawPercent,
	}

	switch {
	case rawPercent > 100:
		info.Percent = 100
		info.Status = models.GoalStatusExceeded
		info.ExcessAmount = current - target
		info.ExcessPercent = rawPercent - 100
	case rawPercent == 100:
		info.Status = models.GoalStatusCompleted
	default:
		info.Status = models.GoalStatusPending
	}

	return info
}

// onTrack compara el progreso contra la fracción de tiempo transcurrida
// entre la creación del objetivo y su fecha límite.
func onTrack(goal models.Goal, rawPercent *float64, now time.Time) *bool {
	if rawPercent == nil || goal.CreatedAt.IsZero() || goal.TargetDate == nil {
		return nil
	}

	total := goal.TargetDate.Sub(goal.CreatedAt)
	if total <= 0 {
		return nil
	}

	elapsed := now.Sub(goal.CreatedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > total {
		elapsed = total
	}

	expected := float64(elapsed) / float64(total) * 100
	ok := *rawPercent >= expected
	return &ok
}
