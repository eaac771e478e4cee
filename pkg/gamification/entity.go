// Package gamification keeps the XP and achievements a user earns while filling in the
// profile.
package gamification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// XPPerLevel is the XP needed to go up one level.
const XPPerLevel = 250

var ErrInvalidAmount = errors.New("xp amount must be positive")

// Achievement is an unlocked badge.
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}

// Progress is the leveling state of one user.
type Progress struct {
	UserID       uuid.UUID     `json:"userId"`
	XP           int           `json:"xp"`
	Level        int           `json:"level"`
	NextLevelXP  int           `json:"nextLevelXp"`
	Achievements []Achievement `json:"achievements"`
}

// LevelFor derives the level from accumulated XP; everyone starts at level 1.
func LevelFor(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return 1 + xp/XPPerLevel
}

// Repository: порт хранения прогресса.
type Repository interface {
	// AddXP adds amount and returns the new total.
	AddXP(ctx context.Context, userID uuid.UUID, amount int) (int, error)
	// Unlock stores the achievement once; false means it was already unlocked.
	Unlock(ctx context.Context, userID uuid.UUID, a Achievement) (bool, error)
	XP(ctx context.Context, userID uuid.UUID) (int, error)
	Achievements(ctx context.Context, userID uuid.UUID) ([]Achievement, error)
}
