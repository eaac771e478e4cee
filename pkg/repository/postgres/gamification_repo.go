package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/microbridge/pkg/gamification"
)

// GamificationRepository хранит опыт и достижения пользователей.
type GamificationRepository struct {
	pool *pgxpool.Pool
}

func NewGamificationRepository(pool *pgxpool.Pool) (*GamificationRepository, error) {
	r := &GamificationRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *GamificationRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS user_xp (
	user_id UUID PRIMARY KEY,
	xp INTEGER NOT NULL DEFAULT 0,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS user_achievements (
	user_id UUID NOT NULL,
	achievement_id TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	icon TEXT NOT NULL,
	unlocked_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (user_id, achievement_id)
);
`)
	return err
}

func (r *GamificationRepository) AddXP(ctx context.Context, userID uuid.UUID, amount int) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `
INSERT INTO user_xp (user_id, xp, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE SET xp = user_xp.xp + EXCLUDED.xp, updated_at = EXCLUDED.updated_at
RETURNING xp
`, userID, amount, time.Now().UTC()).Scan(&total)
	return total, err
}

func (r *GamificationRepository) Unlock(ctx context.Context, userID uuid.UUID, a gamification.Achievement) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
INSERT INTO user_achievements (user_id, achievement_id, title, description, icon, unlocked_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id, achievement_id) DO NOTHING
`, userID, a.ID, a.Title, a.Description, a.Icon, a.UnlockedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *GamificationRepository) XP(ctx context.Context, userID uuid.UUID) (int, error) {
	var xp int
	err := r.pool.QueryRow(ctx, `SELECT xp FROM user_xp WHERE user_id = $1`, userID).Scan(&xp)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	return xp, err
}

func (r *GamificationRepository) Achievements(ctx context.Context, userID uuid.UUID) ([]gamification.Achievement, error) {
	rows, err := r.pool.Query(ctx, `
SELECT achievement_id, title, description, icon, unlocked_at
FROM user_achievements WHERE user_id = $1
ORDER BY unlocked_at
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []gamification.Achievement{}
	for rows.Next() {
		var a gamification.Achievement
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Icon, &a.UnlockedAt); err != nil {
			return nil, err
		}
		a.UnlockedAt = a.UnlockedAt.UTC()
		res = append(res, a)
	}
	return res, rows.Err()
}
