package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/microbridge/pkg/onboarding"
	"github.com/artem13815/microbridge/pkg/profile"
)

// ProfileRepository хранит профиль студента как JSONB-документ.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) (*ProfileRepository, error) {
	r := &ProfileRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ProfileRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS student_profiles (
	user_id UUID PRIMARY KEY,
	record JSONB NOT NULL,
	completed_at TIMESTAMPTZ,
	updated_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *ProfileRepository) Get(ctx context.Context, userID uuid.UUID) (onboarding.StoredProfile, error) {
	row := r.pool.QueryRow(ctx, `
SELECT user_id, record, completed_at, updated_at
FROM student_profiles WHERE user_id = $1
`, userID)
	var (
		p         onboarding.StoredProfile
		raw       []byte
		completed *time.Time
		updated   time.Time
	)
	if err := row.Scan(&p.UserID, &raw, &completed, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return onboarding.StoredProfile{}, onboarding.ErrProfileNotFound
		}
		return onboarding.StoredProfile{}, err
	}
	p.Record = profile.New()
	if err := json.Unmarshal(raw, &p.Record); err != nil {
		return onboarding.StoredProfile{}, fmt.Errorf("decode profile record: %w", err)
	}
	if completed != nil {
		c := completed.UTC()
		p.CompletedAt = &c
	}
	p.UpdatedAt = updated.UTC()
	return p, nil
}

func (r *ProfileRepository) Save(ctx context.Context, userID uuid.UUID, rec profile.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode profile record: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO student_profiles (user_id, record, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE SET record = EXCLUDED.record, updated_at = EXCLUDED.updated_at
`, userID, raw, time.Now().UTC())
	return err
}

func (r *ProfileRepository) MarkCompleted(ctx context.Context, userID uuid.UUID, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE student_profiles SET completed_at = $2, updated_at = $2 WHERE user_id = $1
`, userID, at.UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return onboarding.ErrProfileNotFound
	}
	return nil
}
