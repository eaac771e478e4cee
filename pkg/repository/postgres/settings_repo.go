package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/microbridge/pkg/settings"
)

// SettingsRepository хранит настройки как сырой JSON: испорченный документ не должен
// ломать чтение, поэтому колонка TEXT, а не JSONB.
type SettingsRepository struct {
	pool *pgxpool.Pool
}

func NewSettingsRepository(pool *pgxpool.Pool) (*SettingsRepository, error) {
	r := &SettingsRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SettingsRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS account_settings (
	user_id UUID PRIMARY KEY,
	payload TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *SettingsRepository) Load(ctx context.Context, userID uuid.UUID) (string, error) {
	var raw string
	err := r.pool.QueryRow(ctx, `SELECT payload FROM account_settings WHERE user_id = $1`, userID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", settings.ErrNotFound
	}
	return raw, err
}

func (r *SettingsRepository) Save(ctx context.Context, userID uuid.UUID, raw string) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO account_settings (user_id, payload, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
`, userID, raw, time.Now().UTC())
	return err
}
