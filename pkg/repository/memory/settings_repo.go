package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/artem13815/microbridge/pkg/settings"
)

type SettingsRepository struct {
	mu    sync.RWMutex
	data  map[uuid.UUID]string
	saves int
}

func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{data: make(map[uuid.UUID]string)}
}

func (r *SettingsRepository) Load(_ context.Context, userID uuid.UUID) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	raw, ok := r.data[userID]
	if !ok {
		return "", settings.ErrNotFound
	}
	return raw, nil
}

func (r *SettingsRepository) Save(_ context.Context, userID uuid.UUID, raw string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[userID] = raw
	r.saves++
	return nil
}

// Saves reports how many writes reached the repository.
func (r *SettingsRepository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}
