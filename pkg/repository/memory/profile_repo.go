package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/microbridge/pkg/onboarding"
	"github.com/artem13815/microbridge/pkg/profile"
)

type ProfileRepository struct {
	mu   sync.RWMutex
	data map[uuid.UUID]onboarding.StoredProfile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{data: make(map[uuid.UUID]onboarding.StoredProfile)}
}

func (r *ProfileRepository) Get(_ context.Context, userID uuid.UUID) (onboarding.StoredProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.data[userID]
	if !ok {
		return onboarding.StoredProfile{}, onboarding.ErrProfileNotFound
	}
	p.Record = p.Record.Clone()
	return p, nil
}

func (r *ProfileRepository) Save(_ context.Context, userID uuid.UUID, rec profile.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.data[userID]
	p.UserID = userID
	p.Record = rec.Clone()
	p.UpdatedAt = time.Now().UTC()
	r.data[userID] = p
	return nil
}

func (r *ProfileRepository) MarkCompleted(_ context.Context, userID uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.data[userID]
	if !ok {
		return onboarding.ErrProfileNotFound
	}
	at = at.UTC()
	p.CompletedAt = &at
	r.data[userID] = p
	return nil
}
