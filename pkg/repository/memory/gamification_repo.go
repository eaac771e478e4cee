package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/artem13815/microbridge/pkg/gamification"
)

type GamificationRepository struct {
	mu           sync.RWMutex
	xp           map[uuid.UUID]int
	achievements map[uuid.UUID][]gamification.Achievement
}

func NewGamificationRepository() *GamificationRepository {
	return &GamificationRepository{
		xp:           make(map[uuid.UUID]int),
		achievements: make(map[uuid.UUID][]gamification.Achievement),
	}
}

func (r *GamificationRepository) AddXP(_ context.Context, userID uuid.UUID, amount int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.xp[userID] += amount
	return r.xp[userID], nil
}

func (r *GamificationRepository) Unlock(_ context.Context, userID uuid.UUID, a gamification.Achievement) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, have := range r.achievements[userID] {
		if have.ID == a.ID {
			return false, nil
		}
	}
	r.achievements[userID] = append(r.achievements[userID], a)
	return true, nil
}

func (r *GamificationRepository) XP(_ context.Context, userID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.xp[userID], nil
}

func (r *GamificationRepository) Achievements(_ context.Context, userID uuid.UUID) ([]gamification.Achievement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]gamification.Achievement, len(r.achievements[userID]))
	copy(out, r.achievements[userID])
	return out, nil
}
