package gamification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/microbridge/pkg/metrics"
	"github.com/artem13815/microbridge/pkg/wizard"
)

// UseCase is the leveling service the wizard's events are applied to.
type UseCase interface {
	GainXP(ctx context.Context, userID uuid.UUID, amount int) (Progress, error)
	Unlock(ctx context.Context, userID uuid.UUID, a wizard.Achievement) (bool, error)
	Progress(ctx context.Context, userID uuid.UUID) (Progress, error)
	// Apply routes one wizard event to GainXP or Unlock.
	Apply(ctx context.Context, userID uuid.UUID, e wizard.Event) error
}

type service struct {
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *zap.Logger) UseCase {
	return &service{repo: repo, log: log, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) GainXP(ctx context.Context, userID uuid.UUID, amount int) (Progress, error) {
	if amount <= 0 {
		return Progress{}, ErrInvalidAmount
	}
	before, err := s.repo.XP(ctx, userID)
	if err != nil {
		return Progress{}, err
	}
	total, err := s.repo.AddXP(ctx, userID, amount)
	if err != nil {
		return Progress{}, err
	}
	if LevelFor(total) > LevelFor(before) {
		s.log.Info("level up", zap.String("user_id", userID.String()), zap.Int("level", LevelFor(total)))
	}
	return s.Progress(ctx, userID)
}

func (s *service) Unlock(ctx context.Context, userID uuid.UUID, a wizard.Achievement) (bool, error) {
	return s.repo.Unlock(ctx, userID, Achievement{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Icon:        a.Icon,
		UnlockedAt:  s.now(),
	})
}

func (s *service) Progress(ctx context.Context, userID uuid.UUID) (Progress, error) {
	xp, err := s.repo.XP(ctx, userID)
	if err != nil {
		return Progress{}, err
	}
	achievements, err := s.repo.Achievements(ctx, userID)
	if err != nil {
		return Progress{}, err
	}
	if achievements == nil {
		achievements = []Achievement{}
	}
	level := LevelFor(xp)
	return Progress{
		UserID:       userID,
		XP:           xp,
		Level:        level,
		NextLevelXP:  level * XPPerLevel,
		Achievements: achievements,
	}, nil
}

func (s *service) Apply(ctx context.Context, userID uuid.UUID, e wizard.Event) error {
	var err error
	switch e.Type {
	case wizard.EventXPGained:
		_, err = s.GainXP(ctx, userID, e.Amount)
	case wizard.EventAchievementUnlocked:
		if e.Achievement == nil {
			return nil
		}
		var fresh bool
		fresh, err = s.Unlock(ctx, userID, *e.Achievement)
		if err == nil && fresh {
			s.log.Info("achievement unlocked", zap.String("user_id", userID.String()), zap.String("achievement", e.Achievement.ID))
		}
	}
	result := "applied"
	if err != nil {
		result = "failed"
	}
	metrics.GamificationEvents.WithLabelValues(string(e.Type), result).Inc()
	return err
}
