package settings

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/microbridge/pkg/metrics"
)

// UseCase reads and updates account settings. Updates are visible immediately and
// written through to the repository after a debounce window.
type UseCase interface {
	Get(ctx context.Context, userID uuid.UUID) (Settings, error)
	// Update merges a partial JSON document into the current settings.
	Update(ctx context.Context, userID uuid.UUID, raw []byte) (Settings, error)
	// Flush writes every pending update now.
	Flush(ctx context.Context) error
}

type pendingWrite struct {
	timer *time.Timer
}

type service struct {
	repo     Repository
	log      *zap.Logger
	debounce time.Duration

	mu      sync.Mutex
	cache   map[uuid.UUID]Settings
	pending map[uuid.UUID]*pendingWrite
	running sync.WaitGroup
}

func NewService(repo Repository, debounce time.Duration, log *zap.Logger) UseCase {
	return &service{
		repo:     repo,
		log:      log,
		debounce: debounce,
		cache:    make(map[uuid.UUID]Settings),
		pending:  make(map[uuid.UUID]*pendingWrite),
	}
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (Settings, error) {
	s.mu.Lock()
	if st, ok := s.cache[userID]; ok {
		s.mu.Unlock()
		return st, nil
	}
	s.mu.Unlock()

	st, err := s.load(ctx, userID)
	if err != nil {
		return Settings{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// a concurrent Update may have filled the cache meanwhile
	if cached, ok := s.cache[userID]; ok {
		return cached, nil
	}
	s.cache[userID] = st
	return st, nil
}

// load decodes stored settings on top of the defaults, so keys missing from older
// documents keep their default value. Unreadable documents fall back to the defaults.
func (s *service) load(ctx context.Context, userID uuid.UUID) (Settings, error) {
	raw, err := s.repo.Load(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return Defaults(), nil
	}
	if err != nil {
		return Settings{}, err
	}
	st := Defaults()
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		s.log.Warn("stored settings are malformed, using defaults",
			zap.String("user_id", userID.String()), zap.Error(err))
		return Defaults(), nil
	}
	return st, nil
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, raw []byte) (Settings, error) {
	if err := validate(raw); err != nil {
		return Settings{}, err
	}
	current, err := s.Get(ctx, userID)
	if err != nil {
		return Settings{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.cache[userID]; ok {
		current = cached
	}
	if err := json.Unmarshal(raw, &current); err != nil {
		return Settings{}, &ValidationError{Details: []string{err.Error()}}
	}
	s.cache[userID] = current
	s.schedule(userID)
	return current, nil
}

// schedule (re)arms the debounced write for userID. Callers hold s.mu.
func (s *service) schedule(userID uuid.UUID) {
	if old, ok := s.pending[userID]; ok && old.timer.Stop() {
		s.running.Done()
	}
	pw := &pendingWrite{}
	s.running.Add(1)
	pw.timer = time.AfterFunc(s.debounce, func() {
		defer s.running.Done()
		s.write(userID, pw)
	})
	s.pending[userID] = pw
}

func (s *service) write(userID uuid.UUID, pw *pendingWrite) {
	s.mu.Lock()
	if pw != nil && s.pending[userID] == pw {
		delete(s.pending, userID)
	}
	st := s.cache[userID]
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.save(ctx, userID, st); err != nil {
		metrics.SettingsWrites.WithLabelValues("failed").Inc()
		s.log.Error("write settings", zap.String("user_id", userID.String()), zap.Error(err))
		return
	}
	metrics.SettingsWrites.WithLabelValues("ok").Inc()
}

func (s *service) save(ctx context.Context, userID uuid.UUID, st Settings) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.repo.Save(ctx, userID, string(data))
}

func (s *service) Flush(ctx context.Context) error {
	s.mu.Lock()
	users := make([]uuid.UUID, 0, len(s.pending))
	for id, pw := range s.pending {
		if pw.timer.Stop() {
			s.running.Done()
			users = append(users, id)
		}
		delete(s.pending, id)
	}
	s.mu.Unlock()

	var errs []error
	for _, id := range users {
		s.mu.Lock()
		st := s.cache[id]
		s.mu.Unlock()
		if err := s.save(ctx, id, st); err != nil {
			errs = append(errs, err)
			continue
		}
		metrics.SettingsWrites.WithLabelValues("ok").Inc()
	}

	// wait for timers that had already fired
	done := make(chan struct{})
	go func() {
		s.running.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		errs = append(errs, ctx.Err())
	}
	return errors.Join(errs...)
}
