package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/artem13815/microbridge/pkg/logger"
	"github.com/artem13815/microbridge/pkg/metrics"
	"github.com/artem13815/microbridge/pkg/profile"
	"github.com/artem13815/microbridge/pkg/wizard"
)

// UseCase drives one onboarding wizard per user.
type UseCase interface {
	// Start opens a session, prefilled from the stored profile. An existing session is
	// resumed as is.
	Start(ctx context.Context, userID uuid.UUID) (View, error)
	Get(ctx context.Context, userID uuid.UUID) (View, error)
	// Update applies the wire form of a partial update for the active step.
	Update(ctx context.Context, userID uuid.UUID, step wizard.Step, raw []byte) (View, error)
	AddSkill(ctx context.Context, userID uuid.UUID, name string, proficiency int) (View, error)
	RemoveSkill(ctx context.Context, userID uuid.UUID, index int) (View, error)
	UpdateSkill(ctx context.Context, userID uuid.UUID, index int, field profile.SkillField, value any) (View, error)
	Next(ctx context.Context, userID uuid.UUID) (Outcome, error)
	Back(ctx context.Context, userID uuid.UUID) (Outcome, error)
	Complete(ctx context.Context, userID uuid.UUID) (Outcome, error)
	// UploadResume runs the resume step upload; guard rejections and storage failures
	// are reported in View.Upload, not as errors.
	UploadResume(ctx context.Context, userID uuid.UUID, f wizard.File) (View, error)
	RemoveResume(ctx context.Context, userID uuid.UUID) (View, error)
	Abandon(ctx context.Context, userID uuid.UUID) error

	ProfileUseCase
}

// Uploads hands out the resume storage of one user.
type Uploads interface {
	Storage(ownerID uuid.UUID) wizard.ResumeStorage
}

type service struct {
	sessions SessionStore
	profiles ProfileRepository
	uploads  Uploads
	events   EventPublisher
	log      *zap.Logger
	now      func() time.Time

	locks   *keyedMutex
	resumes sync.Map // uuid.UUID -> *wizard.ResumeStep
}

func NewService(sessions SessionStore, profiles ProfileRepository, uploads Uploads, events EventPublisher, log *zap.Logger) UseCase {
	return &service{
		sessions: sessions,
		profiles: profiles,
		uploads:  uploads,
		events:   events,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
		locks:    newKeyedMutex(),
	}
}

// hostStore is the record store the step views write through: a change is persisted to
// the profile repository before the controller commits it.
type hostStore struct {
	ctx    context.Context
	userID uuid.UUID
	c      *wizard.Controller
	repo   ProfileRepository
}

func (h hostStore) Record() profile.Record { return h.c.Record() }

func (h hostStore) Update(p profile.Patch) error {
	next, err := h.c.Record().Apply(p)
	if err != nil {
		return err
	}
	if err := h.repo.Save(h.ctx, h.userID, next); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return h.c.Update(p)
}

// mutate runs fn on the user's wizard under the user lock and saves the session when fn
// succeeds.
func (s *service) mutate(ctx context.Context, userID uuid.UUID, fn func(c *wizard.Controller, store hostStore) error) (*wizard.Controller, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	sess, c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(c, hostStore{ctx: ctx, userID: userID, c: c, repo: s.profiles}); err != nil {
		return c, err
	}
	sess.State = c.State()
	sess.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return c, nil
}

func (s *service) load(ctx context.Context, userID uuid.UUID) (Session, *wizard.Controller, error) {
	sess, err := s.sessions.Get(ctx, userID)
	if errors.Is(err, ErrNoSession) {
		// the store expired the session; its upload step goes with it
		s.resumes.Delete(userID)
	}
	if err != nil {
		return Session{}, nil, err
	}
	c, err := wizard.Restore(sess.State)
	if err != nil {
		return Session{}, nil, err
	}
	return sess, c, nil
}

func (s *service) Start(ctx context.Context, userID uuid.UUID) (View, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	if _, c, err := s.load(ctx, userID); err == nil {
		return s.view(userID, c), nil
	} else if !errors.Is(err, ErrNoSession) {
		return View{}, err
	}

	c := wizard.New()
	stored, err := s.profiles.Get(ctx, userID)
	switch {
	case err == nil:
		prefilled, perr := wizard.NewWithRecord(stored.Record)
		if perr != nil {
			s.log.Warn("stored profile rejected, starting empty", logger.UserID(userID.String()), zap.Error(perr))
		} else {
			c = prefilled
		}
	case !errors.Is(err, ErrProfileNotFound):
		return View{}, err
	}

	now := s.now()
	sess := Session{UserID: userID, State: c.State(), StartedAt: now, UpdatedAt: now}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return View{}, fmt.Errorf("save session: %w", err)
	}
	metrics.WizardSessionsStarted.Inc()
	s.log.Info("onboarding started", logger.UserID(userID.String()))
	return s.view(userID, c), nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (View, error) {
	_, c, err := s.load(ctx, userID)
	if err != nil {
		return View{}, err
	}
	return s.view(userID, c), nil
}

// section binds the onboarding step view of the active step.
func section(c *wizard.Controller, store hostStore) *wizard.Section {
	sec, _ := wizard.NewSection(c.Step(), wizard.ModeOnboarding, store)
	return sec
}

func (s *service) Update(ctx context.Context, userID uuid.UUID, step wizard.Step, raw []byte) (View, error) {
	p, err := profile.DecodePatch(step, raw)
	if err != nil {
		return View{}, err
	}
	c, err := s.mutate(ctx, userID, func(c *wizard.Controller, store hostStore) error {
		if step != c.Step() {
			return ErrStepNotActive
		}
		return section(c, store).Change(p)
	})
	if err != nil {
		return View{}, err
	}
	return s.view(userID, c), nil
}

func (s *service) skills(ctx context.Context, userID uuid.UUID, fn func(sec *wizard.Section) error) (View, error) {
	c, err := s.mutate(ctx, userID, func(c *wizard.Controller, store hostStore) error {
		if c.Step() != profile.StepSkills {
			return ErrStepNotActive
		}
		return fn(section(c, store))
	})
	if err != nil {
		return View{}, err
	}
	return s.view(userID, c), nil
}

func (s *service) AddSkill(ctx context.Context, userID uuid.UUID, name string, proficiency int) (View, error) {
	return s.skills(ctx, userID, func(sec *wizard.Section) error { return sec.AddSkill(name, proficiency) })
}

func (s *service) RemoveSkill(ctx context.Context, userID uuid.UUID, index int) (View, error) {
	return s.skills(ctx, userID, func(sec *wizard.Section) error { return sec.RemoveSkill(index) })
}

func (s *service) UpdateSkill(ctx context.Context, userID uuid.UUID, index int, field profile.SkillField, value any) (View, error) {
	return s.skills(ctx, userID, func(sec *wizard.Section) error { return sec.UpdateSkill(index, field, value) })
}

func (s *service) Next(ctx context.Context, userID uuid.UUID) (Outcome, error) {
	var tr wizard.Transition
	c, err := s.mutate(ctx, userID, func(c *wizard.Controller, _ hostStore) error {
		tr = c.Next()
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}
	outcome := "blocked"
	if tr.Advanced {
		outcome = "advanced"
		s.publish(userID, tr.Events)
	}
	metrics.WizardTransitions.WithLabelValues(strconv.Itoa(int(tr.From)), outcome).Inc()
	return Outcome{View: s.view(userID, c), Advanced: tr.Advanced, Events: nonNil(tr.Events)}, nil
}

func (s *service) Back(ctx context.Context, userID uuid.UUID) (Outcome, error) {
	var from wizard.Step
	c, err := s.mutate(ctx, userID, func(c *wizard.Controller, _ hostStore) error {
		from = c.Step()
		c.Back()
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}
	metrics.WizardTransitions.WithLabelValues(strconv.Itoa(int(from)), "back").Inc()
	return Outcome{View: s.view(userID, c), Events: []wizard.Event{}}, nil
}

// Complete finishes the wizard: the profile is marked complete, the session is dropped
// and the client is sent to the dashboard.
func (s *service) Complete(ctx context.Context, userID uuid.UUID) (Outcome, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	sess, c, err := s.load(ctx, userID)
	if err != nil {
		return Outcome{}, err
	}
	tr, err := c.Complete()
	if errors.Is(err, wizard.ErrStepInvalid) {
		sess.State = c.State()
		sess.UpdatedAt = s.now()
		if serr := s.sessions.Save(ctx, sess); serr != nil {
			return Outcome{}, fmt.Errorf("save session: %w", serr)
		}
		return Outcome{View: s.view(userID, c), Events: []wizard.Event{}}, err
	}
	if err != nil {
		return Outcome{}, err
	}

	if err := s.profiles.Save(ctx, userID, c.Record()); err != nil {
		return Outcome{}, fmt.Errorf("save profile: %w", err)
	}
	if err := s.profiles.MarkCompleted(ctx, userID, s.now()); err != nil {
		return Outcome{}, fmt.Errorf("mark profile completed: %w", err)
	}
	if err := s.sessions.Delete(ctx, userID); err != nil {
		s.log.Warn("drop completed session", logger.UserID(userID.String()), zap.Error(err))
	}
	s.resumes.Delete(userID)

	s.publish(userID, tr.Events)
	metrics.WizardCompleted.Inc()
	s.log.Info("onboarding completed", logger.UserID(userID.String()))
	return Outcome{View: s.view(userID, c), Advanced: true, Events: nonNil(tr.Events), RedirectTo: DashboardPath}, nil
}

func (s *service) resumeStep(userID uuid.UUID) *wizard.ResumeStep {
	if v, ok := s.resumes.Load(userID); ok {
		return v.(*wizard.ResumeStep)
	}
	step := wizard.NewResumeStep(s.uploads.Storage(userID), func(p profile.Patch) error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_, err := s.mutate(ctx, userID, func(_ *wizard.Controller, store hostStore) error {
			return store.Update(p)
		})
		return err
	})
	v, _ := s.resumes.LoadOrStore(userID, step)
	return v.(*wizard.ResumeStep)
}

// artifactsStep returns the current resume reference, failing unless the wizard is on
// the resume step.
func (s *service) artifactsStep(ctx context.Context, userID uuid.UUID) (*profile.ResumeFile, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	_, c, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c.Step() != profile.StepArtifacts || c.Completed() {
		return nil, ErrStepNotActive
	}
	return c.Record().Resume, nil
}

// UploadResume does not hold the user lock while the file is stored, so the user can
// keep editing the step. A replaced resume is removed once the new one is recorded.
func (s *service) UploadResume(ctx context.Context, userID uuid.UUID, f wizard.File) (View, error) {
	previous, err := s.artifactsStep(ctx, userID)
	if err != nil {
		return View{}, err
	}
	step := s.resumeStep(userID)
	state := step.Select(ctx, f)
	metrics.ResumeUploads.WithLabelValues(string(state.Status)).Inc()

	if state.Status == wizard.UploadSuccess && previous != nil && previous.ID != state.File.ID {
		if err := s.uploads.Storage(userID).Remove(ctx, *previous); err != nil {
			s.log.Warn("remove replaced resume", logger.UserID(userID.String()), zap.Error(err))
		}
	}

	v, err := s.Get(ctx, userID)
	if err != nil {
		return View{}, err
	}
	// rejections and busy refusals are not kept in the step state
	v.Upload = state
	return v, nil
}

func (s *service) RemoveResume(ctx context.Context, userID uuid.UUID) (View, error) {
	current, err := s.artifactsStep(ctx, userID)
	if err != nil {
		return View{}, err
	}
	if current == nil {
		return View{}, ErrNoResume
	}
	err = s.resumeStep(userID).Remove(ctx, current)
	if errors.Is(err, wizard.ErrResumeNotDeleted) {
		s.log.Warn("resume file left behind", logger.UserID(userID.String()), zap.String("resume_id", current.ID), zap.Error(err))
	} else if err != nil {
		return View{}, err
	}
	return s.Get(ctx, userID)
}

func (s *service) Abandon(ctx context.Context, userID uuid.UUID) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	if _, err := s.sessions.Get(ctx, userID); err != nil {
		return err
	}
	s.resumes.Delete(userID)
	if err := s.sessions.Delete(ctx, userID); err != nil {
		return err
	}
	s.log.Info("onboarding abandoned", logger.UserID(userID.String()))
	return nil
}

func (s *service) publish(userID uuid.UUID, events []wizard.Event) {
	if s.events == nil || len(events) == 0 {
		return
	}
	if n := s.events.Publish(userID, events...); n < len(events) {
		s.log.Warn("gamification events dropped",
			logger.UserID(userID.String()),
			zap.Int("dropped", len(events)-n))
	}
}

func (s *service) view(userID uuid.UUID, c *wizard.Controller) View {
	def, _ := wizard.Lookup(c.Step())
	upload := wizard.UploadState{Status: wizard.UploadIdle}
	if v, ok := s.resumes.Load(userID); ok {
		upload = v.(*wizard.ResumeStep).State()
	}
	return View{
		Step:        c.Step(),
		TotalSteps:  wizard.TotalSteps,
		Key:         def.Key,
		Label:       def.Label,
		Completion:  c.CompletionPercentage(),
		Completed:   c.Completed(),
		CanGoBack:   c.Step() > profile.StepIdentity && !c.Completed(),
		CanComplete: int(c.Step()) == wizard.TotalSteps && !c.Completed(),
		Errors:      c.Errors(),
		Record:      c.Record(),
		Upload:      upload,
	}
}

func nonNil(events []wizard.Event) []wizard.Event {
	if events == nil {
		return []wizard.Event{}
	}
	return events
}
