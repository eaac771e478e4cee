package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/microbridge/pkg/profile"
	"github.com/artem13815/microbridge/pkg/wizard"
)

// SectionError carries the field errors of a rejected profile section.
type SectionError struct {
	Step   wizard.Step
	Errors wizard.FieldErrors
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("section %d has %d invalid fields", e.Step, len(e.Errors))
}

func (e *SectionError) Unwrap() error { return wizard.ErrStepInvalid }

// SectionView is one read-only block of the profile page.
type SectionView struct {
	Step   wizard.Step   `json:"step"`
	Key    string        `json:"key"`
	Label  string        `json:"label"`
	Values profile.Patch `json:"values"`
}

// ProfilePage is the stored profile rendered by step.
type ProfilePage struct {
	UserID      uuid.UUID      `json:"userId"`
	Completed   bool           `json:"completed"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
	Sections    []SectionView  `json:"sections"`
	Record      profile.Record `json:"record"`
}

// ProfileUseCase is the profile page: the wizard sections outside of onboarding.
type ProfileUseCase interface {
	Profile(ctx context.Context, userID uuid.UUID) (ProfilePage, error)
	// SaveSection replaces the fields of one step. The step must pass validation.
	SaveSection(ctx context.Context, userID uuid.UUID, step wizard.Step, raw []byte) (ProfilePage, error)
}

// pageStore writes standalone sections straight to the repository. An open onboarding
// session gets the same patch so the wizard does not overwrite it later.
type pageStore struct {
	ctx    context.Context
	svc    *service
	userID uuid.UUID
	record profile.Record
}

func (p *pageStore) Record() profile.Record { return p.record.Clone() }

func (p *pageStore) Update(patch profile.Patch) error {
	next, err := p.record.Apply(patch)
	if err != nil {
		return err
	}
	if err := p.svc.profiles.Save(p.ctx, p.userID, next); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	p.record = next

	sess, c, err := p.svc.load(p.ctx, p.userID)
	if errors.Is(err, ErrNoSession) {
		return nil
	}
	if err != nil {
		return err
	}
	if c.Completed() {
		return nil
	}
	if err := c.Update(patch); err != nil {
		return err
	}
	sess.State = c.State()
	sess.UpdatedAt = p.svc.now()
	return p.svc.sessions.Save(p.ctx, sess)
}

func (s *service) Profile(ctx context.Context, userID uuid.UUID) (ProfilePage, error) {
	stored, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return ProfilePage{}, err
	}
	return page(stored), nil
}

func (s *service) SaveSection(ctx context.Context, userID uuid.UUID, step wizard.Step, raw []byte) (ProfilePage, error) {
	p, err := profile.DecodePatch(step, raw)
	if err != nil {
		return ProfilePage{}, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	stored, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return ProfilePage{}, err
	}
	store := &pageStore{ctx: ctx, svc: s, userID: userID, record: stored.Record}
	sec, err := wizard.NewSection(step, wizard.ModeStandalone, store)
	if err != nil {
		return ProfilePage{}, err
	}
	sec.Edit()
	if err := sec.Change(p); err != nil {
		return ProfilePage{}, err
	}
	if errs := wizard.Validate(step, sec.Record()); !errs.Empty() {
		sec.Cancel()
		return ProfilePage{}, &SectionError{Step: step, Errors: errs}
	}
	if err := sec.Save(); err != nil {
		return ProfilePage{}, err
	}

	stored.Record = store.Record()
	return page(stored), nil
}

func page(stored StoredProfile) ProfilePage {
	out := ProfilePage{
		UserID:      stored.UserID,
		Completed:   stored.CompletedAt != nil,
		CompletedAt: stored.CompletedAt,
		Record:      stored.Record,
		Sections:    make([]SectionView, 0, wizard.TotalSteps),
	}
	for _, def := range wizard.Steps() {
		values, _ := profile.Slice(def.Step, stored.Record)
		out.Sections = append(out.Sections, SectionView{Step: def.Step, Key: def.Key, Label: def.Label, Values: values})
	}
	return out
}
