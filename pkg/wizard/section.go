package wizard

import (
	"errors"

	"github.com/artem13815/microbridge/pkg/profile"
)

var (
	ErrReadOnly      = errors.New("section is not in edit mode")
	ErrFieldNotOwned = errors.New("patch belongs to another step")
)

// RecordStore is what a step view needs from its host: a read-only snapshot and a
// single write path. *Controller satisfies it.
type RecordStore interface {
	Record() profile.Record
	Update(p profile.Patch) error
}

// Mode selects how a section treats edits.
type Mode int

const (
	// ModeOnboarding: always editable, every change is committed immediately.
	ModeOnboarding Mode = iota
	// ModeStandalone: read-only until Edit; changes go to a draft until Save.
	ModeStandalone
)

// Section is the step-view contract: it exposes the slice of the record owned by its
// step and turns user edits into patches for the store.
type Section struct {
	step    Step
	mode    Mode
	store   RecordStore
	editing bool
	draft   profile.Record
}

// NewSection binds a step view to a store.
func NewSection(step Step, mode Mode, store RecordStore) (*Section, error) {
	if !step.Valid() {
		return nil, profile.ErrUnknownStep
	}
	return &Section{step: step, mode: mode, store: store}, nil
}

func (s *Section) Step() Step { return s.step }
func (s *Section) Mode() Mode { return s.mode }

// Editable reports whether inputs accept changes right now.
func (s *Section) Editable() bool {
	return s.mode == ModeOnboarding || s.editing
}

// Editing reports whether a standalone section holds a draft.
func (s *Section) Editing() bool { return s.editing }

// View returns the step slice to render: the draft while editing, the store otherwise.
func (s *Section) View() profile.Patch {
	p, _ := profile.Slice(s.step, s.current())
	return p
}

// Record returns the full record the section currently renders against.
func (s *Section) Record() profile.Record { return s.current() }

func (s *Section) current() profile.Record {
	if s.editing {
		return s.draft.Clone()
	}
	return s.store.Record()
}

// Edit opens a draft copied from the store. No-op in onboarding mode.
func (s *Section) Edit() {
	if s.mode == ModeOnboarding {
		return
	}
	s.draft = s.store.Record()
	s.editing = true
}

// Change applies a patch of this section's step. In onboarding mode it goes straight to
// the store; in standalone mode it only touches the draft.
func (s *Section) Change(p profile.Patch) error {
	if p == nil || p.Step() != s.step {
		return ErrFieldNotOwned
	}
	if s.mode == ModeOnboarding {
		return s.store.Update(p)
	}
	if !s.editing {
		return ErrReadOnly
	}
	next, err := s.draft.Apply(p)
	if err != nil {
		return err
	}
	s.draft = next
	return nil
}

// Save commits the draft slice through the store and leaves edit mode. On a store
// error the draft is kept so the user can retry.
func (s *Section) Save() error {
	if s.mode == ModeOnboarding {
		return nil
	}
	if !s.editing {
		return ErrReadOnly
	}
	p, err := profile.Slice(s.step, s.draft)
	if err != nil {
		return err
	}
	if err := s.store.Update(p); err != nil {
		return err
	}
	s.editing = false
	s.draft = profile.Record{}
	return nil
}

// Cancel discards the draft without touching the store.
func (s *Section) Cancel() {
	if s.mode == ModeOnboarding {
		return
	}
	s.editing = false
	s.draft = profile.Record{}
}

// AddSkill appends a skill; duplicates are dropped with profile.ErrDuplicateSkill.
func (s *Section) AddSkill(name string, proficiency int) error {
	p, err := s.current().AddSkill(name, proficiency)
	if err != nil {
		return err
	}
	return s.Change(p)
}

// RemoveSkill deletes the skill at index.
func (s *Section) RemoveSkill(index int) error {
	p, err := s.current().RemoveSkill(index)
	if err != nil {
		return err
	}
	return s.Change(p)
}

// UpdateSkill rewrites one attribute of the skill at index, keeping order.
func (s *Section) UpdateSkill(index int, field profile.SkillField, value any) error {
	p, err := s.current().UpdateSkill(index, field, value)
	if err != nil {
		return err
	}
	return s.Change(p)
}

// SetPaymentType changes the governing compensation field; dependent fields are
// cleared by the record invariants in the same update.
func (s *Section) SetPaymentType(t string) error {
	return s.Change(profile.CompensationPatch{PaymentType: profile.String(t)})
}

// SetSalaryRange changes the salary range; a non-custom range clears customAmount.
func (s *Section) SetSalaryRange(r string) error {
	return s.Change(profile.CompensationPatch{SalaryRange: profile.String(r)})
}
