package wizard

import (
	"errors"

	"github.com/artem13815/microbridge/pkg/profile"
)

var (
	ErrNotFinalStep     = errors.New("complete is only allowed on the last step")
	ErrAlreadyCompleted = errors.New("wizard already completed")
	ErrStepInvalid      = errors.New("current step has validation errors")
	ErrCorruptState     = errors.New("wizard state is corrupt")
)

// State is the serializable snapshot of a controller.
type State struct {
	CurrentStep Step           `json:"currentStep"`
	Errors      FieldErrors    `json:"errors"`
	Record      profile.Record `json:"record"`
	Completed   bool           `json:"completed"`
}

// Transition is the outcome of Next or Complete.
type Transition struct {
	From     Step        `json:"from"`
	To       Step        `json:"to"`
	Advanced bool        `json:"advanced"`
	Errors   FieldErrors `json:"errors,omitempty"`
	Events   []Event     `json:"events,omitempty"`
}

// Controller is the single owner of the profile record during onboarding. Step views
// read snapshots through Record and write only through Update. It is not safe for
// concurrent use; hosts serialize access per session.
type Controller struct {
	step      Step
	record    profile.Record
	errors    FieldErrors
	completed bool
}

// New starts a wizard on step 1 with an empty record.
func New() *Controller {
	return &Controller{step: profile.StepIdentity, record: profile.New(), errors: FieldErrors{}}
}

// NewWithRecord starts on step 1 with a prefilled record.
func NewWithRecord(r profile.Record) (*Controller, error) {
	if err := r.Check(); err != nil {
		return nil, err
	}
	c := New()
	c.record = r.Clone()
	return c, nil
}

// Restore rebuilds a controller from a snapshot.
func Restore(s State) (*Controller, error) {
	if !s.CurrentStep.Valid() {
		return nil, ErrCorruptState
	}
	if err := s.Record.Check(); err != nil {
		return nil, errors.Join(ErrCorruptState, err)
	}
	errs := FieldErrors{}
	for k, v := range s.Errors {
		errs[k] = v
	}
	return &Controller{step: s.CurrentStep, record: s.Record.Clone(), errors: errs, completed: s.Completed}, nil
}

// State returns a snapshot safe to serialize or hand to another goroutine.
func (c *Controller) State() State {
	return State{CurrentStep: c.step, Errors: c.Errors(), Record: c.Record(), Completed: c.completed}
}

func (c *Controller) Step() Step      { return c.step }
func (c *Controller) Completed() bool { return c.completed }

// Record returns a copy of the current record.
func (c *Controller) Record() profile.Record { return c.record.Clone() }

// Errors returns a copy of the errors recorded by the last failed Next.
func (c *Controller) Errors() FieldErrors {
	out := make(FieldErrors, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// CompletionPercentage is derived from the current step; 100 after Complete.
func (c *Controller) CompletionPercentage() int {
	if c.completed {
		return 100
	}
	return CompletionPercentage(c.step)
}

// Update merges a partial update into the record. Cross-field invariants are restored
// in the same update; an invalid patch leaves the record untouched.
func (c *Controller) Update(p profile.Patch) error {
	if c.completed {
		return ErrAlreadyCompleted
	}
	next, err := c.record.Apply(p)
	if err != nil {
		return err
	}
	c.record = next
	return nil
}

// Next validates the current step. On failure the errors are stored and nothing else
// changes; on success errors are cleared, rewards are returned and the step advances.
// Next on the last step is a no-op: leaving the flow goes through Complete.
func (c *Controller) Next() Transition {
	t := Transition{From: c.step, To: c.step}
	if c.completed || int(c.step) >= TotalSteps {
		return t
	}
	if errs := Validate(c.step, c.record); !errs.Empty() {
		c.errors = errs
		t.Errors = c.Errors()
		return t
	}
	c.errors = FieldErrors{}
	t.Events = rewards(c.step, c.record)
	c.step++
	t.To = c.step
	t.Advanced = true
	return t
}

// Back clears errors and moves one step back; on step 1 it only clears errors.
func (c *Controller) Back() {
	c.errors = FieldErrors{}
	if c.completed {
		return
	}
	if c.step > profile.StepIdentity {
		c.step--
	}
}

// Complete is the explicit exit from the last step. It awards the completion rewards
// and marks the wizard finished; the host then navigates away.
func (c *Controller) Complete() (Transition, error) {
	t := Transition{From: c.step, To: c.step}
	if c.completed {
		return t, ErrAlreadyCompleted
	}
	if int(c.step) != TotalSteps {
		return t, ErrNotFinalStep
	}
	if errs := Validate(c.step, c.record); !errs.Empty() {
		c.errors = errs
		t.Errors = c.Errors()
		return t, ErrStepInvalid
	}
	c.errors = FieldErrors{}
	c.completed = true
	t.Advanced = true
	t.Events = completionRewards()
	return t, nil
}
