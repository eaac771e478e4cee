// Package onboarding hosts the wizard for authenticated users: one session per user,
// write-through of every committed change to the stored profile, and publication of
// the wizard's gamification events.
package onboarding

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/microbridge/pkg/profile"
	"github.com/artem13815/microbridge/pkg/wizard"
)

var (
	ErrNoSession       = errors.New("no onboarding session")
	ErrProfileNotFound = errors.New("profile not found")
	ErrStepNotActive   = errors.New("patch does not belong to the active step")
	ErrNoResume        = errors.New("no resume uploaded")
)

// Session is the persisted wizard of one user.
type Session struct {
	UserID    uuid.UUID    `json:"userId"`
	State     wizard.State `json:"state"`
	StartedAt time.Time    `json:"startedAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// SessionStore keeps wizard sessions. Sessions are ephemeral: stores may expire them.
type SessionStore interface {
	Get(ctx context.Context, userID uuid.UUID) (Session, error)
	Save(ctx context.Context, s Session) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// StoredProfile is the durable profile a completed (or partially filled) wizard leaves.
type StoredProfile struct {
	UserID      uuid.UUID      `json:"userId"`
	Record      profile.Record `json:"record"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// ProfileRepository: порт хранения профиля.
type ProfileRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (StoredProfile, error)
	Save(ctx context.Context, userID uuid.UUID, r profile.Record) error
	MarkCompleted(ctx context.Context, userID uuid.UUID, at time.Time) error
}

// EventPublisher receives the wizard's gamification events.
type EventPublisher interface {
	Publish(userID uuid.UUID, events ...wizard.Event) int
}

// View is what the client renders for the current step.
type View struct {
	Step        wizard.Step        `json:"step"`
	TotalSteps  int                `json:"totalSteps"`
	Key         string             `json:"key"`
	Label       string             `json:"label"`
	Completion  int                `json:"completionPercentage"`
	Completed   bool               `json:"completed"`
	CanGoBack   bool               `json:"canGoBack"`
	CanComplete bool               `json:"canComplete"`
	Errors      wizard.FieldErrors `json:"errors"`
	Record      profile.Record     `json:"record"`
	Upload      wizard.UploadState `json:"upload"`
}

// Outcome is the result of Next, Back and Complete.
type Outcome struct {
	View       View           `json:"view"`
	Advanced   bool           `json:"advanced"`
	Events     []wizard.Event `json:"events"`
	RedirectTo string         `json:"redirectTo,omitempty"`
}

// DashboardPath is where the client goes after completion.
const DashboardPath = "/dashboard"
