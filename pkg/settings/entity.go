// Package settings stores account settings (notifications, privacy, preferences) as raw
// JSON per user.
package settings

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("settings not found")
	ErrInvalidSettings = errors.New("invalid settings")
)

// ValidationError lists the schema violations of an update.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "invalid settings: " + strings.Join(e.Details, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidSettings }

type Notifications struct {
	Email          bool `json:"email"`
	Push           bool `json:"push"`
	ProjectMatches bool `json:"projectMatches"`
	Messages       bool `json:"messages"`
	WeeklyDigest   bool `json:"weeklyDigest"`
}

type Privacy struct {
	// ProfileVisibility is one of public, employers, private.
	ProfileVisibility string `json:"profileVisibility"`
	ShowEmail         bool   `json:"showEmail"`
	ShowPhone         bool   `json:"showPhone"`
	ShowLevel         bool   `json:"showLevel"`
}

type Preferences struct {
	Language string `json:"language"`
	Timezone string `json:"timezone"`
	Theme    string `json:"theme"`
	Currency string `json:"currency"`
}

type Settings struct {
	Notifications Notifications `json:"notifications"`
	Privacy       Privacy       `json:"privacy"`
	Preferences   Preferences   `json:"preferences"`
}

// Defaults are used for new users and whenever stored settings cannot be read.
func Defaults() Settings {
	return Settings{
		Notifications: Notifications{Email: true, Push: true, ProjectMatches: true, Messages: true},
		Privacy:       Privacy{ProfileVisibility: "employers", ShowLevel: true},
		Preferences:   Preferences{Language: "en", Timezone: "UTC", Theme: "system", Currency: "USD"},
	}
}

// Repository: порт хранения настроек; значение хранится как сырой JSON.
type Repository interface {
	Load(ctx context.Context, userID uuid.UUID) (string, error)
	Save(ctx context.Context, userID uuid.UUID, raw string) error
}
