package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WizardSessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "onboarding_sessions_started_total",
			Help: "Total number of onboarding wizard sessions started",
		},
	)

	WizardTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "onboarding_step_transitions_total",
			Help: "Step transitions by source step and outcome (advanced, blocked, back)",
		},
		[]string{"step", "outcome"},
	)

	WizardCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "onboarding_completed_total",
			Help: "Total number of completed onboarding wizards",
		},
	)

	ResumeUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_uploads_total",
			Help: "Resume upload attempts by resulting status",
		},
		[]string{"status"},
	)

	GamificationEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamification_events_total",
			Help: "Gamification events by type and result (applied, dropped, failed)",
		},
		[]string{"type", "result"},
	)

	SettingsWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settings_writes_total",
			Help: "Debounced settings write-throughs by result",
		},
		[]string{"result"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "route", "status"},
	)
)
