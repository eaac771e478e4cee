package wizard

import "github.com/artem13815/microbridge/pkg/profile"

// EventType classifies a gamification signal emitted by a successful transition.
type EventType string

const (
	EventXPGained            EventType = "xp_gained"
	EventAchievementUnlocked EventType = "achievement_unlocked"
)

// Achievement is an unlockable badge.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Event is returned to the host, which decides whether to deliver, retry or drop it.
type Event struct {
	Type        EventType    `json:"type"`
	Step        Step         `json:"step"`
	Amount      int          `json:"amount,omitempty"`
	Achievement *Achievement `json:"achievement,omitempty"`
}

var (
	AchievementSkillMaster = Achievement{
		ID:          "skill_master",
		Title:       "Skill Master",
		Description: "Added at least three skills to your profile",
		Icon:        "🎯",
	}
	AchievementProfileComplete = Achievement{
		ID:          "profile_complete",
		Title:       "Profile Complete",
		Description: "Finished every step of the profile setup",
		Icon:        "🏆",
	}
)

// CompletionXP is awarded by Complete on the last step.
const CompletionXP = 100

// skillMasterThreshold is the skills count unlocking AchievementSkillMaster.
const skillMasterThreshold = 3

var stepXP = map[Step]int{
	profile.StepIdentity:     50,
	profile.StepEducation:    50,
	profile.StepCareer:       50,
	profile.StepSkills:       75,
	profile.StepAvailability: 50,
	profile.StepCompensation: 50,
}

// rewards returns the events for leaving step forward with record r.
func rewards(step Step, r profile.Record) []Event {
	var events []Event
	if xp, ok := stepXP[step]; ok {
		events = append(events, Event{Type: EventXPGained, Step: step, Amount: xp})
	}
	if step == profile.StepSkills && len(r.Skills) >= skillMasterThreshold {
		a := AchievementSkillMaster
		events = append(events, Event{Type: EventAchievementUnlocked, Step: step, Achievement: &a})
	}
	return events
}

func completionRewards() []Event {
	a := AchievementProfileComplete
	return []Event{
		{Type: EventXPGained, Step: profile.StepArtifacts, Amount: CompletionXP},
		{Type: EventAchievementUnlocked, Step: profile.StepArtifacts, Achievement: &a},
	}
}
