// Package wizard drives the profile onboarding flow: an ordered set of steps, a pure
// per-step validator, a linear state machine over the steps and the step-view contract
// shared by the onboarding and profile pages.
package wizard

import "github.com/artem13815/microbridge/pkg/profile"

// Step is re-exported for callers that only deal with the wizard.
type Step = profile.Step

// Definition describes one step of the flow.
type Definition struct {
	Step   Step     `json:"step"`
	Key    string   `json:"key"`
	Label  string   `json:"label"`
	Fields []string `json:"fields"`
}

var definitions = []Definition{
	{Step: profile.StepIdentity, Key: "basic_info", Label: "Basic Information",
		Fields: []string{"firstName", "lastName", "preferredName", "email", "phone", "bio", "location"}},
	{Step: profile.StepEducation, Key: "education", Label: "Education",
		Fields: []string{"educationLevel", "major", "university", "degree"}},
	{Step: profile.StepCareer, Key: "career_goals", Label: "Career Goals",
		Fields: []string{"careerGoal", "industry"}},
	{Step: profile.StepSkills, Key: "skills", Label: "Skills",
		Fields: []string{"skills"}},
	{Step: profile.StepAvailability, Key: "availability", Label: "Availability",
		Fields: []string{"availability", "projectDuration"}},
	{Step: profile.StepCompensation, Key: "compensation", Label: "Compensation",
		Fields: []string{"paymentType", "salaryRange", "customAmount", "flexibleNegotiation", "currency"}},
	{Step: profile.StepArtifacts, Key: "resume", Label: "Resume & Portfolio",
		Fields: []string{"portfolioUrl", "resume"}},
}

// Steps returns the step table in order.
func Steps() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup returns the definition of s.
func Lookup(s Step) (Definition, bool) {
	if !s.Valid() {
		return Definition{}, false
	}
	return definitions[s-1], true
}

// TotalSteps is N, the number of steps in the flow.
const TotalSteps = profile.StepCount

// CompletionPercentage is round((step-1)/N*100).
func CompletionPercentage(step Step) int {
	if step < profile.StepIdentity {
		return 0
	}
	if int(step) > TotalSteps+1 {
		return 100
	}
	return int(float64(step-1)/float64(TotalSteps)*100 + 0.5)
}
