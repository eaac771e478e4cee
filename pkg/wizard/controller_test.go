package wizard

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/microbridge/pkg/profile"
)

// fillStep makes step s of c valid.
func fillStep(t *testing.T, c *Controller, s Step) {
	t.Helper()
	var p profile.Patch
	switch s {
	case profile.StepIdentity:
		p = profile.IdentityPatch{
			FirstName: profile.String("Ada"), LastName: profile.String("Lovelace"),
			PreferredName: profile.String("Ada"), Email: profile.String("ada@example.com"),
		}
	case profile.StepEducation:
		p = profile.EducationPatch{EducationLevel: profile.String("bachelor"), Major: profile.String("mathematics")}
	case profile.StepCareer:
		p = profile.CareerPatch{CareerGoal: profile.String("internship"), Industry: profile.String("technology")}
	case profile.StepSkills:
		p = profile.SkillsPatch{Skills: []profile.Skill{{Skill: "Go", Proficiency: 4}}}
	case profile.StepAvailability:
		p = profile.AvailabilityPatch{Availability: profile.String("evenings"), ProjectDuration: profile.String("ongoing")}
	case profile.StepCompensation:
		p = profile.CompensationPatch{PaymentType: profile.String("hourly"), Currency: profile.String("USD")}
	default:
		return
	}
	require.NoError(t, c.Update(p))
}

func advanceTo(t *testing.T, c *Controller, target Step) {
	t.Helper()
	for c.Step() < target {
		fillStep(t, c, c.Step())
		tr := c.Next()
		require.True(t, tr.Advanced, "step %d: %v", tr.From, tr.Errors)
	}
}

func TestNextGatesOnValidation(t *testing.T) {
	for s := profile.StepIdentity; s < profile.StepArtifacts; s++ {
		c := New()
		advanceTo(t, c, s)
		before := c.Record()

		tr := c.Next()
		require.False(t, tr.Advanced)
		assert.Equal(t, s, c.Step())
		assert.False(t, tr.Errors.Empty())
		assert.Empty(t, tr.Events)
		assert.Equal(t, tr.Errors, c.Errors())
		if diff := cmp.Diff(before, c.Record()); diff != "" {
			t.Fatalf("record mutated by failed Next (-want +got):\n%s", diff)
		}
	}
}

func TestNextClearsErrorsAndAdvances(t *testing.T) {
	c := New()
	c.Next()
	require.False(t, c.Errors().Empty())

	fillStep(t, c, profile.StepIdentity)
	tr := c.Next()
	assert.True(t, tr.Advanced)
	assert.Equal(t, profile.StepEducation, c.Step())
	assert.True(t, c.Errors().Empty())
	assert.Equal(t, []Event{{Type: EventXPGained, Step: profile.StepIdentity, Amount: 50}}, tr.Events)
}

func TestBack(t *testing.T) {
	c := New()
	c.Back()
	assert.Equal(t, profile.StepIdentity, c.Step())

	advanceTo(t, c, profile.StepCareer)
	require.NoError(t, c.Update(profile.CareerPatch{Industry: profile.String("technology")}))
	c.Next() // careerGoal missing
	require.False(t, c.Errors().Empty())

	c.Back()
	assert.Equal(t, profile.StepEducation, c.Step())
	assert.True(t, c.Errors().Empty())
	assert.Equal(t, "technology", c.Record().Industry)
}

func TestBackKeepsEditsOfLeftStep(t *testing.T) {
	c := New()
	advanceTo(t, c, profile.StepEducation)
	require.NoError(t, c.Update(profile.EducationPatch{University: profile.String("MIT")}))
	c.Next()
	c.Back()
	assert.Equal(t, "MIT", c.Record().University)
}

func TestSkillsStepRewards(t *testing.T) {
	c := New()
	advanceTo(t, c, profile.StepSkills)
	require.NoError(t, c.Update(profile.SkillsPatch{Skills: []profile.Skill{
		{Skill: "Go", Proficiency: 3}, {Skill: "SQL", Proficiency: 3}, {Skill: "Docker", Proficiency: 2},
	}}))

	tr := c.Next()
	require.True(t, tr.Advanced)

	var xp, unlocks int
	for _, e := range tr.Events {
		switch e.Type {
		case EventXPGained:
			xp++
		case EventAchievementUnlocked:
			unlocks++
			assert.Equal(t, "skill_master", e.Achievement.ID)
		}
	}
	assert.Equal(t, 1, xp)
	assert.Equal(t, 1, unlocks)
}

func TestSkillsStepWithoutAchievement(t *testing.T) {
	c := New()
	advanceTo(t, c, profile.StepSkills)
	fillStep(t, c, profile.StepSkills)
	tr := c.Next()
	require.Len(t, tr.Events, 1)
	assert.Equal(t, 75, tr.Events[0].Amount)
}

func TestCompleteIsTheOnlyExit(t *testing.T) {
	c := New()
	_, err := c.Complete()
	assert.ErrorIs(t, err, ErrNotFinalStep)

	advanceTo(t, c, profile.StepArtifacts)
	assert.Equal(t, 86, c.CompletionPercentage())

	tr := c.Next()
	assert.False(t, tr.Advanced)
	assert.Empty(t, tr.Events)
	assert.Equal(t, profile.StepArtifacts, c.Step())

	tr, err = c.Complete()
	require.NoError(t, err)
	assert.True(t, c.Completed())
	assert.Equal(t, 100, c.CompletionPercentage())
	require.Len(t, tr.Events, 2)
	assert.Equal(t, CompletionXP, tr.Events[0].Amount)
	assert.Equal(t, "profile_complete", tr.Events[1].Achievement.ID)

	_, err = c.Complete()
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.ErrorIs(t, c.Update(profile.CareerPatch{}), ErrAlreadyCompleted)
}

func TestUpdateRejectsInvalidPatchAtomically(t *testing.T) {
	c := New()
	require.NoError(t, c.Update(profile.CareerPatch{CareerGoal: profile.String("internship")}))
	err := c.Update(profile.CareerPatch{CareerGoal: profile.String("freelance"), Industry: profile.String("space-pirates")})
	assert.ErrorIs(t, err, profile.ErrInvalidOption)
	assert.Equal(t, "internship", c.Record().CareerGoal)
}

func TestStateRestore(t *testing.T) {
	c := New()
	advanceTo(t, c, profile.StepSkills)
	c.Next()

	restored, err := Restore(c.State())
	require.NoError(t, err)
	assert.Equal(t, c.State(), restored.State())

	_, err = Restore(State{CurrentStep: 0})
	assert.ErrorIs(t, err, ErrCorruptState)
}
