package wizard

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/microbridge/pkg/profile"
)

func TestOnboardingSectionWritesThrough(t *testing.T) {
	c := New()
	s, err := NewSection(profile.StepSkills, ModeOnboarding, c)
	require.NoError(t, err)
	assert.True(t, s.Editable())

	require.NoError(t, s.AddSkill("Go", 0))
	require.NoError(t, s.AddSkill("SQL", 5))
	assert.ErrorIs(t, s.AddSkill(" go ", 2), profile.ErrDuplicateSkill)

	skills := c.Record().Skills
	require.Len(t, skills, 2)
	assert.Equal(t, profile.Skill{Skill: "Go", Proficiency: 3}, skills[0])

	require.NoError(t, s.UpdateSkill(0, profile.SkillFieldProficiency, 5))
	require.NoError(t, s.RemoveSkill(1))
	assert.Equal(t, []profile.Skill{{Skill: "Go", Proficiency: 5}}, c.Record().Skills)
}

func TestSectionRejectsForeignPatch(t *testing.T) {
	s, err := NewSection(profile.StepEducation, ModeOnboarding, New())
	require.NoError(t, err)
	assert.ErrorIs(t, s.Change(profile.CareerPatch{CareerGoal: profile.String("internship")}), ErrFieldNotOwned)

	_, err = NewSection(9, ModeOnboarding, New())
	assert.ErrorIs(t, err, profile.ErrUnknownStep)
}

func TestCompensationSectionClearsDependents(t *testing.T) {
	c := New()
	s, err := NewSection(profile.StepCompensation, ModeOnboarding, c)
	require.NoError(t, err)

	require.NoError(t, s.SetPaymentType("project_based"))
	require.NoError(t, s.SetSalaryRange("custom"))
	require.NoError(t, s.Change(profile.CompensationPatch{CustomAmount: profile.String("1200")}))
	assert.Equal(t, "1200", c.Record().CustomAmount)

	require.NoError(t, s.SetSalaryRange("100_500"))
	assert.Empty(t, c.Record().CustomAmount)

	require.NoError(t, s.SetPaymentType("hourly"))
	r := c.Record()
	assert.Empty(t, r.SalaryRange)
	assert.Empty(t, r.CustomAmount)
}

func TestStandaloneEditCancelLeavesRecordIdentical(t *testing.T) {
	c := New()
	advanceTo(t, c, profile.StepCareer)
	before := c.Record()

	s, err := NewSection(profile.StepEducation, ModeStandalone, c)
	require.NoError(t, err)
	assert.False(t, s.Editable())
	assert.ErrorIs(t, s.Change(profile.EducationPatch{Major: profile.String("biology")}), ErrReadOnly)

	s.Edit()
	require.NoError(t, s.Change(profile.EducationPatch{Major: profile.String("biology"), University: profile.String("ETH")}))
	assert.Equal(t, "biology", s.Record().Major)
	assert.Equal(t, "mathematics", c.Record().Major)

	s.Cancel()
	assert.False(t, s.Editing())
	if diff := cmp.Diff(before, c.Record()); diff != "" {
		t.Fatalf("cancel changed the record (-want +got):\n%s", diff)
	}
}

func TestStandaloneSaveCommitsSlice(t *testing.T) {
	c := New()
	s, err := NewSection(profile.StepCareer, ModeStandalone, c)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Save(), ErrReadOnly)

	s.Edit()
	require.NoError(t, s.Change(profile.CareerPatch{CareerGoal: profile.String("portfolio")}))
	require.NoError(t, s.Save())
	assert.False(t, s.Editing())
	assert.Equal(t, "portfolio", c.Record().CareerGoal)

	v, ok := s.View().(profile.CareerPatch)
	require.True(t, ok)
	assert.Equal(t, "portfolio", *v.CareerGoal)
}
