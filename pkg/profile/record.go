package profile

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/artem13815/microbridge/pkg/registry"
)

// Apply merges p into a copy of r, restores the cross-field invariants and checks the
// result. On error r is returned unchanged together with the error; no partial update
// is ever visible.
func (r Record) Apply(p Patch) (Record, error) {
	if p == nil || !p.Step().Valid() {
		return r, ErrUnknownStep
	}
	next := r.Clone()
	p.apply(&next)
	next.normalize()
	if err := next.Check(); err != nil {
		return r, err
	}
	return next, nil
}

// normalize clears fields whose governing field no longer allows them.
func (r *Record) normalize() {
	if r.PaymentType != registry.PaymentProjectBased {
		r.SalaryRange = ""
		r.CustomAmount = ""
	}
	if r.SalaryRange != registry.SalaryCustom {
		r.CustomAmount = ""
	}
	for i := range r.Skills {
		r.Skills[i].Skill = strings.TrimSpace(r.Skills[i].Skill)
	}
	if r.Skills == nil {
		r.Skills = []Skill{}
	}
}

// Check verifies the record invariants: enumerated values belong to the registry and
// skills are unique (case-insensitive) with proficiency in [1,5].
func (r Record) Check() error {
	enums := []struct{ field, value string }{
		{registry.FieldEducationLevel, r.EducationLevel},
		{registry.FieldMajor, r.Major},
		{registry.FieldCareerGoal, r.CareerGoal},
		{registry.FieldIndustry, r.Industry},
		{registry.FieldAvailability, r.Availability},
		{registry.FieldProjectDuration, r.ProjectDuration},
		{registry.FieldPaymentType, r.PaymentType},
		{registry.FieldSalaryRange, r.SalaryRange},
		{registry.FieldCurrency, r.Currency},
	}
	for _, e := range enums {
		if !registry.Contains(e.field, e.value) {
			return &OptionError{Field: e.field, Value: e.value}
		}
	}
	seen := make(map[string]struct{}, len(r.Skills))
	for _, s := range r.Skills {
		key := skillKey(s.Skill)
		if key == "" {
			return ErrEmptySkill
		}
		if s.Proficiency < registry.MinProficiency || s.Proficiency > registry.MaxProficiency {
			return fmt.Errorf("%w: %q has %d", ErrInvalidProficiency, s.Skill, s.Proficiency)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateSkill, s.Skill)
		}
		seen[key] = struct{}{}
	}
	return nil
}

func skillKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// HasSkill reports whether a skill with the same trimmed, case-insensitive name exists.
func (r Record) HasSkill(name string) bool {
	key := skillKey(name)
	for _, s := range r.Skills {
		if skillKey(s.Skill) == key {
			return true
		}
	}
	return false
}

// AddSkill builds the patch appending a skill. A zero proficiency means the default
// (Intermediate). Duplicates are rejected with ErrDuplicateSkill.
func (r Record) AddSkill(name string, proficiency int) (SkillsPatch, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return SkillsPatch{}, ErrEmptySkill
	}
	if r.HasSkill(name) {
		return SkillsPatch{}, fmt.Errorf("%w: %q", ErrDuplicateSkill, name)
	}
	if proficiency == 0 {
		proficiency = registry.DefaultProficiency
	}
	if proficiency < registry.MinProficiency || proficiency > registry.MaxProficiency {
		return SkillsPatch{}, ErrInvalidProficiency
	}
	skills := make([]Skill, 0, len(r.Skills)+1)
	skills = append(skills, r.Skills...)
	skills = append(skills, Skill{Skill: name, Proficiency: proficiency})
	return SkillsPatch{Skills: skills}, nil
}

// RemoveSkill builds the patch deleting the skill at index.
func (r Record) RemoveSkill(index int) (SkillsPatch, error) {
	if index < 0 || index >= len(r.Skills) {
		return SkillsPatch{}, ErrSkillIndex
	}
	skills := make([]Skill, 0, len(r.Skills)-1)
	skills = append(skills, r.Skills[:index]...)
	skills = append(skills, r.Skills[index+1:]...)
	return SkillsPatch{Skills: skills}, nil
}

// SkillField names an editable attribute of a skill entry.
type SkillField string

const (
	SkillFieldName        SkillField = "skill"
	SkillFieldProficiency SkillField = "proficiency"
)

// UpdateSkill builds the patch rewriting one attribute of the skill at index in place.
// Names are strings; proficiency accepts any integral number (JSON numbers included).
func (r Record) UpdateSkill(index int, field SkillField, value any) (SkillsPatch, error) {
	if index < 0 || index >= len(r.Skills) {
		return SkillsPatch{}, ErrSkillIndex
	}
	skills := make([]Skill, len(r.Skills))
	copy(skills, r.Skills)
	switch field {
	case SkillFieldName:
		name, ok := value.(string)
		if !ok {
			return SkillsPatch{}, ErrInvalidSkillValue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return SkillsPatch{}, ErrEmptySkill
		}
		for i, s := range skills {
			if i != index && skillKey(s.Skill) == skillKey(name) {
				return SkillsPatch{}, fmt.Errorf("%w: %q", ErrDuplicateSkill, name)
			}
		}
		skills[index].Skill = name
	case SkillFieldProficiency:
		level, err := toInt(value)
		if err != nil {
			return SkillsPatch{}, err
		}
		if level < registry.MinProficiency || level > registry.MaxProficiency {
			return SkillsPatch{}, ErrInvalidProficiency
		}
		skills[index].Proficiency = level
	default:
		return SkillsPatch{}, fmt.Errorf("%w: %q", ErrUnknownSkillField, field)
	}
	return SkillsPatch{Skills: skills}, nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, ErrInvalidSkillValue
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, ErrInvalidSkillValue
		}
		return int(i), nil
	}
	return 0, ErrInvalidSkillValue
}
