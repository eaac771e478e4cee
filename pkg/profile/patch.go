package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Patch is a partial update owned by exactly one step. The set of implementations is
// closed: a patch can only carry fields of its own step.
type Patch interface {
	Step() Step
	apply(r *Record)
}

// IdentityPatch updates the basic information slice. Nil fields are left untouched.
type IdentityPatch struct {
	FirstName     *string `json:"firstName,omitempty"`
	LastName      *string `json:"lastName,omitempty"`
	PreferredName *string `json:"preferredName,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Bio           *string `json:"bio,omitempty"`
	Location      *string `json:"location,omitempty"`
}

func (IdentityPatch) Step() Step { return StepIdentity }

func (p IdentityPatch) apply(r *Record) {
	set(&r.FirstName, p.FirstName)
	set(&r.LastName, p.LastName)
	set(&r.PreferredName, p.PreferredName)
	set(&r.Email, p.Email)
	set(&r.Phone, p.Phone)
	set(&r.Bio, p.Bio)
	set(&r.Location, p.Location)
}

type EducationPatch struct {
	EducationLevel *string `json:"educationLevel,omitempty"`
	Major          *string `json:"major,omitempty"`
	University     *string `json:"university,omitempty"`
	Degree         *string `json:"degree,omitempty"`
}

func (EducationPatch) Step() Step { return StepEducation }

func (p EducationPatch) apply(r *Record) {
	set(&r.EducationLevel, p.EducationLevel)
	set(&r.Major, p.Major)
	set(&r.University, p.University)
	set(&r.Degree, p.Degree)
}

type CareerPatch struct {
	CareerGoal *string `json:"careerGoal,omitempty"`
	Industry   *string `json:"industry,omitempty"`
}

func (CareerPatch) Step() Step { return StepCareer }

func (p CareerPatch) apply(r *Record) {
	set(&r.CareerGoal, p.CareerGoal)
	set(&r.Industry, p.Industry)
}

// SkillsPatch replaces the whole skills list. A nil slice means "not present";
// send an empty slice to clear the list.
type SkillsPatch struct {
	Skills []Skill `json:"skills"`
}

func (SkillsPatch) Step() Step { return StepSkills }

func (p SkillsPatch) apply(r *Record) {
	if p.Skills == nil {
		return
	}
	r.Skills = make([]Skill, len(p.Skills))
	copy(r.Skills, p.Skills)
}

type AvailabilityPatch struct {
	Availability    *string `json:"availability,omitempty"`
	ProjectDuration *string `json:"projectDuration,omitempty"`
}

func (AvailabilityPatch) Step() Step { return StepAvailability }

func (p AvailabilityPatch) apply(r *Record) {
	set(&r.Availability, p.Availability)
	set(&r.ProjectDuration, p.ProjectDuration)
}

type CompensationPatch struct {
	PaymentType         *string `json:"paymentType,omitempty"`
	SalaryRange         *string `json:"salaryRange,omitempty"`
	CustomAmount        *string `json:"customAmount,omitempty"`
	FlexibleNegotiation *bool   `json:"flexibleNegotiation,omitempty"`
	Currency            *string `json:"currency,omitempty"`
}

func (CompensationPatch) Step() Step { return StepCompensation }

func (p CompensationPatch) apply(r *Record) {
	set(&r.PaymentType, p.PaymentType)
	set(&r.SalaryRange, p.SalaryRange)
	set(&r.CustomAmount, p.CustomAmount)
	if p.FlexibleNegotiation != nil {
		r.FlexibleNegotiation = *p.FlexibleNegotiation
	}
	set(&r.Currency, p.Currency)
}

// ArtifactsPatch updates the portfolio link and the resume artifact. The resume is
// never accepted from the wire: it is set by the upload flow and cleared by removal.
type ArtifactsPatch struct {
	PortfolioURL *string     `json:"portfolioUrl,omitempty"`
	Resume       *ResumeFile `json:"-"`
	ClearResume  bool        `json:"-"`
}

func (ArtifactsPatch) Step() Step { return StepArtifacts }

func (p ArtifactsPatch) apply(r *Record) {
	set(&r.PortfolioURL, p.PortfolioURL)
	switch {
	case p.ClearResume:
		r.Resume = nil
	case p.Resume != nil:
		res := *p.Resume
		r.Resume = &res
	}
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// String returns a pointer to s, for building patches.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for building patches.
func Bool(b bool) *bool { return &b }

// DecodePatch parses the wire form of a step's partial update. Keys that the step does
// not own are rejected.
func DecodePatch(step Step, data []byte) (Patch, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var err error
	switch step {
	case StepIdentity:
		var p IdentityPatch
		if err = dec.Decode(&p); err == nil {
			return p, nil
		}
	case StepEducation:
		var p EducationPatch
		if err = dec.Decode(&p); err == nil {
			return p, nil
		}
	case StepCareer:
		var p CareerPatch
		if err = dec.Decode(&p); err == nil {
			return p, nil
		}
	case StepSkills:
		var p SkillsPatch
		if err = dec.Decode(&p); err == nil {
			return p, nil
		}
	case StepAvailability:
		var p AvailabilityPatch
		if err = dec.Decode(&p); err == nil {
			return p, nil
		}
	case StepCompensation:
		var p CompensationPatch
		if err = dec.Decode(&p); err == nil {
			return p, nil
		}
	case StepArtifacts:
		var p ArtifactsPatch
		if err = dec.Decode(&p); err == nil {
			return p, nil
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStep, step)
	}
	return nil, fmt.Errorf("%w: %v", ErrMalformedPatch, err)
}

// Slice extracts the complete patch of step from r, so that applying it to another
// record copies the whole step slice. The resume artifact is not part of the slice.
func Slice(step Step, r Record) (Patch, error) {
	switch step {
	case StepIdentity:
		return IdentityPatch{
			FirstName:     String(r.FirstName),
			LastName:      String(r.LastName),
			PreferredName: String(r.PreferredName),
			Email:         String(r.Email),
			Phone:         String(r.Phone),
			Bio:           String(r.Bio),
			Location:      String(r.Location),
		}, nil
	case StepEducation:
		return EducationPatch{
			EducationLevel: String(r.EducationLevel),
			Major:          String(r.Major),
			University:     String(r.University),
			Degree:         String(r.Degree),
		}, nil
	case StepCareer:
		return CareerPatch{CareerGoal: String(r.CareerGoal), Industry: String(r.Industry)}, nil
	case StepSkills:
		skills := make([]Skill, len(r.Skills))
		copy(skills, r.Skills)
		return SkillsPatch{Skills: skills}, nil
	case StepAvailability:
		return AvailabilityPatch{Availability: String(r.Availability), ProjectDuration: String(r.ProjectDuration)}, nil
	case StepCompensation:
		return CompensationPatch{
			PaymentType:         String(r.PaymentType),
			SalaryRange:         String(r.SalaryRange),
			CustomAmount:        String(r.CustomAmount),
			FlexibleNegotiation: Bool(r.FlexibleNegotiation),
			Currency:            String(r.Currency),
		}, nil
	case StepArtifacts:
		return ArtifactsPatch{PortfolioURL: String(r.PortfolioURL)}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownStep, step)
}
