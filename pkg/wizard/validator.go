package wizard

import (
	"regexp"
	"strings"

	"github.com/artem13815/microbridge/pkg/profile"
	"github.com/artem13815/microbridge/pkg/registry"
)

// FieldErrors maps a field name to the message shown under its input.
type FieldErrors map[string]string

// Empty reports whether no field failed.
func (e FieldErrors) Empty() bool { return len(e) == 0 }

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Validate checks the fields owned by step against r. An empty result means the step
// may be left forward. It never touches r.
func Validate(step Step, r profile.Record) FieldErrors {
	errs := FieldErrors{}
	required := func(field, value, message string) {
		if strings.TrimSpace(value) == "" {
			errs[field] = message
		}
	}
	switch step {
	case profile.StepIdentity:
		required("firstName", r.FirstName, "First name is required")
		required("lastName", r.LastName, "Last name is required")
		required("preferredName", r.PreferredName, "Preferred name is required")
		switch {
		case strings.TrimSpace(r.Email) == "":
			errs["email"] = "Email is required"
		case !emailPattern.MatchString(r.Email):
			errs["email"] = "Invalid email format"
		}
	case profile.StepEducation:
		required("educationLevel", r.EducationLevel, "Education level is required")
		required("major", r.Major, "Major is required")
	case profile.StepCareer:
		required("careerGoal", r.CareerGoal, "Career goal is required")
		required("industry", r.Industry, "Industry is required")
	case profile.StepSkills:
		if len(r.Skills) == 0 {
			errs["skills"] = "Add at least one skill"
		}
	case profile.StepAvailability:
		required("availability", r.Availability, "Availability is required")
		required("projectDuration", r.ProjectDuration, "Project duration is required")
	case profile.StepCompensation:
		required("paymentType", r.PaymentType, "Payment type is required")
		if r.PaymentType == registry.PaymentProjectBased {
			required("salaryRange", r.SalaryRange, "Salary range is required")
		}
		if r.SalaryRange == registry.SalaryCustom {
			required("customAmount", r.CustomAmount, "Custom amount is required")
		}
	case profile.StepArtifacts:
		// resume upload is optional
	}
	return errs
}
