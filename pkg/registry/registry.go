// Package registry holds the static option sets behind every enumerated profile field.
package registry

import "sort"

// Option is a single selectable value of an enumerated field.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Category string `json:"category,omitempty"`
}

// Field names of the enumerated profile fields.
const (
	FieldEducationLevel  = "educationLevel"
	FieldMajor           = "major"
	FieldCareerGoal      = "careerGoal"
	FieldIndustry        = "industry"
	FieldAvailability    = "availability"
	FieldProjectDuration = "projectDuration"
	FieldPaymentType     = "paymentType"
	FieldSalaryRange     = "salaryRange"
	FieldCurrency        = "currency"
	FieldProficiency     = "proficiency"
)

// Governing values referenced by the compensation invariants.
const (
	PaymentProjectBased = "project_based"
	SalaryCustom        = "custom"
)

// Proficiency bounds for skills.
const (
	MinProficiency     = 1
	MaxProficiency     = 5
	DefaultProficiency = 3
)

var EducationLevels = []Option{
	{Value: "high_school", Label: "High School"},
	{Value: "associate", Label: "Associate Degree"},
	{Value: "bachelor", Label: "Bachelor's Degree"},
	{Value: "master", Label: "Master's Degree"},
	{Value: "phd", Label: "PhD"},
	{Value: "bootcamp", Label: "Bootcamp / Certificate"},
	{Value: "self_taught", Label: "Self-taught"},
}

var Majors = []Option{
	{Value: "computer_science", Label: "Computer Science", Category: "Engineering & Technology"},
	{Value: "software_engineering", Label: "Software Engineering", Category: "Engineering & Technology"},
	{Value: "data_science", Label: "Data Science", Category: "Engineering & Technology"},
	{Value: "information_systems", Label: "Information Systems", Category: "Engineering & Technology"},
	{Value: "electrical_engineering", Label: "Electrical Engineering", Category: "Engineering & Technology"},
	{Value: "mechanical_engineering", Label: "Mechanical Engineering", Category: "Engineering & Technology"},
	{Value: "business_administration", Label: "Business Administration", Category: "Business"},
	{Value: "finance", Label: "Finance", Category: "Business"},
	{Value: "marketing", Label: "Marketing", Category: "Business"},
	{Value: "economics", Label: "Economics", Category: "Business"},
	{Value: "graphic_design", Label: "Graphic Design", Category: "Arts & Design"},
	{Value: "ux_design", Label: "UX / Interaction Design", Category: "Arts & Design"},
	{Value: "communications", Label: "Communications", Category: "Humanities"},
	{Value: "psychology", Label: "Psychology", Category: "Social Sciences"},
	{Value: "mathematics", Label: "Mathematics", Category: "Natural Sciences"},
	{Value: "biology", Label: "Biology", Category: "Natural Sciences"},
	{Value: "other", Label: "Other", Category: "Other"},
}

var CareerGoals = []Option{
	{Value: "internship", Label: "Find an internship"},
	{Value: "part_time", Label: "Part-time work while studying"},
	{Value: "full_time", Label: "Full-time position after graduation"},
	{Value: "freelance", Label: "Freelance micro-projects"},
	{Value: "portfolio", Label: "Build my portfolio"},
	{Value: "networking", Label: "Grow my professional network"},
}

var Industries = []Option{
	{Value: "technology", Label: "Technology"},
	{Value: "finance", Label: "Finance & Banking"},
	{Value: "healthcare", Label: "Healthcare"},
	{Value: "education", Label: "Education"},
	{Value: "marketing", Label: "Marketing & Advertising"},
	{Value: "design", Label: "Design & Creative"},
	{Value: "consulting", Label: "Consulting"},
	{Value: "ecommerce", Label: "E-commerce & Retail"},
	{Value: "nonprofit", Label: "Non-profit"},
	{Value: "media", Label: "Media & Entertainment"},
}

var AvailabilityWindows = []Option{
	{Value: "weekdays", Label: "Weekdays"},
	{Value: "evenings", Label: "Evenings"},
	{Value: "weekends", Label: "Weekends"},
	{Value: "flexible", Label: "Flexible"},
	{Value: "summer_only", Label: "Summer break only"},
}

var ProjectDurations = []Option{
	{Value: "under_1_week", Label: "Less than a week"},
	{Value: "1_2_weeks", Label: "1-2 weeks"},
	{Value: "2_4_weeks", Label: "2-4 weeks"},
	{Value: "1_3_months", Label: "1-3 months"},
	{Value: "ongoing", Label: "Ongoing"},
}

var PaymentTypes = []Option{
	{Value: "hourly", Label: "Hourly rate"},
	{Value: PaymentProjectBased, Label: "Project based"},
	{Value: "stipend", Label: "Monthly stipend"},
	{Value: "unpaid", Label: "Unpaid / for experience"},
}

var SalaryRanges = []Option{
	{Value: "under_100", Label: "Under $100"},
	{Value: "100_500", Label: "$100 - $500"},
	{Value: "500_1000", Label: "$500 - $1,000"},
	{Value: "1000_5000", Label: "$1,000 - $5,000"},
	{Value: "over_5000", Label: "Over $5,000"},
	{Value: SalaryCustom, Label: "Custom amount"},
}

var Currencies = []Option{
	{Value: "USD", Label: "US Dollar"},
	{Value: "EUR", Label: "Euro"},
	{Value: "GBP", Label: "British Pound"},
	{Value: "CAD", Label: "Canadian Dollar"},
	{Value: "AUD", Label: "Australian Dollar"},
	{Value: "INR", Label: "Indian Rupee"},
}

var ProficiencyLevels = []Option{
	{Value: "1", Label: "Beginner"},
	{Value: "2", Label: "Elementary"},
	{Value: "3", Label: "Intermediate"},
	{Value: "4", Label: "Advanced"},
	{Value: "5", Label: "Expert"},
}

var byField = map[string][]Option{
	FieldEducationLevel:  EducationLevels,
	FieldMajor:           Majors,
	FieldCareerGoal:      CareerGoals,
	FieldIndustry:        Industries,
	FieldAvailability:    AvailabilityWindows,
	FieldProjectDuration: ProjectDurations,
	FieldPaymentType:     PaymentTypes,
	FieldSalaryRange:     SalaryRanges,
	FieldCurrency:        Currencies,
	FieldProficiency:     ProficiencyLevels,
}

// Options returns the option set of a field; ok is false for non-enumerated fields.
// The returned slice is a copy.
func Options(field string) ([]Option, bool) {
	opts, ok := byField[field]
	if !ok {
		return nil, false
	}
	return append([]Option(nil), opts...), true
}

// Contains reports whether value belongs to the option set of field.
// An empty value is always accepted ("unset").
func Contains(field, value string) bool {
	if value == "" {
		return true
	}
	for _, o := range byField[field] {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Label returns the human label of value, or value itself when unknown.
func Label(field, value string) string {
	for _, o := range byField[field] {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// Fields lists the enumerated field names in stable order.
func Fields() []string {
	out := make([]string, 0, len(byField))
	for f := range byField {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// All returns every option set keyed by field name.
func All() map[string][]Option {
	out := make(map[string][]Option, len(byField))
	for f, opts := range byField {
		out[f] = append([]Option(nil), opts...)
	}
	return out
}

// MajorsByCategory groups majors for grouped dropdowns, keeping declaration order.
func MajorsByCategory() map[string][]Option {
	out := make(map[string][]Option)
	for _, m := range Majors {
		out[m.Category] = append(out[m.Category], m)
	}
	return out
}
