// Package profile models the student profile record filled in by the onboarding wizard
// and the per-step partial updates that mutate it.
package profile

// Step identifies one of the onboarding steps; each step owns a slice of the Record.
type Step int

const (
	StepIdentity Step = iota + 1
	StepEducation
	StepCareer
	StepSkills
	StepAvailability
	StepCompensation
	StepArtifacts
)

// StepCount is the number of onboarding steps.
const StepCount = int(StepArtifacts)

// Valid reports whether s is one of the known steps.
func (s Step) Valid() bool { return s >= StepIdentity && s <= StepArtifacts }

// Skill is a single entry of the skills list.
type Skill struct {
	Skill       string `json:"skill"`
	Proficiency int    `json:"proficiency"`
}

// ResumeFile describes an uploaded resume artifact.
type ResumeFile struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// Record is the union of all fields collected by the wizard.
type Record struct {
	// Identity
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	PreferredName string `json:"preferredName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Bio           string `json:"bio"`
	Location      string `json:"location"`

	// Education
	EducationLevel string `json:"educationLevel"`
	Major          string `json:"major"`
	University     string `json:"university"`
	Degree         string `json:"degree"`

	// Career
	CareerGoal string `json:"careerGoal"`
	Industry   string `json:"industry"`

	Skills []Skill `json:"skills"`

	// Availability
	Availability    string `json:"availability"`
	ProjectDuration string `json:"projectDuration"`

	// Compensation
	PaymentType         string `json:"paymentType"`
	SalaryRange         string `json:"salaryRange,omitempty"`
	CustomAmount        string `json:"customAmount,omitempty"`
	FlexibleNegotiation bool   `json:"flexibleNegotiation"`
	Currency            string `json:"currency"`

	// Artifacts
	PortfolioURL string      `json:"portfolioUrl"`
	Resume       *ResumeFile `json:"resume,omitempty"`
}

// New returns an empty record.
func New() Record {
	return Record{Skills: []Skill{}}
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := r
	out.Skills = make([]Skill, len(r.Skills))
	copy(out.Skills, r.Skills)
	if r.Resume != nil {
		res := *r.Resume
		out.Resume = &res
	}
	return out
}
