package nlp

import "sort"

// aliases maps a normalized skill to the other spellings it goes by.
var aliases = map[string][]string{
	"postgresql":       {"postgres"},
	"kubernetes":       {"k8s"},
	"go":               {"golang"},
	"javascript":       {"js"},
	"typescript":       {"ts"},
	"rest api":         {"rest", "restful"},
	"ci cd":            {"cicd"},
	"node js":          {"nodejs", "node"},
	"react":            {"react js", "reactjs"},
	"machine learning": {"ml"},
}

// CommonSkills is the catalog Detect looks for when none is given.
var CommonSkills = []string{
	"Go", "Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Rust", "Kotlin", "Swift",
	"SQL", "PostgreSQL", "MySQL", "MongoDB", "Redis", "Kafka",
	"Docker", "Kubernetes", "AWS", "GCP", "Azure", "Terraform", "Linux", "Git", "CI/CD",
	"React", "Vue", "Angular", "Node.js", "HTML", "CSS", "REST API", "GraphQL",
	"Machine Learning", "Data Analysis", "Excel", "Figma", "Photoshop",
	"Project Management", "Agile", "Scrum", "SEO", "Copywriting", "Public Speaking",
}

// SkillVariants returns the normalized spellings a skill can appear under, the skill
// itself first.
func SkillVariants(skill string) []string {
	base := NormalizeText(skill)
	if base == "" {
		return []string{}
	}
	out := []string{base}
	seen := map[string]struct{}{base: {}}
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	if alt, ok := aliases[base]; ok {
		for _, a := range alt {
			add(a)
		}
	}
	// reverse lookup: "k8s" also finds "kubernetes"
	for canon, alt := range aliases {
		for _, a := range alt {
			if a == base {
				add(canon)
			}
		}
	}
	return out
}

// Detect returns the catalog entries mentioned in text, in catalog order. A nil
// catalog means CommonSkills.
func Detect(text string, catalog []string) []string {
	if catalog == nil {
		catalog = CommonSkills
	}
	norm := NormalizeText(text)
	found := []string{}
	if norm == "" {
		return found
	}
	for _, skill := range catalog {
		for _, v := range SkillVariants(skill) {
			if ContainsPhrase(norm, v) {
				found = append(found, skill)
				break
			}
		}
	}
	return found
}

// SameSkill reports whether a and b are spellings of one skill.
func SameSkill(a, b string) bool {
	vb := SkillVariants(b)
	sort.Strings(vb)
	for _, v := range SkillVariants(a) {
		if i := sort.SearchStrings(vb, v); i < len(vb) && vb[i] == v {
			return true
		}
	}
	return false
}
