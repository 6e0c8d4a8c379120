package scoring

import "strings"

const (
	maxSuggestedSkills = 10

	tipATSStructure    = "Improve ATS structure with clear sections and contact details."
	tipAccomplishments = "Highlight impact, tenure, and domain-relevant accomplishments."
	tipStrongProfile   = "Strong profile overall. Tailor keywords to each job posting."
)

// GenerateSuggestions produces the rule-based improvement tips. Rules are
// evaluated independently in a fixed order and every matching rule fires;
// the fallback tip appears only when nothing else did. The returned order is
// final and never rearranged downstream.
func GenerateSuggestions(missingSkills []string, atsScore, experienceScore float64) []string {
	tips := make([]string, 0, 3)

	if len(missingSkills) > 0 {
		listed := missingSkills
		if len(listed) > maxSuggestedSkills {
			listed = listed[:maxSuggestedSkills]
		}
		tips = append(tips, "Add or strengthen these skills: "+strings.Join(listed, ", "))
	}

	if atsScore < 70 {
		tips = append(tips, tipATSStructure)
	}

	if experienceScore < 60 {
		tips = append(tips, tipAccomplishments)
	}

	if len(tips) == 0 {
		tips = append(tips, tipStrongProfile)
	}

	return tips
}
