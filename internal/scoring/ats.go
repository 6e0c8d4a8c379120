package scoring

import (
	"regexp"
	"strings"

	"github.com/akozlenkov/resumatch/internal/textnorm"
)

var (
	sectionHeaders = []string{"experience", "education", "skills", "projects", "summary"}

	reEmail = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)
	rePhone = regexp.MustCompile(`\+?\d[\d\s\-]{8,}\d`)
)

// ATSCompliance scores structural resume hygiene on a 0-100 scale:
// up to 70 points for the standard section headers, 10 each for an email
// and a phone number, and 10 for a word count in [300,1200] (5 otherwise,
// so the score never drops below 5).
func ATSCompliance(resumeText string) float64 {
	cleaned := textnorm.Clean(resumeText)

	present := 0
	for _, section := range sectionHeaders {
		if strings.Contains(cleaned, section) {
			present++
		}
	}
	sectionPoints := float64(present) / float64(len(sectionHeaders)) * 70

	contactPoints := 0.0
	// Contact patterns are matched against the raw text: cleaning strips
	// the @ and punctuation they rely on.
	if reEmail.MatchString(resumeText) {
		contactPoints += 10
	}
	if rePhone.MatchString(resumeText) {
		contactPoints += 10
	}

	lengthPoints := 5.0
	words := len(strings.Fields(cleaned))
	if words >= 300 && words <= 1200 {
		lengthPoints = 10.0
	}

	return round2(sectionPoints + contactPoints + lengthPoints)
}
