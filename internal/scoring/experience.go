package scoring

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var reYears = regexp.MustCompile(`(\d+)\+?\s+years?`)

// Experience policy constants. The no-requirement default deliberately
// differs from the skill scorer's no-jd-skills behavior: absent a stated
// requirement the fit is assumed moderate, while an absent skill set zeroes
// the skill dimension instead.
const (
	noRequirementScore = 70.0
	noExperienceScore  = 20.0
	experienceCapRatio = 1.25
)

// ExperienceRelevance compares the largest "N years" mention of each text.
func ExperienceRelevance(resumeText, jobDescription string) float64 {
	resumeYears := maxYears(resumeText)
	jdYears := maxYears(jobDescription)

	if jdYears == 0 {
		return noRequirementScore
	}
	if resumeYears == 0 {
		return noExperienceScore
	}

	ratio := math.Min(float64(resumeYears)/float64(jdYears), experienceCapRatio)
	return math.Max(0, math.Min(ratio*80, 100))
}

// maxYears extracts the largest integer preceding "year"/"years" (an
// optional trailing "+" is tolerated). Absence of any mention yields 0.
func maxYears(text string) int {
	matches := reYears.FindAllStringSubmatch(strings.ToLower(text), -1)
	best := 0
	for _, m := range matches {
		if v, err := strconv.Atoi(m[1]); err == nil && v > best {
			best = v
		}
	}
	return best
}
