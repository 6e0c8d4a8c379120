package skills

import (
	"sort"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/akozlenkov/resumatch/internal/textnorm"
)

// Extractor matches the vocabulary against cleaned text. A skill counts as
// found when it appears as a verbatim substring of the cleaned text, or when
// a named-entity span equals a known skill string. No fuzzy matching.
type Extractor struct {
	vocab *Vocabulary
}

// NewExtractor creates an Extractor over the given vocabulary.
func NewExtractor(vocab *Vocabulary) *Extractor {
	return &Extractor{vocab: vocab}
}

// Extract returns the sorted set of vocabulary skills mentioned in text.
// The cleaning step deliberately skips lemmatization so multi-word skill
// names stay intact.
func (e *Extractor) Extract(text string) []string {
	cleaned := textnorm.Clean(text)
	if cleaned == "" {
		return []string{}
	}

	found := make(map[string]struct{})
	for _, skill := range e.vocab.skills {
		if strings.Contains(cleaned, skill) {
			found[skill] = struct{}{}
		}
	}

	// Entity spans catch names the substring scan may have mangled in the
	// original text, e.g. "AWS," tokenized as a single entity.
	if doc, err := prose.NewDocument(cleaned); err == nil {
		for _, ent := range doc.Entities() {
			candidate := strings.ToLower(strings.TrimSpace(ent.Text))
			if e.vocab.Contains(candidate) {
				found[candidate] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(found))
	for skill := range found {
		out = append(out, skill)
	}
	sort.Strings(out)

	return out
}

// Missing returns jd skills absent from the resume set, sorted ascending.
func Missing(resumeSkills, jdSkills []string) []string {
	have := make(map[string]struct{}, len(resumeSkills))
	for _, skill := range resumeSkills {
		have[skill] = struct{}{}
	}

	missing := make([]string, 0)
	for _, skill := range jdSkills {
		if _, ok := have[skill]; !ok {
			missing = append(missing, skill)
		}
	}
	sort.Strings(missing)

	return missing
}

// Overlap counts skills present in both sets.
func Overlap(resumeSkills, jdSkills []string) int {
	have := make(map[string]struct{}, len(resumeSkills))
	for _, skill := range resumeSkills {
		have[skill] = struct{}{}
	}

	count := 0
	for _, skill := range jdSkills {
		if _, ok := have[skill]; ok {
			count++
		}
	}

	return count
}
