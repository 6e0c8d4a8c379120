// Package skills loads the known-skills vocabulary and extracts skill
// mentions from resume and job description text.
package skills

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

//go:embed vocabulary.json
var defaultVocabulary []byte

type vocabularyFile struct {
	Skills []string `json:"skills"`
}

// Vocabulary is the fixed set of recognized skill strings. It is loaded once
// at process start; changing the backing file requires a restart.
type Vocabulary struct {
	skills []string
	set    map[string]struct{}
}

// Default returns the vocabulary embedded in the binary.
func Default() (*Vocabulary, error) {
	return parse(defaultVocabulary, "embedded vocabulary")
}

// Load reads a vocabulary from a JSON file of the form {"skills": [...]}.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading skills vocabulary: %w", err)
	}
	return parse(data, path)
}

func parse(data []byte, source string) (*Vocabulary, error) {
	var file vocabularyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing skills vocabulary %s: %w", source, err)
	}
	if len(file.Skills) == 0 {
		return nil, fmt.Errorf("skills vocabulary %s contains no skills", source)
	}

	set := make(map[string]struct{}, len(file.Skills))
	for _, skill := range file.Skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == "" {
			continue
		}
		set[skill] = struct{}{}
	}

	skills := make([]string, 0, len(set))
	for skill := range set {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	return &Vocabulary{skills: skills, set: set}, nil
}

// Contains reports whether the lowercase skill string is part of the vocabulary.
func (v *Vocabulary) Contains(skill string) bool {
	_, ok := v.set[skill]
	return ok
}

// All returns the vocabulary in lexicographic order.
func (v *Vocabulary) All() []string {
	out := make([]string, len(v.skills))
	copy(out, v.skills)
	return out
}

// Len returns the number of distinct skills.
func (v *Vocabulary) Len() int { return len(v.skills) }
