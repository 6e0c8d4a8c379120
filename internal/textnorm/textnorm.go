// Package textnorm prepares free-form resume and job description text for
// the scoring pipeline. Two levels of normalization are provided: Clean keeps
// the text verbatim apart from casing and punctuation, while Normalizer also
// lemmatizes tokens and removes stopwords.
package textnorm

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)
	reSpaces   = regexp.MustCompile(`\s+`)
)

//go:embed stopwords_en.txt
var stopwordsData string

// Clean lowercases the text, replaces every character outside [a-z0-9\s]
// with a space, collapses whitespace runs and trims the result. Skill
// matching and the ATS checks rely on this form because skill names must
// stay verbatim substrings.
func Clean(text string) string {
	text = strings.ToLower(text)
	text = reNonAlnum.ReplaceAllString(text, " ")
	text = reSpaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Normalizer reduces cleaned text to space-joined lemmas with stopwords
// removed. It is safe for concurrent use.
type Normalizer struct {
	lemmatizer *golem.Lemmatizer
	stopwords  map[string]struct{}
}

// New builds a Normalizer with the english lemmatizer dictionary and the
// embedded stopword list.
func New() (*Normalizer, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("loading english lemmatizer: %w", err)
	}

	stopwords := make(map[string]struct{})
	for _, line := range strings.Split(stopwordsData, "\n") {
		word := strings.TrimSpace(line)
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		stopwords[word] = struct{}{}
	}

	return &Normalizer{lemmatizer: lemmatizer, stopwords: stopwords}, nil
}

// Normalize cleans the text, lemmatizes every token and drops stopwords and
// tokens that reduce to empty lemmas. Empty input yields empty output; the
// method never fails.
func (n *Normalizer) Normalize(text string) string {
	cleaned := Clean(text)
	if cleaned == "" {
		return ""
	}

	tokens := make([]string, 0, 32)
	for _, token := range strings.Fields(cleaned) {
		lemma := strings.TrimSpace(n.lemmatizer.Lemma(token))
		if lemma == "" {
			lemma = token
		}
		if _, stop := n.stopwords[lemma]; stop {
			continue
		}
		tokens = append(tokens, lemma)
	}

	return strings.Join(tokens, " ")
}
