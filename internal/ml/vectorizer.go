// Package ml implements the TF-IDF vectorizer, the role classifiers and the
// artifact triple that the offline trainer produces and the inference path
// consumes.
package ml

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/akozlenkov/resumatch/internal/textnorm"
)

// VectorizerConfig controls feature extraction. Every trainer candidate
// shares one config so the model comparison stays fair.
type VectorizerConfig struct {
	NGramMin    int
	NGramMax    int
	MaxFeatures int
	MinDF       int
	SublinearTF bool
}

// DefaultTrainingConfig is the vectorization used for role classification.
func DefaultTrainingConfig() VectorizerConfig {
	return VectorizerConfig{
		NGramMin:    1,
		NGramMax:    3,
		MaxFeatures: 30000,
		MinDF:       2,
		SublinearTF: true,
	}
}

// PairConfig is the minimal configuration used for the two-document keyword
// similarity corpus, where every term must survive.
func PairConfig() VectorizerConfig {
	return VectorizerConfig{NGramMin: 1, NGramMax: 1, MinDF: 1}
}

// Vectorizer turns documents into l2-normalized TF-IDF vectors. Vectors are
// dense; the vocabulary cap keeps them tractable for the dataset sizes this
// tool trains on. Fields are exported for gob persistence.
type Vectorizer struct {
	Config     VectorizerConfig
	Vocabulary map[string]int
	IDF        []float64
	DocCount   int
}

// NewVectorizer creates an unfitted vectorizer.
func NewVectorizer(cfg VectorizerConfig) *Vectorizer {
	if cfg.NGramMin < 1 {
		cfg.NGramMin = 1
	}
	if cfg.NGramMax < cfg.NGramMin {
		cfg.NGramMax = cfg.NGramMin
	}
	if cfg.MinDF < 1 {
		cfg.MinDF = 1
	}
	return &Vectorizer{Config: cfg}
}

// Fit learns the vocabulary and inverse document frequencies from docs.
func (v *Vectorizer) Fit(docs []string) {
	df := make(map[string]int)
	totalTF := make(map[string]int)

	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range v.terms(doc) {
			totalTF[term]++
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				df[term]++
			}
		}
	}

	kept := make([]string, 0, len(df))
	for term, count := range df {
		if count >= v.Config.MinDF {
			kept = append(kept, term)
		}
	}

	if v.Config.MaxFeatures > 0 && len(kept) > v.Config.MaxFeatures {
		// Most frequent terms win the cap, alphabetical on ties.
		sort.Slice(kept, func(i, j int) bool {
			if totalTF[kept[i]] != totalTF[kept[j]] {
				return totalTF[kept[i]] > totalTF[kept[j]]
			}
			return kept[i] < kept[j]
		})
		kept = kept[:v.Config.MaxFeatures]
	}

	sort.Strings(kept)

	v.Vocabulary = make(map[string]int, len(kept))
	v.IDF = make([]float64, len(kept))
	v.DocCount = len(docs)

	for i, term := range kept {
		v.Vocabulary[term] = i
		v.IDF[i] = math.Log(float64(1+len(docs))/float64(1+df[term])) + 1
	}
}

// Transform vectorizes one document against the fitted vocabulary.
// Out-of-vocabulary terms are ignored.
func (v *Vectorizer) Transform(doc string) []float64 {
	vec := make([]float64, len(v.IDF))
	if len(v.IDF) == 0 {
		return vec
	}

	for _, term := range v.terms(doc) {
		if idx, ok := v.Vocabulary[term]; ok {
			vec[idx]++
		}
	}

	for i := range vec {
		if vec[i] == 0 {
			continue
		}
		tf := vec[i]
		if v.Config.SublinearTF {
			tf = 1 + math.Log(tf)
		}
		vec[i] = tf * v.IDF[i]
	}

	if norm := floats.Norm(vec, 2); norm > 0 {
		floats.Scale(1/norm, vec)
	}

	return vec
}

// TransformAll vectorizes a batch of documents.
func (v *Vectorizer) TransformAll(docs []string) [][]float64 {
	out := make([][]float64, len(docs))
	for i, doc := range docs {
		out[i] = v.Transform(doc)
	}
	return out
}

// NumFeatures returns the fitted vocabulary size.
func (v *Vectorizer) NumFeatures() int { return len(v.IDF) }

// terms tokenizes a raw document and expands the configured n-gram range.
// Single-character tokens are dropped, matching common vectorizer semantics.
func (v *Vectorizer) terms(doc string) []string {
	fields := strings.Fields(textnorm.Clean(doc))
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) > 1 {
			tokens = append(tokens, f)
		}
	}

	if v.Config.NGramMin == 1 && v.Config.NGramMax == 1 {
		return tokens
	}

	terms := make([]string, 0, len(tokens)*(v.Config.NGramMax-v.Config.NGramMin+1))
	for n := v.Config.NGramMin; n <= v.Config.NGramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}

	return terms
}
