package scoring

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/akozlenkov/resumatch/internal/ml"
	"github.com/akozlenkov/resumatch/internal/textnorm"
)

// KeywordSimilarity scores lexical overlap between the normalized resume and
// job description on a 0-100 scale. The TF-IDF vocabulary is derived from
// this document pair alone, not a global corpus.
func KeywordSimilarity(norm *textnorm.Normalizer, resumeText, jobDescription string) float64 {
	pResume := norm.Normalize(resumeText)
	pJD := norm.Normalize(jobDescription)

	if pResume == "" || pJD == "" {
		return 0.0
	}

	vectorizer := ml.NewVectorizer(ml.PairConfig())
	vectorizer.Fit([]string{pResume, pJD})

	a := vectorizer.Transform(pResume)
	b := vectorizer.Transform(pJD)

	// Transform l2-normalizes, so the dot product is the cosine.
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0.0
	}

	score := floats.Dot(a, b) * 100
	return math.Max(0, math.Min(score, 100))
}
