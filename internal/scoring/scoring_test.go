package scoring

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akozlenkov/resumatch/internal/skills"
	"github.com/akozlenkov/resumatch/internal/textnorm"
)

type stubPredictor struct {
	role string
}

func (s *stubPredictor) PredictRole(string) string { return s.role }

func newNormalizer(t *testing.T) *textnorm.Normalizer {
	t.Helper()
	norm, err := textnorm.New()
	require.NoError(t, err)
	return norm
}

func TestKeywordSimilarityEmptyInputs(t *testing.T) {
	norm := newNormalizer(t)

	assert.Equal(t, 0.0, KeywordSimilarity(norm, "", "some job description"))
	assert.Equal(t, 0.0, KeywordSimilarity(norm, "some resume text", ""))
	assert.Equal(t, 0.0, KeywordSimilarity(norm, "", ""))
}

func TestKeywordSimilarityIdenticalTexts(t *testing.T) {
	norm := newNormalizer(t)

	text := "senior python developer with kubernetes and postgres experience"
	score := KeywordSimilarity(norm, text, text)

	assert.InDelta(t, 100.0, score, 1e-6)
}

func TestKeywordSimilarityDisjointTexts(t *testing.T) {
	norm := newNormalizer(t)

	score := KeywordSimilarity(norm, "gardening cooking painting", "kubernetes golang microservices")

	assert.InDelta(t, 0.0, score, 1e-6)
}

func TestKeywordSimilarityRange(t *testing.T) {
	norm := newNormalizer(t)

	score := KeywordSimilarity(norm,
		"python developer building data pipelines",
		"looking for python engineer with pipeline experience",
	)

	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 100.0)
	assert.Greater(t, score, 0.0)
}

func TestExperienceRelevance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		resume string
		jd     string
		expect float64
	}{
		{
			name:   "no requirement stated",
			resume: "10 years of python",
			jd:     "python developer wanted",
			expect: 70.0,
		},
		{
			name:   "requirement but no stated experience",
			resume: "python developer",
			jd:     "requires 5 years of experience",
			expect: 20.0,
		},
		{
			name:   "exact match",
			resume: "5 years of python",
			jd:     "requires 5 years",
			expect: 80.0,
		},
		{
			name:   "capped ratio",
			resume: "10 years of experience",
			jd:     "requires 2 years",
			expect: 100.0,
		},
		{
			name:   "under requirement",
			resume: "2 years of experience",
			jd:     "requires 4 years",
			expect: 40.0,
		},
		{
			name:   "plus suffix and max wins",
			resume: "3 years here, then 7+ years there",
			jd:     "requires 7 years",
			expect: 80.0,
		},
		{
			name:   "both empty",
			resume: "",
			jd:     "",
			expect: 70.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.expect, ExperienceRelevance(tt.resume, tt.jd), 1e-9)
		})
	}
}

func TestATSCompliance(t *testing.T) {
	t.Parallel()

	t.Run("floor is the partial length credit", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 5.0, ATSCompliance(""))
	})

	t.Run("sections and contacts add up", func(t *testing.T) {
		t.Parallel()
		resume := "Summary\nExperience\nEducation\nSkills\nProjects\n" +
			"jane.doe@example.com\n+1 555-123-4567"
		// 70 sections + 10 email + 10 phone + 5 short-length credit.
		assert.Equal(t, 95.0, ATSCompliance(resume))
	})

	t.Run("length credit inside window", func(t *testing.T) {
		t.Parallel()
		resume := strings.Repeat("word ", 400)
		// 0 sections, 0 contacts, full length credit.
		assert.Equal(t, 10.0, ATSCompliance(resume))
	})

	t.Run("always within range", func(t *testing.T) {
		t.Parallel()
		score := ATSCompliance(strings.Repeat("experience education skills ", 500))
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	})
}

func TestGenerateSuggestions(t *testing.T) {
	t.Parallel()

	t.Run("missing skills tip lists at most ten", func(t *testing.T) {
		t.Parallel()
		missing := []string{"a1", "b2", "c3", "d4", "e5", "f6", "g7", "h8", "i9", "j10", "k11"}
		tips := GenerateSuggestions(missing, 90, 90)

		require.Len(t, tips, 1)
		assert.True(t, strings.HasPrefix(tips[0], "Add or strengthen these skills: "))
		assert.Contains(t, tips[0], "j10")
		assert.NotContains(t, tips[0], "k11")
	})

	t.Run("all rules fire independently", func(t *testing.T) {
		t.Parallel()
		tips := GenerateSuggestions([]string{"aws"}, 50, 30)

		require.Len(t, tips, 3)
		assert.Contains(t, tips[1], "ATS structure")
		assert.Contains(t, tips[2], "accomplishments")
	})

	t.Run("fallback when nothing fires", func(t *testing.T) {
		t.Parallel()
		tips := GenerateSuggestions(nil, 90, 90)

		require.Len(t, tips, 1)
		assert.Contains(t, tips[0], "Strong profile overall")
	})
}

func TestAnalyzeEndToEnd(t *testing.T) {
	norm := newNormalizer(t)
	vocab, err := skills.Default()
	require.NoError(t, err)

	analyzer := NewAnalyzer(norm, skills.NewExtractor(vocab), &stubPredictor{role: "Backend Engineer"}, nil)

	result, err := analyzer.Analyze(context.Background(),
		"5 years experience, Python, SQL",
		"Requires 3 years experience, Python, SQL, AWS",
	)
	require.NoError(t, err)

	assert.Equal(t, 66.67, result.SkillMatchScore)
	assert.Equal(t, []string{"aws"}, result.SkillsMissing)
	assert.Equal(t, []string{"python", "sql"}, result.SkillsFound)
	assert.Equal(t, 100.0, result.ExperienceRelevance)
	assert.Equal(t, "Backend Engineer", result.PredictedRole)

	require.NotEmpty(t, result.Suggestions)
	assert.Contains(t, result.Suggestions[0], "aws")

	for _, score := range []float64{
		result.MatchScore, result.KeywordSimilarity, result.SkillMatchScore,
		result.ExperienceRelevance, result.ATSCompliance,
	} {
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}
}

func TestAnalyzeNoJobSkills(t *testing.T) {
	norm := newNormalizer(t)
	vocab, err := skills.Default()
	require.NoError(t, err)

	analyzer := NewAnalyzer(norm, skills.NewExtractor(vocab), &stubPredictor{role: "Model not trained"}, nil)

	result, err := analyzer.Analyze(context.Background(),
		"python and sql and aws everywhere",
		"looking for someone friendly and organized",
	)
	require.NoError(t, err)

	// No recognizable jd skill set: the dimension is zero and nothing is
	// reported missing, regardless of resume content.
	assert.Equal(t, 0.0, result.SkillMatchScore)
	assert.Empty(t, result.SkillsMissing)
	assert.NotEmpty(t, result.SkillsFound)
}

func TestAnalyzeEmptyInputs(t *testing.T) {
	norm := newNormalizer(t)
	vocab, err := skills.Default()
	require.NoError(t, err)

	analyzer := NewAnalyzer(norm, skills.NewExtractor(vocab), &stubPredictor{role: "Model not trained"}, nil)

	result, err := analyzer.Analyze(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.KeywordSimilarity)
	assert.Equal(t, 0.0, result.SkillMatchScore)
	assert.Equal(t, 70.0, result.ExperienceRelevance)
	assert.Equal(t, 5.0, result.ATSCompliance)
	assert.NotEmpty(t, result.Suggestions)
}