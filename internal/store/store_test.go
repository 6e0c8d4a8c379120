package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akozlenkov/resumatch/internal/scoring"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "analyses.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResult() *scoring.AnalysisResult {
	return &scoring.AnalysisResult{
		MatchScore:          72.5,
		KeywordSimilarity:   80.1,
		SkillMatchScore:     66.67,
		ExperienceRelevance: 100,
		ATSCompliance:       45,
		SkillsFound:         []string{"python", "sql"},
		SkillsMissing:       []string{"aws"},
		Suggestions:         []string{"Add or strengthen these skills: aws"},
		PredictedRole:       "Backend Engineer",
	}
}

func TestSaveAndGetAnalysis(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveAnalysis(ctx, "resume text", "job text", sampleResult())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	rec, err := s.GetAnalysis(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, id, rec.ID)
	assert.Equal(t, "resume text", rec.ResumeText)
	assert.Equal(t, "job text", rec.JobDescription)
	assert.Equal(t, *sampleResult(), rec.Result)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestGetAnalysisNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetAnalysis(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveAnalysisDistinctIDs(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.SaveAnalysis(ctx, "same resume", "same job", sampleResult())
	require.NoError(t, err)
	second, err := s.SaveAnalysis(ctx, "same resume", "same job", sampleResult())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestAppendSuggestions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveAnalysis(ctx, "resume", "job", sampleResult())
	require.NoError(t, err)

	appended, err := s.AppendSuggestions(ctx, id, []string{
		"Add or strengthen these skills: aws", // already present
		"Show AWS certifications",
		"Quantify project outcomes",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, appended)

	rec, err := s.GetAnalysis(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Add or strengthen these skills: aws",
		"Show AWS certifications",
		"Quantify project outcomes",
	}, rec.Result.Suggestions)
}

func TestAppendSuggestionsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveAnalysis(ctx, "resume", "job", sampleResult())
	require.NoError(t, err)

	lines := []string{"Show AWS certifications", "Quantify project outcomes"}

	appended, err := s.AppendSuggestions(ctx, id, lines)
	require.NoError(t, err)
	assert.Equal(t, 2, appended)

	// Rerunning the identical enrichment changes nothing.
	appended, err = s.AppendSuggestions(ctx, id, lines)
	require.NoError(t, err)
	assert.Equal(t, 0, appended)

	rec, err := s.GetAnalysis(ctx, id)
	require.NoError(t, err)
	assert.Len(t, rec.Result.Suggestions, 3)
}

func TestAppendSuggestionsUnknownID(t *testing.T) {
	s := openTestStore(t)

	_, err := s.AppendSuggestions(context.Background(), "missing", []string{"line"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAppendSuggestionsDuplicateInput(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveAnalysis(ctx, "resume", "job", sampleResult())
	require.NoError(t, err)

	appended, err := s.AppendSuggestions(ctx, id, []string{"Same line", "Same line"})
	require.NoError(t, err)
	assert.Equal(t, 1, appended)
}
