package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Three tight clusters, one per class, trivially separable.
func separableData() (x [][]float64, y []int, numClasses int) {
	x = [][]float64{
		{1.0, 0.0, 0.0},
		{0.9, 0.1, 0.0},
		{0.95, 0.05, 0.0},
		{0.0, 1.0, 0.0},
		{0.1, 0.9, 0.0},
		{0.05, 0.95, 0.0},
		{0.0, 0.0, 1.0},
		{0.0, 0.1, 0.9},
		{0.05, 0.0, 0.95},
	}
	y = []int{0, 0, 0, 1, 1, 1, 2, 2, 2}
	return x, y, 3
}

func TestCandidatesSeparableFit(t *testing.T) {
	x, y, numClasses := separableData()

	for _, clf := range Candidates() {
		t.Run(clf.Name(), func(t *testing.T) {
			require.NoError(t, clf.Fit(x, y, numClasses))

			pred := clf.Predict(x)
			require.Len(t, pred, len(x))
			assert.Equal(t, y, pred, "training points must be recovered on separable data")
		})
	}
}

func TestCandidatesScoresContract(t *testing.T) {
	x, y, numClasses := separableData()

	for _, clf := range Candidates() {
		t.Run(clf.Name(), func(t *testing.T) {
			require.NoError(t, clf.Fit(x, y, numClasses))

			scores := clf.Scores(x)
			if clf.Capability() == CapabilityNone {
				assert.Nil(t, scores)
				return
			}

			require.Len(t, scores, len(x))
			for i, row := range scores {
				require.Len(t, row, numClasses)
				assert.Equal(t, y[i], argmax(row), "scores must agree with predictions")

				if clf.Capability() == CapabilityProbability {
					sum := 0.0
					for _, p := range row {
						assert.GreaterOrEqual(t, p, 0.0)
						assert.LessOrEqual(t, p, 1.0)
						sum += p
					}
					assert.InDelta(t, 1.0, sum, 1e-6)
				}
			}
		})
	}
}

func TestCandidatesDeterministic(t *testing.T) {
	x, y, numClasses := separableData()
	probe := [][]float64{{0.6, 0.4, 0.0}, {0.0, 0.45, 0.55}}

	for _, first := range Candidates() {
		t.Run(first.Name(), func(t *testing.T) {
			require.NoError(t, first.Fit(x, y, numClasses))

			second := candidateByName(t, first.Name())
			require.NoError(t, second.Fit(x, y, numClasses))

			assert.Equal(t, first.Predict(probe), second.Predict(probe))
		})
	}
}

func candidateByName(t *testing.T, name string) Classifier {
	t.Helper()
	for _, clf := range Candidates() {
		if clf.Name() == name {
			return clf
		}
	}
	t.Fatalf("no candidate named %q", name)
	return nil
}

func TestFamilyRank(t *testing.T) {
	candidates := Candidates()
	for i, clf := range candidates {
		assert.Equal(t, i, FamilyRank(clf.Name()))
	}
	assert.Equal(t, len(candidates), FamilyRank("random_forest"))
}

func TestArgmax(t *testing.T) {
	assert.Equal(t, 2, argmax([]float64{0.1, 0.2, 0.7}))
	assert.Equal(t, 0, argmax([]float64{0.5, 0.5}))
	assert.Equal(t, 0, argmax([]float64{1.0}))
}
