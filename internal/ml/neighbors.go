package ml

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// KNN is a cosine-similarity k-nearest-neighbors classifier. It keeps the
// training matrix, so artifacts grow with the dataset; acceptable for the
// dataset sizes this tool targets.
type KNN struct {
	K          int
	X          [][]float64
	Y          []int
	NumClasses int
}

// NewKNN returns a k-nearest-neighbors classifier.
func NewKNN(k int) *KNN {
	if k < 1 {
		k = 1
	}
	return &KNN{K: k}
}

func (knn *KNN) Name() string { return "knn" }

// Capability is probability via neighbor vote shares.
func (knn *KNN) Capability() Capability { return CapabilityProbability }

// Fit memorizes the training set.
func (knn *KNN) Fit(x [][]float64, y []int, numClasses int) error {
	if len(x) == 0 || len(x) != len(y) {
		return errors.New("training data is empty or misaligned")
	}
	knn.X = x
	knn.Y = y
	knn.NumClasses = numClasses
	return nil
}

// Predict returns the majority class among the k nearest neighbors. Ties go
// to the lower class index for determinism.
func (knn *KNN) Predict(x [][]float64) []int {
	out := make([]int, len(x))
	for i, row := range x {
		out[i] = argmax(knn.votesFor(row))
	}
	return out
}

// Scores returns neighbor vote fractions per class.
func (knn *KNN) Scores(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for i, row := range x {
		out[i] = knn.votesFor(row)
	}
	return out
}

func (knn *KNN) votesFor(row []float64) []float64 {
	type neighbor struct {
		sim float64
		idx int
	}

	neighbors := make([]neighbor, len(knn.X))
	for i, train := range knn.X {
		neighbors[i] = neighbor{sim: floats.Dot(train, row), idx: i}
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].sim != neighbors[j].sim {
			return neighbors[i].sim > neighbors[j].sim
		}
		return neighbors[i].idx < neighbors[j].idx
	})

	k := knn.K
	if k > len(neighbors) {
		k = len(neighbors)
	}

	votes := make([]float64, knn.NumClasses)
	for _, nb := range neighbors[:k] {
		votes[knn.Y[nb.idx]] += 1 / float64(k)
	}

	return votes
}
