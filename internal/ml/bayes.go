package ml

import (
	"errors"
	"math"
)

// MultinomialNB is a multinomial naive Bayes classifier with Lidstone
// smoothing, operating on the non-negative TF-IDF feature weights.
type MultinomialNB struct {
	Alpha          float64
	ClassLogPrior  []float64
	FeatureLogProb [][]float64
}

// NewMultinomialNB returns a naive Bayes classifier with alpha=1 smoothing.
func NewMultinomialNB() *MultinomialNB {
	return &MultinomialNB{Alpha: 1.0}
}

func (nb *MultinomialNB) Name() string           { return "naive_bayes" }
func (nb *MultinomialNB) Capability() Capability { return CapabilityProbability }

// Fit estimates class priors and per-class feature distributions.
func (nb *MultinomialNB) Fit(x [][]float64, y []int, numClasses int) error {
	if len(x) == 0 || len(x) != len(y) {
		return errors.New("training data is empty or misaligned")
	}

	features := len(x[0])
	counts := newMatrix(numClasses, features)
	classCounts := make([]float64, numClasses)

	for i, row := range x {
		classCounts[y[i]]++
		for j, v := range row {
			counts[y[i]][j] += v
		}
	}

	nb.ClassLogPrior = make([]float64, numClasses)
	nb.FeatureLogProb = newMatrix(numClasses, features)

	n := float64(len(x))
	for c := 0; c < numClasses; c++ {
		if classCounts[c] == 0 {
			nb.ClassLogPrior[c] = math.Inf(-1)
		} else {
			nb.ClassLogPrior[c] = math.Log(classCounts[c] / n)
		}

		total := 0.0
		for _, v := range counts[c] {
			total += v
		}
		denom := math.Log(total + nb.Alpha*float64(features))
		for j, v := range counts[c] {
			nb.FeatureLogProb[c][j] = math.Log(v+nb.Alpha) - denom
		}
	}

	return nil
}

// Predict returns the class with the highest joint log-likelihood.
func (nb *MultinomialNB) Predict(x [][]float64) []int {
	out := make([]int, len(x))
	for i, row := range x {
		out[i] = argmax(nb.jointLogLikelihood(row))
	}
	return out
}

// Scores returns normalized posterior probabilities.
func (nb *MultinomialNB) Scores(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for i, row := range x {
		out[i] = softmax(nb.jointLogLikelihood(row))
	}
	return out
}

func (nb *MultinomialNB) jointLogLikelihood(row []float64) []float64 {
	scores := make([]float64, len(nb.ClassLogPrior))
	for c := range scores {
		s := nb.ClassLogPrior[c]
		for j, v := range row {
			if v != 0 {
				s += v * nb.FeatureLogProb[c][j]
			}
		}
		scores[c] = s
	}
	return scores
}
