package ml

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// LogisticRegression is a softmax classifier trained by full-batch gradient
// descent. Deterministic: no random initialization or shuffling, so the same
// data always produces the same weights.
type LogisticRegression struct {
	Weights      [][]float64
	Bias         []float64
	LearningRate float64
	Epochs       int
	L2           float64
}

// NewLogisticRegression returns a logistic regression with defaults tuned
// for l2-normalized TF-IDF features.
func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{LearningRate: 1.0, Epochs: 300, L2: 1e-4}
}

func (lr *LogisticRegression) Name() string           { return "logistic_regression" }
func (lr *LogisticRegression) Capability() Capability { return CapabilityProbability }

// Fit trains one weight vector per class.
func (lr *LogisticRegression) Fit(x [][]float64, y []int, numClasses int) error {
	if len(x) == 0 || len(x) != len(y) {
		return errors.New("training data is empty or misaligned")
	}

	features := len(x[0])
	lr.Weights = newMatrix(numClasses, features)
	lr.Bias = make([]float64, numClasses)

	gradW := newMatrix(numClasses, features)
	gradB := make([]float64, numClasses)
	n := float64(len(x))

	for epoch := 0; epoch < lr.Epochs; epoch++ {
		for c := range gradW {
			zero(gradW[c])
		}
		zero(gradB)

		for i, row := range x {
			probs := lr.scoresFor(row)
			for c := 0; c < numClasses; c++ {
				g := probs[c]
				if c == y[i] {
					g -= 1
				}
				if g != 0 {
					floats.AddScaled(gradW[c], g, row)
				}
				gradB[c] += g
			}
		}

		for c := 0; c < numClasses; c++ {
			floats.AddScaled(gradW[c], lr.L2*n, lr.Weights[c])
			floats.AddScaled(lr.Weights[c], -lr.LearningRate/n, gradW[c])
			lr.Bias[c] -= lr.LearningRate * gradB[c] / n
		}
	}

	return nil
}

// Predict returns the most probable class per sample.
func (lr *LogisticRegression) Predict(x [][]float64) []int {
	out := make([]int, len(x))
	for i, row := range x {
		out[i] = argmax(lr.scoresFor(row))
	}
	return out
}

// Scores returns softmax probabilities.
func (lr *LogisticRegression) Scores(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for i, row := range x {
		out[i] = lr.scoresFor(row)
	}
	return out
}

func (lr *LogisticRegression) scoresFor(row []float64) []float64 {
	logits := make([]float64, len(lr.Weights))
	for c := range lr.Weights {
		logits[c] = floats.Dot(lr.Weights[c], row) + lr.Bias[c]
	}
	return softmax(logits)
}

// LinearSVM is a one-vs-rest linear classifier trained with the hinge loss
// by full-batch subgradient descent.
type LinearSVM struct {
	Weights      [][]float64
	Bias         []float64
	LearningRate float64
	Epochs       int
	L2           float64
}

// NewLinearSVM returns a hinge-loss linear classifier with defaults tuned
// for l2-normalized TF-IDF features.
func NewLinearSVM() *LinearSVM {
	return &LinearSVM{LearningRate: 0.5, Epochs: 300, L2: 1e-4}
}

func (svm *LinearSVM) Name() string           { return "linear_svm" }
func (svm *LinearSVM) Capability() Capability { return CapabilityDecisionScore }

// Fit trains one binary margin classifier per class.
func (svm *LinearSVM) Fit(x [][]float64, y []int, numClasses int) error {
	if len(x) == 0 || len(x) != len(y) {
		return errors.New("training data is empty or misaligned")
	}

	features := len(x[0])
	svm.Weights = newMatrix(numClasses, features)
	svm.Bias = make([]float64, numClasses)

	gradW := make([]float64, features)
	n := float64(len(x))

	for c := 0; c < numClasses; c++ {
		w := svm.Weights[c]
		for epoch := 0; epoch < svm.Epochs; epoch++ {
			zero(gradW)
			gradB := 0.0

			for i, row := range x {
				target := -1.0
				if y[i] == c {
					target = 1.0
				}
				margin := target * (floats.Dot(w, row) + svm.Bias[c])
				if margin < 1 {
					floats.AddScaled(gradW, -target, row)
					gradB -= target
				}
			}

			floats.AddScaled(gradW, svm.L2*n, w)
			floats.AddScaled(w, -svm.LearningRate/n, gradW)
			svm.Bias[c] -= svm.LearningRate * gradB / n
		}
	}

	return nil
}

// Predict returns the class with the largest decision value per sample.
func (svm *LinearSVM) Predict(x [][]float64) []int {
	out := make([]int, len(x))
	for i, row := range x {
		out[i] = argmax(svm.decisionFor(row))
	}
	return out
}

// Scores returns raw per-class decision values.
func (svm *LinearSVM) Scores(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for i, row := range x {
		out[i] = svm.decisionFor(row)
	}
	return out
}

func (svm *LinearSVM) decisionFor(row []float64) []float64 {
	scores := make([]float64, len(svm.Weights))
	for c := range svm.Weights {
		scores[c] = floats.Dot(svm.Weights[c], row) + svm.Bias[c]
	}
	return scores
}

func softmax(logits []float64) []float64 {
	maxLogit := logits[argmax(logits)]
	sum := 0.0
	out := make([]float64, len(logits))
	for i, l := range logits {
		out[i] = math.Exp(l - maxLogit)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

func newMatrix(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

func zero(v []float64) {
	for i := range v {
		v[i] = 0
	}
}
