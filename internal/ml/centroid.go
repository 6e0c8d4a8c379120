package ml

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

// NearestCentroid assigns each sample to the class whose mean vector is
// closest by cosine similarity. It exposes no calibrated per-class scores,
// so its capability is none and the trainer skips AUC for it.
type NearestCentroid struct {
	Centroids [][]float64
}

// NewNearestCentroid returns a nearest-centroid classifier.
func NewNearestCentroid() *NearestCentroid {
	return &NearestCentroid{}
}

func (nc *NearestCentroid) Name() string           { return "nearest_centroid" }
func (nc *NearestCentroid) Capability() Capability { return CapabilityNone }

// Fit computes one mean vector per class.
func (nc *NearestCentroid) Fit(x [][]float64, y []int, numClasses int) error {
	if len(x) == 0 || len(x) != len(y) {
		return errors.New("training data is empty or misaligned")
	}

	features := len(x[0])
	nc.Centroids = newMatrix(numClasses, features)
	counts := make([]float64, numClasses)

	for i, row := range x {
		floats.Add(nc.Centroids[y[i]], row)
		counts[y[i]]++
	}

	for c := range nc.Centroids {
		if counts[c] > 0 {
			floats.Scale(1/counts[c], nc.Centroids[c])
		}
	}

	return nil
}

// Predict returns the class of the most similar centroid.
func (nc *NearestCentroid) Predict(x [][]float64) []int {
	out := make([]int, len(x))
	for i, row := range x {
		best, bestSim := 0, -1.0
		for c, centroid := range nc.Centroids {
			sim := cosine(centroid, row)
			if sim > bestSim {
				best, bestSim = c, sim
			}
		}
		out[i] = best
	}
	return out
}

// Scores returns nil; see Capability.
func (nc *NearestCentroid) Scores([][]float64) [][]float64 { return nil }

func cosine(a, b []float64) float64 {
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}
