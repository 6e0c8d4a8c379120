package training

import (
	"math"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// Metrics holds the evaluation measures computed for one candidate on one
// partition. ROCAUC is NaN when the model capability exposes no usable
// per-class scores.
type Metrics struct {
	Accuracy          float64
	BalancedAccuracy  float64
	PrecisionMacro    float64
	RecallMacro       float64
	F1Macro           float64
	PrecisionWeighted float64
	RecallWeighted    float64
	F1Weighted        float64
	MCC               float64
	ROCAUC            float64
}

// Evaluate computes every score-free metric from true and predicted class
// indices. ROCAUC is initialized to NaN; callers with score access fill it
// via MacroOVRAUC.
func Evaluate(yTrue, yPred []int, numClasses int) Metrics {
	m := Metrics{ROCAUC: math.NaN()}
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return m
	}

	confusion := make([][]float64, numClasses)
	for i := range confusion {
		confusion[i] = make([]float64, numClasses)
	}

	correct := 0
	for i := range yTrue {
		confusion[yTrue[i]][yPred[i]]++
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	total := float64(len(yTrue))
	m.Accuracy = float64(correct) / total

	var (
		precisionSum, recallSum, f1Sum          float64
		precisionWSum, recallWSum, f1WSum       float64
		presentClasses, supportTotal, recallAcc float64
	)

	for c := 0; c < numClasses; c++ {
		support := rowSum(confusion, c)
		predicted := colSum(confusion, c)
		tp := confusion[c][c]

		precision := 0.0
		if predicted > 0 {
			precision = tp / predicted
		}
		recall := 0.0
		if support > 0 {
			recall = tp / support
		}
		f1 := 0.0
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}

		precisionSum += precision
		recallSum += recall
		f1Sum += f1

		precisionWSum += precision * support
		recallWSum += recall * support
		f1WSum += f1 * support
		supportTotal += support

		if support > 0 {
			presentClasses++
			recallAcc += recall
		}
	}

	n := float64(numClasses)
	m.PrecisionMacro = precisionSum / n
	m.RecallMacro = recallSum / n
	m.F1Macro = f1Sum / n

	if supportTotal > 0 {
		m.PrecisionWeighted = precisionWSum / supportTotal
		m.RecallWeighted = recallWSum / supportTotal
		m.F1Weighted = f1WSum / supportTotal
	}

	if presentClasses > 0 {
		m.BalancedAccuracy = recallAcc / presentClasses
	}

	m.MCC = matthews(confusion, total)

	return m
}

// MacroOVRAUC computes a one-vs-rest ROC-AUC per class and averages over the
// classes that have both positive and negative samples. scores holds one row
// per sample with a score per class. NaN when no class is evaluable.
func MacroOVRAUC(yTrue []int, scores [][]float64, numClasses int) float64 {
	if len(yTrue) == 0 || len(scores) != len(yTrue) {
		return math.NaN()
	}

	sum := 0.0
	evaluated := 0

	for c := 0; c < numClasses; c++ {
		positives := 0
		y := make([]float64, len(yTrue))
		classes := make([]bool, len(yTrue))
		for i := range yTrue {
			y[i] = scores[i][c]
			classes[i] = yTrue[i] == c
			if classes[i] {
				positives++
			}
		}
		if positives == 0 || positives == len(yTrue) {
			continue
		}

		stat.SortWeightedLabeled(y, classes, nil)
		tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
		sum += integrate.Trapezoidal(fpr, tpr)
		evaluated++
	}

	if evaluated == 0 {
		return math.NaN()
	}
	return sum / float64(evaluated)
}

// matthews computes the multiclass Matthews correlation coefficient from the
// confusion matrix.
func matthews(confusion [][]float64, total float64) float64 {
	trace := 0.0
	crossSum := 0.0
	predSq := 0.0
	trueSq := 0.0

	for c := range confusion {
		trace += confusion[c][c]
		p := colSum(confusion, c)
		t := rowSum(confusion, c)
		crossSum += p * t
		predSq += p * p
		trueSq += t * t
	}

	denom := math.Sqrt((total*total - predSq) * (total*total - trueSq))
	if denom == 0 {
		return 0
	}
	return (trace*total - crossSum) / denom
}

func rowSum(m [][]float64, row int) float64 {
	sum := 0.0
	for _, v := range m[row] {
		sum += v
	}
	return sum
}

func colSum(m [][]float64, col int) float64 {
	sum := 0.0
	for _, row := range m {
		sum += row[col]
	}
	return sum
}
