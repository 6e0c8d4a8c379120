package training

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluatePerfect(t *testing.T) {
	y := []int{0, 0, 1, 1, 2, 2}
	m := Evaluate(y, y, 3)

	assert.Equal(t, 1.0, m.Accuracy)
	assert.Equal(t, 1.0, m.BalancedAccuracy)
	assert.Equal(t, 1.0, m.PrecisionMacro)
	assert.Equal(t, 1.0, m.RecallMacro)
	assert.Equal(t, 1.0, m.F1Macro)
	assert.Equal(t, 1.0, m.F1Weighted)
	assert.InDelta(t, 1.0, m.MCC, 1e-9)
	assert.True(t, math.IsNaN(m.ROCAUC), "score-free evaluation leaves AUC unset")
}

func TestEvaluateAllWrong(t *testing.T) {
	yTrue := []int{0, 0, 1, 1}
	yPred := []int{1, 1, 0, 0}
	m := Evaluate(yTrue, yPred, 2)

	assert.Equal(t, 0.0, m.Accuracy)
	assert.Equal(t, 0.0, m.F1Macro)
	assert.InDelta(t, -1.0, m.MCC, 1e-9)
}

func TestEvaluateMixed(t *testing.T) {
	yTrue := []int{0, 0, 0, 1, 1, 1}
	yPred := []int{0, 0, 1, 1, 1, 0}
	m := Evaluate(yTrue, yPred, 2)

	assert.InDelta(t, 4.0/6.0, m.Accuracy, 1e-9)
	// Both classes have precision and recall 2/3 here.
	assert.InDelta(t, 2.0/3.0, m.PrecisionMacro, 1e-9)
	assert.InDelta(t, 2.0/3.0, m.RecallMacro, 1e-9)
	assert.InDelta(t, 2.0/3.0, m.F1Macro, 1e-9)
	assert.InDelta(t, m.F1Macro, m.F1Weighted, 1e-9)
}

func TestEvaluateAbsentClassZeroDivision(t *testing.T) {
	// Class 2 never occurs and is never predicted: its precision, recall and
	// F1 count as zero in the macro average, without dividing by zero.
	yTrue := []int{0, 1, 0, 1}
	m := Evaluate(yTrue, yTrue, 3)

	assert.Equal(t, 1.0, m.Accuracy)
	assert.InDelta(t, 2.0/3.0, m.F1Macro, 1e-9)
	assert.Equal(t, 1.0, m.BalancedAccuracy)
	assert.Equal(t, 1.0, m.F1Weighted)
}

func TestEvaluateEmpty(t *testing.T) {
	m := Evaluate(nil, nil, 2)
	assert.Equal(t, 0.0, m.Accuracy)
	assert.True(t, math.IsNaN(m.ROCAUC))
}

func TestMacroOVRAUCPerfectSeparation(t *testing.T) {
	yTrue := []int{0, 0, 1, 1}
	scores := [][]float64{
		{0.9, 0.1},
		{0.8, 0.2},
		{0.2, 0.8},
		{0.1, 0.9},
	}

	assert.InDelta(t, 1.0, MacroOVRAUC(yTrue, scores, 2), 1e-9)
}

func TestMacroOVRAUCInverted(t *testing.T) {
	yTrue := []int{0, 0, 1, 1}
	scores := [][]float64{
		{0.1, 0.9},
		{0.2, 0.8},
		{0.8, 0.2},
		{0.9, 0.1},
	}

	assert.InDelta(t, 0.0, MacroOVRAUC(yTrue, scores, 2), 1e-9)
}

func TestMacroOVRAUCSkipsUnrepresentedClasses(t *testing.T) {
	// Class 2 has no positives in this partition, so only classes 0 and 1
	// contribute to the average.
	yTrue := []int{0, 0, 1, 1}
	scores := [][]float64{
		{0.9, 0.1, 0.0},
		{0.8, 0.2, 0.0},
		{0.2, 0.8, 0.0},
		{0.1, 0.9, 0.0},
	}

	assert.InDelta(t, 1.0, MacroOVRAUC(yTrue, scores, 3), 1e-9)
}

func TestMacroOVRAUCNaNWhenNotEvaluable(t *testing.T) {
	assert.True(t, math.IsNaN(MacroOVRAUC(nil, nil, 2)))

	// Single represented class: nothing to rank against.
	yTrue := []int{0, 0}
	scores := [][]float64{{1, 0}, {1, 0}}
	assert.True(t, math.IsNaN(MacroOVRAUC(yTrue, scores, 1)))
}
