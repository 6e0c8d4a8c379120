package ml

// Capability declares what kind of per-class scores a classifier can
// produce. The trainer's ROC-AUC computation branches on this instead of
// probing for methods at runtime.
type Capability int

const (
	// CapabilityNone means Scores returns nil and no AUC is computed.
	CapabilityNone Capability = iota
	// CapabilityDecisionScore means Scores returns raw per-class margins.
	CapabilityDecisionScore
	// CapabilityProbability means Scores returns per-class probabilities.
	CapabilityProbability
)

// String implements fmt.Stringer for report output.
func (c Capability) String() string {
	switch c {
	case CapabilityProbability:
		return "probability"
	case CapabilityDecisionScore:
		return "decision_score"
	default:
		return "none"
	}
}

// Classifier is a multiclass model over dense feature vectors. Fit is called
// once per training run; Predict and Scores must be safe after that.
type Classifier interface {
	Name() string
	Capability() Capability
	Fit(x [][]float64, y []int, numClasses int) error
	Predict(x [][]float64) []int
	// Scores returns one row per sample with a score per class, or nil when
	// the capability is CapabilityNone.
	Scores(x [][]float64) [][]float64
}

// Candidates returns the fixed registry of classifier families evaluated by
// the trainer. The slice order doubles as the tie-break preference: linear
// models first.
func Candidates() []Classifier {
	return []Classifier{
		NewLogisticRegression(),
		NewLinearSVM(),
		NewMultinomialNB(),
		NewNearestCentroid(),
		NewKNN(5),
	}
}

// FamilyRank returns the tie-break position of a candidate name. Unknown
// names sort last.
func FamilyRank(name string) int {
	for i, c := range Candidates() {
		if c.Name() == name {
			return i
		}
	}
	return len(Candidates())
}

func argmax(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}
