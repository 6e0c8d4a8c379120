package training

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/akozlenkov/resumatch/internal/ml"
)

// Defaults for the split. The fixed seed makes reruns reproduce the same
// partition, metrics and selected model.
const (
	DefaultTestFraction = 0.2
	DefaultSeed         = 42
)

// Config drives one training run.
type Config struct {
	InputPath    string
	ArtifactDir  string
	TestFraction float64
	Seed         int64
	Vectorizer   ml.VectorizerConfig
}

// CandidateResult carries the full evaluation of one classifier family.
type CandidateResult struct {
	Name       string
	Capability ml.Capability
	Train      Metrics
	Test       Metrics
}

// Result summarizes a completed training run. Candidates are in ranked
// order, best first.
type Result struct {
	Winner     string
	Candidates []CandidateResult
	Rows       int
	TrainRows  int
	TestRows   int
	Classes    []string
	MetricsCSV string
	ReportPath string
}

// Run executes the full offline procedure: load and dedupe the dataset,
// stratify-split it, fit every candidate on the shared vectorization,
// rank them and persist the winning artifact triple plus the comparison
// table and report.
func Run(cfg Config, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TestFraction == 0 {
		cfg.TestFraction = DefaultTestFraction
	}
	if cfg.Seed == 0 {
		cfg.Seed = DefaultSeed
	}
	if cfg.Vectorizer == (ml.VectorizerConfig{}) {
		cfg.Vectorizer = ml.DefaultTrainingConfig()
	}

	samples, err := LoadDataset(cfg.InputPath)
	if err != nil {
		return nil, err
	}
	if distinctRoles(samples) < 2 {
		return nil, fmt.Errorf("%w: dataset %s", ErrInsufficientLabels, cfg.InputPath)
	}

	logger.Info("dataset loaded",
		zap.String("input", cfg.InputPath),
		zap.Int("rows", len(samples)),
		zap.Int("roles", distinctRoles(samples)),
	)

	labels := make([]string, len(samples))
	for i, s := range samples {
		labels[i] = s.Role
	}
	encoder := ml.NewLabelEncoder(labels)

	train, test, err := StratifiedSplit(samples, cfg.TestFraction, cfg.Seed)
	if err != nil {
		return nil, err
	}

	trainTexts, yTrain, err := encode(train, encoder)
	if err != nil {
		return nil, err
	}
	testTexts, yTest, err := encode(test, encoder)
	if err != nil {
		return nil, err
	}

	// One shared vectorization keeps the candidate comparison fair.
	vectorizer := ml.NewVectorizer(cfg.Vectorizer)
	vectorizer.Fit(trainTexts)
	xTrain := vectorizer.TransformAll(trainTexts)
	xTest := vectorizer.TransformAll(testTexts)

	logger.Info("features extracted",
		zap.Int("train_rows", len(xTrain)),
		zap.Int("test_rows", len(xTest)),
		zap.Int("features", vectorizer.NumFeatures()),
	)

	candidates := ml.Candidates()
	results := make([]CandidateResult, 0, len(candidates))
	fitted := make(map[string]ml.Classifier, len(candidates))

	for _, candidate := range candidates {
		if err := candidate.Fit(xTrain, yTrain, encoder.NumClasses()); err != nil {
			return nil, fmt.Errorf("fitting %s: %w", candidate.Name(), err)
		}
		fitted[candidate.Name()] = candidate

		res := CandidateResult{
			Name:       candidate.Name(),
			Capability: candidate.Capability(),
			Train:      Evaluate(yTrain, candidate.Predict(xTrain), encoder.NumClasses()),
			Test:       Evaluate(yTest, candidate.Predict(xTest), encoder.NumClasses()),
		}

		if candidate.Capability() != ml.CapabilityNone {
			res.Train.ROCAUC = MacroOVRAUC(yTrain, candidate.Scores(xTrain), encoder.NumClasses())
			res.Test.ROCAUC = MacroOVRAUC(yTest, candidate.Scores(xTest), encoder.NumClasses())
		}

		logger.Info("candidate evaluated",
			zap.String("model", res.Name),
			zap.String("capability", res.Capability.String()),
			zap.Float64("test_macro_f1", res.Test.F1Macro),
			zap.Float64("test_accuracy", res.Test.Accuracy),
		)

		results = append(results, res)
	}

	rank(results)
	winner := results[0].Name

	logger.Info("model selected", zap.String("winner", winner))

	artifacts := &ml.Artifacts{
		Vectorizer: vectorizer,
		Classifier: fitted[winner],
		Encoder:    encoder,
	}
	if err := ml.SaveArtifacts(cfg.ArtifactDir, artifacts); err != nil {
		return nil, err
	}

	result := &Result{
		Winner:     winner,
		Candidates: results,
		Rows:       len(samples),
		TrainRows:  len(train),
		TestRows:   len(test),
		Classes:    encoder.Classes,
	}

	result.MetricsCSV, err = WriteMetricsCSV(cfg.ArtifactDir, results)
	if err != nil {
		return nil, err
	}
	result.ReportPath, err = WriteReport(cfg.ArtifactDir, result)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// rank orders candidates best first: macro-F1, then weighted-F1, balanced
// accuracy and accuracy on the held-out split, with the fixed family order
// breaking exact ties in favor of linear models.
func rank(results []CandidateResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].Test, results[j].Test
		if c := compare(a.F1Macro, b.F1Macro); c != 0 {
			return c > 0
		}
		if c := compare(a.F1Weighted, b.F1Weighted); c != 0 {
			return c > 0
		}
		if c := compare(a.BalancedAccuracy, b.BalancedAccuracy); c != 0 {
			return c > 0
		}
		if c := compare(a.Accuracy, b.Accuracy); c != 0 {
			return c > 0
		}
		return ml.FamilyRank(results[i].Name) < ml.FamilyRank(results[j].Name)
	})
}

const tieEpsilon = 1e-9

func compare(a, b float64) int {
	if math.Abs(a-b) <= tieEpsilon {
		return 0
	}
	if a > b {
		return 1
	}
	return -1
}

func encode(samples []Sample, encoder *ml.LabelEncoder) ([]string, []int, error) {
	texts := make([]string, len(samples))
	labels := make([]string, len(samples))
	for i, s := range samples {
		texts[i] = s.Text
		labels[i] = s.Role
	}
	y, err := encoder.EncodeAll(labels)
	if err != nil {
		return nil, nil, err
	}
	return texts, y, nil
}
