package ml

import (
	"sync"

	"go.uber.org/zap"
)

// SentinelNotTrained is returned by role prediction whenever the artifact
// triple is unavailable. Callers treat it as a valid label.
const SentinelNotTrained = "Model not trained"

// Loader loads the artifact triple from a directory exactly once per
// process and caches the result. There is no invalidation: a process
// restart is the only way to pick up retrained artifacts. This staleness
// window is a documented property, not a bug.
type Loader struct {
	dir string

	once      sync.Once
	artifacts *Artifacts
	err       error
}

// NewLoader creates a Loader for the given artifact directory. Nothing is
// read until the first Load call.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load returns the cached artifact triple, reading it on the first call.
func (l *Loader) Load() (*Artifacts, error) {
	l.once.Do(func() {
		l.artifacts, l.err = LoadArtifacts(l.dir)
	})
	return l.artifacts, l.err
}

// Dir returns the artifact directory this loader reads from.
func (l *Loader) Dir() string { return l.dir }

// Predictor performs role inference against lazily loaded artifacts.
// Concurrent calls are safe: the underlying artifacts are read-only after
// loading.
type Predictor struct {
	loader *Loader
	logger *zap.Logger
}

// NewPredictor creates a Predictor on top of a Loader.
func NewPredictor(loader *Loader, logger *zap.Logger) *Predictor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Predictor{loader: loader, logger: logger}
}

// PredictRole vectorizes the text and decodes the predicted class label.
// Missing or unreadable artifacts degrade to SentinelNotTrained; this method
// never fails.
func (p *Predictor) PredictRole(text string) string {
	artifacts, err := p.loader.Load()
	if err != nil {
		p.logger.Debug("role prediction unavailable", zap.Error(err))
		return SentinelNotTrained
	}

	vec := artifacts.Vectorizer.Transform(text)
	pred := artifacts.Classifier.Predict([][]float64{vec})

	label, err := artifacts.Encoder.Decode(pred[0])
	if err != nil {
		p.logger.Warn("decoding predicted class", zap.Error(err))
		return SentinelNotTrained
	}

	return label
}
