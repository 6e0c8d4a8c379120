package ml

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact file names inside the artifact directory. The triple is
// versionless and identified by file presence alone.
const (
	VectorizerFile = "vectorizer.gob"
	ClassifierFile = "role_classifier.gob"
	EncoderFile    = "label_encoder.gob"
)

// ErrNotTrained indicates that at least one artifact file is missing. This
// is a normal, handled state, not corruption.
var ErrNotTrained = errors.New("model artifacts are not trained")

func init() {
	gob.Register(&LogisticRegression{})
	gob.Register(&LinearSVM{})
	gob.Register(&MultinomialNB{})
	gob.Register(&NearestCentroid{})
	gob.Register(&KNN{})
}

// Artifacts is the trained triple produced by the trainer and consumed by
// role inference.
type Artifacts struct {
	Vectorizer *Vectorizer
	Classifier Classifier
	Encoder    *LabelEncoder
}

// classifierEnvelope lets gob round-trip the Classifier interface through
// the registered concrete types.
type classifierEnvelope struct {
	Classifier Classifier
}

// ArtifactsPresent reports whether all three artifact files exist in dir.
func ArtifactsPresent(dir string) bool {
	for _, name := range []string{VectorizerFile, ClassifierFile, EncoderFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return true
}

// SaveArtifacts writes the triple into dir, creating it when needed.
func SaveArtifacts(dir string, artifacts *Artifacts) error {
	if artifacts == nil || artifacts.Vectorizer == nil || artifacts.Classifier == nil || artifacts.Encoder == nil {
		return errors.New("artifact triple is incomplete")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating artifact directory: %w", err)
	}

	if err := writeGob(filepath.Join(dir, VectorizerFile), artifacts.Vectorizer); err != nil {
		return err
	}
	if err := writeGob(filepath.Join(dir, ClassifierFile), &classifierEnvelope{Classifier: artifacts.Classifier}); err != nil {
		return err
	}
	return writeGob(filepath.Join(dir, EncoderFile), artifacts.Encoder)
}

// LoadArtifacts reads the triple from dir. Missing files yield ErrNotTrained.
func LoadArtifacts(dir string) (*Artifacts, error) {
	if !ArtifactsPresent(dir) {
		return nil, ErrNotTrained
	}

	vectorizer := &Vectorizer{}
	if err := readGob(filepath.Join(dir, VectorizerFile), vectorizer); err != nil {
		return nil, err
	}

	var envelope classifierEnvelope
	if err := readGob(filepath.Join(dir, ClassifierFile), &envelope); err != nil {
		return nil, err
	}
	if envelope.Classifier == nil {
		return nil, fmt.Errorf("classifier artifact in %s is empty", dir)
	}

	encoder := &LabelEncoder{}
	if err := readGob(filepath.Join(dir, EncoderFile), encoder); err != nil {
		return nil, err
	}

	return &Artifacts{Vectorizer: vectorizer, Classifier: envelope.Classifier, Encoder: encoder}, nil
}

func writeGob(path string, value any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating artifact %s: %w", path, err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(value); err != nil {
		return fmt.Errorf("encoding artifact %s: %w", path, err)
	}
	return nil
}

func readGob(path string, value any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening artifact %s: %w", path, err)
	}
	defer file.Close()

	if err := gob.NewDecoder(file).Decode(value); err != nil {
		return fmt.Errorf("decoding artifact %s: %w", path, err)
	}
	return nil
}
