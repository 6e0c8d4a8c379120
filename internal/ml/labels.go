package ml

import (
	"fmt"
	"sort"
)

// LabelEncoder maps role labels to dense class indices and back. Classes are
// ordered lexicographically so encodings are reproducible across runs.
type LabelEncoder struct {
	Classes []string

	index map[string]int
}

// NewLabelEncoder fits an encoder over the given labels.
func NewLabelEncoder(labels []string) *LabelEncoder {
	seen := make(map[string]struct{})
	for _, label := range labels {
		seen[label] = struct{}{}
	}

	classes := make([]string, 0, len(seen))
	for label := range seen {
		classes = append(classes, label)
	}
	sort.Strings(classes)

	enc := &LabelEncoder{Classes: classes}
	enc.buildIndex()
	return enc
}

func (e *LabelEncoder) buildIndex() {
	e.index = make(map[string]int, len(e.Classes))
	for i, class := range e.Classes {
		e.index[class] = i
	}
}

// Encode returns the class index for a label.
func (e *LabelEncoder) Encode(label string) (int, error) {
	if e.index == nil {
		e.buildIndex()
	}
	idx, ok := e.index[label]
	if !ok {
		return 0, fmt.Errorf("unknown label %q", label)
	}
	return idx, nil
}

// EncodeAll encodes a batch of labels.
func (e *LabelEncoder) EncodeAll(labels []string) ([]int, error) {
	out := make([]int, len(labels))
	for i, label := range labels {
		idx, err := e.Encode(label)
		if err != nil {
			return nil, err
		}
		out[i] = idx
	}
	return out, nil
}

// Decode returns the label for a class index.
func (e *LabelEncoder) Decode(idx int) (string, error) {
	if idx < 0 || idx >= len(e.Classes) {
		return "", fmt.Errorf("class index %d out of range [0,%d)", idx, len(e.Classes))
	}
	return e.Classes[idx], nil
}

// NumClasses returns the number of distinct labels.
func (e *LabelEncoder) NumClasses() int { return len(e.Classes) }
