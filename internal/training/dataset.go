// Package training implements the offline role-classifier trainer: dataset
// loading, the stratified split, candidate evaluation, model selection and
// the artifact/report outputs.
package training

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrInsufficientLabels is returned when the dataset carries fewer than two
// distinct role labels. This is an operator-facing configuration error; the
// trainer never substitutes defaults.
var ErrInsufficientLabels = errors.New("dataset must contain at least 2 distinct role labels")

// Sample is one labeled training row.
type Sample struct {
	Text string
	Role string
}

// LoadDataset reads a CSV with "text" and "role" columns. Rows with a
// missing text or role are dropped, as are exact duplicate (text, role)
// pairs. Any read or layout problem is fatal.
func LoadDataset(path string) ([]Sample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading dataset header: %w", err)
	}

	textIdx, roleIdx := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "text":
			textIdx = i
		case "role":
			roleIdx = i
		}
	}
	if textIdx < 0 || roleIdx < 0 {
		return nil, fmt.Errorf("dataset %s must have 'text' and 'role' columns, got %v", path, header)
	}

	samples := make([]Sample, 0, 256)
	seen := make(map[string]struct{})

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading dataset row: %w", err)
		}
		if textIdx >= len(record) || roleIdx >= len(record) {
			continue
		}

		text := strings.TrimSpace(record[textIdx])
		role := strings.TrimSpace(record[roleIdx])
		if text == "" || role == "" {
			continue
		}

		key := text + "\x00" + role
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		samples = append(samples, Sample{Text: text, Role: role})
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("dataset %s has no usable rows", path)
	}

	return samples, nil
}

// distinctRoles returns the number of distinct role labels.
func distinctRoles(samples []Sample) int {
	roles := make(map[string]struct{})
	for _, s := range samples {
		roles[s.Role] = struct{}{}
	}
	return len(roles)
}
