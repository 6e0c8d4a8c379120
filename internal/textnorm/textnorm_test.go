package textnorm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "lowercases and strips punctuation",
			input:  "Senior Engineer (Python, SQL)!",
			expect: "senior engineer python sql",
		},
		{
			name:   "collapses whitespace",
			input:  "  too \t many\n\nspaces  ",
			expect: "too many spaces",
		},
		{
			name:   "keeps digits",
			input:  "5+ years of Go",
			expect: "5 years of go",
		},
		{
			name:   "empty input",
			input:  "",
			expect: "",
		},
		{
			name:   "only punctuation",
			input:  "!!! --- ???",
			expect: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, Clean(tt.input))
		})
	}
}

func TestNormalizeRemovesStopwords(t *testing.T) {
	norm, err := New()
	require.NoError(t, err)

	out := norm.Normalize("I am the best engineer in the world")

	assert.NotContains(t, strings.Fields(out), "the")
	assert.NotContains(t, strings.Fields(out), "am")
	assert.Contains(t, strings.Fields(out), "engineer")
}

func TestNormalizeLemmatizes(t *testing.T) {
	norm, err := New()
	require.NoError(t, err)

	out := norm.Normalize("engineers apples")

	fields := strings.Fields(out)
	assert.Contains(t, fields, "engineer")
	assert.Contains(t, fields, "apple")
}

func TestNormalizeEmptyInput(t *testing.T) {
	norm, err := New()
	require.NoError(t, err)

	assert.Equal(t, "", norm.Normalize(""))
	assert.Equal(t, "", norm.Normalize("   \t\n "))
}

func TestNormalizeKeepsTechnicalTerms(t *testing.T) {
	norm, err := New()
	require.NoError(t, err)

	out := norm.Normalize("Python, Kubernetes & Docker!")

	fields := strings.Fields(out)
	assert.Contains(t, fields, "python")
	assert.Contains(t, fields, "docker")
}
