package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte("  file-secret \n"), 0o600))

	secret, err := Load(Source{Name: "api key", File: path, Env: "UNSET_VAR", Value: "inline"})
	require.NoError(t, err)
	assert.Equal(t, "file-secret", secret)
}

func TestLoadFilePrecedenceErrors(t *testing.T) {
	// A configured but unreadable file is fatal even with fallbacks present.
	_, err := Load(Source{File: filepath.Join(t.TempDir(), "missing"), Value: "inline"})
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o600))
	_, err = Load(Source{Name: "api key", File: empty})
	assert.ErrorContains(t, err, "empty")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TEST_SECRET_VALUE", " env-secret ")

	secret, err := Load(Source{Env: "TEST_SECRET_VALUE", Value: "inline"})
	require.NoError(t, err)
	assert.Equal(t, "env-secret", secret)
}

func TestLoadFromValue(t *testing.T) {
	secret, err := Load(Source{Env: "TOTALLY_UNSET_VAR", Value: " inline "})
	require.NoError(t, err)
	assert.Equal(t, "inline", secret)
}

func TestLoadNothingConfigured(t *testing.T) {
	_, err := Load(Source{Name: "gemini api key"})
	assert.ErrorContains(t, err, "gemini api key is not configured")
}
