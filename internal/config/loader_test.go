package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadFromFirstRun verifies the settings file is created with the
// git-flow model when missing.
func TestLoadFromFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	s, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "git-flow", s.Model)
	assert.True(t, s.IncludeRemote)

	_, err = os.Stat(path)
	assert.NoError(t, err, "settings file should exist after first run")
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	def, err := BuiltinDef("simple")
	require.NoError(t, err)
	def.Reverse = true
	def.Order.Forward = true
	require.NoError(t, Save(path, def))

	s, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "simple", s.Model)
	assert.True(t, s.Reverse)
	assert.True(t, s.Order.Forward)
	assert.Equal(t, uint8(0), s.Branches.PersistenceRank("main"))
	assert.Equal(t, uint8(1), s.Branches.PersistenceRank("feature/x"))
}

func TestLoadFromRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("branches: [not, a, mapping]\n"), 0644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}
