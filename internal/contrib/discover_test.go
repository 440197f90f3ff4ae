// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package contrib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDefaultInput(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0o755))

	got, err := FindDefaultInput(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.csv"), got)
}

func TestFindDefaultInputErrors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := FindDefaultInput(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("no csv files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
		_, err := FindDefaultInput(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no CSV files")
	})
}
