// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package categorize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCategoriesFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadCategories(t *testing.T) {
	path := writeCategoriesFile(t, `categories:
  - Labor Unions
  - Lawyers
  - Other
`)
	got, err := LoadCategories(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Labor Unions", "Lawyers", "Other"}, got)
}

func TestLoadCategoriesEnsuresOther(t *testing.T) {
	path := writeCategoriesFile(t, `categories:
  - Labor Unions
  - Lawyers
`)
	got, err := LoadCategories(path)
	require.NoError(t, err)
	assert.Equal(t, "Other", got[len(got)-1])
}

func TestLoadCategoriesErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCategories(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("empty list", func(t *testing.T) {
		_, err := LoadCategories(writeCategoriesFile(t, "categories: []\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no categories")
	})

	t.Run("not yaml", func(t *testing.T) {
		_, err := LoadCategories(writeCategoriesFile(t, "{{{"))
		assert.Error(t, err)
	})
}

func TestDefaultCategoriesIncludeOther(t *testing.T) {
	assert.Contains(t, DefaultCategories, "Other")
	assert.Len(t, DefaultCategories, 15)
}
