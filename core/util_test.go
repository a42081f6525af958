package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Sara", CleanString("  Sara \n"))
	assert.Equal(t, "sara@test.io", CleanString(" Sara@Test.io ", true))
}

func TestGetwd(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module academy\n"), 0o644))
	nested := filepath.Join(root, "apps", "web")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { _ = os.Chdir(prev) })
	wd, err := Getwd()
	require.NoError(t, err)
	assert.Equal(t, root, wd)
}
