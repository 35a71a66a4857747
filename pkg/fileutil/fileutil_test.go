package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rohmanhakim/nl-locator/pkg/failure"
	"github.com/rohmanhakim/nl-locator/pkg/fileutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir_MultiplePathComponents(t *testing.T) {
	tmpDir := t.TempDir()
	targetDir := filepath.Join(tmpDir, "parent", "child", "grandchild")

	err := fileutil.EnsureDir(tmpDir, "parent", "child", "grandchild")
	require.Nil(t, err)

	info, statErr := os.Stat(targetDir)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}

func TestEnsureDir_DirectoryAlreadyExists(t *testing.T) {
	tmpDir := t.TempDir()
	targetDir := filepath.Join(tmpDir, "existing")
	require.NoError(t, os.MkdirAll(targetDir, 0755))

	err := fileutil.EnsureDir(targetDir)
	assert.Nil(t, err)
}

func TestEnsureDir_PathIsAFile(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	err := fileutil.EnsureDir(file, "subdir")
	require.NotNil(t, err)

	var fileErr *fileutil.FileError
	if assert.ErrorAs(t, err, &fileErr) {
		assert.False(t, fileErr.Retryable)
		assert.Equal(t, fileutil.ErrCausePathError, fileErr.Cause)
		assert.Equal(t, failure.SeverityFatal, fileErr.Severity())
	}
}

func TestWriteFileAtomic(t *testing.T) {
	tmpDir := t.TempDir()
	dir := filepath.Join(tmpDir, "out")

	path, err := fileutil.WriteFileAtomic(dir, "result.json", []byte(`{"ok":true}`))
	require.Nil(t, err)
	assert.Equal(t, filepath.Join(dir, "result.json"), path)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, `{"ok":true}`, string(data))

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Len(t, entries, 1)
}

func TestWriteFileAtomic_Overwrites(t *testing.T) {
	dir := t.TempDir()

	_, err := fileutil.WriteFileAtomic(dir, "a.html", []byte("first"))
	require.Nil(t, err)
	path, err := fileutil.WriteFileAtomic(dir, "a.html", []byte("second"))
	require.Nil(t, err)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "second", string(data))
}
