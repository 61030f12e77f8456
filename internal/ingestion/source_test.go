package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJobDescription_Text(t *testing.T) {
	jd, err := ReadJobDescription(filepath.Join("..", "..", "testdata", "valid", "job.txt"))
	require.NoError(t, err)

	assert.Contains(t, jd.Text, "strong Python experience")
	assert.Contains(t, jd.Source, "job.txt")
	assert.NotEmpty(t, jd.IngestedAt)
}

func TestReadJobDescription_HTML(t *testing.T) {
	jd, err := ReadJobDescription(filepath.Join("..", "..", "testdata", "valid", "job.html"))
	require.NoError(t, err)

	assert.True(t, len(jd.Text) > 0)
	assert.NotContains(t, jd.Text, "<")
}

func TestReadJobDescription_FileNotFound(t *testing.T) {
	_, err := ReadJobDescription(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestNewJobDescription_HashDependsOnText(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("Go   engineer"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("Go engineer\n\n"), 0644))

	ja, err := ReadJobDescription(a)
	require.NoError(t, err)
	jb, err := ReadJobDescription(b)
	require.NoError(t, err)

	assert.Equal(t, ja.Hash, jb.Hash, "equal text after cleaning hashes equal")
	assert.NotEqual(t, ja.Hash, NewJobDescription("Rust engineer", "").Hash)
}
