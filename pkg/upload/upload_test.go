package upload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	assert.Equal(t, "report-1700000000000.pdf", FileName("report.pdf", now))
	assert.Equal(t, "avatar-1700000000000", FileName("avatar", now))
	assert.Equal(t, "file-1700000000000.png", FileName(".png", now))

	// Path components in the client-supplied name must not escape the dir
	assert.Equal(t, "b-1700000000000.png", FileName("../a/b.png", now))
}

func TestFileName_DistinctAcrossTime(t *testing.T) {
	a := FileName("report.pdf", time.UnixMilli(1))
	b := FileName("report.pdf", time.UnixMilli(2))
	assert.NotEqual(t, a, b)
}

func TestSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "files")
	store := NewStore(dir, "/files")

	publicPath, err := store.Save("notes.txt", strings.NewReader("hello"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(publicPath, "/files/notes-"), "got %q", publicPath)
	assert.True(t, strings.HasSuffix(publicPath, ".txt"), "got %q", publicPath)

	// The directory is created on demand and the content written out
	name := strings.TrimPrefix(publicPath, "/files/")
	content, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}
