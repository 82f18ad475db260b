// Package upload stores user-submitted files under a public directory.
package upload

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Store saves uploaded files into a directory served as static content.
type Store struct {
	dir          string
	publicPrefix string
}

// NewStore creates a store rooted at dir. Saved files are referenced by
// publicPrefix + "/" + filename (e.g. "/files/report-1700000000000.pdf").
func NewStore(dir, publicPrefix string) *Store {
	return &Store{
		dir:          dir,
		publicPrefix: strings.TrimRight(publicPrefix, "/"),
	}
}

// FileName derives a collision-resistant name for an uploaded file:
// original basename + upload timestamp in milliseconds + original extension.
func FileName(original string, now time.Time) string {
	original = filepath.Base(original)
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(original, ext)
	if base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s-%d%s", base, now.UnixMilli(), ext)
}

// Save writes the uploaded content to disk and returns its public path.
// The target directory is created on first use.
func (s *Store) Save(original string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := FileName(original, time.Now())

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return path.Join(s.publicPrefix, name), nil
}
