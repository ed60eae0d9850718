// Package store persists downloaded images and uploaded logos on the local
// filesystem. Filenames are generated, never caller-controlled, so the media
// directory is append-only and concurrent writes cannot collide.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore writes binaries under a base directory and reports paths back.
type FileStore struct {
	baseDir string
}

// New creates the base directory if needed and returns a store over it.
func New(baseDir string) (*FileStore, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, fmt.Errorf("base directory must be provided")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create media directory: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// BaseDir returns the directory the store writes into.
func (s *FileStore) BaseDir() string {
	return s.baseDir
}

// Persist writes data under a fresh unique filename and returns its path.
// suggestedExt is kept when it is a short alphanumeric suffix; anything else
// falls back to ".jpg".
func (s *FileStore) Persist(data []byte, suggestedExt string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("no data to persist")
	}
	name := uuid.NewString() + normalizeExt(suggestedExt)
	full := filepath.Join(s.baseDir, name)
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return full, nil
}

// FileExists reports whether path names an existing regular file. The quote
// renderer gates every image embed on this.
func FileExists(path string) bool {
	if strings.TrimSpace(path) == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// normalizeExt keeps short alphanumeric extensions (with or without the
// leading dot) and defaults everything else to ".jpg".
func normalizeExt(ext string) string {
	ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
	if len(ext) == 0 || len(ext) > 5 {
		return ".jpg"
	}
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ".jpg"
		}
	}
	return "." + ext
}

// ExtFromURL pulls a candidate extension from a source URL, ignoring any
// query string. The result still goes through Persist's normalization.
func ExtFromURL(sourceURL string) string {
	if idx := strings.IndexAny(sourceURL, "?#"); idx >= 0 {
		sourceURL = sourceURL[:idx]
	}
	base := sourceURL
	if slash := strings.LastIndex(base, "/"); slash >= 0 {
		base = base[slash+1:]
	}
	if dot := strings.LastIndex(base, "."); dot >= 0 && dot < len(base)-1 {
		return base[dot+1:]
	}
	return ""
}
