// Package media stores uploaded images and resolves stored image references
// into sources a document can embed.
package media

import (
	"encoding/base64"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"
)

// Image kinds, also the sub-directories of the store.
const (
	KindPhotos = "photos"
	KindLogos  = "logos"
)

var mimeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// Store is the image directory. Every access goes through an os.Root so stored
// references cannot escape it.
type Store struct {
	root   *os.Root
	dir    string
	logger *slog.Logger
}

// Open creates dir if needed and opens it as a Store.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("open media dir: %w", err)
	}
	return &Store{root: root, dir: dir, logger: logger}, nil
}

// Dir returns the directory the store was opened on.
func (s *Store) Dir() string { return s.dir }

// FS exposes the store read-only, for static serving.
func (s *Store) FS() fs.FS { return s.root.FS() }

// Close releases the directory handle.
func (s *Store) Close() error { return s.root.Close() }

// Resolve maps a stored reference to an embeddable source. Remote URLs and data
// URIs pass through; a relative path becomes a base64 data URI. Any failure
// yields ok=false so the caller renders without the image.
func (s *Store) Resolve(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}
	lower := strings.ToLower(ref)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "data:") {
		return ref, true
	}

	name, ok := storedName(ref)
	if !ok {
		return "", false
	}
	mime, ok := mimeByExt[strings.ToLower(path.Ext(name))]
	if !ok {
		return "", false
	}
	data, err := s.root.ReadFile(name)
	if err != nil {
		s.logger.Debug("image not resolved", "ref", ref, "error", err)
		return "", false
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), true
}

// storedName turns "/uploads/photos/a.jpg", "uploads/photos/a.jpg" or
// "photos/a.jpg" into the store-relative "photos/a.jpg".
func storedName(ref string) (string, bool) {
	ref = strings.ReplaceAll(ref, "\\", "/")
	ref = strings.TrimPrefix(ref, "/")
	ref = strings.TrimPrefix(ref, "uploads/")
	name := path.Clean(ref)
	if name == "." || name == ".." || strings.HasPrefix(name, "../") {
		return "", false
	}
	return name, true
}
