// Package storage implements the local-disk image store.  Uploaded files
// live under a single uploads directory, one subfolder per category
// (toolboxes, conditions, ...), and are addressed by paths of the form
// /uploads/<subfolder>/<uuid>.<ext>.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a stored path does not resolve to a file.
var ErrNotFound = errors.New("file not found")

// ErrBadPath is returned for paths outside the uploads tree.
var ErrBadPath = errors.New("invalid upload path")

// Local stores files under a base directory.
type Local struct {
	baseDir string
}

// NewLocal creates the base directory if needed and returns the store.
func NewLocal(baseDir string) (*Local, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}
	return &Local{baseDir: baseDir}, nil
}

// Save writes r to a new uniquely named file in the given subfolder and
// returns the public path ("/uploads/<subfolder>/<name>") and byte count.
// The original filename contributes only its extension.
func (s *Local) Save(r io.Reader, subfolder, originalName string) (string, int64, error) {
	sub, err := cleanSubfolder(subfolder)
	if err != nil {
		return "", 0, err
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".jpg"
	}
	name := uuid.NewString() + ext

	dir := filepath.Join(s.baseDir, sub)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, err
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", 0, err
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(filepath.Join(dir, name))
		return "", 0, err
	}
	return fmt.Sprintf("/uploads/%s/%s", sub, name), n, nil
}

// Resolve maps a public path back to the file on disk.
func (s *Local) Resolve(publicPath string) (string, error) {
	rel, err := s.relative(publicPath)
	if err != nil {
		return "", err
	}
	full := filepath.Join(s.baseDir, rel)
	if _, err := os.Stat(full); err != nil {
		return "", ErrNotFound
	}
	return full, nil
}

// Delete removes the file behind a public path.
func (s *Local) Delete(publicPath string) error {
	rel, err := s.relative(publicPath)
	if err != nil {
		return err
	}
	full := filepath.Join(s.baseDir, rel)
	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// relative strips the /uploads/ prefix and rejects traversal attempts.
func (s *Local) relative(publicPath string) (string, error) {
	const prefix = "/uploads/"
	if !strings.HasPrefix(publicPath, prefix) {
		return "", ErrBadPath
	}
	rel := filepath.Clean(strings.TrimPrefix(publicPath, prefix))
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", ErrBadPath
	}
	return rel, nil
}

func cleanSubfolder(sub string) (string, error) {
	sub = strings.TrimSpace(sub)
	if sub == "" {
		sub = "toolboxes"
	}
	if strings.ContainsAny(sub, `/\`) || strings.Contains(sub, "..") {
		return "", ErrBadPath
	}
	return sub, nil
}
