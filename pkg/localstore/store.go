package localstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// PublicPrefix is the URL path stored files are served under.
const PublicPrefix = "/Uploads"

// Store keeps documents as plain files in one directory.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) Put(_ context.Context, name, _ string, b []byte) (string, error) {
	if !ValidName(name) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), b, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return PublicPrefix + "/" + name, nil
}

// Delete removes the file behind ref. A file that is already gone is not an error.
func (s *Store) Delete(_ context.Context, ref string) error {
	name := path.Base(ref)
	if !ValidName(name) {
		return fmt.Errorf("invalid ref %q", ref)
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) Exists(_ context.Context, ref string) (bool, error) {
	name := path.Base(ref)
	if !ValidName(name) {
		return false, nil
	}
	_, err := os.Stat(filepath.Join(s.dir, name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (s *Store) Read(_ context.Context, name string) ([]byte, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
	}
	return os.ReadFile(filepath.Join(s.dir, name))
}

// ValidName reports whether name is a bare file name with no path components.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..")
}
