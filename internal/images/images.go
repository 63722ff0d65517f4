package images

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store keeps exercise images as opaque files in a single directory. The
// rest of the app only ever handles the returned file name.
type Store struct {
	dir string
}

// NewStore creates (if needed) the image directory and returns a store.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating images dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the image content to a new uuid-named file and returns the
// file name. ext is the original extension including the dot; it falls back
// to .img when empty.
func (s *Store) Save(r io.Reader, ext string) (string, error) {
	if ext == "" {
		ext = ".img"
	}
	name := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("creating image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing image file: %w", err)
	}
	return name, nil
}

// Open opens a stored image by name. The name must be a bare file name; path
// separators are rejected so callers cannot escape the directory.
func (s *Store) Open(name string) (*os.File, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("opening image %s: %w", name, err)
	}
	return f, nil
}

// Remove deletes a stored image. Removing a name that does not exist is not
// an error.
func (s *Store) Remove(name string) error {
	if name == "" {
		return nil
	}
	if err := checkName(name); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing image %s: %w", name, err)
	}
	return nil
}

func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return fmt.Errorf("invalid image name %q", name)
	}
	return nil
}
