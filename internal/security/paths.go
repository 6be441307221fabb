// Package security guards the file paths the CLI writes to.
package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideDirectory is returned when a path resolves outside every allowed
// directory.
var ErrOutsideDirectory = errors.New("path escapes allowed directory")

// ValidateWithin reports an error unless path, after cleaning and symlink
// resolution, lies inside dir. path need not exist yet: the deepest existing
// ancestor is resolved so a symlinked parent cannot redirect a new file.
func ValidateWithin(path, dir string) error {
	target, err := canonical(path)
	if err != nil {
		return err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve directory: %w", err)
	}
	root, err := filepath.EvalSymlinks(absDir)
	if err != nil {
		return fmt.Errorf("failed to resolve directory symlinks: %w", err)
	}

	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return fmt.Errorf("%w: %s is not under %s", ErrOutsideDirectory, path, dir)
	}
	return nil
}

// ValidateWithinAny accepts path if it lies inside at least one of dirs.
func ValidateWithinAny(path string, dirs []string) error {
	if len(dirs) == 0 {
		return errors.New("no allowed directories specified")
	}
	for _, d := range dirs {
		if ValidateWithin(path, d) == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %s must be under one of %v", ErrOutsideDirectory, path, dirs)
}

// ValidateOutputPath checks a result or database path the CLI is about to
// create. Outputs may go under the working directory or the temp directory.
func ValidateOutputPath(path string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	return ValidateWithinAny(path, []string{cwd, os.TempDir()})
}

// canonical returns the absolute, symlink-free form of path.
func canonical(path string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	for dir := filepath.Dir(abs); ; dir = filepath.Dir(dir) {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			rest, _ := filepath.Rel(dir, abs)
			return filepath.Join(resolved, rest), nil
		}
		if filepath.Dir(dir) == dir {
			return abs, nil
		}
	}
}
