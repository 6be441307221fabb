package batch

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/banshee-data/wallmap/internal/fsutil"
)

// LoadFile reads and validates a batch file from fsys.
func LoadFile(fsys fsutil.FileSystem, path string) (*Batch, error) {
	data, err := fsys.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// SaveFile writes res to path, creating the parent directory if needed.
func SaveFile(fsys fsutil.FileSystem, path string, res *Result) error {
	var buf bytes.Buffer
	if err := Encode(&buf, res); err != nil {
		return err
	}
	path = filepath.Clean(path)
	if dir := filepath.Dir(path); dir != "." {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := fsys.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write result file: %w", err)
	}
	return nil
}
