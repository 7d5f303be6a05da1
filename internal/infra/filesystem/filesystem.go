package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
)

type (
	Reader interface {
		ReadJSON(path string, target any) error
	}
	// Writer persists a document, replacing any previous content at path.
	Writer interface {
		Write(path string, data any) error
	}
)

// WriteFile creates the parent directory of path if needed and overwrites path with content.
func WriteFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
