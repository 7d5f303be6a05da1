package json

import (
	"encoding/json"
	"fmt"

	"github.com/stakestark/deployer/internal/infra/filesystem"
)

// Writer writes indented JSON documents
type Writer struct{}

// NewWriter creates a new JSON writer
func NewWriter() *Writer {
	return &Writer{}
}

// Write marshals data as indented JSON and overwrites path with it
func (w *Writer) Write(path string, data any) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return filesystem.WriteFile(path, append(content, '\n'))
}
