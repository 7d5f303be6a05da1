package yaml

import (
	"bytes"
	"fmt"

	"github.com/stakestark/deployer/internal/infra/filesystem"
	"gopkg.in/yaml.v3"
)

const indent = 2

// Writer writes YAML documents
type Writer struct{}

// NewWriter creates a new YAML writer
func NewWriter() *Writer {
	return &Writer{}
}

// Write marshals data as YAML and overwrites path with it
func (w *Writer) Write(path string, data any) error {
	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(indent)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	return filesystem.WriteFile(path, buf.Bytes())
}
