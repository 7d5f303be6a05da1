package artifact

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/stakestark/deployer/internal/logger"
)

type reader interface {
	ReadJSON(path string, target any) error
}

// Loader reads contract artifacts produced by the Cairo toolchain.
type Loader struct {
	reader reader
	logger *slog.Logger
}

// NewLoader creates a new artifact loader
func NewLoader(reader reader) *Loader {
	return &Loader{
		reader: reader,
		logger: logger.Named("artifact_loader"),
	}
}

// Load reads the class at classPath and the compiled class next to it.
func (l *Loader) Load(name, classPath string) (Contract, error) {
	casmPath, err := CasmPath(classPath)
	if err != nil {
		return Contract{}, err
	}

	var class json.RawMessage
	if err := l.reader.ReadJSON(classPath, &class); err != nil {
		return Contract{}, fmt.Errorf("failed to read contract class %s: %w", classPath, err)
	}

	abi, err := parseClass(class)
	if err != nil {
		return Contract{}, fmt.Errorf("%s: %w", classPath, err)
	}

	var casm json.RawMessage
	if err := l.reader.ReadJSON(casmPath, &casm); err != nil {
		return Contract{}, fmt.Errorf("failed to read compiled contract class %s: %w", casmPath, err)
	}

	if err := parseCasm(casm); err != nil {
		return Contract{}, fmt.Errorf("%s: %w", casmPath, err)
	}

	l.logger.
		With("name", name).
		With("class_path", classPath).
		With("abi_entries", len(abi)).
		Debug("contract artifact loaded")

	return Contract{
		Name:      name,
		ClassPath: classPath,
		CasmPath:  casmPath,
		Class:     class,
		Casm:      casm,
		abi:       abi,
	}, nil
}
