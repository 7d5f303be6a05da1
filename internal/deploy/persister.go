package deploy

import (
	"fmt"
	"log/slog"

	"github.com/stakestark/deployer/configs"
	"github.com/stakestark/deployer/internal/domain"
	"github.com/stakestark/deployer/internal/infra/filesystem"
	"github.com/stakestark/deployer/internal/logger"
)

// Persister writes the deployment record, replacing whatever the output file held before.
type Persister struct {
	writers map[configs.OutputFormat]filesystem.Writer
	logger  *slog.Logger
}

// NewPersister creates a new record persister
func NewPersister(jsonWriter, yamlWriter filesystem.Writer) *Persister {
	return &Persister{
		writers: map[configs.OutputFormat]filesystem.Writer{
			configs.OutputFormatJSON: jsonWriter,
			configs.OutputFormatYAML: yamlWriter,
		},
		logger: logger.Named("record_persister"),
	}
}

func (p *Persister) Persist(output configs.Output, record domain.Record) error {
	writer, ok := p.writers[output.Format]
	if !ok {
		return fmt.Errorf("%w: unsupported output format %q", ErrPersist, output.Format)
	}

	if err := writer.Write(output.Path, record); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPersist, output.Path, err)
	}

	p.logger.
		With("path", output.Path).
		With("format", output.Format).
		Info("deployment record written")

	return nil
}
