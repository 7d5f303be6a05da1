package deploy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stakestark/deployer/internal/address"
	"github.com/stakestark/deployer/internal/artifact"
	"github.com/stakestark/deployer/internal/domain"
	"github.com/stakestark/deployer/internal/logger"
)

// Declarer turns contract artifacts into confirmed class hashes.
type Declarer struct {
	network network
	logger  *slog.Logger
}

// NewDeclarer creates a new contract declarer
func NewDeclarer(network network) *Declarer {
	return &Declarer{
		network: network,
		logger:  logger.Named("contract_declarer"),
	}
}

// Declare returns once the class hash of contract can be referenced on chain. A class that was
// already declared is returned without waiting.
func (d *Declarer) Declare(ctx context.Context, contract artifact.Contract) (domain.Declaration, error) {
	d.logger.With("name", contract.Name).Info("declaring contract class")

	declaration, err := d.network.DeclareIfNot(ctx, contract)
	if err != nil {
		return domain.Declaration{}, fmt.Errorf("%w: declare %s: %w", ErrSubmission, contract.Name, err)
	}

	if declaration.NewlyDeclared() {
		if _, err := d.network.WaitForTransaction(ctx, declaration.TransactionHash); err != nil {
			return domain.Declaration{}, fmt.Errorf("%w: declare %s: %w", ErrConfirmation, contract.Name, err)
		}
	}

	d.logger.
		With("name", contract.Name).
		With("class_hash", address.FromFelt(declaration.ClassHash)).
		With("newly_declared", declaration.NewlyDeclared()).
		Info("contract class available")

	return declaration, nil
}
