package deploy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/stakestark/deployer/internal/address"
	"github.com/stakestark/deployer/internal/domain"
	"github.com/stakestark/deployer/internal/logger"
)

// Deployer deploys the protocol contract and waits for it to be confirmed.
type Deployer struct {
	network network
	logger  *slog.Logger
}

// NewDeployer creates a new protocol deployer
func NewDeployer(network network) *Deployer {
	return &Deployer{
		network: network,
		logger:  logger.Named("protocol_deployer"),
	}
}

// Deploy submits one deployment of classHash and blocks until it is confirmed.
func (d *Deployer) Deploy(ctx context.Context, classHash *felt.Felt, constructorCalldata []*felt.Felt, salt *felt.Felt) (domain.Deployment, error) {
	d.logger.
		With("class_hash", address.FromFelt(classHash)).
		With("constructor_args", len(constructorCalldata)).
		Info("deploying protocol contract")

	deployment, err := d.network.Deploy(ctx, classHash, constructorCalldata, salt)
	if err != nil {
		return domain.Deployment{}, fmt.Errorf("%w: deploy: %w", ErrSubmission, err)
	}

	confirmation, err := d.network.WaitForTransaction(ctx, deployment.TransactionHash)
	if err != nil {
		return domain.Deployment{}, fmt.Errorf("%w: deploy: %w", ErrConfirmation, err)
	}

	deployment.ContractAddress, err = d.confirmedAddress(deployment.ContractAddress, confirmation)
	if err != nil {
		return domain.Deployment{}, fmt.Errorf("%w: deploy: %w", ErrConfirmation, err)
	}

	d.logger.
		With("address", address.FromFelt(deployment.ContractAddress)).
		With("tx_hash", address.FromFelt(deployment.TransactionHash)).
		Info("protocol contract deployed")

	return deployment, nil
}

// confirmedAddress picks the deployed address announced by the receipt. The precomputed address
// is kept when the receipt confirms it or announces nothing.
func (d *Deployer) confirmedAddress(precomputed *felt.Felt, confirmation domain.Confirmation) (*felt.Felt, error) {
	announced := confirmation.DeployedContracts

	for _, deployed := range announced {
		if deployed.Equal(precomputed) {
			return precomputed, nil
		}
	}

	switch len(announced) {
	case 0:
		d.logger.
			With("address", address.FromFelt(precomputed)).
			Warn("receipt carries no ContractDeployed event, using the precomputed address")
		return precomputed, nil
	case 1:
		d.logger.
			With("precomputed", address.FromFelt(precomputed)).
			With("announced", address.FromFelt(announced[0])).
			Warn("deployed address differs from the precomputed one, using the receipt")
		return announced[0], nil
	default:
		return nil, fmt.Errorf("%w: receipt announces %v, none is %s",
			ErrDeployedAddressMismatch, address.FromFelts(announced), address.FromFelt(precomputed))
	}
}
