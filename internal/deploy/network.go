package deploy

import (
	"context"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/stakestark/deployer/configs"
	"github.com/stakestark/deployer/internal/artifact"
	"github.com/stakestark/deployer/internal/domain"
)

type (
	network interface {
		DeclareIfNot(ctx context.Context, contract artifact.Contract) (domain.Declaration, error)
		Deploy(ctx context.Context, classHash *felt.Felt, constructorCalldata []*felt.Felt, salt *felt.Felt) (domain.Deployment, error)
		WaitForTransaction(ctx context.Context, txHash *felt.Felt) (domain.Confirmation, error)
		Call(ctx context.Context, contract *felt.Felt, function string, calldata ...*felt.Felt) ([]*felt.Felt, error)
		AccountAddress() *felt.Felt
	}
	artifactLoader interface {
		Load(name, classPath string) (artifact.Contract, error)
	}
	recordPersister interface {
		Persist(output configs.Output, record domain.Record) error
	}
)
