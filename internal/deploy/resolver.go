package deploy

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/stakestark/deployer/internal/address"
	"github.com/stakestark/deployer/internal/domain"
	"github.com/stakestark/deployer/internal/logger"
)

const (
	functionLSTAddress         = "get_lst_address"
	functionDelegatorAddresses = "get_delegators_address"
)

// Resolver reads the contracts the protocol constructor created.
type Resolver struct {
	network network
	logger  *slog.Logger
}

// NewResolver creates a new address resolver
func NewResolver(network network) *Resolver {
	return &Resolver{
		network: network,
		logger:  logger.Named("address_resolver"),
	}
}

// Resolve queries the token and delegator addresses of a deployed protocol contract.
func (r *Resolver) Resolve(ctx context.Context, protocol *felt.Felt) (domain.ProtocolAddresses, error) {
	lstResult, err := r.network.Call(ctx, protocol, functionLSTAddress)
	if err != nil {
		return domain.ProtocolAddresses{}, fmt.Errorf("%w: %s: %w", ErrQuery, functionLSTAddress, err)
	}
	if len(lstResult) != 1 {
		return domain.ProtocolAddresses{}, fmt.Errorf("%w: %s returned %d values, expected 1", ErrQuery, functionLSTAddress, len(lstResult))
	}

	delegatorsResult, err := r.network.Call(ctx, protocol, functionDelegatorAddresses)
	if err != nil {
		return domain.ProtocolAddresses{}, fmt.Errorf("%w: %s: %w", ErrQuery, functionDelegatorAddresses, err)
	}

	delegators, err := decodeArray(delegatorsResult)
	if err != nil {
		return domain.ProtocolAddresses{}, fmt.Errorf("%w: %s: %w", ErrQuery, functionDelegatorAddresses, err)
	}

	if len(delegators) == 0 {
		r.logger.With("protocol", address.FromFelt(protocol)).Warn("protocol reports no delegators")
	}

	r.logger.
		With("lst", address.FromFelt(lstResult[0])).
		With("delegators", address.FromFelts(delegators)).
		Info("protocol addresses resolved")

	return domain.ProtocolAddresses{
		LST:        lstResult[0],
		Delegators: delegators,
	}, nil
}

// decodeArray decodes a serialized Cairo array: its length followed by the elements.
func decodeArray(values []*felt.Felt) ([]*felt.Felt, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("empty result, expected an array length")
	}

	length := values[0].BigInt(new(big.Int))
	if !length.IsUint64() || length.Uint64() != uint64(len(values)-1) {
		return nil, fmt.Errorf("array length %s does not match %d returned elements", length, len(values)-1)
	}

	return values[1:], nil
}
