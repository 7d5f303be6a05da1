package starknet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/contracts"
	"github.com/NethermindEth/starknet.go/hash"
	"github.com/NethermindEth/starknet.go/rpc"
	"github.com/stakestark/deployer/internal/address"
	"github.com/stakestark/deployer/internal/artifact"
	"github.com/stakestark/deployer/internal/domain"
)

// DeclareIfNot declares the contract class unless the node already knows its class hash.
// The returned declaration carries no transaction hash when nothing was submitted.
func (c *Client) DeclareIfNot(ctx context.Context, contract artifact.Contract) (domain.Declaration, error) {
	var class contracts.ContractClass
	if err := json.Unmarshal(contract.Class, &class); err != nil {
		return domain.Declaration{}, fmt.Errorf("failed to decode contract class %s: %w", contract.Name, err)
	}

	var casm contracts.CasmClass
	if err := json.Unmarshal(contract.Casm, &casm); err != nil {
		return domain.Declaration{}, fmt.Errorf("failed to decode compiled contract class %s: %w", contract.Name, err)
	}

	classHash := hash.ClassHash(&class)

	declared, err := c.isDeclared(ctx, classHash)
	if err != nil {
		return domain.Declaration{}, err
	}
	if declared {
		c.logger.
			With("name", contract.Name).
			With("class_hash", address.FromFelt(classHash)).
			Info("class already declared")
		return domain.Declaration{ClassHash: classHash}, nil
	}

	resp, err := c.account.BuildAndSendDeclareTxn(ctx, &casm, &class, c.feeMultiplier)
	if err != nil {
		return domain.Declaration{}, fmt.Errorf("failed to submit declare transaction for %s: %w", contract.Name, err)
	}

	c.logger.
		With("name", contract.Name).
		With("class_hash", address.FromFelt(resp.ClassHash)).
		With("tx_hash", address.FromFelt(resp.TransactionHash)).
		Info("declare transaction sent")

	return domain.Declaration{
		ClassHash:       resp.ClassHash,
		TransactionHash: resp.TransactionHash,
	}, nil
}

func (c *Client) isDeclared(ctx context.Context, classHash *felt.Felt) (bool, error) {
	_, err := c.provider.Class(ctx, rpc.WithBlockTag(latestBlock), classHash)
	if err == nil {
		return true, nil
	}

	var rpcErr *rpc.RPCError
	if errors.As(err, &rpcErr) && rpcErr.Code == rpc.ErrClassHashNotFound.Code {
		return false, nil
	}

	return false, fmt.Errorf("failed to look up class %s: %w", address.FromFelt(classHash), err)
}
