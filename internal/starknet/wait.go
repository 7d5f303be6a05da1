package starknet

import (
	"context"
	"fmt"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/rpc"
	"github.com/stakestark/deployer/internal/address"
	"github.com/stakestark/deployer/internal/domain"
)

// WaitForTransaction blocks until the transaction has a receipt. Without a configured
// confirmation timeout it waits for as long as ctx allows.
func (c *Client) WaitForTransaction(ctx context.Context, txHash *felt.Felt) (domain.Confirmation, error) {
	if c.confirmationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.confirmationTimeout)
		defer cancel()
	}

	c.logger.With("tx_hash", address.FromFelt(txHash)).Info("waiting for transaction confirmation")

	receipt, err := c.account.WaitForTransactionReceipt(ctx, txHash, c.pollInterval)
	if err != nil {
		return domain.Confirmation{}, fmt.Errorf("failed to wait for transaction %s: %w", address.FromFelt(txHash), err)
	}

	if receipt.ExecutionStatus == rpc.TxnExecutionStatusREVERTED {
		return domain.Confirmation{}, fmt.Errorf("%w: %s: %s", domain.ErrTransactionReverted, address.FromFelt(txHash), receipt.RevertReason)
	}

	c.logger.
		With("tx_hash", address.FromFelt(txHash)).
		With("finality", receipt.FinalityStatus).
		With("block_number", receipt.BlockNumber).
		Info("transaction confirmed")

	return domain.Confirmation{
		TransactionHash:   txHash,
		DeployedContracts: deployedContracts(c.udc, receipt.Events),
	}, nil
}
