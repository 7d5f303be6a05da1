package starknet

import (
	"context"
	"fmt"

	"github.com/NethermindEth/juno/core/crypto"
	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/contracts"
	"github.com/NethermindEth/starknet.go/rpc"
	"github.com/NethermindEth/starknet.go/utils"
	"github.com/stakestark/deployer/internal/address"
	"github.com/stakestark/deployer/internal/domain"
)

const (
	udcDeployFunction = "deployContract"
	udcDeployedEvent  = "ContractDeployed"
)

// Deploy instantiates classHash through the Universal Deployer Contract. The returned address
// is derived the way the legacy UDC derives it for unique deployments; the ContractDeployed
// event of the confirmed receipt is authoritative.
func (c *Client) Deploy(ctx context.Context, classHash *felt.Felt, constructorCalldata []*felt.Felt, salt *felt.Felt) (domain.Deployment, error) {
	resp, err := c.account.BuildAndSendInvokeTxn(ctx, []rpc.InvokeFunctionCall{{
		ContractAddress: c.udc,
		FunctionName:    udcDeployFunction,
		CallData:        udcCalldata(classHash, salt, constructorCalldata),
	}}, c.feeMultiplier)
	if err != nil {
		return domain.Deployment{}, fmt.Errorf("failed to submit deploy transaction: %w", err)
	}

	contractAddress := uniqueDeploymentAddress(c.udc, c.address, classHash, salt, constructorCalldata)

	c.logger.
		With("class_hash", address.FromFelt(classHash)).
		With("address", address.FromFelt(contractAddress)).
		With("tx_hash", address.FromFelt(resp.TransactionHash)).
		Info("contract deployment transaction sent")

	return domain.Deployment{
		ContractAddress: contractAddress,
		TransactionHash: resp.TransactionHash,
		Salt:            salt,
	}, nil
}

// udcCalldata encodes deployContract(class_hash, salt, unique, calldata: Array<felt252>).
func udcCalldata(classHash, salt *felt.Felt, constructorCalldata []*felt.Felt) []*felt.Felt {
	calldata := make([]*felt.Felt, 0, 4+len(constructorCalldata))
	calldata = append(calldata,
		classHash,
		salt,
		new(felt.Felt).SetUint64(1),
		utils.Uint64ToFelt(uint64(len(constructorCalldata))),
	)
	return append(calldata, constructorCalldata...)
}

// uniqueDeploymentAddress mirrors the UDC: unique deployments hash the caller into the salt
// and use the UDC itself as the deployer.
func uniqueDeploymentAddress(udc, deployer, classHash, salt *felt.Felt, constructorCalldata []*felt.Felt) *felt.Felt {
	uniqueSalt := crypto.Pedersen(deployer, salt)
	return contracts.PrecomputeAddress(udc, uniqueSalt, classHash, constructorCalldata)
}

// deployedContracts collects the addresses announced by udc. The legacy UDC emits the address
// as the first data element; the Cairo 1 UDC moves it into the keys.
func deployedContracts(udc *felt.Felt, events []rpc.Event) []*felt.Felt {
	eventSelector := selector(udcDeployedEvent)

	var deployed []*felt.Felt
	for _, event := range events {
		if event.FromAddress == nil || !event.FromAddress.Equal(udc) {
			continue
		}
		if len(event.Keys) == 0 || !event.Keys[0].Equal(eventSelector) {
			continue
		}
		switch {
		case len(event.Keys) > 1:
			deployed = append(deployed, event.Keys[1])
		case len(event.Data) > 0:
			deployed = append(deployed, event.Data[0])
		}
	}

	return deployed
}

func selector(function string) *felt.Felt {
	return utils.GetSelectorFromNameFelt(function)
}
