// Package starknet talks to a Starknet node on behalf of the deployer account.
package starknet

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/account"
	"github.com/NethermindEth/starknet.go/client"
	"github.com/NethermindEth/starknet.go/curve"
	"github.com/NethermindEth/starknet.go/rpc"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stakestark/deployer/configs"
	"github.com/stakestark/deployer/internal/address"
	"github.com/stakestark/deployer/internal/logger"
)

const (
	cairoVersion = 2
	latestBlock  = "latest"
)

// Client is the single account session used for every submission and query of a run.
// It is built once and only read afterwards.
type Client struct {
	provider            *rpc.Provider
	account             *account.Account
	address             *felt.Felt
	publicKey           string
	udc                 *felt.Felt
	pollInterval        time.Duration
	confirmationTimeout time.Duration
	feeMultiplier       float64
	logger              *slog.Logger
}

// NewClient dials the node and opens the deployer account session.
func NewClient(network configs.Network, acc configs.Account) (*Client, error) {
	log := logger.Named("starknet_client")

	udc, err := address.ToFelt(network.UDCAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to parse universal deployer address: %w", err)
	}

	options := make([]client.ClientOption, 0, len(network.Headers))
	for key, value := range network.Headers {
		options = append(options, client.WithHeader(key, value))
	}

	log.With("url", network.RPCURL).Info("dialing the Starknet RPC")
	provider, err := rpc.NewProvider(network.RPCURL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", network.RPCURL, err)
	}

	privateKey, err := address.Parse(acc.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	publicX, _, err := curve.Curve.PrivateToPoint(privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to derive public key: %w", err)
	}
	publicKey := hexutil.EncodeBig(publicX)

	keystore := account.NewMemKeystore()
	keystore.Put(publicKey, privateKey)

	accountAddress, err := address.ToFelt(acc.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to parse account address: %w", err)
	}

	session, err := account.NewAccount(provider, accountAddress, publicKey, keystore, cairoVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to open account session: %w", err)
	}

	log.
		With("account", address.FromFelt(accountAddress)).
		With("public_key", publicKey).
		Info("account session ready")

	return &Client{
		provider:            provider,
		account:             session,
		address:             accountAddress,
		publicKey:           publicKey,
		udc:                 udc,
		pollInterval:        network.PollInterval,
		confirmationTimeout: network.ConfirmationTimeout,
		feeMultiplier:       network.FeeMultiplier,
		logger:              log,
	}, nil
}

// AccountAddress returns the deployer account address.
func (c *Client) AccountAddress() *felt.Felt {
	return c.address
}

// Call runs a read-only entry point against the latest block.
func (c *Client) Call(ctx context.Context, contract *felt.Felt, function string, calldata ...*felt.Felt) ([]*felt.Felt, error) {
	if calldata == nil {
		calldata = []*felt.Felt{}
	}

	result, err := c.provider.Call(ctx, rpc.FunctionCall{
		ContractAddress:    contract,
		EntryPointSelector: selector(function),
		Calldata:           calldata,
	}, rpc.WithBlockTag(latestBlock))
	if err != nil {
		return nil, fmt.Errorf("call %s on %s: %w", function, address.FromFelt(contract), err)
	}

	return result, nil
}
