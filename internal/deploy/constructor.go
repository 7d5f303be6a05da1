package deploy

import (
	"errors"
	"fmt"
	"slices"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/stakestark/deployer/configs"
	"github.com/stakestark/deployer/internal/address"
	"github.com/stakestark/deployer/internal/artifact"
)

const (
	argStrkToken          = "strk_token"
	argPoolContract       = "pool_contract"
	argDelegatorClassHash = "delegator_class_hash"
	argLSTClassHash       = "stSTRK_class_hash"
	argPlatformFee        = "initial_platform_fee"
	argFeeRecipient       = "platform_fee_recipient"
	argWithdrawalWindow   = "initial_withdrawal_window_period"
	argAdmin              = "admin"
	argOperator           = "operator"
	argDelegatorCount     = "initial_delegator_count"
)

var baselineArgs = []string{
	argStrkToken,
	argPoolContract,
	argDelegatorClassHash,
	argLSTClassHash,
	argPlatformFee,
	argFeeRecipient,
	argWithdrawalWindow,
	argAdmin,
	argOperator,
}

// Params are the protocol constructor inputs known before any class is declared.
type Params struct {
	StrkToken               *felt.Felt
	PoolContract            *felt.Felt
	FeeRecipient            *felt.Felt
	Admin                   *felt.Felt
	Operator                *felt.Felt
	PlatformFeeBps          uint64
	WithdrawalWindowSeconds uint64
	Layout                  configs.ConstructorLayout
	InitialDelegatorCount   uint64
}

// ParamsFromConfig parses every protocol address up front so that a missing value fails the
// run before anything is submitted.
func ParamsFromConfig(cfg configs.Protocol) (Params, error) {
	var errs []error
	parse := func(field, value string) *felt.Felt {
		f, err := address.ToFelt(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("protocol.%s: %w", field, err))
		}
		return f
	}

	params := Params{
		StrkToken:               parse("strk-token", cfg.StrkToken),
		PoolContract:            parse("pool-contract", cfg.PoolContract),
		FeeRecipient:            parse("fee-recipient", cfg.FeeRecipient),
		Admin:                   parse("admin", cfg.Admin),
		Operator:                parse("operator", cfg.Operator),
		PlatformFeeBps:          cfg.PlatformFeeBps,
		WithdrawalWindowSeconds: cfg.WithdrawalWindowSeconds,
		Layout:                  cfg.ConstructorLayout,
		InitialDelegatorCount:   cfg.InitialDelegatorCount,
	}

	if _, err := ConstructorArgs(params.Layout); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return Params{}, fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return params, nil
}

// ConstructorArgs returns the StakeStark constructor parameter names for a layout, in order.
func ConstructorArgs(layout configs.ConstructorLayout) ([]string, error) {
	switch layout {
	case configs.ConstructorLayoutBaseline:
		return slices.Clone(baselineArgs), nil
	case configs.ConstructorLayoutDelegatorCount:
		return append(slices.Clone(baselineArgs), argDelegatorCount), nil
	default:
		return nil, fmt.Errorf("unknown constructor layout %q", layout)
	}
}

// Calldata encodes the constructor arguments, one field element per argument, in layout order.
func (p Params) Calldata(delegatorClassHash, lstClassHash *felt.Felt) ([]*felt.Felt, error) {
	names, err := ConstructorArgs(p.Layout)
	if err != nil {
		return nil, err
	}

	values := map[string]*felt.Felt{
		argStrkToken:          p.StrkToken,
		argPoolContract:       p.PoolContract,
		argDelegatorClassHash: delegatorClassHash,
		argLSTClassHash:       lstClassHash,
		argPlatformFee:        new(felt.Felt).SetUint64(p.PlatformFeeBps),
		argFeeRecipient:       p.FeeRecipient,
		argWithdrawalWindow:   new(felt.Felt).SetUint64(p.WithdrawalWindowSeconds),
		argAdmin:              p.Admin,
		argOperator:           p.Operator,
		argDelegatorCount:     new(felt.Felt).SetUint64(p.InitialDelegatorCount),
	}

	calldata := make([]*felt.Felt, 0, len(names))
	for _, name := range names {
		value := values[name]
		if value == nil {
			return nil, fmt.Errorf("%w: %s is missing", ErrConstructorMismatch, name)
		}
		calldata = append(calldata, value)
	}

	return calldata, nil
}

// checkProtocolABI verifies the protocol class against the layout and the queries issued after
// deployment. Classes without an ABI are accepted as is.
func checkProtocolABI(contract artifact.Contract, layout configs.ConstructorLayout) error {
	if len(contract.ABI()) == 0 {
		return nil
	}

	expected, err := ConstructorArgs(layout)
	if err != nil {
		return err
	}

	if inputs, ok := contract.ConstructorInputs(); ok && !slices.Equal(inputs, expected) {
		return fmt.Errorf("%w: %s declares %v, layout %s sends %v", ErrConstructorMismatch, contract.Name, inputs, layout, expected)
	}

	for _, function := range []string{functionLSTAddress, functionDelegatorAddresses} {
		if !contract.HasFunction(function) {
			return fmt.Errorf("%w: %s does not expose %s", ErrConstructorMismatch, contract.Name, function)
		}
	}

	return nil
}
