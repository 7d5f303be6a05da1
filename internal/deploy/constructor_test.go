package deploy

import (
	"testing"

	"github.com/stakestark/deployer/configs"
	"github.com/stakestark/deployer/internal/address"
	"github.com/stakestark/deployer/internal/artifact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protocolConfig() configs.Protocol {
	return configs.Protocol{
		StrkToken:               "0x4718f5a0fc34cc1af16a1cdee98ffb20c31f5cd61d6ab07201858f4287c938d",
		PoolContract:            "0x2cb02c72e8a0975e69e88298443e984d965a49eab38f5bdde1f5072daa09cfe",
		FeeRecipient:            "0xFEE",
		Admin:                   "2748",
		Operator:                "0x0000b0b",
		PlatformFeeBps:          100,
		WithdrawalWindowSeconds: 86400,
		ConstructorLayout:       configs.ConstructorLayoutBaseline,
	}
}

func TestParams_Calldata(t *testing.T) {
	tests := []struct {
		name     string
		layout   configs.ConstructorLayout
		count    uint64
		expected []string
	}{
		{
			name:   "baseline",
			layout: configs.ConstructorLayoutBaseline,
			expected: []string{
				"0x4718f5a0fc34cc1af16a1cdee98ffb20c31f5cd61d6ab07201858f4287c938d",
				"0x2cb02c72e8a0975e69e88298443e984d965a49eab38f5bdde1f5072daa09cfe",
				"0xde1e",
				"0x1571",
				"0x64",
				"0xfee",
				"0x15180",
				"0xabc",
				"0xb0b",
			},
		},
		{
			name:   "delegator count",
			layout: configs.ConstructorLayoutDelegatorCount,
			count:  5,
			expected: []string{
				"0x4718f5a0fc34cc1af16a1cdee98ffb20c31f5cd61d6ab07201858f4287c938d",
				"0x2cb02c72e8a0975e69e88298443e984d965a49eab38f5bdde1f5072daa09cfe",
				"0xde1e",
				"0x1571",
				"0x64",
				"0xfee",
				"0x15180",
				"0xabc",
				"0xb0b",
				"0x5",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := protocolConfig()
			cfg.ConstructorLayout = tt.layout
			cfg.InitialDelegatorCount = tt.count

			params, err := ParamsFromConfig(cfg)
			require.NoError(t, err)

			calldata, err := params.Calldata(feltOf(0xde1e), feltOf(0x1571))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, address.FromFelts(calldata))

			names, err := ConstructorArgs(tt.layout)
			require.NoError(t, err)
			assert.Len(t, names, len(tt.expected))
		})
	}
}

func TestParams_Calldata_MissingClassHash(t *testing.T) {
	params, err := ParamsFromConfig(protocolConfig())
	require.NoError(t, err)

	_, err = params.Calldata(nil, feltOf(0x1571))
	require.ErrorIs(t, err, ErrConstructorMismatch)
	require.ErrorContains(t, err, "delegator_class_hash")
}

func TestParamsFromConfig_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*configs.Protocol)
		contains string
	}{
		{name: "missing admin", mutate: func(p *configs.Protocol) { p.Admin = "" }, contains: "protocol.admin"},
		{name: "malformed operator", mutate: func(p *configs.Protocol) { p.Operator = "bob" }, contains: "protocol.operator"},
		{name: "unknown layout", mutate: func(p *configs.Protocol) { p.ConstructorLayout = "v3" }, contains: "unknown constructor layout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := protocolConfig()
			tt.mutate(&cfg)

			_, err := ParamsFromConfig(cfg)
			require.ErrorIs(t, err, ErrInvalidConfig)
			require.ErrorContains(t, err, tt.contains)
		})
	}
}

func TestCheckProtocolABI(t *testing.T) {
	dir := t.TempDir()

	matching := loadProtocolFixture(t, dir, "matching", baselineArgs, true)
	require.NoError(t, checkProtocolABI(matching, configs.ConstructorLayoutBaseline))

	err := checkProtocolABI(matching, configs.ConstructorLayoutDelegatorCount)
	require.ErrorIs(t, err, ErrConstructorMismatch)

	reordered := append([]string{argPoolContract, argStrkToken}, baselineArgs[2:]...)
	swapped := loadProtocolFixture(t, dir, "swapped", reordered, true)
	require.ErrorIs(t, checkProtocolABI(swapped, configs.ConstructorLayoutBaseline), ErrConstructorMismatch)

	noViews := loadProtocolFixture(t, dir, "noviews", baselineArgs, false)
	err = checkProtocolABI(noViews, configs.ConstructorLayoutBaseline)
	require.ErrorIs(t, err, ErrConstructorMismatch)
	require.ErrorContains(t, err, functionLSTAddress)

	require.NoError(t, checkProtocolABI(artifact.Contract{Name: ContractNameProtocol}, configs.ConstructorLayoutBaseline))
}
