package starknet

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/rpc"
	"github.com/stakestark/deployer/internal/address"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyUDC = "0x041a78e741e5af2fec34b695679bc6891742439f7afb8484ecd7766661ad02bf"

func TestUDCCalldata(t *testing.T) {
	classHash := new(felt.Felt).SetUint64(0xc1a55)
	salt := new(felt.Felt).SetUint64(7)
	constructor := []*felt.Felt{new(felt.Felt).SetUint64(10), new(felt.Felt).SetUint64(20)}

	got := address.FromFelts(udcCalldata(classHash, salt, constructor))

	assert.Equal(t, []string{"0xc1a55", "0x7", "0x1", "0x2", "0xa", "0x14"}, got)
}

func TestUDCCalldata_EmptyConstructor(t *testing.T) {
	got := address.FromFelts(udcCalldata(new(felt.Felt).SetUint64(1), new(felt.Felt).SetUint64(2), nil))

	assert.Equal(t, []string{"0x1", "0x2", "0x1", "0x0"}, got)
}

func TestUniqueDeploymentAddress_DependsOnDeployer(t *testing.T) {
	classHash := new(felt.Felt).SetUint64(0xc1a55)
	salt := new(felt.Felt).SetUint64(7)
	constructor := []*felt.Felt{new(felt.Felt).SetUint64(10)}

	udc := address.MustFelt(legacyUDC)

	first := uniqueDeploymentAddress(udc, new(felt.Felt).SetUint64(1), classHash, salt, constructor)
	again := uniqueDeploymentAddress(udc, new(felt.Felt).SetUint64(1), classHash, salt, constructor)
	other := uniqueDeploymentAddress(udc, new(felt.Felt).SetUint64(2), classHash, salt, constructor)
	otherUDC := uniqueDeploymentAddress(new(felt.Felt).SetUint64(0x0dc), new(felt.Felt).SetUint64(1), classHash, salt, constructor)

	assert.True(t, first.Equal(again))
	assert.False(t, first.Equal(other))
	assert.False(t, first.Equal(otherUDC))
}

func TestSelector(t *testing.T) {
	// sn_keccak("get_lst_address") is stable across runs and differs per entry point.
	assert.True(t, selector("get_lst_address").Equal(selector("get_lst_address")))
	assert.False(t, selector("get_lst_address").Equal(selector("get_delegators_address")))
}

func TestDeployedContracts(t *testing.T) {
	deployed := address.FromFelt(selector(udcDeployedEvent))
	transfer := address.FromFelt(selector("Transfer"))

	raw := fmt.Sprintf(`[
		{"from_address": "0x49d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7", "keys": [%[2]q], "data": ["0x1", "0x2"]},
		{"from_address": %[1]q, "keys": [%[3]q], "data": ["0xbeef", "0xacc", "0x1", "0x5747", "0x0", "0x7"]},
		{"from_address": %[1]q, "keys": [%[3]q, "0xcafe"], "data": ["0xacc"]},
		{"from_address": %[1]q, "keys": [%[2]q], "data": ["0xdead"]},
		{"from_address": "0x1234", "keys": [%[3]q], "data": ["0xf00"]}
	]`, legacyUDC, transfer, deployed)

	var events []rpc.Event
	require.NoError(t, json.Unmarshal([]byte(raw), &events))

	got := deployedContracts(address.MustFelt(legacyUDC), events)

	assert.Equal(t, []string{"0xbeef", "0xcafe"}, address.FromFelts(got))
}

func TestDeployedContracts_NoEvents(t *testing.T) {
	assert.Empty(t, deployedContracts(address.MustFelt(legacyUDC), nil))
}
