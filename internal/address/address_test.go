package address

import (
	"testing"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "canonical hex", input: "0x4718f5a0fc34cc1af16a1cdee98ffb20c31f5cd61d6ab07201858f4287c938d", expected: "0x4718f5a0fc34cc1af16a1cdee98ffb20c31f5cd61d6ab07201858f4287c938d"},
		{name: "uppercase hex", input: "0xABCDEF", expected: "0xabcdef"},
		{name: "uppercase prefix", input: "0X1f", expected: "0x1f"},
		{name: "leading zeros", input: "0x0000000000000000000000000000000000000000000000000000000000000abc", expected: "0xabc"},
		{name: "decimal", input: "2748", expected: "0xabc"},
		{name: "zero", input: "0", expected: "0x0"},
		{name: "surrounding whitespace", input: "  0x12 ", expected: "0x12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"0xabc", "2748", "0x00ABC", "0x7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff0"}
	for _, input := range inputs {
		once, err := Normalize(input)
		require.NoError(t, err)

		twice, err := Normalize(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice, input)
	}
}

func TestNormalize_DecimalAndHexAgree(t *testing.T) {
	fromHex, err := Normalize("0x49d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7")
	require.NoError(t, err)

	fromDecimal, err := Normalize("2087021424722619777119509474943472645767659996348769578120564519014510906823")
	require.NoError(t, err)

	assert.Equal(t, fromHex, fromDecimal)
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
	}{
		{name: "empty", input: "", target: ErrEmpty},
		{name: "blank", input: "   ", target: ErrEmpty},
		{name: "garbage", input: "not-an-address", target: ErrMalformed},
		{name: "bad hex digit", input: "0xzz", target: ErrMalformed},
		{name: "negative", input: "-5", target: ErrMalformed},
		{name: "negative hex", input: "0x-5", target: ErrMalformed},
		{name: "plus sign", input: "+5", target: ErrMalformed},
		{name: "plus sign after prefix", input: "0x+5", target: ErrMalformed},
		{name: "field prime", input: "0x800000000000011000000000000000000000000000000000000000000000001", target: ErrOutOfField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.input)
			require.ErrorIs(t, err, tt.target)
		})
	}
}

func TestFeltRoundTrip(t *testing.T) {
	f, err := ToFelt("1234")
	require.NoError(t, err)

	assert.Equal(t, "0x4d2", FromFelt(f))
	assert.Equal(t, "0x4d2", FromFelt(new(felt.Felt).SetUint64(1234)))
	assert.Empty(t, FromFelt(nil))
	assert.Equal(t, []string{"0x1", "0x0"}, FromFelts([]*felt.Felt{new(felt.Felt).SetUint64(1), new(felt.Felt)}))
}
