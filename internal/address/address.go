// Package address encodes Starknet field elements (addresses, class hashes, transaction
// hashes) in one canonical form: 0x-prefixed lowercase hex without leading zeros.
package address

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
)

var (
	ErrEmpty      = errors.New("value is empty")
	ErrMalformed  = errors.New("value is neither decimal nor 0x-prefixed hex")
	ErrOutOfField = errors.New("value does not fit in the Starknet field")
)

// fieldPrime is P = 2^251 + 17*2^192 + 1.
var fieldPrime = func() *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), 251)
	p.Add(p, new(big.Int).Lsh(big.NewInt(17), 192))
	return p.Add(p, big.NewInt(1))
}()

// Parse accepts decimal or 0x-prefixed hex of any case.
func Parse(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmpty
	}
	// big.Int accepts a sign after the base prefix.
	if strings.ContainsAny(s, "+-") {
		return nil, fmt.Errorf("%w: %q", ErrMalformed, s)
	}

	value, ok := math.ParseBig256(s)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	if value.Cmp(fieldPrime) >= 0 {
		return nil, fmt.Errorf("%w: %q", ErrOutOfField, s)
	}

	return value, nil
}

// Normalize re-encodes s canonically. Normalizing a canonical value returns it unchanged.
func Normalize(s string) (string, error) {
	value, err := Parse(s)
	if err != nil {
		return "", err
	}
	return hexutil.EncodeBig(value), nil
}

// ToFelt parses s into a field element.
func ToFelt(s string) (*felt.Felt, error) {
	value, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return new(felt.Felt).SetBigInt(value), nil
}

// MustFelt is ToFelt for compile-time constants.
func MustFelt(s string) *felt.Felt {
	f, err := ToFelt(s)
	if err != nil {
		panic(err)
	}
	return f
}

// FromFelt encodes f canonically; a nil element encodes as the empty string.
func FromFelt(f *felt.Felt) string {
	if f == nil {
		return ""
	}
	return hexutil.EncodeBig(f.BigInt(new(big.Int)))
}

// FromFelts encodes every element of fs.
func FromFelts(fs []*felt.Felt) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, FromFelt(f))
	}
	return out
}
