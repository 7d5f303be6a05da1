package deploy

import (
	"context"
	"errors"
	"testing"

	"github.com/stakestark/deployer/internal/address"
	"github.com/stakestark/deployer/internal/artifact"
	"github.com/stakestark/deployer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclarer_AlreadyDeclared(t *testing.T) {
	network := newFakeNetwork()
	network.declared[ContractNameLST] = true

	declaration, err := NewDeclarer(network).Declare(context.Background(), artifact.Contract{Name: ContractNameLST})
	require.NoError(t, err)

	assert.Equal(t, "0x1571", address.FromFelt(declaration.ClassHash))
	assert.False(t, declaration.NewlyDeclared())
	assert.Equal(t, []string{"declare:stSTRK"}, network.calls)
}

func TestDeclarer_NewlyDeclaredWaitsOnce(t *testing.T) {
	network := newFakeNetwork()

	declaration, err := NewDeclarer(network).Declare(context.Background(), artifact.Contract{Name: ContractNameDelegator})
	require.NoError(t, err)

	assert.True(t, declaration.NewlyDeclared())
	assert.Equal(t, []string{"declare:Delegator", "wait:" + address.FromFelt(declareTx(ContractNameDelegator))}, network.calls)
}

func TestDeclarer_Errors(t *testing.T) {
	t.Run("submission", func(t *testing.T) {
		network := newFakeNetwork()
		network.declareErr = errors.New("insufficient funds")

		_, err := NewDeclarer(network).Declare(context.Background(), artifact.Contract{Name: ContractNameProtocol})
		require.ErrorIs(t, err, ErrSubmission)
		require.ErrorContains(t, err, "insufficient funds")
		assert.Zero(t, network.count("wait:"))
	})

	t.Run("confirmation", func(t *testing.T) {
		network := newFakeNetwork()
		network.waitErr[address.FromFelt(declareTx(ContractNameProtocol))] = domain.ErrTransactionReverted

		_, err := NewDeclarer(network).Declare(context.Background(), artifact.Contract{Name: ContractNameProtocol})
		require.ErrorIs(t, err, ErrConfirmation)
		require.ErrorIs(t, err, domain.ErrTransactionReverted)
	})
}
