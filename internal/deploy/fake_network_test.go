package deploy

import (
	"context"
	"fmt"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/stakestark/deployer/internal/address"
	"github.com/stakestark/deployer/internal/artifact"
	"github.com/stakestark/deployer/internal/domain"
)

// fakeNetwork records every network operation in the order it was issued.
type fakeNetwork struct {
	calls []string

	declared   map[string]bool
	classHash  map[string]*felt.Felt
	declareErr error

	deployErr      error
	deployedAt     *felt.Felt
	deployCalldata []*felt.Felt
	deploySalt     *felt.Felt

	waitErr        map[string]error
	deployedEvents []*felt.Felt

	callResults map[string][]*felt.Felt
	callErr     error
}

func newFakeNetwork() *fakeNetwork {
	return &fakeNetwork{
		declared: map[string]bool{},
		classHash: map[string]*felt.Felt{
			ContractNameLST:       feltOf(0x1571),
			ContractNameProtocol:  feltOf(0x5747),
			ContractNameDelegator: feltOf(0xde1e),
		},
		deployedAt:     feltOf(0xbeef),
		waitErr:        map[string]error{},
		deployedEvents: []*felt.Felt{feltOf(0xbeef)},
		callResults: map[string][]*felt.Felt{
			functionLSTAddress:         {feltOf(0xa11)},
			functionDelegatorAddresses: {feltOf(2), feltOf(0xd1), feltOf(0xd2)},
		},
	}
}

func feltOf(v uint64) *felt.Felt {
	return new(felt.Felt).SetUint64(v)
}

func declareTx(name string) *felt.Felt {
	return new(felt.Felt).SetBytes([]byte("declare-" + name))
}

var deployTx = new(felt.Felt).SetBytes([]byte("deploy"))

func (f *fakeNetwork) DeclareIfNot(_ context.Context, contract artifact.Contract) (domain.Declaration, error) {
	f.calls = append(f.calls, "declare:"+contract.Name)
	if f.declareErr != nil {
		return domain.Declaration{}, f.declareErr
	}
	if f.declared[contract.Name] {
		return domain.Declaration{ClassHash: f.classHash[contract.Name]}, nil
	}
	return domain.Declaration{ClassHash: f.classHash[contract.Name], TransactionHash: declareTx(contract.Name)}, nil
}

func (f *fakeNetwork) Deploy(_ context.Context, classHash *felt.Felt, calldata []*felt.Felt, salt *felt.Felt) (domain.Deployment, error) {
	f.calls = append(f.calls, "deploy:"+address.FromFelt(classHash))
	if f.deployErr != nil {
		return domain.Deployment{}, f.deployErr
	}
	f.deployCalldata = calldata
	f.deploySalt = salt
	return domain.Deployment{ContractAddress: f.deployedAt, TransactionHash: deployTx, Salt: salt}, nil
}

func (f *fakeNetwork) WaitForTransaction(_ context.Context, txHash *felt.Felt) (domain.Confirmation, error) {
	key := address.FromFelt(txHash)
	f.calls = append(f.calls, "wait:"+key)
	if err := f.waitErr[key]; err != nil {
		return domain.Confirmation{}, err
	}

	confirmation := domain.Confirmation{TransactionHash: txHash}
	if txHash.Equal(deployTx) {
		confirmation.DeployedContracts = f.deployedEvents
	}
	return confirmation, nil
}

func (f *fakeNetwork) Call(_ context.Context, contract *felt.Felt, function string, _ ...*felt.Felt) ([]*felt.Felt, error) {
	f.calls = append(f.calls, "call:"+function)
	if f.callErr != nil {
		return nil, f.callErr
	}
	result, ok := f.callResults[function]
	if !ok {
		return nil, fmt.Errorf("entry point %s not found on %s", function, address.FromFelt(contract))
	}
	return result, nil
}

func (f *fakeNetwork) AccountAddress() *felt.Felt {
	return feltOf(0xacc)
}

func (f *fakeNetwork) count(prefix string) int {
	n := 0
	for _, call := range f.calls {
		if len(call) >= len(prefix) && call[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}
