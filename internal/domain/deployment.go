package domain

import (
	"errors"
	"time"

	"github.com/NethermindEth/juno/core/felt"
)

// ErrTransactionReverted is reported when a transaction is included but its execution reverted.
var ErrTransactionReverted = errors.New("transaction reverted")

type (
	// Declaration is the outcome of a declare-if-not-declared request.
	// TransactionHash is nil when the class was already declared.
	Declaration struct {
		ClassHash       *felt.Felt
		TransactionHash *felt.Felt
	}

	// Deployment is a submitted, not yet confirmed, contract deployment.
	Deployment struct {
		ContractAddress *felt.Felt
		TransactionHash *felt.Felt
		Salt            *felt.Felt
	}

	// Confirmation is an accepted, non-reverted transaction. DeployedContracts lists the
	// addresses announced by Universal Deployer ContractDeployed events in its receipt.
	Confirmation struct {
		TransactionHash   *felt.Felt
		DeployedContracts []*felt.Felt
	}

	// ProtocolAddresses are the contracts created by the protocol constructor.
	ProtocolAddresses struct {
		LST        *felt.Felt
		Delegators []*felt.Felt
	}
)

// NewlyDeclared reports whether the declaration submitted a transaction.
func (d Declaration) NewlyDeclared() bool {
	return d.TransactionHash != nil && !d.TransactionHash.IsZero()
}

// Record is the persisted outcome of one deployment run. Every value is canonical hex.
type (
	Record struct {
		DeploymentID      string       `json:"deploymentId" yaml:"deployment-id"`
		DeployedAt        time.Time    `json:"deployedAt" yaml:"deployed-at"`
		Account           string       `json:"account" yaml:"account"`
		ConstructorLayout string       `json:"constructorLayout" yaml:"constructor-layout"`
		ClassHashes       ClassHashes  `json:"classHashes" yaml:"class-hashes"`
		Contracts         Contracts    `json:"contracts" yaml:"contracts"`
		Transactions      Transactions `json:"transactions" yaml:"transactions"`
	}

	ClassHashes struct {
		LST       string `json:"stSTRK" yaml:"stSTRK"`
		Protocol  string `json:"stakeStark" yaml:"stake-stark"`
		Delegator string `json:"delegator" yaml:"delegator"`
	}

	Contracts struct {
		Protocol   string   `json:"stakeStark" yaml:"stake-stark"`
		LST        string   `json:"stSTRK" yaml:"stSTRK"`
		Delegators []string `json:"delegators" yaml:"delegators"`
	}

	Transactions struct {
		Declarations map[string]string `json:"declarations,omitempty" yaml:"declarations,omitempty"`
		Deploy       string            `json:"deploy" yaml:"deploy"`
		Salt         string            `json:"salt" yaml:"salt"`
	}
)
