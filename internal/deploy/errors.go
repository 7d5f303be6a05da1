package deploy

import "errors"

// Sentinel errors - Inputs
var (
	ErrInvalidConfig       = errors.New("deploy: invalid configuration")
	ErrArtifact            = errors.New("deploy: contract artifact unusable")
	ErrConstructorMismatch = errors.New("deploy: constructor arguments do not match the contract")
)

// Sentinel errors - Network
var (
	ErrSubmission   = errors.New("deploy: transaction submission failed")
	ErrConfirmation = errors.New("deploy: transaction confirmation failed")
	ErrQuery        = errors.New("deploy: contract query failed")

	ErrDeployedAddressMismatch = errors.New("deploy: deployed address is ambiguous")
)

// Sentinel errors - Output
var (
	ErrPersist = errors.New("deploy: failed to persist deployment record")
)
