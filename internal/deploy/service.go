package deploy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/google/uuid"
	"github.com/stakestark/deployer/configs"
	"github.com/stakestark/deployer/internal/address"
	"github.com/stakestark/deployer/internal/artifact"
	"github.com/stakestark/deployer/internal/domain"
	"github.com/stakestark/deployer/internal/logger"
)

const (
	ContractNameLST       = "stSTRK"
	ContractNameProtocol  = "StakeStark"
	ContractNameDelegator = "Delegator"
)

type (
	// Service runs the deployment workflow. Every step waits for the previous one.
	Service struct {
		network   network
		loader    artifactLoader
		persister recordPersister
		declarer  *Declarer
		deployer  *Deployer
		resolver  *Resolver
		newID     func() uuid.UUID
		now       func() time.Time
		logger    *slog.Logger
	}

	contractSet struct {
		lst       artifact.Contract
		protocol  artifact.Contract
		delegator artifact.Contract
	}

	declarations struct {
		lst       domain.Declaration
		protocol  domain.Declaration
		delegator domain.Declaration
	}
)

// NewService creates a new deployment service
func NewService(network network, loader artifactLoader, persister recordPersister) *Service {
	return &Service{
		network:   network,
		loader:    loader,
		persister: persister,
		declarer:  NewDeclarer(network),
		deployer:  NewDeployer(network),
		resolver:  NewResolver(network),
		newID:     uuid.New,
		now:       time.Now,
		logger:    logger.Named("deploy_service"),
	}
}

// Deploy declares the three classes, deploys the protocol, resolves the contracts it created
// and persists the record. Nothing is written unless every step succeeded.
func (s *Service) Deploy(ctx context.Context, cfg configs.Config) (domain.Record, error) {
	s.logger.Info("starting protocol deployment")

	params, err := ParamsFromConfig(cfg.Protocol)
	if err != nil {
		return domain.Record{}, err
	}

	contracts, err := s.loadContracts(cfg.Artifacts)
	if err != nil {
		return domain.Record{}, err
	}

	if err := checkProtocolABI(contracts.protocol, params.Layout); err != nil {
		return domain.Record{}, err
	}

	s.logger.Info("running phase 1 - class declarations")
	declared, err := s.declareAll(ctx, contracts)
	if err != nil {
		return domain.Record{}, err
	}

	calldata, err := params.Calldata(declared.delegator.ClassHash, declared.lst.ClassHash)
	if err != nil {
		return domain.Record{}, err
	}

	deploymentID := s.newID()
	salt := new(felt.Felt).SetBytes(deploymentID[:])

	s.logger.Info("running phase 2 - protocol deployment", "deployment_id", deploymentID.String())
	deployment, err := s.deployer.Deploy(ctx, declared.protocol.ClassHash, calldata, salt)
	if err != nil {
		return domain.Record{}, err
	}

	s.logger.Info("running phase 3 - address resolution")
	addresses, err := s.resolver.Resolve(ctx, deployment.ContractAddress)
	if err != nil {
		return domain.Record{}, err
	}

	record := domain.Record{
		DeploymentID:      deploymentID.String(),
		DeployedAt:        s.now().UTC(),
		Account:           address.FromFelt(s.network.AccountAddress()),
		ConstructorLayout: string(params.Layout),
		ClassHashes:       declared.classHashes(),
		Contracts: domain.Contracts{
			Protocol:   address.FromFelt(deployment.ContractAddress),
			LST:        address.FromFelt(addresses.LST),
			Delegators: address.FromFelts(addresses.Delegators),
		},
		Transactions: domain.Transactions{
			Declarations: declared.transactions(),
			Deploy:       address.FromFelt(deployment.TransactionHash),
			Salt:         address.FromFelt(salt),
		},
	}

	if err := s.persister.Persist(cfg.Output, record); err != nil {
		return domain.Record{}, err
	}

	s.logger.
		With("protocol", record.Contracts.Protocol).
		With("lst", record.Contracts.LST).
		With("delegators", len(record.Contracts.Delegators)).
		Info("protocol deployment completed successfully")

	return record, nil
}

// Declare declares the three classes without deploying anything.
func (s *Service) Declare(ctx context.Context, artifacts configs.Artifacts) (domain.ClassHashes, error) {
	contracts, err := s.loadContracts(artifacts)
	if err != nil {
		return domain.ClassHashes{}, err
	}

	declared, err := s.declareAll(ctx, contracts)
	if err != nil {
		return domain.ClassHashes{}, err
	}

	return declared.classHashes(), nil
}

// Resolve reads the token and delegator addresses of an already deployed protocol contract.
func (s *Service) Resolve(ctx context.Context, protocol string) (domain.Contracts, error) {
	protocolAddress, err := address.ToFelt(protocol)
	if err != nil {
		return domain.Contracts{}, fmt.Errorf("%w: protocol address: %w", ErrInvalidConfig, err)
	}

	addresses, err := s.resolver.Resolve(ctx, protocolAddress)
	if err != nil {
		return domain.Contracts{}, err
	}

	return domain.Contracts{
		Protocol:   address.FromFelt(protocolAddress),
		LST:        address.FromFelt(addresses.LST),
		Delegators: address.FromFelts(addresses.Delegators),
	}, nil
}

func (s *Service) loadContracts(artifacts configs.Artifacts) (contractSet, error) {
	var set contractSet

	for _, item := range []struct {
		name   string
		path   string
		target *artifact.Contract
	}{
		{ContractNameLST, artifacts.LST, &set.lst},
		{ContractNameProtocol, artifacts.Protocol, &set.protocol},
		{ContractNameDelegator, artifacts.Delegator, &set.delegator},
	} {
		contract, err := s.loader.Load(item.name, item.path)
		if err != nil {
			return contractSet{}, fmt.Errorf("%w: %s: %w", ErrArtifact, item.name, err)
		}
		*item.target = contract
	}

	return set, nil
}

func (s *Service) declareAll(ctx context.Context, contracts contractSet) (declarations, error) {
	var declared declarations

	for _, item := range []struct {
		contract artifact.Contract
		target   *domain.Declaration
	}{
		{contracts.lst, &declared.lst},
		{contracts.protocol, &declared.protocol},
		{contracts.delegator, &declared.delegator},
	} {
		declaration, err := s.declarer.Declare(ctx, item.contract)
		if err != nil {
			return declarations{}, err
		}
		*item.target = declaration
	}

	return declared, nil
}

func (d declarations) classHashes() domain.ClassHashes {
	return domain.ClassHashes{
		LST:       address.FromFelt(d.lst.ClassHash),
		Protocol:  address.FromFelt(d.protocol.ClassHash),
		Delegator: address.FromFelt(d.delegator.ClassHash),
	}
}

func (d declarations) transactions() map[string]string {
	txs := make(map[string]string)
	for name, declaration := range map[string]domain.Declaration{
		ContractNameLST:       d.lst,
		ContractNameProtocol:  d.protocol,
		ContractNameDelegator: d.delegator,
	} {
		if declaration.NewlyDeclared() {
			txs[name] = address.FromFelt(declaration.TransactionHash)
		}
	}
	if len(txs) == 0 {
		return nil
	}
	return txs
}
