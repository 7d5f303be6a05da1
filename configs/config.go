package configs

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/stakestark/deployer/internal/address"
)

var Values Config

type (
	ConstructorLayout string
	OutputFormat      string

	Config struct {
		Network   Network   `mapstructure:"network"`
		Account   Account   `mapstructure:"account"`
		Protocol  Protocol  `mapstructure:"protocol"`
		Artifacts Artifacts `mapstructure:"artifacts"`
		Output    Output    `mapstructure:"output"`
		Log       Log       `mapstructure:"log"`
	}

	Network struct {
		RPCURL              string            `mapstructure:"rpc-url"`
		Headers             map[string]string `mapstructure:"headers"`
		PollInterval        time.Duration     `mapstructure:"poll-interval"`
		ConfirmationTimeout time.Duration     `mapstructure:"confirmation-timeout"`
		FeeMultiplier       float64           `mapstructure:"fee-multiplier"`
		UDCAddress          string            `mapstructure:"udc-address"`
	}

	Account struct {
		Address    string `mapstructure:"address"`
		PrivateKey string `mapstructure:"private-key"`
	}

	Protocol struct {
		StrkToken               string            `mapstructure:"strk-token"`
		PoolContract            string            `mapstructure:"pool-contract"`
		FeeRecipient            string            `mapstructure:"fee-recipient"`
		Admin                   string            `mapstructure:"admin"`
		Operator                string            `mapstructure:"operator"`
		PlatformFeeBps          uint64            `mapstructure:"platform-fee-bps"`
		WithdrawalWindowSeconds uint64            `mapstructure:"withdrawal-window-seconds"`
		ConstructorLayout       ConstructorLayout `mapstructure:"constructor-layout"`
		InitialDelegatorCount   uint64            `mapstructure:"initial-delegator-count"`
	}

	Artifacts struct {
		LST       string `mapstructure:"lst"`
		Protocol  string `mapstructure:"protocol"`
		Delegator string `mapstructure:"delegator"`
	}

	Output struct {
		Path   string       `mapstructure:"path"`
		Format OutputFormat `mapstructure:"format"`
	}

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	}
)

const (
	// ConstructorLayoutBaseline is the nine argument StakeStark constructor.
	ConstructorLayoutBaseline ConstructorLayout = "baseline"
	// ConstructorLayoutDelegatorCount appends initial_delegator_count to the baseline layout.
	ConstructorLayoutDelegatorCount ConstructorLayout = "delegator-count"

	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"

	maxPlatformFeeBps = 10_000
)

// LogValue keeps secrets out of structured logs.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("rpc_url", c.Network.RPCURL),
		slog.Int("rpc_headers", len(c.Network.Headers)),
		slog.String("account", c.Account.Address),
		slog.Any("protocol", c.Protocol),
		slog.Any("artifacts", c.Artifacts),
		slog.Any("output", c.Output),
	)
}

// Validate reports every missing or malformed value at once.
func (c *Config) Validate() error {
	var errs []error

	errs = append(errs, c.Network.validate()...)
	errs = append(errs, c.Account.validate()...)
	errs = append(errs, c.Protocol.validate()...)
	errs = append(errs, c.Artifacts.validate()...)
	errs = append(errs, c.Output.validate()...)

	return joinValidation(errs)
}

// ValidateDeclare checks the sections a declaration-only run needs.
func (c *Config) ValidateDeclare() error {
	var errs []error

	errs = append(errs, c.Network.validate()...)
	errs = append(errs, c.Account.validate()...)
	errs = append(errs, c.Artifacts.validate()...)

	return joinValidation(errs)
}

// ValidateNetwork checks only what is needed to open an account session.
func (c *Config) ValidateNetwork() error {
	return joinValidation(append(c.Network.validate(), c.Account.validate()...))
}

func joinValidation(errs []error) error {
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}
	return nil
}

func (n Network) validate() []error {
	var errs []error

	if n.RPCURL == "" {
		errs = append(errs, errors.New("network.rpc-url (RPC_URL) is required"))
	}
	if n.PollInterval <= 0 {
		errs = append(errs, errors.New("network.poll-interval must be positive"))
	}
	if n.ConfirmationTimeout < 0 {
		errs = append(errs, errors.New("network.confirmation-timeout must not be negative"))
	}
	if n.FeeMultiplier < 1 {
		errs = append(errs, errors.New("network.fee-multiplier must be at least 1"))
	}
	errs = appendAddressErr(errs, "network.udc-address", n.UDCAddress)

	return errs
}

func (a Account) validate() []error {
	var errs []error

	errs = appendAddressErr(errs, "account.address (ACCOUNT_ADDRESS)", a.Address)
	if a.PrivateKey == "" {
		errs = append(errs, errors.New("account.private-key (PRIVATE_KEY) is required"))
	} else if _, err := address.Normalize(a.PrivateKey); err != nil {
		errs = append(errs, errors.New("account.private-key (PRIVATE_KEY) is not a valid field element"))
	}

	return errs
}

func (p Protocol) validate() []error {
	var errs []error

	errs = appendAddressErr(errs, "protocol.strk-token (STRK_TOKEN_ADDRESS)", p.StrkToken)
	errs = appendAddressErr(errs, "protocol.pool-contract (POOL_CONTRACT_ADDRESS)", p.PoolContract)
	errs = appendAddressErr(errs, "protocol.fee-recipient (PLATFORM_FEE_RECIPIENT)", p.FeeRecipient)
	errs = appendAddressErr(errs, "protocol.admin (ADMIN_ADDRESS)", p.Admin)
	errs = appendAddressErr(errs, "protocol.operator (OPERATOR_ADDRESS)", p.Operator)

	if p.PlatformFeeBps > maxPlatformFeeBps {
		errs = append(errs, fmt.Errorf("protocol.platform-fee-bps must not exceed %d", maxPlatformFeeBps))
	}
	if p.WithdrawalWindowSeconds == 0 {
		errs = append(errs, errors.New("protocol.withdrawal-window-seconds is required"))
	}

	switch p.ConstructorLayout {
	case ConstructorLayoutBaseline:
	case ConstructorLayoutDelegatorCount:
		if p.InitialDelegatorCount == 0 {
			errs = append(errs, errors.New("protocol.initial-delegator-count is required for the delegator-count layout"))
		}
	default:
		errs = append(errs, fmt.Errorf("protocol.constructor-layout must be either '%s' or '%s'", ConstructorLayoutBaseline, ConstructorLayoutDelegatorCount))
	}

	return errs
}

func (a Artifacts) validate() []error {
	var errs []error

	if a.LST == "" {
		errs = append(errs, errors.New("artifacts.lst is required"))
	}
	if a.Protocol == "" {
		errs = append(errs, errors.New("artifacts.protocol is required"))
	}
	if a.Delegator == "" {
		errs = append(errs, errors.New("artifacts.delegator is required"))
	}

	return errs
}

func (o Output) validate() []error {
	var errs []error

	if o.Path == "" {
		errs = append(errs, errors.New("output.path is required"))
	}
	if o.Format != OutputFormatJSON && o.Format != OutputFormatYAML {
		errs = append(errs, fmt.Errorf("output.format must be either '%s' or '%s'", OutputFormatJSON, OutputFormatYAML))
	}

	return errs
}

func appendAddressErr(errs []error, field, value string) []error {
	if value == "" {
		return append(errs, fmt.Errorf("%s is required", field))
	}
	if _, err := address.Normalize(value); err != nil {
		return append(errs, fmt.Errorf("%s: %w", field, err))
	}
	return errs
}
