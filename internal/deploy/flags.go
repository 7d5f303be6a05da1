package deploy

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const viperKeyAnnotation = "viper-key"

// flagDef defines a command-line flag with its configuration.
type (
	flagType interface {
		string | uint64 | bool
	}

	flagDef[T flagType] struct {
		name         string
		viperKey     string
		defaultValue T
		description  string
	}
)

// Defaults live in configs/config.example.yaml; an unchanged flag never overrides them.
var (
	networkFlags = []flagDef[string]{
		{"rpc-url", "network.rpc-url", "", "Starknet RPC URL (env RPC_URL)"},
		{"poll-interval", "network.poll-interval", "", "Interval between receipt polls, e.g. 5s"},
		{"confirmation-timeout", "network.confirmation-timeout", "", "Give up waiting for a confirmation after this long (0 waits forever)"},
	}

	artifactFlags = []flagDef[string]{
		{"lst-artifact", "artifacts.lst", "", "stSTRK contract class path"},
		{"protocol-artifact", "artifacts.protocol", "", "StakeStark contract class path"},
		{"delegator-artifact", "artifacts.delegator", "", "Delegator contract class path"},
	}

	protocolStringFlags = []flagDef[string]{
		{"constructor-layout", "protocol.constructor-layout", "", "StakeStark constructor layout (baseline or delegator-count)"},
		{"output", "output.path", "", "Deployment record path"},
		{"output-format", "output.format", "", "Deployment record format (json or yaml)"},
	}

	protocolUintFlags = []flagDef[uint64]{
		{"platform-fee-bps", "protocol.platform-fee-bps", 0, "Initial platform fee in basis points"},
		{"withdrawal-window-seconds", "protocol.withdrawal-window-seconds", 0, "Initial withdrawal window in seconds"},
		{"initial-delegator-count", "protocol.initial-delegator-count", 0, "Delegators created by the constructor (delegator-count layout)"},
	}
)

func init() {
	for _, cmd := range []*cobra.Command{CMD, DeclareCMD, ResolveCMD} {
		if err := declareFlags(cmd, networkFlags); err != nil {
			panic(err)
		}
	}
	for _, cmd := range []*cobra.Command{CMD, DeclareCMD} {
		if err := declareFlags(cmd, artifactFlags); err != nil {
			panic(err)
		}
	}
	if err := declareFlags(CMD, protocolStringFlags); err != nil {
		panic(err)
	}
	if err := declareFlags(CMD, protocolUintFlags); err != nil {
		panic(err)
	}

	ResolveCMD.Flags().String(protocolAddressFlag, "", "Address of a deployed StakeStark contract")
	if err := ResolveCMD.MarkFlagRequired(protocolAddressFlag); err != nil {
		panic(err)
	}
}

// declareFlags declares multiple flags and records the configuration key each one overrides.
func declareFlags[T flagType](cmd *cobra.Command, flags []flagDef[T]) error {
	for _, flag := range flags {
		if err := declareFlag(cmd, flag.name, flag.viperKey, flag.defaultValue, flag.description); err != nil {
			return err
		}
	}
	return nil
}

// declareFlag declares a single flag annotated with its viper configuration key.
// The type parameter T determines the flag type (string, uint64, or bool).
func declareFlag[T flagType](cmd *cobra.Command, flagName, viperKey string, defaultValue T, description string) error {
	var zero T
	switch any(zero).(type) {
	case string:
		cmd.Flags().String(flagName, any(defaultValue).(string), description)
	case uint64:
		cmd.Flags().Uint64(flagName, any(defaultValue).(uint64), description)
	case bool:
		cmd.Flags().Bool(flagName, any(defaultValue).(bool), description)
	}
	return cmd.Flags().SetAnnotation(flagName, viperKeyAnnotation, []string{viperKey})
}

// BindFlags binds the annotated flags of the command being executed to v. Binding happens per
// execution because several commands share configuration keys.
func BindFlags(v *viper.Viper, cmd *cobra.Command) error {
	var bindErr error
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		keys, ok := flag.Annotations[viperKeyAnnotation]
		if !ok || len(keys) == 0 || bindErr != nil {
			return
		}
		if err := v.BindPFlag(keys[0], flag); err != nil {
			bindErr = fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
		}
	})
	return bindErr
}
