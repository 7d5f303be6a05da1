package configs

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

var (
	//go:embed config.example.yaml
	defaultConfigYAML string

	defaultConfigOnce sync.Once
	defaultConfig     Config
	defaultConfigErr  error
)

// envBindings maps config keys to the environment variables the deployment has always used.
var envBindings = map[string]string{
	"network.rpc-url":        "RPC_URL",
	"account.address":        "ACCOUNT_ADDRESS",
	"account.private-key":    "PRIVATE_KEY",
	"protocol.strk-token":    "STRK_TOKEN_ADDRESS",
	"protocol.pool-contract": "POOL_CONTRACT_ADDRESS",
	"protocol.fee-recipient": "PLATFORM_FEE_RECIPIENT",
	"protocol.admin":         "ADMIN_ADDRESS",
	"protocol.operator":      "OPERATOR_ADDRESS",
}

// DefaultConfig returns the parsed configuration from the embedded config.example.yaml.
func DefaultConfig() (Config, error) {
	defaultConfigOnce.Do(func() {
		v := viper.New()
		if err := ReadDefaults(v); err != nil {
			defaultConfigErr = err
			return
		}

		if err := v.Unmarshal(&defaultConfig); err != nil {
			defaultConfigErr = fmt.Errorf("failed to decode embedded config.example.yaml: %w", err)
			return
		}
	})

	if defaultConfigErr != nil {
		return Config{}, defaultConfigErr
	}

	return defaultConfig, nil
}

// ReadDefaults seeds v with the embedded defaults and binds the deployment environment variables.
func ReadDefaults(v *viper.Viper) error {
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(defaultConfigYAML)); err != nil {
		return fmt.Errorf("failed to read embedded config.example.yaml: %w", err)
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("failed to bind %s to %s: %w", env, key, err)
		}
	}

	return nil
}
