package deploy

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/stakestark/deployer/configs"
	"github.com/stakestark/deployer/internal/artifact"
	jsonfs "github.com/stakestark/deployer/internal/infra/filesystem/json"
	yamlfs "github.com/stakestark/deployer/internal/infra/filesystem/yaml"
	"github.com/stakestark/deployer/internal/starknet"
)

const protocolAddressFlag = "protocol-address"

var CMD = &cobra.Command{
	Use:   "deploy",
	Short: "Declare the StakeStark classes, deploy the protocol and record its addresses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		slog.Info("starting deploy command. Validating config", slog.Any("config", configs.Values))

		if err := configs.Values.Validate(); err != nil {
			return err
		}

		slog.Info("config validation successful. Starting deployment...")

		service, err := newService(configs.Values)
		if err != nil {
			return err
		}

		record, err := service.Deploy(cmd.Context(), configs.Values)
		if err != nil {
			return fmt.Errorf("deployment failed: %w", err)
		}

		return printJSON(cmd, record)
	},
}

var DeclareCMD = &cobra.Command{
	Use:   "declare",
	Short: "Declare the StakeStark classes without deploying",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := configs.Values.ValidateDeclare(); err != nil {
			return err
		}

		service, err := newService(configs.Values)
		if err != nil {
			return err
		}

		classHashes, err := service.Declare(cmd.Context(), configs.Values.Artifacts)
		if err != nil {
			return fmt.Errorf("declaration failed: %w", err)
		}

		return printJSON(cmd, classHashes)
	},
}

var ResolveCMD = &cobra.Command{
	Use:   "resolve",
	Short: "Query the token and delegator addresses of a deployed StakeStark contract",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := configs.Values.ValidateNetwork(); err != nil {
			return err
		}

		protocol, err := cmd.Flags().GetString(protocolAddressFlag)
		if err != nil {
			return err
		}

		service, err := newService(configs.Values)
		if err != nil {
			return err
		}

		contracts, err := service.Resolve(cmd.Context(), protocol)
		if err != nil {
			return fmt.Errorf("address resolution failed: %w", err)
		}

		return printJSON(cmd, contracts)
	},
}

func newService(cfg configs.Config) (*Service, error) {
	client, err := starknet.NewClient(cfg.Network, cfg.Account)
	if err != nil {
		return nil, fmt.Errorf("failed to create Starknet client: %w", err)
	}

	return NewService(
		client,
		artifact.NewLoader(jsonfs.NewReader()),
		NewPersister(jsonfs.NewWriter(), yamlfs.NewWriter()),
	), nil
}

func printJSON(cmd *cobra.Command, data any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
