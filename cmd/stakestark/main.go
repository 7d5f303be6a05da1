package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stakestark/deployer/configs"
	"github.com/stakestark/deployer/internal/deploy"
	"github.com/stakestark/deployer/internal/logger"
)

const appName = "stakestark"

var (
	configFile string
	envFile    string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:           appName,
	Short:         "CLI for declaring and deploying the StakeStark liquid staking protocol on Starknet",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.InitializeWith(os.Stderr, slog.LevelInfo, logger.FormatJSON)

		if err := deploy.BindFlags(viper.GetViper(), cmd); err != nil {
			return err
		}

		cfg, err := configs.Load(viper.GetViper(), configFile, envFile)
		if err != nil {
			slog.With("err", err.Error()).Error("unable to load application config")
			return err
		}

		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		if logFormat != "" {
			cfg.Log.Format = logFormat
		}

		level, err := logger.ParseLevel(cfg.Log.Level)
		if err != nil {
			return err
		}
		logger.InitializeWith(os.Stderr, level, cfg.Log.Format)

		configs.Values = cfg
		slog.With("config", configs.Values).Debug("configuration loaded")

		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: config.yaml next to the binary, in . or ./configs)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Environment file to load (default: .env when present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (json or text)")

	rootCmd.AddCommand(deploy.CMD)
	rootCmd.AddCommand(deploy.DeclareCMD)
	rootCmd.AddCommand(deploy.ResolveCMD)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		slog.With("err", err.Error()).Error("failed to execute root command")
		os.Exit(1)
	}
}
