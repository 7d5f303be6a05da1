package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultEnvFile = ".env"

// Load layers the embedded defaults, an optional config file and the environment into v and
// decodes the result. Flags bound to v take precedence over all of them.
func Load(v *viper.Viper, configFile, envFile string) (Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	if err := ReadDefaults(v); err != nil {
		return Config{}, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		if execPath, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Dir(execPath))
		}
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
		slog.Debug("no config file found, relying on defaults, environment and flags")
	} else {
		slog.With("config_file", v.ConfigFileUsed()).Debug("config file loaded")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode application config: %w", err)
	}

	return cfg, nil
}

// loadEnvFile never overrides variables already present in the process environment.
func loadEnvFile(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
		return nil
	}

	if err := godotenv.Load(defaultEnvFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", defaultEnvFile, err)
	}

	slog.Debug("environment loaded from file", "file", defaultEnvFile)

	return nil
}
