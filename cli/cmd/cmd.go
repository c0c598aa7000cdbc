package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	rates "github.com/malusev998/privatbank-rates"
)

const EnvPrefix = "PRIVATBANK_RATES"

type (
	Config struct {
		Ctx               context.Context
		DefaultCurrencies []string
		MaxDays           int
		// NewService is called only after the arguments were accepted, so
		// invalid input never opens a connection. The returned func releases
		// whatever the service holds.
		NewService func(ctx context.Context) (rates.Service, func(), error)
		debug      bool
		configFile string
	}
)

func initConfig(cmd *cobra.Command, configFile string) error {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configFile == "" {
		return nil
	}

	absolutePath, err := filepath.Abs(configFile)
	if err != nil {
		return err
	}

	// ./config.yml is optional, an explicit --config is not
	if _, err := os.Stat(absolutePath); errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config") {
		return nil
	}

	viper.SetConfigFile(absolutePath)

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error while reading in the config file: %w", err)
	}

	return nil
}

func initLogger(cmd *cobra.Command, debug bool) {
	logrus.SetOutput(cmd.ErrOrStderr())

	level, err := logrus.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		level = logrus.InfoLevel
	}

	if debug {
		level = logrus.DebugLevel
	}

	logrus.SetLevel(level)
}

func NewRootCommand(config *Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "privatbank-rates DAYS [ADDITIONAL_CURRENCY]",
		Short:         "PrivatBank historical exchange rate fetcher",
		Version:       "v1.0.0",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(cmd, config.configFile); err != nil {
				return err
			}

			initLogger(cmd, config.debug)

			return nil
		},
		RunE: runRates(config),
	}

	rootCmd.PersistentFlags().BoolVar(&config.debug, "debug", false, "Debug flag")
	rootCmd.PersistentFlags().StringVar(&config.configFile, "config", "./config.yml", "Path to config file")

	return rootCmd
}

func Execute(config *Config) error {
	return NewRootCommand(config).Execute()
}
