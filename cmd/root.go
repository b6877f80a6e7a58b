package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/uicontracts/uic/internal/config"
	"github.com/uicontracts/uic/internal/logging"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var (
	cfgFile string
	verbose bool
	quiet   bool

	log zerolog.Logger

	// cfg holds whatever uic.config.{json,yaml,toml} (or UIC_-prefixed env
	// vars) supplied; subcommands fall back to it for any flag the caller
	// didn't explicitly set.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:     "uic",
	Short:   "Machine-readable inventory of a UI's interactive surface",
	Version: version,
	// PersistentPreRunE executes before any subcommand; we use it to load
	// config/env and stand up the structured logger.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log = logging.New(verbose, quiet)

		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath(".")
			viper.SetConfigName("uic.config")
		}

		viper.SetEnvPrefix("UIC")
		viper.AutomaticEnv()

		if err := viper.ReadInConfig(); err == nil {
			log.Debug().Str("file", viper.ConfigFileUsed()).Msg("using config file")
		}
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("parse config: %w", err)
		}
		return nil
	},
}

// Execute is called from main.go and starts the CLI.
func Execute() {
	rootCmd.SetVersionTemplate("uic {{.Version}}\n")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./uic.config.{json,yaml,toml})")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging with timestamps")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "raise log level to error only")
}
