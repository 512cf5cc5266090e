// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the elastic-tutorial CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/elastic-tutorial/internal/dataset"
	"github.com/pdiddy/elastic-tutorial/internal/export"
	"github.com/pdiddy/elastic-tutorial/internal/logging"
	"github.com/pdiddy/elastic-tutorial/internal/secrets"
	"github.com/pdiddy/elastic-tutorial/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const defaultTimeout = 5 * time.Minute

var (
	// loadedSecrets holds credentials loaded from the secrets directory at startup.
	loadedSecrets secrets.Secrets

	// logger is built from the log.* settings before any subcommand runs.
	logger = zap.NewNop()
)

// newRootCmd builds the elastic-tutorial command tree. Each call returns
// fresh commands and flags bound to the global viper instance.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "elastic-tutorial",
		Short: "Load the elastic tensor tutorial dataset",
		Long: `elastic-tutorial fetches the public elastic tensor dataset, drops the
raw tensor and Voigt/Reuss columns, renames the VRH moduli to bulk_modulus
and shear_modulus, rounds to one decimal, and keys rows by material_id.

The dataset can come from its public URL, a local .json/.json.gz file, or an
S3 mirror. Settings are read from elastic-tutorial.yaml, ELASTIC_TUTORIAL_*
environment variables, and flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initConfig(cmd.Root())
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			l, err := logging.New(cfg.Log, os.Stderr)
			if err != nil {
				return err
			}
			logger = l

			dir, _ := cmd.Flags().GetString("secrets-dir")
			s, err := secrets.Load(dir, logger)
			if err != nil {
				return err
			}
			loadedSecrets = s
			if len(s) > 0 {
				logger.Debug("loaded secrets", zap.Strings("keys", s.Keys()))
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default: ./elastic-tutorial.yaml or ~/.config/elastic-tutorial/config.yaml)")
	pf.String("secrets-dir", ".secrets/", "directory of credential files")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.Bool("verbose", false, "human-readable debug logging")

	viper.BindPFlag("log.level", pf.Lookup("log-level"))
	viper.BindPFlag("log.development", pf.Lookup("verbose"))
	setDefaults()

	root.AddCommand(newLoadCmd(), newAnalyzeCmd(), newVersionCmd())
	return root
}

func setDefaults() {
	viper.SetDefault("dataset.source", string(types.SourceURL))
	viper.SetDefault("dataset.url", dataset.DefaultURL)
	viper.SetDefault("dataset.timeout", defaultTimeout)
	viper.SetDefault("dataset.user_agent", dataset.DefaultUserAgent)
	viper.SetDefault("export.format", string(types.FormatTable))
	viper.SetDefault("export.sqlite_table", export.DefaultTable)
	viper.SetDefault("log.level", "info")

	// Empty defaults make these keys visible to AutomaticEnv during Unmarshal.
	for _, key := range []string{
		"dataset.path", "dataset.sha256",
		"dataset.s3.bucket", "dataset.s3.key", "dataset.s3.region", "dataset.s3.endpoint",
		"export.sqlite_path", "metrics_file",
	} {
		viper.SetDefault(key, "")
	}
	viper.SetDefault("dataset.s3.use_path_style", false)
}

func initConfig(root *cobra.Command) {
	cfgFile, _ := root.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("elastic-tutorial")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "elastic-tutorial"))
		}
	}

	viper.SetEnvPrefix("ELASTIC_TUTORIAL")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the effective configuration from defaults, file,
// environment and bound flags.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	if cfg.Log.Development && cfg.Log.Level == "info" {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
