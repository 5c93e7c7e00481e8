package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/KostasZigo/gogit-odb/internal/config"
	"github.com/KostasZigo/gogit-odb/internal/objects"
	"github.com/KostasZigo/gogit-odb/internal/repository"
	"github.com/spf13/cobra"
)

// rootCmd defines the base command for the gogit CLI.
// All subcommands (init, hash-object, cat-file) register under this root.
// Uses cobra for command parsing, flag handling, and help generation.
var rootCmd = &cobra.Command{
	Use:   "gogit",
	Short: "A simplified Git object database in GO",
	Long: `GoGit is a simplified Git Implementation developed in GO that stores file content
	as content-addressed, zlib compressed blob objects: init, hash-object and cat-file.`,
	PersistentPreRunE: loadConfig,
}

var (
	cfgFile  string
	logLevel string

	// appConfig is replaced by loadConfig; commands run without the root
	// (as in tests) see the defaults.
	appConfig = config.Default()
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./gogit.yaml or $HOME/.config/gogit/gogit.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// loadConfig reads configuration and installs the stderr logger.
func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger, err := config.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	if cfg.File != "" {
		slog.Debug("Using config file", "path", cfg.File)
	}

	appConfig = cfg
	return nil
}

// openObjectStore locates the store directory from the working directory upwards.
func openObjectStore() (*objects.ObjectStore, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	storeDir, err := repository.FindRepository(dir, appConfig.StoreDir)
	if err != nil {
		return nil, err
	}

	return objects.NewObjectStore(storeDir, objects.WithCompressionLevel(appConfig.CompressionLevel)), nil
}

// exactArgs validates command receives exactly n positional arguments.
// enables usage printing in case of error
func exactArgs(n int, what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			cmd.SilenceUsage = false
			return fmt.Errorf("%s command requires exactly %d argument (%s), received %d", cmd.Name(), n, what, len(args))
		}
		return nil
	}
}

// Execute runs the root command and handles exit codes.
// Called from main.go to start CLI execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
