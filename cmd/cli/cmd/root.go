// Package cmd provides the CLI commands for parking-fee.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"parking-fee/adapters/hcl"
	"parking-fee/core/schedule"
	"parking-fee/internal/config"
	"parking-fee/internal/logging"
)

// Version is the CLI version
const Version = "0.1.0"

var (
	cfgFile    string
	tablesPath string
	verbose    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "parking-fee",
	Short: "Price parking stays against tiered price tables",
	Long: `parking-fee computes the fee owed for a parking stay.

Price tables are read from HCL (.hcl) or HCL JSON (.json) files and combine a
grace period, a flat "until" charge, a recurring per-interval charge and a
maximum charge.

Examples:
  parking-fee tables --tables ./tables
  parking-fee quote --tables ./tables --table standard \
      --entry 2024-03-01T08:00:00Z --exit 2024-03-01T10:20:00Z
  parking-fee quote --table standard --entry 1709280000000 --exit 1709288400000 -f json`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.parking-fee.json)")
	rootCmd.PersistentFlags().StringVar(&tablesPath, "tables", "", "price table file or directory (overrides pricing.tables_path)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// loadTables reads the configured price tables into a registry
func loadTables(ctx context.Context) (*schedule.Registry, error) {
	cfg := config.Get()
	path := cfg.Pricing.TablesPath
	if tablesPath != "" {
		path = tablesPath
	}

	registry := schedule.NewRegistry()
	loader := hcl.NewLoader(hcl.WithStrictDurations(cfg.Pricing.StrictDurations))
	if err := loader.LoadInto(ctx, path, registry); err != nil {
		return nil, err
	}
	return registry, nil
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "parking-fee version %s\n", Version)
	},
}

// configCmd manages configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(config.Get(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write a default configuration file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Default().Save(args[0]); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[0])
		return nil
	},
}
