// Package main provides the lorenz CLI: merging, reversing, converting and
// querying JVM obfuscation mappings.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/CadixDev/Lorenz-sub001/internal/config"
	"github.com/CadixDev/Lorenz-sub001/internal/logging"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the state shared by every command.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg *config.Config
	log *slog.Logger

	stdout io.Writer
	stderr io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "lorenz",
		Short: "Lorenz - JVM obfuscation mapping toolkit",
		Long: `Lorenz reads, merges and queries obfuscation mappings.

Commands:
  merge     Compose two mapping files (A->B and B->C into A->C)
  reverse   Swap obfuscated and de-obfuscated names
  convert   Convert between TSRG and YAML
  remap     Look up names, following class inheritance
  stats     Summarise a mapping file`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.setup(cmd) },
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: .lorenz.yaml in . or $HOME)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format (text, json)")

	rootCmd.AddCommand(
		a.mergeCmd(),
		a.reverseCmd(),
		a.convertCmd(),
		a.remapCmd(),
		a.statsCmd(),
		versionCmd(),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = a.logLevel
	}

	if cmd.Flags().Changed("log-format") {
		cfg.Logging.Format = a.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	opts := cfg.LoggingOptions()
	opts.Writer = a.stderr

	a.cfg = cfg
	a.log = logging.New(opts)

	return nil
}
