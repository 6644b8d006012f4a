// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/woolkingx/schemaregistry/internal/config"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"

	// verbose enables debug-level logging.
	verbose bool
	// cfgFile allows specifying a custom config file.
	cfgFile string
	// schemaDir overrides the configured schema directory.
	schemaDir string
	// engine overrides the configured validation engine.
	engine string
	// versions overrides the configured version labels.
	versions []string

	// cfg is the resolved configuration, populated by initRootConfig.
	cfg *config.Config

	// rootCmd represents the base command when called without any subcommands.
	rootCmd = &cobra.Command{
		Use:   "schemareg",
		Short: "Schema registry and payload validator",
		Long: TitleStyle.Render("schemareg") + SubtitleStyle.Render(" - schema registry and payload validator") + `

schemareg compiles a directory of schema definitions (JSON Schema or CUE)
into a registry and validates structured payloads against them. Version
directories let multiple schema generations coexist; watch mode hot-reloads
the registry when definitions change.

` + SubtitleStyle.Render("Examples:") + `
  schemareg list                          List compiled schemas
  schemareg validate user payload.json    Validate a payload, with details
  schemareg check user payload.json       Fast pass/fail check
  schemareg validate -V v1 user p.json    Validate against version "v1"
  schemareg source user                   Print a schema definition
  schemareg watch                         Reload on definition changes`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/schemareg/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&schemaDir, "schema-dir", "d", "", "schema definition directory")
	rootCmd.PersistentFlags().StringVarP(&engine, "engine", "e", "", "validation engine (cue or jsonschema)")
	rootCmd.PersistentFlags().StringSliceVar(&versions, "versions", nil, "ordered version labels (last is the default)")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(sourceCmd)
	rootCmd.AddCommand(watchCmd)
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig loads configuration and wires structured logging. Library
// packages log through log/slog; the CLI backs that with charmbracelet/log
// for human-readable output on stderr.
func initRootConfig() {
	loaded, err := config.Load(config.LoadOptions{ConfigFilePath: cfgFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}
	cfg = loaded

	// Flags override file and environment.
	if schemaDir != "" {
		cfg.SchemaDir = schemaDir
	}
	if engine != "" {
		cfg.Engine = config.Engine(engine)
		if err := cfg.Engine.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
			os.Exit(1)
		}
	}
	if len(versions) > 0 {
		cfg.Versions = versions
	}
	if verbose {
		cfg.Verbose = true
	}

	level := charmlog.InfoLevel
	if cfg.Verbose {
		level = charmlog.DebugLevel
	}
	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Level:           level,
		ReportTimestamp: true,
	})
	slog.SetDefault(slog.New(logger))
}
