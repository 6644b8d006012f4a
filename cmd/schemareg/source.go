// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/woolkingx/schemaregistry/pkg/registry"
)

var (
	// sourceVersion selects which version's definition to print.
	sourceVersion string

	sourceCmd = &cobra.Command{
		Use:   "source <schema>",
		Short: "Print a schema's original definition",
		Long: `Print the raw definition of a compiled schema, exactly as loaded from
the schema directory. Intended for documentation and debugging tooling.`,
		Args: cobra.ExactArgs(1),
		RunE: runSource,
	}
)

func init() {
	sourceCmd.Flags().StringVarP(&sourceVersion, "version", "V", "", "schema version label (default: last configured)")
}

func runSource(cmd *cobra.Command, args []string) error {
	name := args[0]

	t, err := buildTarget(cmd.Context())
	if err != nil {
		return err
	}
	reg, err := t.registryFor(sourceVersion)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}

	def, ok := reg.Source(name)
	if !ok {
		return &ExitError{Code: 2, Err: &registry.NotFoundError{Name: name}}
	}
	if _, err := os.Stdout.Write(def.Raw); err != nil {
		return fmt.Errorf("write definition: %w", err)
	}
	return nil
}
