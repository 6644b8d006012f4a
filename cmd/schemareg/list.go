// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// listVersion selects which version's schemas to list.
	listVersion string

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List compiled schemas",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	versionsCmd = &cobra.Command{
		Use:   "versions",
		Short: "List loaded schema versions",
		Args:  cobra.NoArgs,
		RunE:  runVersions,
	}
)

func init() {
	listCmd.Flags().StringVarP(&listVersion, "version", "V", "", "schema version label (default: last configured)")
}

func runList(cmd *cobra.Command, args []string) error {
	t, err := buildTarget(cmd.Context())
	if err != nil {
		return err
	}
	reg, err := t.registryFor(listVersion)
	if err != nil {
		return &ExitError{Code: 2, Err: err}
	}

	names := reg.Names()
	fmt.Println(TitleStyle.Render("Schemas") + SubtitleStyle.Render(fmt.Sprintf(" (%d)", len(names))))
	for _, name := range names {
		fmt.Println("  " + name)
	}
	return nil
}

func runVersions(cmd *cobra.Command, args []string) error {
	t, err := buildTarget(cmd.Context())
	if err != nil {
		return err
	}
	if t.vs == nil {
		return fmt.Errorf("no versions configured (schema directory %q is flat)", cfg.SchemaDir)
	}

	def := t.vs.DefaultVersion()
	fmt.Println(TitleStyle.Render("Versions"))
	for _, label := range t.vs.Versions() {
		if label == def {
			fmt.Println("  " + label + SubtitleStyle.Render(" (default)"))
			continue
		}
		fmt.Println("  " + label)
	}
	return nil
}
