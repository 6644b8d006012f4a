// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/woolkingx/schemaregistry/internal/watch"
	"github.com/woolkingx/schemaregistry/pkg/registry"
	"github.com/woolkingx/schemaregistry/pkg/source"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Hot-reload the registry when definitions change",
	Long: `Load the schema directory, then watch it for changes and atomically
reload the registry after each change settles. A reload that fails (e.g.,
the directory was removed) keeps the previous schemas active. Runs until
interrupted.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	if len(cfg.Versions) > 0 {
		return fmt.Errorf("watch mode supports flat schema directories only; drop --versions")
	}

	ctx := cmd.Context()
	ext := cfg.Engine.Ext()

	rel, warnings, err := registry.NewReloadable(ctx, source.Dir{Path: cfg.SchemaDir, Ext: ext}, newValidator(cfg))
	if err != nil {
		return err
	}
	printWarnings("", warnings)

	w, err := watch.New(watch.Config{
		Dir:      cfg.SchemaDir,
		Patterns: []string{"**/*" + ext},
		Debounce: cfg.Debounce,
	})
	if err != nil {
		return err
	}

	go rel.Run(ctx, w.Triggers())

	fmt.Println(TitleStyle.Render("Watching ") + cfg.SchemaDir + SubtitleStyle.Render(fmt.Sprintf(" (%d schemas, Ctrl+C to stop)", len(rel.Names()))))
	return w.Run(ctx)
}
