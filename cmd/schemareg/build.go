// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/woolkingx/schemaregistry/internal/config"
	"github.com/woolkingx/schemaregistry/pkg/cueval"
	"github.com/woolkingx/schemaregistry/pkg/jsonval"
	"github.com/woolkingx/schemaregistry/pkg/registry"
	"github.com/woolkingx/schemaregistry/pkg/schema"
	"github.com/woolkingx/schemaregistry/pkg/source"
)

// target is the registry a command operates on: a flat single-directory
// registry, or a version set when version labels are configured.
type target struct {
	reg *registry.Registry
	vs  *registry.VersionSet
}

// newValidator returns the validator implementation for the configured
// engine. Config validation has already rejected unknown engines.
func newValidator(cfg *config.Config) schema.Validator {
	if cfg.Engine == config.EngineCUE {
		return cueval.New()
	}
	return jsonval.New()
}

// buildTarget loads the configured schema directory (or its version
// subdirectories) and reports compile warnings on stderr.
func buildTarget(ctx context.Context) (*target, error) {
	v := newValidator(cfg)
	ext := cfg.Engine.Ext()

	if len(cfg.Versions) > 0 {
		versioned := source.Versioned{Base: cfg.SchemaDir, Ext: ext}
		vs, warnings, err := registry.NewVersionSet(ctx, versioned.Source, v, cfg.Versions)
		if err != nil {
			return nil, err
		}
		for label, labelWarnings := range warnings {
			printWarnings(label, labelWarnings)
		}
		return &target{vs: vs}, nil
	}

	reg, warnings, err := registry.Open(ctx, source.Dir{Path: cfg.SchemaDir, Ext: ext}, v)
	if err != nil {
		return nil, err
	}
	printWarnings("", warnings)
	return &target{reg: reg}, nil
}

// registryFor resolves the registry serving the requested version ("" means
// the default). Asking for a version on an unversioned layout is an error.
func (t *target) registryFor(version string) (*registry.Registry, error) {
	if t.vs != nil {
		return t.vs.Registry(version)
	}
	if version != "" {
		return nil, fmt.Errorf("no versions configured (schema directory %q is flat)", cfg.SchemaDir)
	}
	return t.reg, nil
}

// printWarnings renders per-definition compile warnings on stderr.
func printWarnings(label string, warnings []registry.LoadWarning) {
	for _, w := range warnings {
		name := w.Name
		if label != "" {
			name = label + "/" + name
		}
		fmt.Fprintln(os.Stderr, WarningStyle.Render("warning: ")+fmt.Sprintf("schema %s skipped: %v", name, w.Err))
	}
}
