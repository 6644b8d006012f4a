// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"context"
	"log/slog"

	"github.com/woolkingx/schemaregistry/pkg/schema"
)

type (
	// LoadWarning reports one definition that was excluded from a rule set
	// because it failed to compile. Warnings are advisory: the load that
	// produced them still succeeded.
	LoadWarning struct {
		// Name is the schema name of the rejected definition.
		Name string
		// Err is the compile failure.
		Err error
	}

	// entry pairs a compiled rule with the definition it was built from.
	entry struct {
		rule schema.CompiledRule
		def  schema.Definition
	}

	// RuleSet is an immutable mapping from schema name to compiled rule.
	// A RuleSet is built once by Load and never mutated afterward; replacing
	// a rule means building a whole new RuleSet. It is safe for concurrent
	// readers.
	RuleSet struct {
		entries map[string]entry
	}
)

// Load enumerates src and compiles every definition with v, producing a new
// RuleSet plus warnings for the definitions that failed to compile. One bad
// definition never aborts the load; it is excluded and reported. When the
// same name occurs more than once in enumeration order, the last occurrence
// wins.
//
// Load fails outright only when src itself cannot be enumerated, returning a
// *SourceError and no rule set.
func Load(ctx context.Context, src schema.Source, v schema.Validator) (*RuleSet, []LoadWarning, error) {
	defs, err := src.Enumerate(ctx)
	if err != nil {
		return nil, nil, &SourceError{Cause: err}
	}

	set := &RuleSet{entries: make(map[string]entry, len(defs))}
	var warnings []LoadWarning

	for _, def := range defs {
		rule, compileErr := v.Compile(def)
		if compileErr != nil {
			warnings = append(warnings, LoadWarning{Name: def.Name, Err: compileErr})
			slog.Warn("schema failed to compile, skipping", "schema", def.Name, "error", compileErr)
			continue
		}
		set.entries[def.Name] = entry{rule: rule, def: def}
	}

	slog.Info("schemas loaded", "loaded", len(set.entries), "failed", len(warnings))
	return set, warnings, nil
}

// Len returns the number of compiled entries in the set.
func (s *RuleSet) Len() int { return len(s.entries) }
