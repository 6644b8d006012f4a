// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"context"
	"slices"

	"github.com/woolkingx/schemaregistry/pkg/schema"
)

// Registry validates values against the single RuleSet it was built with.
// The binding is permanent; use Reloadable when the active set must be
// replaceable at runtime. A Registry is safe for concurrent use.
type Registry struct {
	set *RuleSet
}

// New wraps an already-built RuleSet in a Registry.
func New(set *RuleSet) *Registry {
	return &Registry{set: set}
}

// Open loads src with v and returns a Registry over the result, together with
// any per-definition compile warnings. It fails only when src cannot be
// enumerated (*SourceError).
func Open(ctx context.Context, src schema.Source, v schema.Validator) (*Registry, []LoadWarning, error) {
	set, warnings, err := Load(ctx, src, v)
	if err != nil {
		return nil, nil, err
	}
	return New(set), warnings, nil
}

// Validate checks value against the named schema. It returns nil when the
// value conforms, a *ValidationError carrying the full violation list when it
// does not, and a *NotFoundError when no schema of that name exists. The
// latter is a usage error, not a data defect, and is deliberately a distinct
// type.
func (r *Registry) Validate(name string, value any) error {
	e, ok := r.set.entries[name]
	if !ok {
		return &NotFoundError{Name: name}
	}
	violations := e.rule.Check(value)
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Name: name, Violations: violations}
}

// IsValid is the fast-path form of Validate. It returns false both when the
// schema name is absent and when the value fails validation; callers that
// need to tell those apart must use Validate.
func (r *Registry) IsValid(name string, value any) bool {
	e, ok := r.set.entries[name]
	if !ok {
		return false
	}
	return len(e.rule.Check(value)) == 0
}

// Names returns the names of all compiled schemas, sorted for stable output.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.set.entries))
	for name := range r.set.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Source returns the original definition of the named schema, for
// documentation and introspection tooling. The second result is false when
// the name has no compiled entry.
func (r *Registry) Source(name string) (schema.Definition, bool) {
	e, ok := r.set.entries[name]
	if !ok {
		return schema.Definition{}, false
	}
	return e.def, true
}
