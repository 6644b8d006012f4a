// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"context"
	"fmt"
)

type (
	// Definition is one raw schema definition plus its assigned name. The name
	// is derived from source identity (for directory sources, the file stem)
	// and is the key callers later validate against. Raw holds the unparsed
	// definition text; it is kept verbatim for introspection tooling.
	Definition struct {
		// Name identifies the schema within its rule set.
		Name string
		// Raw is the original definition source, unmodified.
		Raw []byte
	}

	// Violation is a single mismatch between a value and a schema.
	Violation struct {
		// Message is a human-readable description of the mismatch.
		Message string
		// Path points at the offending location inside the checked value,
		// in JSON-path-like notation (e.g., "items[2].email"). Empty when
		// the violation applies to the value as a whole.
		Path string
	}

	// CompiledRule is the opaque compiled form of one Definition. A compiled
	// rule is immutable and must be safe for concurrent Check calls.
	CompiledRule interface {
		// Check reports every violation of the rule by value. An empty (or
		// nil) result means the value conforms. The full list is always
		// returned, never just the first mismatch.
		Check(value any) []Violation
	}

	// Validator compiles raw definitions into checkable rules. Compile is
	// called once per definition per load; implementations must not retain
	// or mutate def.Raw after returning.
	Validator interface {
		Compile(def Definition) (CompiledRule, error)
	}

	// Source enumerates schema definitions from some location. Enumerate
	// performs a full, deterministic re-read on every call: repeated calls
	// against an unchanged location yield the same definitions in the same
	// order. There is no incremental diffing.
	Source interface {
		Enumerate(ctx context.Context) ([]Definition, error)
	}
)

// String renders the violation as "path: message", or just the message when
// no path is available.
func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}
