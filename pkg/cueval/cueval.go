// SPDX-License-Identifier: MPL-2.0

// Package cueval adapts the CUE engine to the schema.Validator contract.
// Definitions are CUE documents; values are checked by unifying them with the
// compiled definition and requiring a concrete, valid result.
package cueval

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"

	"github.com/woolkingx/schemaregistry/pkg/schema"
)

// Ext is the definition file extension this validator expects.
const Ext = ".cue"

// Validator compiles CUE schema definitions. All rules from one Validator
// share a cue.Context so their values can be unified with encoded inputs.
type Validator struct {
	ctx *cue.Context
}

// New returns a CUE-backed validator.
func New() *Validator {
	return &Validator{ctx: cuecontext.New()}
}

// Compile builds the definition into a CUE value. A definition that does not
// parse or evaluate is rejected with an error carrying path-qualified
// messages.
func (v *Validator) Compile(def schema.Definition) (schema.CompiledRule, error) {
	val := v.ctx.CompileBytes(def.Raw, cue.Filename(def.Name+Ext))
	if err := val.Err(); err != nil {
		return nil, compileError(def.Name, err)
	}
	return &rule{ctx: v.ctx, val: val}, nil
}

type rule struct {
	ctx *cue.Context
	val cue.Value
}

// Check encodes value into CUE, unifies it with the compiled definition, and
// requires the result to validate concretely. Every CUE error becomes one
// Violation with a JSON-path pointer.
func (r *rule) Check(value any) []schema.Violation {
	encoded := r.ctx.Encode(value)
	if err := encoded.Err(); err != nil {
		return toViolations(err)
	}
	unified := r.val.Unify(encoded)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return toViolations(err)
	}
	return nil
}

// toViolations flattens a CUE error into individual violations, one per
// underlying error, each with its value path in JSON-path notation.
func toViolations(err error) []schema.Violation {
	cueErrs := errors.Errors(err)
	if len(cueErrs) == 0 {
		return []schema.Violation{{Message: err.Error()}}
	}

	violations := make([]schema.Violation, 0, len(cueErrs))
	for _, e := range cueErrs {
		path := formatPath(errors.Path(e))
		msg := e.Error()
		// CUE sometimes repeats the path inside the message; drop the
		// duplication so the violation reads "path: message" exactly once.
		if path != "" && strings.HasPrefix(msg, path) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, path), ":"))
		}
		violations = append(violations, schema.Violation{Message: msg, Path: path})
	}
	return violations
}

// compileError renders a compile failure with one line per CUE error.
func compileError(name string, err error) error {
	cueErrs := errors.Errors(err)
	if len(cueErrs) == 0 {
		return fmt.Errorf("compile %s: %w", name, err)
	}
	lines := make([]string, 0, len(cueErrs))
	for _, e := range cueErrs {
		lines = append(lines, e.Error())
	}
	if len(lines) == 1 {
		return fmt.Errorf("compile %s: %s", name, lines[0])
	}
	return fmt.Errorf("compile %s:\n  %s", name, strings.Join(lines, "\n  "))
}

// formatPath converts a CUE error path to JSON-path notation. CUE provides
// paths as flat string slices (e.g., ["items", "0", "email"]) where numeric
// elements are array indices; the result reads "items[0].email".
func formatPath(path []string) string {
	if len(path) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, part := range path {
		isIndex := part != ""
		for _, c := range part {
			if c < '0' || c > '9' {
				isIndex = false
				break
			}
		}

		switch {
		case isIndex && i > 0:
			sb.WriteString("[")
			sb.WriteString(part)
			sb.WriteString("]")
		case i > 0:
			sb.WriteString(".")
			sb.WriteString(part)
		default:
			sb.WriteString(part)
		}
	}
	return sb.String()
}
