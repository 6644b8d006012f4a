// SPDX-License-Identifier: MPL-2.0

// Package jsonval adapts JSON Schema (github.com/santhosh-tekuri/jsonschema)
// to the schema.Validator contract. Definitions are JSON Schema documents;
// values are decoded JSON.
package jsonval

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/woolkingx/schemaregistry/pkg/schema"
)

// Ext is the definition file extension this validator expects.
const Ext = ".json"

// Validator compiles JSON Schema definitions.
type Validator struct{}

// New returns a JSON-Schema-backed validator.
func New() *Validator {
	return &Validator{}
}

// Compile parses and compiles the definition. Malformed JSON and schema
// documents the compiler rejects both surface as compile errors.
func (v *Validator) Compile(def schema.Definition) (schema.CompiledRule, error) {
	url := def.Name + Ext
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, bytes.NewReader(def.Raw)); err != nil {
		return nil, fmt.Errorf("compile %s: %w", def.Name, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", def.Name, err)
	}
	return &rule{compiled: compiled}, nil
}

type rule struct {
	compiled *jsonschema.Schema
}

// Check validates the decoded JSON value, flattening the engine's error tree
// into one Violation per leaf cause with its instance location.
func (r *rule) Check(value any) []schema.Violation {
	err := r.compiled.Validate(value)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []schema.Violation{{Message: err.Error()}}
	}
	return collect(ve, nil)
}

// collect walks the cause tree depth-first; leaves carry the concrete
// keyword failures, inner nodes only aggregate.
func collect(ve *jsonschema.ValidationError, acc []schema.Violation) []schema.Violation {
	if len(ve.Causes) == 0 {
		return append(acc, schema.Violation{
			Message: ve.Message,
			Path:    pointerToPath(ve.InstanceLocation),
		})
	}
	for _, cause := range ve.Causes {
		acc = collect(cause, acc)
	}
	return acc
}

// pointerToPath converts a JSON Pointer ("/items/0/email") to the JSON-path
// notation used by schema.Violation ("items[0].email"). The root pointer
// maps to the empty path.
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var sb strings.Builder
	for i, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(strings.ReplaceAll(part, "~1", "/"), "~0", "~")

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
