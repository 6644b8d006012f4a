// SPDX-License-Identifier: MPL-2.0

package jsonval

import (
	"strings"
	"testing"

	"github.com/woolkingx/schemaregistry/pkg/schema"
)

const userSchema = `{
	"type": "object",
	"required": ["email"],
	"properties": {
		"email": {"type": "string"},
		"age": {"type": "integer", "minimum": 0}
	}
}`

func compileUser(t *testing.T) schema.CompiledRule {
	t.Helper()
	rule, err := New().Compile(schema.Definition{Name: "user", Raw: []byte(userSchema)})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	return rule
}

func TestCompileMalformedJSON(t *testing.T) {
	t.Parallel()

	_, err := New().Compile(schema.Definition{Name: "broken", Raw: []byte(`{"type":`)})
	if err == nil {
		t.Fatal("malformed JSON must fail compilation")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("compile error should name the schema, got: %v", err)
	}
}

func TestCheckConformingValue(t *testing.T) {
	t.Parallel()

	rule := compileUser(t)
	violations := rule.Check(map[string]any{"email": "a@b.com", "name": "Alice"})
	if len(violations) != 0 {
		t.Errorf("conforming value should produce no violations, got: %v", violations)
	}
}

func TestCheckMissingRequired(t *testing.T) {
	t.Parallel()

	rule := compileUser(t)
	violations := rule.Check(map[string]any{"name": "Bob"})
	if len(violations) == 0 {
		t.Fatal("missing required property must be reported")
	}
	found := false
	for _, v := range violations {
		if strings.Contains(v.Message, "email") {
			found = true
		}
	}
	if !found {
		t.Errorf("violations should mention the missing property, got: %v", violations)
	}
}

func TestCheckNestedLocation(t *testing.T) {
	t.Parallel()

	rule := compileUser(t)
	violations := rule.Check(map[string]any{"email": "a@b.com", "age": "old"})
	if len(violations) == 0 {
		t.Fatal("type mismatch must be reported")
	}
	found := false
	for _, v := range violations {
		if v.Path == "age" {
			found = true
		}
	}
	if !found {
		t.Errorf("violations should point at age, got: %v", violations)
	}
}

func TestCheckReportsAllViolations(t *testing.T) {
	t.Parallel()

	rule, err := New().Compile(schema.Definition{Name: "order", Raw: []byte(`{
		"type": "object",
		"required": ["id", "total"],
		"properties": {
			"id": {"type": "integer"},
			"total": {"type": "number"}
		}
	}`)})
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	violations := rule.Check(map[string]any{"id": "x", "total": "y"})
	if len(violations) < 2 {
		t.Errorf("both type mismatches should be reported, got: %v", violations)
	}
}

func TestPointerToPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"/", ""},
		{"/email", "email"},
		{"/items/0/email", "items[0].email"},
		{"/a~1b/c", "a/b.c"},
		{"/0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.ptr, func(t *testing.T) {
			t.Parallel()
			if got := pointerToPath(tt.ptr); got != tt.want {
				t.Errorf("pointerToPath(%q) = %q, want %q", tt.ptr, got, tt.want)
			}
		})
	}
}
