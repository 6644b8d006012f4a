// SPDX-License-Identifier: MPL-2.0

package source

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestDirEnumerate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "user.json", `{"type":"object"}`)
	writeFile(t, dir, "order.json", `{"type":"object"}`)
	writeFile(t, dir, "notes.txt", "ignored")
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	defs, err := Dir{Path: dir, Ext: ".json"}.Enumerate(t.Context())
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}

	if len(defs) != 2 {
		t.Fatalf("got %d definitions, want 2: %v", len(defs), defs)
	}
	// os.ReadDir sorts by filename, so enumeration order is deterministic.
	if defs[0].Name != "order" || defs[1].Name != "user" {
		t.Errorf("names = [%s %s], want [order user]", defs[0].Name, defs[1].Name)
	}
	if string(defs[0].Raw) != `{"type":"object"}` {
		t.Errorf("Raw = %q, want file contents verbatim", defs[0].Raw)
	}
}

func TestDirEnumerateDeterministic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"c.cue", "a.cue", "b.cue"} {
		writeFile(t, dir, name, "x: int")
	}

	src := Dir{Path: dir, Ext: ".cue"}
	first, err := src.Enumerate(t.Context())
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	second, err := src.Enumerate(t.Context())
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}

	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected 3 definitions per pass, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Name != second[i].Name {
			t.Errorf("enumeration order not stable at %d: %s vs %s", i, first[i].Name, second[i].Name)
		}
	}
}

func TestDirEnumerateMissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := Dir{Path: filepath.Join(t.TempDir(), "absent"), Ext: ".json"}.Enumerate(t.Context())
	if err == nil {
		t.Fatal("missing directory must fail enumeration")
	}
}

func TestDirEnumerateEmptyDirectory(t *testing.T) {
	t.Parallel()

	defs, err := Dir{Path: t.TempDir(), Ext: ".json"}.Enumerate(t.Context())
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	if len(defs) != 0 {
		t.Errorf("empty directory should yield no definitions, got %v", defs)
	}
}

func TestVersionedSource(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	if err := os.Mkdir(filepath.Join(base, "v1"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(base, "v1"), "user.json", `{}`)

	defs, err := Versioned{Base: base, Ext: ".json"}.Source("v1").Enumerate(t.Context())
	if err != nil {
		t.Fatalf("Enumerate failed: %v", err)
	}
	if len(defs) != 1 || defs[0].Name != "user" {
		t.Errorf("defs = %v, want single user definition", defs)
	}

	if _, err := (Versioned{Base: base, Ext: ".json"}).Source("v2").Enumerate(t.Context()); err == nil {
		t.Error("missing version directory must fail enumeration")
	}
}
