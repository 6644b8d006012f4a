// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEngineValidate(t *testing.T) {
	t.Parallel()

	for _, engine := range []Engine{EngineCUE, EngineJSONSchema} {
		if err := engine.Validate(); err != nil {
			t.Errorf("engine %q should be valid, got: %v", engine, err)
		}
	}

	err := Engine("yaml").Validate()
	if !errors.Is(err, ErrInvalidEngine) {
		t.Errorf("error should wrap ErrInvalidEngine, got: %v", err)
	}
	var engErr *InvalidEngineError
	if !errors.As(err, &engErr) || engErr.Value != "yaml" {
		t.Errorf("expected *InvalidEngineError carrying the value, got: %v", err)
	}
}

func TestEngineExt(t *testing.T) {
	t.Parallel()

	if got := EngineCUE.Ext(); got != ".cue" {
		t.Errorf("EngineCUE.Ext() = %q", got)
	}
	if got := EngineJSONSchema.Ext(); got != ".json" {
		t.Errorf("EngineJSONSchema.Ext() = %q", got)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"defaults", Defaults(), nil},
		{"versioned", Config{SchemaDir: "s", Engine: EngineCUE, Versions: []string{"v1", "v2"}}, nil},
		{"empty schema dir", Config{Engine: EngineCUE}, ErrInvalidConfig},
		{"bad engine", Config{SchemaDir: "s", Engine: "yaml"}, ErrInvalidEngine},
		{"empty version label", Config{SchemaDir: "s", Engine: EngineCUE, Versions: []string{"v1", ""}}, ErrInvalidConfig},
		{"negative debounce", Config{SchemaDir: "s", Engine: EngineCUE, Debounce: -time.Second}, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	// Not parallel: Load reads the working directory and environment.
	t.Chdir(t.TempDir())

	cfg, err := Load(LoadOptions{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SchemaDir != "schemas" || cfg.Engine != EngineJSONSchema {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Debounce != 500*time.Millisecond {
		t.Errorf("Debounce = %v, want 500ms", cfg.Debounce)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "schema_dir: /srv/schemas\nengine: cue\nversions: [v1, v2]\ndebounce: 250ms\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SchemaDir != "/srv/schemas" {
		t.Errorf("SchemaDir = %q", cfg.SchemaDir)
	}
	if cfg.Engine != EngineCUE {
		t.Errorf("Engine = %q", cfg.Engine)
	}
	if len(cfg.Versions) != 2 || cfg.Versions[1] != "v2" {
		t.Errorf("Versions = %v", cfg.Versions)
	}
	if cfg.Debounce != 250*time.Millisecond {
		t.Errorf("Debounce = %v", cfg.Debounce)
	}
}

func TestLoadExplicitFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	if _, err := Load(LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "absent.yaml")}); err == nil {
		t.Fatal("explicitly requested config file must exist")
	}
}

func TestLoadRejectsInvalidEngineFromFile(t *testing.T) {
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("engine: yaml\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := Load(LoadOptions{ConfigFilePath: path})
	if !errors.Is(err, ErrInvalidEngine) {
		t.Errorf("expected ErrInvalidEngine, got: %v", err)
	}
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SCHEMAREG_SCHEMA_DIR", "/env/schemas")
	t.Setenv("SCHEMAREG_ENGINE", "cue")

	cfg, err := Load(LoadOptions{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SchemaDir != "/env/schemas" {
		t.Errorf("SchemaDir = %q, want environment value", cfg.SchemaDir)
	}
	if cfg.Engine != EngineCUE {
		t.Errorf("Engine = %q, want environment value", cfg.Engine)
	}
}
