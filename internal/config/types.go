// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	// EngineCUE validates against CUE definitions (*.cue).
	EngineCUE Engine = "cue"
	// EngineJSONSchema validates against JSON Schema definitions (*.json).
	EngineJSONSchema Engine = "jsonschema"
)

var (
	// ErrInvalidEngine is the sentinel error wrapped by InvalidEngineError.
	ErrInvalidEngine = errors.New("invalid validation engine")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Engine selects which validator implementation compiles definitions.
	Engine string

	// InvalidEngineError is returned when an Engine value is not recognized.
	// It wraps ErrInvalidEngine for errors.Is() compatibility.
	InvalidEngineError struct {
		Value Engine
	}

	// InvalidConfigError is returned when a Config fails validation. It wraps
	// ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		Field  string
		Reason string
	}

	// Config is the resolved schemareg configuration.
	Config struct {
		// SchemaDir is the directory definitions are loaded from. For
		// versioned layouts it is the base directory holding one
		// subdirectory per version label.
		SchemaDir string `mapstructure:"schema_dir"`

		// Versions are the ordered version labels of a versioned layout.
		// Empty means a flat, unversioned schema directory. The last label
		// is the default version.
		Versions []string `mapstructure:"versions"`

		// Engine selects the validator implementation.
		Engine Engine `mapstructure:"engine"`

		// Debounce is the watch-mode quiet period before a reload fires.
		Debounce time.Duration `mapstructure:"debounce"`

		// Verbose enables debug-level logging.
		Verbose bool `mapstructure:"verbose"`
	}
)

// Validate reports whether the engine value is one of the defined engines.
func (e Engine) Validate() error {
	switch e {
	case EngineCUE, EngineJSONSchema:
		return nil
	default:
		return &InvalidEngineError{Value: e}
	}
}

// Ext returns the definition file extension the engine expects. Validate must
// have passed; an unknown engine yields an empty extension.
func (e Engine) Ext() string {
	switch e {
	case EngineCUE:
		return ".cue"
	case EngineJSONSchema:
		return ".json"
	default:
		return ""
	}
}

// Error implements the error interface.
func (e *InvalidEngineError) Error() string {
	return fmt.Sprintf("%v: %q (expected %q or %q)", ErrInvalidEngine, e.Value, EngineCUE, EngineJSONSchema)
}

// Is reports whether target matches the sentinel ErrInvalidEngine.
func (e *InvalidEngineError) Is(target error) bool { return target == ErrInvalidEngine }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvalidConfig, e.Field, e.Reason)
}

// Is reports whether target matches the sentinel ErrInvalidConfig.
func (e *InvalidConfigError) Is(target error) bool { return target == ErrInvalidConfig }

// Validate checks the resolved configuration.
func (c *Config) Validate() error {
	if c.SchemaDir == "" {
		return &InvalidConfigError{Field: "schema_dir", Reason: "must not be empty"}
	}
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	for _, label := range c.Versions {
		if label == "" {
			return &InvalidConfigError{Field: "versions", Reason: "labels must not be empty"}
		}
	}
	if c.Debounce < 0 {
		return &InvalidConfigError{Field: "debounce", Reason: "must not be negative"}
	}
	return nil
}
