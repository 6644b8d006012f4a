// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/woolkingx/schemaregistry/pkg/schema"
)

var (
	// ErrSourceUnreachable is the sentinel error wrapped by SourceError.
	ErrSourceUnreachable = errors.New("schema source unreachable")
	// ErrSchemaNotFound is the sentinel error wrapped by NotFoundError.
	ErrSchemaNotFound = errors.New("schema not found")
	// ErrVersionNotFound is the sentinel error wrapped by VersionError.
	ErrVersionNotFound = errors.New("version not found")
	// ErrInvalid is the sentinel error wrapped by ValidationError.
	ErrInvalid = errors.New("value does not satisfy schema")
	// ErrNoVersions is returned by NewVersionSet when the label list is empty.
	ErrNoVersions = errors.New("at least one version label required")
	// ErrDefaultVersion is the sentinel error wrapped by DefaultVersionError.
	ErrDefaultVersion = errors.New("default version failed to load")
)

type (
	// SourceError is returned when a load cannot enumerate its source at all.
	// It is a hard error: no rule set is produced. Per-definition compile
	// problems are reported as LoadWarnings instead, never as a SourceError.
	// It wraps ErrSourceUnreachable for errors.Is() compatibility.
	SourceError struct {
		// Cause is the underlying enumeration failure.
		Cause error
	}

	// NotFoundError is returned by Validate when the requested schema name has
	// no compiled entry. This is a caller usage error, distinct from a value
	// failing validation. It wraps ErrSchemaNotFound for errors.Is().
	NotFoundError struct {
		// Name is the schema name that was requested.
		Name string
	}

	// VersionError is returned by VersionSet.Validate when the resolved
	// version label has no registry. It wraps ErrVersionNotFound for
	// errors.Is().
	VersionError struct {
		// Label is the version label that was requested (or resolved from
		// the default).
		Label string
	}

	// ValidationError is returned by Validate when the value does not satisfy
	// the schema. It carries the complete violation list, never a truncation.
	// It wraps ErrInvalid for errors.Is().
	ValidationError struct {
		// Name is the schema the value was checked against.
		Name string
		// Violations lists every reported mismatch.
		Violations []schema.Violation
	}
)

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("%v: %v", ErrSourceUnreachable, e.Cause)
}

// Unwrap returns the underlying enumeration failure.
func (e *SourceError) Unwrap() error { return e.Cause }

// Is reports whether target matches the sentinel ErrSourceUnreachable.
func (e *SourceError) Is(target error) bool { return target == ErrSourceUnreachable }

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %q", ErrSchemaNotFound, e.Name)
}

// Is reports whether target matches the sentinel ErrSchemaNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrSchemaNotFound }

// Error implements the error interface.
func (e *VersionError) Error() string {
	return fmt.Sprintf("%v: %q", ErrVersionNotFound, e.Label)
}

// Is reports whether target matches the sentinel ErrVersionNotFound.
func (e *VersionError) Is(target error) bool { return target == ErrVersionNotFound }

// Error implements the error interface. The message includes every violation
// so that logging the error alone loses no information.
func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "schema %q: %v", e.Name, ErrInvalid)
	for _, v := range e.Violations {
		sb.WriteString("\n  ")
		sb.WriteString(v.String())
	}
	return sb.String()
}

// Is reports whether target matches the sentinel ErrInvalid.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

// DefaultVersionError is returned by NewVersionSet when the label designated
// as the default (the last of the ordered label list) fails to load. Other
// labels are skipped with a warning on load failure; the default is not,
// because a version set whose default cannot answer any request is broken
// from the first call. It wraps ErrDefaultVersion for errors.Is().
type DefaultVersionError struct {
	// Label is the default version label.
	Label string
	// Cause is the load failure for that label.
	Cause error
}

// Error implements the error interface.
func (e *DefaultVersionError) Error() string {
	return fmt.Sprintf("%v: %q: %v", ErrDefaultVersion, e.Label, e.Cause)
}

// Unwrap returns the underlying load failure.
func (e *DefaultVersionError) Unwrap() error { return e.Cause }

// Is reports whether target matches the sentinel ErrDefaultVersion.
func (e *DefaultVersionError) Is(target error) bool { return target == ErrDefaultVersion }
