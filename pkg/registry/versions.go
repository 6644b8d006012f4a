// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"context"
	"log/slog"
	"slices"

	"github.com/woolkingx/schemaregistry/pkg/schema"
)

type (
	// SourceFunc derives the schema source for one version label, typically
	// from a base location plus the label (see source.Versioned).
	SourceFunc func(label string) schema.Source

	// VersionSet routes validation requests to one Registry per version
	// label. The default label is always the last of the ordered label list
	// given at construction. A VersionSet is immutable and safe for
	// concurrent use.
	VersionSet struct {
		registries   map[string]*Registry
		defaultLabel string
	}
)

// NewVersionSet loads one rule set per label, in order, using sources to
// derive each label's schema source. A non-default label whose load fails
// outright is skipped with a logged warning; it does not abort construction
// of the remaining versions. The returned map carries each loaded label's
// compile warnings.
//
// Construction fails with ErrNoVersions when labels is empty, and with a
// *DefaultVersionError when the last label — the designated default — fails
// to load. Falling back silently to some other version would leave every
// default-resolved request answered by the wrong schema generation.
func NewVersionSet(ctx context.Context, sources SourceFunc, v schema.Validator, labels []string) (*VersionSet, map[string][]LoadWarning, error) {
	if len(labels) == 0 {
		return nil, nil, ErrNoVersions
	}

	defaultLabel := labels[len(labels)-1]
	registries := make(map[string]*Registry, len(labels))
	warnings := make(map[string][]LoadWarning, len(labels))

	for _, label := range labels {
		reg, regWarnings, err := Open(ctx, sources(label), v)
		if err != nil {
			if label == defaultLabel {
				return nil, nil, &DefaultVersionError{Label: label, Cause: err}
			}
			slog.Warn("version failed to load, skipping", "version", label, "error", err)
			continue
		}
		slog.Info("version loaded", "version", label, "schemas", len(reg.Names()))
		registries[label] = reg
		if len(regWarnings) > 0 {
			warnings[label] = regWarnings
		}
	}

	return &VersionSet{registries: registries, defaultLabel: defaultLabel}, warnings, nil
}

// Validate checks value against the named schema in the given version. An
// empty version resolves to the default label. It returns a *VersionError
// when the resolved label has no registry (e.g., a skipped non-default
// version); schema lookup and validation errors are those of
// Registry.Validate.
func (s *VersionSet) Validate(version, name string, value any) error {
	reg, err := s.registry(version)
	if err != nil {
		return err
	}
	return reg.Validate(name, value)
}

// IsValid is the fast-path form of Validate: false covers an unknown version,
// an unknown schema, and a failing value alike.
func (s *VersionSet) IsValid(version, name string, value any) bool {
	reg, err := s.registry(version)
	if err != nil {
		return false
	}
	return reg.IsValid(name, value)
}

// Registry returns the registry serving the given version ("" for the
// default), or a *VersionError when that label has none.
func (s *VersionSet) Registry(version string) (*Registry, error) {
	return s.registry(version)
}

// Versions returns the labels that loaded successfully, sorted.
func (s *VersionSet) Versions() []string {
	labels := make([]string, 0, len(s.registries))
	for label := range s.registries {
		labels = append(labels, label)
	}
	slices.Sort(labels)
	return labels
}

// DefaultVersion returns the label requests resolve to when no explicit
// version is given.
func (s *VersionSet) DefaultVersion() string { return s.defaultLabel }

func (s *VersionSet) registry(version string) (*Registry, error) {
	if version == "" {
		version = s.defaultLabel
	}
	reg, ok := s.registries[version]
	if !ok {
		return nil, &VersionError{Label: version}
	}
	return reg, nil
}
