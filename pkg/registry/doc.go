// SPDX-License-Identifier: MPL-2.0

// Package registry compiles named schema definitions into immutable rule sets
// and validates arbitrary structured values against them.
//
// This package intentionally layers three registry forms over one rule set
// type:
//   - Registry: a fixed binding to a single RuleSet
//   - VersionSet: one Registry per version label, with a default label
//   - Reloadable: a Registry behind an atomically swappable snapshot
//
// File organization:
//   - ruleset.go: RuleSet construction (Load) and LoadWarning accumulation
//   - registry.go: Registry operations (Validate, IsValid, Names, Source)
//   - versions.go: VersionSet construction and version routing
//   - reloadable.go: snapshot swapping, Reload, and trigger consumption
//   - errors.go: the error taxonomy shared by all forms
package registry
