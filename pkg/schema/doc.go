// SPDX-License-Identifier: MPL-2.0

// Package schema defines the contracts between the registry and its
// collaborators: where raw schema definitions come from (Source), how they
// are compiled and checked (Validator, CompiledRule), and how mismatches are
// reported (Violation).
//
// The registry itself never interprets definition contents. Everything about
// the definition format — extension, syntax, validation semantics — belongs
// to the Validator implementation (see pkg/cueval and pkg/jsonval).
package schema
