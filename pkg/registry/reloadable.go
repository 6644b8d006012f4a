// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/woolkingx/schemaregistry/pkg/schema"
)

// Reloadable is a Registry behind an atomically swappable snapshot. Readers
// (Validate, IsValid, Names, Source) load the current snapshot exactly once
// per call and run against that immutable registry for the whole call, so a
// concurrent reload can never expose a mix of old and new entries to a single
// caller. Reads never block, not even while a reload is compiling.
//
// Reloads are serialized among themselves; the slow part (enumeration and
// compilation) happens entirely off to the side, and only the final snapshot
// swap is an atomic pointer store.
type Reloadable struct {
	src       schema.Source
	validator schema.Validator

	current atomic.Pointer[Registry]

	// reloadMu serializes Reload calls. It is never taken by readers.
	reloadMu sync.Mutex
}

// NewReloadable performs an initial load from src and returns a Reloadable
// serving the result, plus the initial load's compile warnings. Construction
// fails only when src cannot be enumerated (*SourceError).
func NewReloadable(ctx context.Context, src schema.Source, v schema.Validator) (*Reloadable, []LoadWarning, error) {
	reg, warnings, err := Open(ctx, src, v)
	if err != nil {
		return nil, nil, err
	}
	r := &Reloadable{src: src, validator: v}
	r.current.Store(reg)
	return r, warnings, nil
}

// Reload builds a brand-new rule set from the same source and installs it as
// the current snapshot in a single atomic swap. On a hard load failure the
// previous snapshot is left untouched and the *SourceError is returned; there
// is no observable broken state. Compile warnings from the fresh load are
// returned but do not by themselves fail the reload.
//
// Reload runs to completion once invoked; there is no mid-flight
// cancellation beyond what ctx does to source enumeration.
func (r *Reloadable) Reload(ctx context.Context) ([]LoadWarning, error) {
	r.reloadMu.Lock()
	defer r.reloadMu.Unlock()

	reg, warnings, err := Open(ctx, r.src, r.validator)
	if err != nil {
		return nil, err
	}
	r.current.Store(reg)
	return warnings, nil
}

// Run consumes reload triggers until ctx is cancelled or triggers is closed.
// Each trigger causes one Reload; outcomes are logged and otherwise
// swallowed, since there is no caller to propagate them to. Run is intended
// for a dedicated goroutine fed by a change watcher (see internal/watch) and
// is independent of foreground validation calls.
func (r *Reloadable) Run(ctx context.Context, triggers <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-triggers:
			if !ok {
				return
			}
			warnings, err := r.Reload(ctx)
			if err != nil {
				slog.Error("schema reload failed, previous snapshot retained", "error", err)
				continue
			}
			slog.Info("schemas reloaded", "schemas", len(r.Names()), "warnings", len(warnings))
		}
	}
}

// Snapshot returns the current immutable registry. Callers that need several
// self-consistent lookups should take one snapshot and query it directly.
func (r *Reloadable) Snapshot() *Registry {
	return r.current.Load()
}

// Validate checks value against the named schema in the current snapshot.
// See Registry.Validate for the error contract.
func (r *Reloadable) Validate(name string, value any) error {
	return r.Snapshot().Validate(name, value)
}

// IsValid is the fast-path form of Validate against the current snapshot.
func (r *Reloadable) IsValid(name string, value any) bool {
	return r.Snapshot().IsValid(name, value)
}

// Names returns the schema names of the current snapshot, sorted.
func (r *Reloadable) Names() []string {
	return r.Snapshot().Names()
}

// Source returns the named schema's definition from the current snapshot.
func (r *Reloadable) Source(name string) (schema.Definition, bool) {
	return r.Snapshot().Source(name)
}
