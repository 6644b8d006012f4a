// SPDX-License-Identifier: MPL-2.0

// Package source provides filesystem-backed schema sources: a single
// directory of definition files, and a versioned layout of one directory per
// version label.
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/woolkingx/schemaregistry/pkg/schema"
)

type (
	// Dir enumerates definition files from one directory, non-recursively.
	// Schema names are the file stems: "user.json" yields schema "user".
	Dir struct {
		// Path is the directory containing the definition files.
		Path string
		// Ext is the definition file extension, with leading dot (e.g.,
		// ".json", ".cue"). Files with any other extension are ignored, as
		// are subdirectories.
		Ext string
	}

	// Versioned derives one Dir per version label under a common base:
	// label "v1" maps to <Base>/v1. Its Source method satisfies
	// registry.SourceFunc.
	Versioned struct {
		// Base is the directory holding one subdirectory per version label.
		Base string
		// Ext is forwarded to each derived Dir.
		Ext string
	}
)

// Enumerate reads every matching file in the directory, in lexical filename
// order, so repeated calls over an unchanged directory yield identical
// results. A missing or unreadable directory, or an unreadable file, fails
// the enumeration as a whole.
func (d Dir) Enumerate(ctx context.Context) ([]schema.Definition, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("enumerate %s: %w", d.Path, ctx.Err())
	default:
	}

	dirEntries, err := os.ReadDir(d.Path)
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", d.Path, err)
	}

	var defs []schema.Definition
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), d.Ext) {
			continue
		}
		path := filepath.Join(d.Path, de.Name())
		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
		defs = append(defs, schema.Definition{
			Name: strings.TrimSuffix(de.Name(), d.Ext),
			Raw:  raw,
		})
	}
	return defs, nil
}

// Source returns the schema source for one version label.
func (v Versioned) Source(label string) schema.Source {
	return Dir{Path: filepath.Join(v.Base, label), Ext: v.Ext}
}
