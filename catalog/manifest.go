// Copyright © 2025 Showcase contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: catalog/manifest.go
// Summary: Defines the manifest structure for declaratively described demos.
// Usage: Demo directories provide a manifest.json overriding derived metadata.

package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/framegrace/showcase/demo"
)

// Manifest describes a demo declaratively, bypassing the naming-convention
// derivation the wrapper would otherwise apply.
type Manifest struct {
	// Name is the unique identifier for this demo (e.g., "table", "slider")
	Name string `json:"name"`

	// DisplayName is the human-readable name shown in the browser
	DisplayName string `json:"displayName"`

	// Description provides a brief explanation of what the demo shows
	Description string `json:"description"`

	// Category groups demos in the browser (e.g., "containers", "controls")
	Category string `json:"category"`

	// Wraps names the registered built-in component this demo instantiates
	Wraps string `json:"wraps"`

	// IconFile overrides the conventional icon lookup, relative to the
	// manifest directory
	IconFile string `json:"iconFile,omitempty"`

	// SourceFiles are resource paths displayed in the source viewer
	SourceFiles []string `json:"sourceFiles,omitempty"`
}

// LoadManifest reads and parses a manifest.json file from the given directory.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "manifest.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that the manifest is well-formed.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest missing required field: name")
	}
	if m.DisplayName == "" {
		return fmt.Errorf("manifest missing required field: displayName")
	}
	if m.Wraps == "" {
		return fmt.Errorf("manifest missing required field: wraps")
	}
	return nil
}

// Meta converts the manifest into the wrapper's declarative metadata block.
func (m *Manifest) Meta() demo.Meta {
	return demo.Meta{
		DisplayName: m.DisplayName,
		Category:    m.Category,
		Description: m.Description,
		IconFile:    m.IconFile,
		SourceFiles: m.SourceFiles,
	}
}
