// Copyright © 2025 Showcase contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: demo/metadata.go
// Summary: Derives display metadata from component type names and packages.
// Usage: Applied at construction when no declarative Meta block is supplied.

package demo

import (
	"reflect"
	"strings"
)

// DefaultDescription is used when a demo declares no description.
const DefaultDescription = "No demo description, run it to find out..."

// demosRoot is the package prefix stripped before category derivation for
// demos shipped in this module's own demos tree.
const demosRoot = "github.com/framegrace/showcase/demos/"

// Meta is the declarative metadata block a demo may supply instead of
// relying on naming-convention derivation. Zero fields fall back to the
// documented defaults.
type Meta struct {
	DisplayName string   `json:"displayName"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	IconFile    string   `json:"iconFile"`
	SourceFiles []string `json:"sourceFiles"`
}

// DeriveName produces a display name from a component type name.
// "TableDemo" becomes "Table Demo". Names that do not end in "Demo"
// derive an empty name; callers that dislike that supply Meta instead.
func DeriveName(typeName string) string {
	simple := typeName
	if i := strings.LastIndexAny(simple, "./"); i >= 0 {
		simple = simple[i+1:]
	}
	if !strings.HasSuffix(simple, "Demo") {
		return ""
	}
	return simple[:len(simple)-len("Demo")] + " " + "Demo"
}

// DeriveCategory returns the second-to-last dot-separated segment of a
// qualified type name, treating path separators as dots. Names with fewer
// than two segments fall back to "general".
func DeriveCategory(qualifiedName string) string {
	parts := strings.Split(strings.ReplaceAll(qualifiedName, "/", "."), ".")
	if len(parts) < 2 {
		return "general"
	}
	return parts[len(parts)-2]
}

// deriveNameFromType derives a display name from the concrete type.
func deriveNameFromType(t reflect.Type) string {
	return DeriveName(typeName(t))
}

// deriveCategoryFromType derives a category from the concrete type's
// package path. Demos under this module's demos tree have the root prefix
// stripped so the category reads "clock" rather than "showcase". Types
// without a package path at all land in "general".
func deriveCategoryFromType(t reflect.Type) string {
	pkg := typePkgPath(t)
	if pkg == "" {
		return "general"
	}
	pkg = strings.TrimPrefix(pkg, demosRoot)
	return DeriveCategory(pkg + "." + typeName(t))
}

// typeName returns the simple name of t, unwrapping one pointer level.
func typeName(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// typePkgPath returns the package path of t, unwrapping one pointer level.
func typePkgPath(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.PkgPath()
}
