// Copyright © 2025 Showcase contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: demo/resources.go
// Summary: Resolves a demo's icon, HTML description and source file resources.
// Usage: Lazy, memoized lookups against the filesystems supplied at construction.

package demo

import (
	"bytes"
	"image"
	"io/fs"
	"path"

	// Decoders for the conventional icon formats, tried in this order.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// imageExtensions are the fallback icon extensions, tried in order.
var imageExtensions = []string{".gif", ".png", ".jpg"}

// Icon returns the demo's icon image. The declared icon path wins; without
// one the conventional resources/images/<TypeName><ext> paths are tried in
// extension order and the first decodable image is kept. The result is
// memoized, including the "no icon" outcome. A missing icon is not an
// error and simply returns nil.
func (d *Demo) Icon() image.Image {
	if d.iconResolved {
		return d.icon
	}
	d.iconResolved = true
	if d.iconPath != "" {
		d.icon = d.loadIcon(d.iconPath)
		return d.icon
	}
	if d.demoType == nil {
		return nil
	}
	for _, ext := range imageExtensions {
		if img := d.loadIcon(d.iconImagePath(ext)); img != nil {
			d.icon = img
			break
		}
	}
	return d.icon
}

// iconImagePath is the conventional icon location for this demo's type.
func (d *Demo) iconImagePath(ext string) string {
	return path.Join("resources", "images", typeName(d.demoType)+ext)
}

func (d *Demo) loadIcon(p string) image.Image {
	if d.resources == nil {
		return nil
	}
	data, err := fs.ReadFile(d.resources, p)
	if err != nil {
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return img
}

// HTMLDescription returns the demo's long-form description, conventionally
// stored at resources/<TypeName>.html in the demo's resource filesystem.
// It returns nil when no such resource exists.
func (d *Demo) HTMLDescription() []byte {
	if d.resources == nil || d.demoType == nil {
		return nil
	}
	data, err := fs.ReadFile(d.resources, path.Join("resources", typeName(d.demoType)+".html"))
	if err != nil {
		return nil
	}
	return data
}

// SourceFiles returns the declared source file paths that resolve against
// the source filesystem, in declaration order. Entries that do not resolve
// are logged and skipped; they never fail the lookup. The result is
// memoized on first call.
func (d *Demo) SourceFiles() []string {
	if d.sourcesResolved {
		return d.sourceFiles
	}
	d.sourcesResolved = true
	var resolved []string
	for _, p := range d.sourceFilePaths {
		if d.sourceFS == nil {
			d.logf("Demo: '%s': unable to load source file '%s': no source filesystem", d.name, p)
			continue
		}
		if _, err := fs.Stat(d.sourceFS, p); err != nil {
			d.logf("Demo: '%s': unable to load source file '%s': %v", d.name, p, err)
			continue
		}
		resolved = append(resolved, p)
	}
	d.sourceFiles = resolved
	return d.sourceFiles
}

// SourceFS exposes the filesystem source files resolve against, so viewers
// can read the contents of what SourceFiles returns.
func (d *Demo) SourceFS() fs.FS { return d.sourceFS }
