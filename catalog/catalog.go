// Copyright © 2025 Showcase contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: catalog/catalog.go
// Summary: Implements the demo catalog for discovering and managing demos.
// Usage: The browser shell scans demo directories and registers built-ins here.

package catalog

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/framegrace/showcase/demo"
)

// Entry represents one demo available to the browser.
type Entry struct {
	// Name is the catalog key, from the manifest or built-in registration.
	Name string

	// Demo is the lifecycle wrapper the browser drives.
	Demo *demo.Demo

	// Manifest is non-nil for demos discovered via Scan.
	Manifest *Manifest

	// Dir is the manifest directory for scanned demos.
	Dir string
}

// Catalog manages the collection of available demos. Built-in demos are
// registered in code; external directories describe wrapper demos through
// manifest.json files referencing a built-in prototype.
type Catalog struct {
	mu         sync.RWMutex
	builtIn    map[string]*Entry          // name -> entry
	external   map[string]*Entry          // name -> entry
	prototypes map[string]demo.Component  // name -> built-in prototype
	sourceFS   fs.FS
	logf       func(format string, args ...any)
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithSourceFS sets the filesystem demo source paths resolve against.
func WithSourceFS(fsys fs.FS) Option {
	return func(c *Catalog) { c.sourceFS = fsys }
}

// WithLogf injects the logging sink. The default is log.Printf.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(c *Catalog) { c.logf = logf }
}

// New creates a new empty catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		builtIn:    make(map[string]*Entry),
		external:   make(map[string]*Entry),
		prototypes: make(map[string]demo.Component),
		logf:       log.Printf,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RegisterBuiltIn registers a demo compiled into the binary. The prototype
// supplies the component type; metadata derives from it unless overridden
// through demoOpts. Built-ins have priority over external demos with the
// same name, and serve as instantiation targets for wrapper manifests.
func (c *Catalog) RegisterBuiltIn(name string, prototype demo.Component, demoOpts ...demo.Option) *Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	opts := append([]demo.Option{demo.WithLogf(c.logf)}, demoOpts...)
	if c.sourceFS != nil {
		opts = append(opts, demo.WithSourceFS(c.sourceFS))
	}
	entry := &Entry{
		Name: name,
		Demo: demo.New(prototype, opts...),
	}
	c.builtIn[name] = entry
	c.prototypes[name] = prototype
	c.logf("Catalog: registered built-in demo '%s'", name)
	return entry
}

// Scan searches for demos in the given directory. Each subdirectory should
// contain a manifest.json wrapping a registered built-in. Demos that fail
// to load are logged and skipped so one bad manifest cannot empty the
// browser.
func (c *Catalog) Scan(baseDir string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Clear external demos (keep built-ins)
	c.external = make(map[string]*Entry)

	if _, err := os.Stat(baseDir); os.IsNotExist(err) {
		c.logf("Catalog: demo directory does not exist: %s", baseDir)
		return nil // Not an error - just no external demos
	}

	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return fmt.Errorf("read demo directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(baseDir, entry.Name())
		if err := c.loadDemo(dir); err != nil {
			c.logf("Catalog: failed to load demo from %s: %v", dir, err)
			// Continue loading other demos
		}
	}

	c.logf("Catalog: loaded %d external demos, %d built-in demos", len(c.external), len(c.builtIn))
	return nil
}

// loadDemo attempts to load a single manifest-described demo.
func (c *Catalog) loadDemo(dir string) error {
	manifest, err := LoadManifest(dir)
	if err != nil {
		return err
	}

	prototype, ok := c.prototypes[manifest.Wraps]
	if !ok {
		return fmt.Errorf("wrapped demo not found: %s (for %s)", manifest.Wraps, manifest.Name)
	}

	opts := []demo.Option{
		demo.WithLogf(c.logf),
		demo.WithMeta(manifest.Meta()),
		demo.WithResources(os.DirFS(dir)),
	}
	if c.sourceFS != nil {
		opts = append(opts, demo.WithSourceFS(c.sourceFS))
	}

	c.external[manifest.Name] = &Entry{
		Name:     manifest.Name,
		Demo:     demo.New(prototype, opts...),
		Manifest: manifest,
		Dir:      dir,
	}
	c.logf("Catalog: loaded demo '%s' (%s) from %s", manifest.Name, manifest.DisplayName, dir)
	return nil
}

// Get retrieves a demo entry by name. Returns nil if the demo doesn't exist.
func (c *Catalog) Get(name string) *Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	// Check built-ins first
	if entry, ok := c.builtIn[name]; ok {
		return entry
	}
	return c.external[name]
}

// List returns all available demos sorted by display name, falling back to
// the catalog name for demos whose derived display name is empty.
func (c *Catalog) List() []*Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var entries []*Entry
	for _, entry := range c.builtIn {
		entries = append(entries, entry)
	}
	for _, entry := range c.external {
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return listKey(entries[i]) < listKey(entries[j])
	})
	return entries
}

// ListByCategory returns demos grouped by category, each group sorted the
// same way List sorts.
func (c *Catalog) ListByCategory() map[string][]*Entry {
	categories := make(map[string][]*Entry)
	for _, entry := range c.List() {
		category := entry.Demo.Category()
		if category == "" {
			category = "general"
		}
		categories[category] = append(categories[category], entry)
	}
	return categories
}

// Count returns the total number of registered demos.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.builtIn) + len(c.external)
}

func listKey(e *Entry) string {
	if name := e.Demo.Name(); name != "" {
		return name
	}
	return e.Name
}
