// Copyright © 2025 Showcase contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: demo/demo.go
// Summary: Implements the lifecycle wrapper around a single demo component.
// Usage: The hosting browser constructs one Demo per catalog entry and drives it.

package demo

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log"
	"reflect"
)

// Demo wraps one demo component for display inside a browser shell. It owns
// the component instance, drives it through the lifecycle state machine and
// broadcasts property changes to registered listeners.
//
// A Demo lives for the life of its catalog entry; the wrapped component may
// be created, cleared and recreated many times as its panel is opened and
// closed. All methods must be called from the hosting shell's single control
// goroutine; there is no internal locking.
type Demo struct {
	demoType reflect.Type

	name             string
	category         string
	shortDescription string
	iconPath         string
	sourceFilePaths  []string

	// Memoized lookups. Resolved at most once, even when resolution
	// finds nothing.
	icon            image.Image
	iconResolved    bool
	sourceFiles     []string
	sourcesResolved bool

	component Component
	state     State
	failErr   error

	listeners []ChangeListener

	resources fs.FS
	sourceFS  fs.FS
	factory   func() (Component, error)
	logf      func(format string, args ...any)
}

// Option configures a Demo at construction.
type Option func(*Demo)

// WithMeta supplies declarative metadata. Empty fields keep their
// documented defaults: name and category fall back to type derivation,
// the description to DefaultDescription, the icon to the conventional
// image paths and the source list to empty.
func WithMeta(m Meta) Option {
	return func(d *Demo) {
		if m.DisplayName != "" {
			d.name = m.DisplayName
		}
		if m.Category != "" {
			d.category = m.Category
		}
		if m.Description != "" {
			d.shortDescription = m.Description
		}
		if m.IconFile != "" {
			d.iconPath = m.IconFile
		}
		if len(m.SourceFiles) > 0 {
			d.sourceFilePaths = append([]string(nil), m.SourceFiles...)
		}
	}
}

// WithResources sets the filesystem the demo's icon and HTML description
// are resolved against, rooted at the demo's own resource namespace.
func WithResources(fsys fs.FS) Option {
	return func(d *Demo) { d.resources = fsys }
}

// WithSourceFS sets the filesystem declared source file paths are resolved
// against. This is typically shared by the whole catalog.
func WithSourceFS(fsys fs.FS) Option {
	return func(d *Demo) { d.sourceFS = fsys }
}

// WithFactory replaces the default reflect-based instantiation used by
// CreateComponent. The factory must return the same concrete type as the
// prototype, or SetComponent will reject the result.
func WithFactory(factory func() (Component, error)) Option {
	return func(d *Demo) { d.factory = factory }
}

// WithLogf injects the logging sink. The default is log.Printf.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(d *Demo) { d.logf = logf }
}

// New wraps the component type exemplified by prototype. The prototype is
// only consulted for its concrete type; it is never stored or started.
// Display metadata is derived from the type unless overridden via WithMeta.
func New(prototype Component, opts ...Option) *Demo {
	d := &Demo{
		state: Uninitialized,
		logf:  log.Printf,
	}
	if prototype != nil {
		d.demoType = reflect.TypeOf(prototype)
		d.name = deriveNameFromType(d.demoType)
		d.category = deriveCategoryFromType(d.demoType)
	}
	d.shortDescription = DefaultDescription
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DemoType returns the concrete component type this demo wraps. It is nil
// for factory-only demos constructed without a prototype.
func (d *Demo) DemoType() reflect.Type { return d.demoType }

// Name returns the display name.
func (d *Demo) Name() string { return d.name }

// Category returns the catalog category.
func (d *Demo) Category() string { return d.category }

// ShortDescription returns the tooltip-sized description.
func (d *Demo) ShortDescription() string { return d.shortDescription }

// State returns the current lifecycle state.
func (d *Demo) State() State { return d.state }

// FailErr returns the error recorded by the most recent failure, or nil
// when the demo has never failed. Later failures overwrite earlier ones.
func (d *Demo) FailErr() error { return d.failErr }

// Component returns the wrapped component instance, or nil when absent.
func (d *Demo) Component() Component { return d.component }

// StartInitializing marks the demo as initializing. The hosting shell calls
// this before component creation begins so listeners can show progress.
func (d *Demo) StartInitializing() {
	d.setState(Initializing)
}

// SetComponent installs a component instance and runs the init protocol.
//
// A non-nil instance of the wrong concrete type transitions the demo to
// Failed and returns an error; the rejected instance is not retained. A
// valid instance is stored and initialized: Initialized on success, Failed
// if its optional Init hook errors. A nil instance clears the component and
// returns the demo to Uninitialized. In every case one "demoComponent"
// change notification is fired.
func (d *Demo) SetComponent(c Component) error {
	if c != nil && d.demoType != nil && reflect.TypeOf(c) != d.demoType {
		err := fmt.Errorf("component must be an instance of %s, got %T", d.demoType, c)
		d.failErr = err
		d.setState(Failed)
		d.fireChange(PropertyComponent, d.component, d.component)
		return err
	}

	old := d.component
	d.component = c

	if c != nil {
		d.initComponent()
	} else {
		d.setState(Uninitialized)
	}
	d.fireChange(PropertyComponent, old, c)
	return nil
}

// CreateComponent instantiates the demo type and installs it via
// SetComponent. Instantiation failures are absorbed: they are logged,
// recorded and leave the demo Failed, returning nil rather than an error,
// since the browser only reacts to the resulting state.
func (d *Demo) CreateComponent() Component {
	c, err := d.instantiate()
	if err == nil {
		err = d.SetComponent(c)
	}
	if err != nil {
		d.logf("Demo: '%s': create component: %v", d.name, err)
		d.failErr = err
		d.setState(Failed)
		return nil
	}
	return c
}

// Start invokes the component's optional Start hook and marks the demo
// Running. A missing hook is success. A hook error, a hook panic, or a
// missing component leaves the demo Failed instead.
func (d *Demo) Start() {
	if d.component == nil {
		err := errors.New("start called before demo was instantiated")
		d.logf("Demo: '%s': %v", d.name, err)
		d.failErr = err
		d.setState(Failed)
		return
	}
	if s, ok := d.component.(Starter); ok {
		if err := safeCall("start", s.Start); err != nil {
			d.logf("Demo: '%s': start hook failed: %v", d.name, err)
			d.failErr = err
			d.setState(Failed)
			return
		}
	}
	d.setState(Running)
}

// Stop marks the demo Stopped and then invokes the component's optional
// Stop hook. Stopped is set first so listeners observe it even when the
// hook misbehaves. A hook error or panic still moves the demo to Failed;
// stopping a demo whose component was never created is recorded but leaves
// the Stopped state standing.
func (d *Demo) Stop() {
	d.setState(Stopped)
	if d.component == nil {
		err := errors.New("stop called before demo was instantiated")
		d.logf("Demo: '%s': %v", d.name, err)
		d.failErr = err
		return
	}
	if s, ok := d.component.(Stopper); ok {
		if err := safeCall("stop", s.Stop); err != nil {
			d.logf("Demo: '%s': stop hook failed: %v", d.name, err)
			d.failErr = err
			d.setState(Failed)
		}
	}
}

// initComponent runs the init protocol on a freshly installed component.
func (d *Demo) initComponent() {
	d.setState(Initialized)
	if d.component == nil {
		err := errors.New("init called before demo was instantiated")
		d.logf("Demo: '%s': %v", d.name, err)
		d.failErr = err
		d.setState(Failed)
		return
	}
	if i, ok := d.component.(Initializer); ok {
		if err := safeCall("init", i.Init); err != nil {
			d.logf("Demo: '%s': init hook failed: %v", d.name, err)
			d.failErr = err
			d.setState(Failed)
		}
	}
}

// instantiate builds a new component instance, via the injected factory
// when present, otherwise by reflecting over the prototype's type.
func (d *Demo) instantiate() (c Component, err error) {
	defer func() {
		if r := recover(); r != nil {
			c, err = nil, fmt.Errorf("component construction panicked: %v", r)
		}
	}()
	if d.factory != nil {
		return d.factory()
	}
	if d.demoType == nil {
		return nil, errors.New("demo has neither a component type nor a factory")
	}
	t := d.demoType
	var v reflect.Value
	if t.Kind() == reflect.Pointer {
		v = reflect.New(t.Elem())
	} else {
		v = reflect.New(t).Elem()
	}
	c, ok := v.Interface().(Component)
	if !ok {
		return nil, fmt.Errorf("type %s does not implement demo.Component", t)
	}
	return c, nil
}

// setState records a transition and notifies listeners.
func (d *Demo) setState(s State) {
	old := d.state
	d.state = s
	d.logf("Demo: '%s': state %s -> %s", d.name, old, s)
	d.fireChange(PropertyState, old, s)
}

// safeCall invokes a lifecycle hook, converting a panic into an error so a
// misbehaving demo cannot take the browser down with it.
func safeCall(hook string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s hook panicked: %v", hook, r)
		}
	}()
	return fn()
}
