// Copyright © 2025 Showcase contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: demo/component.go
// Summary: Declares the component contract and the optional lifecycle capabilities.
// Usage: Demo components implement Component; lifecycle hooks are opt-in interfaces.

package demo

import "github.com/gdamore/tcell/v2"

// Cell is a single styled character produced by a component's Render.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Component is the contract every wrapped demo component must satisfy.
// The wrapper itself never calls Render; drawing belongs to the hosting
// shell. The interface exists so SetComponent can validate instances.
type Component interface {
	Title() string
	Resize(cols, rows int)
	Render() [][]Cell
}

// The lifecycle hooks below are deliberately separate from Component.
// Heterogeneous demos opt into lifecycle events by implementing them;
// a missing hook is not an error. The wrapper probes for each capability
// with a type assertion at invocation time.

// Initializer is implemented by components that need setup after creation.
type Initializer interface {
	Init() error
}

// Starter is implemented by components that do work while visible.
type Starter interface {
	Start() error
}

// Stopper is implemented by components that must release resources when
// their panel is closed.
type Stopper interface {
	Stop() error
}
