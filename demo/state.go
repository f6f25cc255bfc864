// Copyright © 2025 Showcase contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: demo/state.go
// Summary: Defines the lifecycle states a wrapped demo component moves through.
// Usage: Inspected by the hosting browser to decide what it may do with a demo.

package demo

// State is the lifecycle state of a wrapped demo component.
//
// The normal path is Uninitialized -> Initializing -> Initialized -> Running.
// Stopped and Failed are reachable from any active state. Failed is terminal
// for the current component instance; callers recover by supplying a new
// component via SetComponent or CreateComponent.
type State int

const (
	Uninitialized State = iota
	Initializing
	Initialized
	Running
	Stopped
	Failed
)

var stateNames = [...]string{
	Uninitialized: "uninitialized",
	Initializing:  "initializing",
	Initialized:   "initialized",
	Running:       "running",
	Stopped:       "stopped",
	Failed:        "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
