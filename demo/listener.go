// Copyright © 2025 Showcase contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: demo/listener.go
// Summary: Implements the change-listener list used to broadcast demo property changes.
// Usage: The hosting browser subscribes to observe state and component changes.

package demo

import "reflect"

// Property names delivered to change listeners.
const (
	PropertyState     = "state"
	PropertyComponent = "demoComponent"
)

// ChangeListener receives property-change notifications from a Demo.
// Delivery is synchronous and in subscription order, on the goroutine that
// triggered the change. Demo is single-threaded by contract, so listeners
// must not re-enter the demo from another goroutine.
type ChangeListener interface {
	DemoChanged(d *Demo, property string, oldValue, newValue any)
}

// ListenerFunc adapts a plain function to the ChangeListener interface.
type ListenerFunc func(d *Demo, property string, oldValue, newValue any)

func (f ListenerFunc) DemoChanged(d *Demo, property string, oldValue, newValue any) {
	f(d, property, oldValue, newValue)
}

// AddChangeListener subscribes l to future property changes.
func (d *Demo) AddChangeListener(l ChangeListener) {
	d.listeners = append(d.listeners, l)
}

// RemoveChangeListener unsubscribes l. Listeners registered more than once
// are removed once per call. Removing an unknown listener is a no-op.
// Listeners of non-comparable types (such as ListenerFunc) cannot be removed.
func (d *Demo) RemoveChangeListener(l ChangeListener) {
	for i, existing := range d.listeners {
		if listenerEqual(existing, l) {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			return
		}
	}
}

func listenerEqual(a, b ChangeListener) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta != nil && !ta.Comparable() {
		return false
	}
	return a == b
}

// fireChange delivers one notification to every registered listener.
func (d *Demo) fireChange(property string, oldValue, newValue any) {
	for _, l := range d.listeners {
		l.DemoChanged(d, property, oldValue, newValue)
	}
}
