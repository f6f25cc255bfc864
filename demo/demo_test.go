// Copyright © 2025 Showcase contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: demo/demo_test.go
// Summary: Exercises the lifecycle state machine and its failure handling.
// Usage: Executed during `go test` to guard against regressions.

package demo

import (
	"errors"
	"testing"
)

// discardLogf silences demo logging in tests.
func discardLogf(format string, args ...any) {}

// baseComp satisfies the Component contract with no optional hooks.
type baseComp struct {
	cols, rows int
}

func (b *baseComp) Title() string    { return "test component" }
func (b *baseComp) Resize(c, r int)  { b.cols, b.rows = c, r }
func (b *baseComp) Render() [][]Cell { return nil }

// PlainDemo has no lifecycle hooks at all.
type PlainDemo struct{ baseComp }

// oddlyNamed does not follow the *Demo naming convention.
type oddlyNamed struct{ baseComp }

// HookedDemo implements every optional hook and records invocations.
type HookedDemo struct {
	baseComp
	initErr, startErr, stopErr error
	panicOnStart               bool
	inits, starts, stops       int
}

func (h *HookedDemo) Init() error {
	h.inits++
	return h.initErr
}

func (h *HookedDemo) Start() error {
	h.starts++
	if h.panicOnStart {
		panic("start blew up")
	}
	return h.startErr
}

func (h *HookedDemo) Stop() error {
	h.stops++
	return h.stopErr
}

// change records one listener notification.
type change struct {
	property string
	old, new any
}

// recorder collects notifications in delivery order.
type recorder struct {
	changes []change
}

func (r *recorder) DemoChanged(d *Demo, property string, oldValue, newValue any) {
	r.changes = append(r.changes, change{property, oldValue, newValue})
}

func (r *recorder) states() []change {
	var out []change
	for _, c := range r.changes {
		if c.property == PropertyState {
			out = append(out, c)
		}
	}
	return out
}

func newTestDemo(prototype Component, opts ...Option) (*Demo, *recorder) {
	opts = append(opts, WithLogf(discardLogf))
	d := New(prototype, opts...)
	r := &recorder{}
	d.AddChangeListener(r)
	return d, r
}

func TestInitialState(t *testing.T) {
	d, _ := newTestDemo(&PlainDemo{})
	if d.State() != Uninitialized {
		t.Fatalf("initial state = %v, want uninitialized", d.State())
	}
	if d.Component() != nil {
		t.Fatalf("expected no component before creation")
	}
}

func TestStartInitializing(t *testing.T) {
	d, r := newTestDemo(&PlainDemo{})
	d.StartInitializing()
	if d.State() != Initializing {
		t.Fatalf("state = %v, want initializing", d.State())
	}
	want := []change{{PropertyState, Uninitialized, Initializing}}
	assertChanges(t, r.states(), want)
}

func TestSetComponentRejectsWrongType(t *testing.T) {
	d, r := newTestDemo(&PlainDemo{})

	err := d.SetComponent(&oddlyNamed{})
	if err == nil {
		t.Fatalf("expected error for mismatched component type")
	}
	if d.State() != Failed {
		t.Fatalf("state = %v, want failed", d.State())
	}
	if d.FailErr() == nil {
		t.Fatalf("expected failure detail to be recorded")
	}
	if d.Component() != nil {
		t.Fatalf("rejected instance must not be retained")
	}
	// The component-reference notification fires even on rejection.
	var sawComponent bool
	for _, c := range r.changes {
		if c.property == PropertyComponent {
			sawComponent = true
			if c.new != nil {
				t.Fatalf("component notification new = %v, want nil", c.new)
			}
		}
	}
	if !sawComponent {
		t.Fatalf("expected a demoComponent notification")
	}
}

func TestSetComponentWithoutInitHook(t *testing.T) {
	d, _ := newTestDemo(&PlainDemo{})
	if err := d.SetComponent(&PlainDemo{}); err != nil {
		t.Fatalf("SetComponent: %v", err)
	}
	if d.State() != Initialized {
		t.Fatalf("state = %v, want initialized", d.State())
	}
}

func TestSetComponentRunsInitHook(t *testing.T) {
	d, _ := newTestDemo(&HookedDemo{})
	c := &HookedDemo{}
	if err := d.SetComponent(c); err != nil {
		t.Fatalf("SetComponent: %v", err)
	}
	if c.inits != 1 {
		t.Fatalf("init hook called %d times, want 1", c.inits)
	}
	if d.State() != Initialized {
		t.Fatalf("state = %v, want initialized", d.State())
	}
}

func TestSetComponentInitHookFailure(t *testing.T) {
	d, r := newTestDemo(&HookedDemo{})
	boom := errors.New("init boom")
	if err := d.SetComponent(&HookedDemo{initErr: boom}); err != nil {
		t.Fatalf("init failures are absorbed into state, got error %v", err)
	}
	if d.State() != Failed {
		t.Fatalf("state = %v, want failed", d.State())
	}
	if !errors.Is(d.FailErr(), boom) {
		t.Fatalf("fail detail = %v, want %v", d.FailErr(), boom)
	}
	// Listeners observe Initialized before the failure transition.
	want := []change{
		{PropertyState, Uninitialized, Initialized},
		{PropertyState, Initialized, Failed},
	}
	assertChanges(t, r.states(), want)
}

func TestSetComponentNilClears(t *testing.T) {
	d, _ := newTestDemo(&PlainDemo{})
	if err := d.SetComponent(&PlainDemo{}); err != nil {
		t.Fatalf("SetComponent: %v", err)
	}
	if err := d.SetComponent(nil); err != nil {
		t.Fatalf("clearing component: %v", err)
	}
	if d.State() != Uninitialized {
		t.Fatalf("state = %v, want uninitialized after clear", d.State())
	}
	if d.Component() != nil {
		t.Fatalf("component not cleared")
	}
}

func TestCreateComponent(t *testing.T) {
	d, _ := newTestDemo(&PlainDemo{})
	c := d.CreateComponent()
	if c == nil {
		t.Fatalf("expected a component instance")
	}
	if _, ok := c.(*PlainDemo); !ok {
		t.Fatalf("created component has type %T, want *PlainDemo", c)
	}
	if d.State() != Initialized {
		t.Fatalf("state = %v, want initialized", d.State())
	}
	if d.Component() != c {
		t.Fatalf("created component not installed")
	}
}

func TestCreateComponentFactoryFailure(t *testing.T) {
	boom := errors.New("factory boom")
	d, _ := newTestDemo(&PlainDemo{}, WithFactory(func() (Component, error) {
		return nil, boom
	}))
	if c := d.CreateComponent(); c != nil {
		t.Fatalf("expected nil component on factory failure")
	}
	if d.State() != Failed {
		t.Fatalf("state = %v, want failed", d.State())
	}
	if !errors.Is(d.FailErr(), boom) {
		t.Fatalf("fail detail = %v, want %v", d.FailErr(), boom)
	}
}

func TestCreateComponentFactoryPanic(t *testing.T) {
	d, _ := newTestDemo(&PlainDemo{}, WithFactory(func() (Component, error) {
		panic("constructor exploded")
	}))
	if c := d.CreateComponent(); c != nil {
		t.Fatalf("expected nil component on factory panic")
	}
	if d.State() != Failed {
		t.Fatalf("state = %v, want failed", d.State())
	}
}

func TestCreateComponentWithoutTypeOrFactory(t *testing.T) {
	d, _ := newTestDemo(nil)
	if c := d.CreateComponent(); c != nil {
		t.Fatalf("expected nil component without type or factory")
	}
	if d.State() != Failed {
		t.Fatalf("state = %v, want failed", d.State())
	}
}

func TestStartWithoutHook(t *testing.T) {
	d, _ := newTestDemo(&PlainDemo{})
	d.CreateComponent()
	d.Start()
	if d.State() != Running {
		t.Fatalf("state = %v, want running", d.State())
	}
}

func TestStartRunsHook(t *testing.T) {
	d, _ := newTestDemo(&HookedDemo{})
	c := d.CreateComponent().(*HookedDemo)
	d.Start()
	if c.starts != 1 {
		t.Fatalf("start hook called %d times, want 1", c.starts)
	}
	if d.State() != Running {
		t.Fatalf("state = %v, want running", d.State())
	}
}

func TestStartHookFailure(t *testing.T) {
	d, _ := newTestDemo(&HookedDemo{})
	boom := errors.New("start boom")
	if err := d.SetComponent(&HookedDemo{startErr: boom}); err != nil {
		t.Fatalf("SetComponent: %v", err)
	}
	d.Start()
	if d.State() != Failed {
		t.Fatalf("state = %v, want failed", d.State())
	}
	if !errors.Is(d.FailErr(), boom) {
		t.Fatalf("fail detail = %v, want %v", d.FailErr(), boom)
	}
}

func TestStartHookPanic(t *testing.T) {
	d, _ := newTestDemo(&HookedDemo{})
	if err := d.SetComponent(&HookedDemo{panicOnStart: true}); err != nil {
		t.Fatalf("SetComponent: %v", err)
	}
	d.Start()
	if d.State() != Failed {
		t.Fatalf("state = %v, want failed after hook panic", d.State())
	}
	if d.FailErr() == nil {
		t.Fatalf("expected recorded panic detail")
	}
}

func TestStartWithoutComponent(t *testing.T) {
	d, _ := newTestDemo(&HookedDemo{})
	d.Start()
	if d.State() != Failed {
		t.Fatalf("state = %v, want failed when starting uncreated demo", d.State())
	}
}

func TestStopWithoutHook(t *testing.T) {
	d, _ := newTestDemo(&PlainDemo{})
	d.CreateComponent()
	d.Stop()
	if d.State() != Stopped {
		t.Fatalf("state = %v, want stopped", d.State())
	}
}

func TestStopRunsHook(t *testing.T) {
	d, _ := newTestDemo(&HookedDemo{})
	c := d.CreateComponent().(*HookedDemo)
	d.Start()
	d.Stop()
	if c.stops != 1 {
		t.Fatalf("stop hook called %d times, want 1", c.stops)
	}
	if d.State() != Stopped {
		t.Fatalf("state = %v, want stopped", d.State())
	}
}

func TestStopHookFailure(t *testing.T) {
	d, r := newTestDemo(&HookedDemo{})
	boom := errors.New("stop boom")
	if err := d.SetComponent(&HookedDemo{stopErr: boom}); err != nil {
		t.Fatalf("SetComponent: %v", err)
	}
	d.Stop()
	if d.State() != Failed {
		t.Fatalf("state = %v, want failed on stop hook error", d.State())
	}
	// Stopped is observed first, then the failure.
	states := r.states()
	if len(states) < 2 {
		t.Fatalf("expected at least two state notifications, got %v", states)
	}
	last := states[len(states)-1]
	prev := states[len(states)-2]
	if prev.new != Stopped || last.new != Failed {
		t.Fatalf("state order = %v then %v, want stopped then failed", prev.new, last.new)
	}
}

func TestStopWithoutComponentStaysStopped(t *testing.T) {
	d, _ := newTestDemo(&HookedDemo{})
	d.Stop()
	// The failure is recorded but does not displace the Stopped state.
	if d.State() != Stopped {
		t.Fatalf("state = %v, want stopped", d.State())
	}
	if d.FailErr() == nil {
		t.Fatalf("expected the absent-component failure to be recorded")
	}
}

func TestRecreateAfterStop(t *testing.T) {
	d, _ := newTestDemo(&HookedDemo{})
	d.CreateComponent()
	d.Start()
	d.Stop()
	if err := d.SetComponent(nil); err != nil {
		t.Fatalf("clearing component: %v", err)
	}
	if d.State() != Uninitialized {
		t.Fatalf("state = %v, want uninitialized after clear", d.State())
	}
	if c := d.CreateComponent(); c == nil {
		t.Fatalf("expected component to be recreatable")
	}
	d.Start()
	if d.State() != Running {
		t.Fatalf("state = %v, want running after recreation", d.State())
	}
}

func TestNotificationsPerListener(t *testing.T) {
	d, r1 := newTestDemo(&PlainDemo{})
	r2 := &recorder{}
	d.AddChangeListener(r2)

	d.StartInitializing()
	d.CreateComponent()

	if len(r1.changes) != len(r2.changes) {
		t.Fatalf("listener change counts differ: %d vs %d", len(r1.changes), len(r2.changes))
	}
	want := []change{
		{PropertyState, Uninitialized, Initializing},
		{PropertyState, Initializing, Initialized},
	}
	assertChanges(t, r1.states(), want)

	d.RemoveChangeListener(r2)
	d.Start()
	if len(r2.changes) != len(want)+1 { // +1 for the demoComponent change
		t.Fatalf("removed listener still receiving notifications")
	}
	if r1.states()[len(r1.states())-1].new != Running {
		t.Fatalf("remaining listener missed the running transition")
	}
}

func assertChanges(t *testing.T, got, want []change) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d notifications %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i].property != want[i].property || got[i].old != want[i].old || got[i].new != want[i].new {
			t.Fatalf("notification %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
