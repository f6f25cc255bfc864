// Copyright © 2025 Showcase contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: demos/shellbox/shellbox_test.go
// Summary: Exercises shellbox startup failures and output handling.
// Usage: Executed during `go test` to guard against regressions.

package shellbox

import (
	"testing"

	"github.com/framegrace/showcase/demo"
)

func discardLogf(format string, args ...any) {}

func TestStartFailureReachesFailedState(t *testing.T) {
	d := demo.New(&ShellboxDemo{}, demo.WithLogf(discardLogf),
		demo.WithFactory(func() (demo.Component, error) {
			return &ShellboxDemo{Command: "/definitely/not/a/binary"}, nil
		}))

	d.CreateComponent()
	if d.State() != demo.Initialized {
		t.Fatalf("after create: state=%v", d.State())
	}

	d.Start()
	if d.State() != demo.Failed {
		t.Fatalf("starting a missing binary should fail the demo, state=%v", d.State())
	}
	if d.FailErr() == nil {
		t.Fatalf("expected recorded failure detail")
	}
}

func TestInitDefaultsCommand(t *testing.T) {
	s := &ShellboxDemo{}
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if s.Command == "" {
		t.Fatalf("expected a default command")
	}
}

func TestStopWithoutStart(t *testing.T) {
	s := &ShellboxDemo{}
	if err := s.Stop(); err != nil {
		t.Fatalf("stopping a never-started shellbox: %v", err)
	}
}

func TestAppendOutputKeepsTail(t *testing.T) {
	s := &ShellboxDemo{}
	for i := 0; i < maxScrollback+50; i++ {
		s.appendOutput("line\n")
	}
	if len(s.lines) != maxScrollback {
		t.Fatalf("scrollback length = %d, want %d", len(s.lines), maxScrollback)
	}

	s2 := &ShellboxDemo{}
	s2.appendOutput("partial")
	if len(s2.lines) != 0 || s2.partial != "partial" {
		t.Fatalf("incomplete line must stay pending: lines=%v partial=%q", s2.lines, s2.partial)
	}
	s2.appendOutput(" done\n")
	if len(s2.lines) != 1 || s2.lines[0] != "partial done" {
		t.Fatalf("joined line = %v", s2.lines)
	}
}
