// Copyright © 2025 Showcase contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: demos/shellbox/shellbox.go
// Summary: A demo hosting an external command inside a pty.
// Usage: Registered as a built-in; its Start hook can genuinely fail, which
//        makes it the canonical exercise of the wrapper's failure handling.

package shellbox

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/creack/pty"
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/showcase/demo"
)

const maxScrollback = 200

// ShellboxDemo runs a command under a pseudo-terminal and renders the tail
// of its output. Unlike the other built-ins its Start hook depends on the
// host system, so it can fail for real reasons (missing binary, exhausted
// ptys) and the wrapper's Failed state is reachable outside of tests.
type ShellboxDemo struct {
	Command string
	Args    []string

	cmd     *exec.Cmd
	ptyFile *os.File

	width, height int
	lines         []string
	partial       string
	mu            sync.RWMutex
}

func (s *ShellboxDemo) Title() string {
	if s.Command == "" {
		return "Shellbox"
	}
	return "Shellbox: " + s.Command
}

// Init picks a default command when none was configured.
func (s *ShellboxDemo) Init() error {
	if s.Command == "" {
		s.Command = os.Getenv("SHELL")
	}
	if s.Command == "" {
		s.Command = "/bin/sh"
	}
	return nil
}

// Start launches the command in a pty and begins collecting output.
func (s *ShellboxDemo) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd != nil {
		return fmt.Errorf("shellbox already running %s", s.Command)
	}

	cmd := exec.Command(s.Command, s.Args...)
	f, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("start %s in pty: %w", s.Command, err)
	}
	s.cmd = cmd
	s.ptyFile = f

	go s.readLoop(f)
	return nil
}

// Stop terminates the command and releases the pty. Stopping a shellbox
// that never started is a no-op.
func (s *ShellboxDemo) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd == nil {
		return nil
	}
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	_ = s.ptyFile.Close()
	// Reap the child so it doesn't linger as a zombie.
	go s.cmd.Wait()
	s.cmd = nil
	s.ptyFile = nil
	return nil
}

// readLoop drains the pty until it closes, keeping a bounded scrollback.
func (s *ShellboxDemo) readLoop(f *os.File) {
	buf := make([]byte, 4096)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			s.appendOutput(string(buf[:n]))
		}
		if err != nil {
			return
		}
	}
}

func (s *ShellboxDemo) appendOutput(chunk string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := s.partial + strings.ReplaceAll(chunk, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	s.partial = parts[len(parts)-1]
	s.lines = append(s.lines, parts[:len(parts)-1]...)
	if len(s.lines) > maxScrollback {
		s.lines = s.lines[len(s.lines)-maxScrollback:]
	}
}

func (s *ShellboxDemo) Resize(cols, rows int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = cols, rows
	if s.ptyFile != nil {
		_ = pty.Setsize(s.ptyFile, &pty.Winsize{
			Cols: uint16(cols),
			Rows: uint16(rows),
		})
	}
}

func (s *ShellboxDemo) Render() [][]demo.Cell {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.width <= 0 || s.height <= 0 {
		return [][]demo.Cell{}
	}

	buffer := make([][]demo.Cell, s.height)
	for i := range buffer {
		buffer[i] = make([]demo.Cell, s.width)
		for j := range buffer[i] {
			buffer[i][j] = demo.Cell{Ch: ' ', Style: tcell.StyleDefault}
		}
	}

	// Tail of the scrollback, one line per row.
	visible := s.lines
	if len(visible) > s.height {
		visible = visible[len(visible)-s.height:]
	}
	for y, line := range visible {
		for x, ch := range line {
			if x >= s.width {
				break
			}
			buffer[y][x] = demo.Cell{Ch: ch, Style: tcell.StyleDefault}
		}
	}
	return buffer
}
