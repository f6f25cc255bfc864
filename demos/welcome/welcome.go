// Copyright © 2025 Showcase contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: demos/welcome/welcome.go
// Summary: A static welcome demo with no lifecycle hooks.
// Usage: Registered as a built-in; exercises the hook-absent success path.

package welcome

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/showcase/demo"
)

// WelcomeDemo displays a static greeting. It implements none of the
// optional lifecycle hooks: the wrapper treats every hook as present-and-
// successful.
type WelcomeDemo struct {
	width, height int
	mu            sync.RWMutex
}

func (w *WelcomeDemo) Title() string { return "Welcome" }

func (w *WelcomeDemo) Resize(cols, rows int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.width, w.height = cols, rows
}

func (w *WelcomeDemo) Render() [][]demo.Cell {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.width <= 0 || w.height <= 0 {
		return [][]demo.Cell{}
	}

	buffer := blankBuffer(w.width, w.height)
	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)

	msg := "Welcome to Showcase"
	y := w.height / 2
	x := (w.width - len(msg)) / 2
	if x < 0 {
		x = 0
	}
	for i, ch := range msg {
		if x+i < w.width {
			buffer[y][x+i] = demo.Cell{Ch: ch, Style: style}
		}
	}
	return buffer
}

func blankBuffer(width, height int) [][]demo.Cell {
	buffer := make([][]demo.Cell, height)
	for i := range buffer {
		buffer[i] = make([]demo.Cell, width)
		for j := range buffer[i] {
			buffer[i][j] = demo.Cell{Ch: ' ', Style: tcell.StyleDefault}
		}
	}
	return buffer
}
