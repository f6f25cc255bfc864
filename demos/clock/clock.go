// Copyright © 2025 Showcase contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: demos/clock/clock.go
// Summary: A ticking clock demo implementing every optional lifecycle hook.
// Usage: Registered as a built-in; exercises the full init/start/stop protocol.

package clock

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/showcase/demo"
)

// ClockDemo displays the current time, refreshed by a background ticker.
// The ticker goroutine is the demo's own concern; the wrapper only sees
// the Init/Start/Stop hooks.
type ClockDemo struct {
	width, height int
	currentTime   string
	format        string
	mu            sync.RWMutex
	stop          chan struct{}
	running       bool
}

func (c *ClockDemo) Title() string { return "Clock" }

// Init prepares the demo before it is shown.
func (c *ClockDemo) Init() error {
	c.format = "15:04:05"
	c.updateTime()
	return nil
}

// Start launches the ticker. Starting an already-started clock is an
// error; the wrapper will record it and mark the demo failed.
func (c *ClockDemo) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return fmt.Errorf("clock already running")
	}
	c.stop = make(chan struct{})
	c.running = true
	go c.run(c.stop)
	return nil
}

// Stop terminates the ticker. Stopping a never-started clock is a no-op.
func (c *ClockDemo) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return nil
	}
	close(c.stop)
	c.running = false
	return nil
}

func (c *ClockDemo) run(stop <-chan struct{}) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.updateTime()
		case <-stop:
			return
		}
	}
}

func (c *ClockDemo) updateTime() {
	c.mu.Lock()
	defer c.mu.Unlock()
	format := c.format
	if format == "" {
		format = "15:04:05"
	}
	c.currentTime = time.Now().Format(format)
}

func (c *ClockDemo) Resize(cols, rows int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width, c.height = cols, rows
}

func (c *ClockDemo) Render() [][]demo.Cell {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.width <= 0 || c.height <= 0 {
		return [][]demo.Cell{}
	}

	buffer := make([][]demo.Cell, c.height)
	for i := range buffer {
		buffer[i] = make([]demo.Cell, c.width)
		for j := range buffer[i] {
			buffer[i][j] = demo.Cell{Ch: ' ', Style: tcell.StyleDefault}
		}
	}

	style := tcell.StyleDefault.Foreground(tcell.PaletteColor(6))
	str := fmt.Sprintf("Time: %s", c.currentTime)
	y := c.height / 2
	x := (c.width - len(str)) / 2
	if y < c.height && x >= 0 {
		for i, ch := range str {
			if x+i < c.width {
				buffer[y][x+i] = demo.Cell{Ch: ch, Style: style}
			}
		}
	}
	return buffer
}
