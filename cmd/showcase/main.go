// Copyright © 2025 Showcase contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/showcase/main.go
// Summary: Command-line front end for the demo catalog and lifecycle wrapper.
// Usage: Run `showcase list`, `showcase run <name>` or `showcase source <name>`.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/framegrace/showcase/catalog"
	"github.com/framegrace/showcase/demo"
	"github.com/framegrace/showcase/demos/clock"
	"github.com/framegrace/showcase/demos/shellbox"
	"github.com/framegrace/showcase/demos/welcome"
	"github.com/framegrace/showcase/journal"
	"github.com/framegrace/showcase/sourceview"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("showcase", flag.ContinueOnError)
	demosDir := fs.String("demos", "", "Directory of external demo manifests to scan")
	journalPath := fs.String("journal", "", "Path to the lifecycle journal database (default: none)")
	style := fs.String("style", "", "Chroma style for `showcase source` output")
	logPath := fs.String("log", "", "File to append lifecycle logs (default: stderr)")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if *logPath != "" {
		logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	cat := catalog.New(catalog.WithSourceFS(os.DirFS(".")))
	cat.RegisterBuiltIn("welcome", &welcome.WelcomeDemo{})
	cat.RegisterBuiltIn("clock", &clock.ClockDemo{})
	cat.RegisterBuiltIn("shellbox", &shellbox.ShellboxDemo{})

	if *demosDir != "" {
		if err := cat.Scan(*demosDir); err != nil {
			return fmt.Errorf("scan demos: %w", err)
		}
	}

	args := fs.Args()
	command := "list"
	if len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "list":
		return listDemos(cat)
	case "run":
		if len(args) < 2 {
			return fmt.Errorf("usage: showcase run <name>")
		}
		return runDemo(cat, args[1], *journalPath)
	case "source":
		if len(args) < 2 {
			return fmt.Errorf("usage: showcase source <name>")
		}
		return showSource(cat, args[1], *style)
	default:
		return fmt.Errorf("unknown command %q (want list, run or source)", command)
	}
}

// listDemos prints the catalog grouped by category, truncated to the
// terminal width.
func listDemos(cat *catalog.Catalog) error {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	groups := cat.ListByCategory()
	categories := make([]string, 0, len(groups))
	for category := range groups {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		fmt.Printf("%s\n", category)
		for _, entry := range groups[category] {
			name := entry.Demo.Name()
			if name == "" {
				name = entry.Name
			}
			line := fmt.Sprintf("  %-20s %s", name, entry.Demo.ShortDescription())
			fmt.Println(runewidth.Truncate(line, width, "…"))
		}
	}
	return nil
}

// runDemo drives one demo through its full lifecycle, optionally recording
// transitions to a journal, and prints what happened.
func runDemo(cat *catalog.Catalog, name, journalPath string) error {
	entry := cat.Get(name)
	if entry == nil {
		return fmt.Errorf("no demo named %q", name)
	}
	d := entry.Demo

	var rec *journal.Recorder
	if journalPath != "" {
		var err error
		rec, err = journal.Open(journalPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer rec.Close()
		d.AddChangeListener(rec)
		defer d.RemoveChangeListener(rec)
	}

	d.AddChangeListener(demo.ListenerFunc(func(d *demo.Demo, property string, oldValue, newValue any) {
		if property == demo.PropertyState {
			fmt.Printf("  %v -> %v\n", oldValue, newValue)
		}
	}))

	fmt.Printf("running %s\n", name)
	d.StartInitializing()
	if c := d.CreateComponent(); c == nil {
		return fmt.Errorf("create component: %w", d.FailErr())
	}
	d.Start()
	if d.State() == demo.Failed {
		return fmt.Errorf("start: %w", d.FailErr())
	}
	d.Stop()

	if rec != nil {
		history, err := rec.History(journalLabel(d))
		if err != nil {
			return fmt.Errorf("read journal: %w", err)
		}
		fmt.Printf("journal holds %d transitions for %s\n", len(history), journalLabel(d))
	}
	return nil
}

// showSource renders the demo's source files as highlighted HTML on stdout.
func showSource(cat *catalog.Catalog, name, style string) error {
	entry := cat.Get(name)
	if entry == nil {
		return fmt.Errorf("no demo named %q", name)
	}
	files := entry.Demo.SourceFiles()
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "demo %q declares no source files\n", name)
		return nil
	}
	return sourceview.New(style).RenderDemo(entry.Demo, os.Stdout)
}

// journalLabel mirrors how the journal names a demo.
func journalLabel(d *demo.Demo) string {
	if name := d.Name(); name != "" {
		return name
	}
	if t := d.DemoType(); t != nil {
		return t.String()
	}
	return "unknown"
}
