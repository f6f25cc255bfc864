// Copyright © 2025 Showcase contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: journal/journal.go
// Summary: SQLite-backed recorder of demo lifecycle transitions.
// Usage: Attached to demos as a change listener; the browser queries history per demo.

package journal

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"

	"github.com/framegrace/showcase/demo"
)

const schema = `
CREATE TABLE IF NOT EXISTS transitions (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	demo      TEXT NOT NULL,
	property  TEXT NOT NULL,
	old_value TEXT NOT NULL,
	new_value TEXT NOT NULL,
	at_nanos  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transitions_demo ON transitions(demo, id);
`

// Transition is one recorded property change.
type Transition struct {
	Demo     string
	Property string
	Old      string
	New      string
	At       time.Time
}

// Recorder persists demo property changes to a SQLite database. It
// implements demo.ChangeListener; recording failures are logged and never
// surface back into the wrapper, which must not fail because bookkeeping
// did.
type Recorder struct {
	db     *sql.DB
	insert *sql.Stmt
	logf   func(format string, args ...any)
	now    func() time.Time
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithLogf injects the logging sink. The default is log.Printf.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(r *Recorder) { r.logf = logf }
}

// withNow overrides the clock, for tests.
func withNow(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// Open creates or opens a journal database at path.
func Open(path string, opts ...Option) (*Recorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}
	insert, err := db.Prepare(
		"INSERT INTO transitions (demo, property, old_value, new_value, at_nanos) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("prepare journal insert: %w", err)
	}

	r := &Recorder{
		db:     db,
		insert: insert,
		logf:   log.Printf,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// DemoChanged records one property change. Implements demo.ChangeListener.
func (r *Recorder) DemoChanged(d *demo.Demo, property string, oldValue, newValue any) {
	_, err := r.insert.Exec(label(d), property,
		formatValue(oldValue), formatValue(newValue), r.now().UnixNano())
	if err != nil {
		r.logf("Journal: failed to record %s change for '%s': %v", property, label(d), err)
	}
}

// History returns every recorded transition for the named demo, oldest
// first.
func (r *Recorder) History(demoName string) ([]Transition, error) {
	rows, err := r.db.Query(
		"SELECT demo, property, old_value, new_value, at_nanos FROM transitions WHERE demo = ? ORDER BY id",
		demoName)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var out []Transition
	for rows.Next() {
		var tr Transition
		var nanos int64
		if err := rows.Scan(&tr.Demo, &tr.Property, &tr.Old, &tr.New, &nanos); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		tr.At = time.Unix(0, nanos)
		out = append(out, tr)
	}
	return out, rows.Err()
}

// Close releases the database.
func (r *Recorder) Close() error {
	r.insert.Close()
	return r.db.Close()
}

// label identifies a demo in the journal: the display name when present,
// otherwise the wrapped type.
func label(d *demo.Demo) string {
	if name := d.Name(); name != "" {
		return name
	}
	if t := d.DemoType(); t != nil {
		return t.String()
	}
	return "unknown"
}

// formatValue renders a notification value for storage. Components are
// stored by type, not by value; their contents are not the journal's
// business.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case demo.State:
		return val.String()
	case demo.Component:
		return fmt.Sprintf("%T", val)
	default:
		return fmt.Sprint(val)
	}
}
