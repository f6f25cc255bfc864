// Copyright © 2025 Showcase contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: sourceview/sourceview.go
// Summary: Renders a demo's source files as syntax-highlighted HTML.
// Usage: The browser's source pane feeds resolved source files through a Viewer.

package sourceview

import (
	"fmt"
	"io"
	"io/fs"
	"path"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/go-enry/go-enry/v2"

	"github.com/framegrace/showcase/demo"
)

const defaultStyleName = "catppuccin-mocha"

// Viewer renders source files with chroma highlighting. Language detection
// runs through go-enry first, which handles filenames and shebangs better
// than extension matching alone.
type Viewer struct {
	style     *chroma.Style
	formatter *html.Formatter
}

// New creates a Viewer rendering with the named chroma style. An empty or
// unknown name falls back to the default style.
func New(styleName string) *Viewer {
	if styleName == "" {
		styleName = defaultStyleName
	}
	return &Viewer{
		style:     styles.Get(styleName),
		formatter: html.New(html.WithLineNumbers(true)),
	}
}

// RenderDemo renders every resolved source file of d to w, each under an
// HTML heading carrying the file path. Demos without source files render
// nothing and return nil.
func (v *Viewer) RenderDemo(d *demo.Demo, w io.Writer) error {
	fsys := d.SourceFS()
	for _, p := range d.SourceFiles() {
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			// SourceFiles already filtered unresolvable entries; a read
			// failing now means the filesystem changed underneath us.
			return fmt.Errorf("read source file %s: %w", p, err)
		}
		if _, err := fmt.Fprintf(w, "<h2>%s</h2>\n", p); err != nil {
			return err
		}
		if err := v.RenderFile(p, content, w); err != nil {
			return fmt.Errorf("render %s: %w", p, err)
		}
	}
	return nil
}

// RenderFile highlights a single file's content to w.
func (v *Viewer) RenderFile(filePath string, content []byte, w io.Writer) error {
	lexer := lexerFor(filePath, content)
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, string(content))
	if err != nil {
		return fmt.Errorf("tokenise: %w", err)
	}
	return v.formatter.Format(w, v.style, iterator)
}

// lexerFor picks a chroma lexer via enry language detection, falling back
// to chroma's own content analysis and finally the plaintext lexer.
func lexerFor(filePath string, content []byte) chroma.Lexer {
	if lang := enry.GetLanguage(path.Base(filePath), content); lang != enry.OtherLanguage {
		if lexer := lexers.Get(lang); lexer != nil {
			return lexer
		}
	}
	if lexer := lexers.Match(path.Base(filePath)); lexer != nil {
		return lexer
	}
	if lexer := lexers.Analyse(string(content)); lexer != nil {
		return lexer
	}
	return lexers.Fallback
}
