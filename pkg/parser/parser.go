/*
Package parser implements the Markdown and Scrapbox grammars that turn text into
an ast.Page.
*/
package parser

import (
	"fmt"

	"github.com/flytaly/scrapconv/pkg/ast"
)

type options struct {
	origin string
}

// Option configures Parse.
type Option func(*options)

// WithScrapboxOrigin sets the host used for "[/project/page]" links.
func WithScrapboxOrigin(origin string) Option {
	return func(o *options) {
		o.origin = origin
	}
}

// Parse parses a whole document. It either consumes all of text or fails.
func Parse(text string, dialect ast.Dialect, opts ...Option) (*ast.Page, error) {
	o := options{origin: DefaultScrapboxOrigin}
	for _, opt := range opts {
		opt(&o)
	}

	// the grammars only know about "\n" so to make life easy for
	// callers normalize newlines
	text = string(NormalizeNewlines([]byte(text)))

	switch dialect {
	case ast.Markdown:
		c := NewCursor(text, MarkdownContext{})
		rest, nodes, err := mdPage(c)
		if err != nil {
			return nil, err
		}
		if !rest.Empty() {
			return nil, leftover(rest, mdBlock)
		}
		return &ast.Page{Nodes: nodes, Dialect: dialect}, nil
	case ast.Scrapbox:
		c := NewCursor(text, ScrapboxContext{Origin: o.origin})
		rest, nodes, err := sbPage(c)
		if err != nil {
			return nil, err
		}
		if !rest.Empty() {
			return nil, leftover(rest, sbBlock)
		}
		return &ast.Page{Nodes: nodes, Dialect: dialect}, nil
	}
	return nil, fmt.Errorf("unknown dialect %d", dialect)
}

// leftover reports why parsing stopped before the end of input.
func leftover[C any](rest Cursor[C], block func(Cursor[C]) (Cursor[C], ast.Node, error)) error {
	if _, _, err := block(rest); err != nil {
		return err
	}
	return fail(rest, "unexpected input")
}

// NormalizeNewlines replaces CRLF and CR line endings with LF.
func NormalizeNewlines(d []byte) []byte {
	wi := 0
	n := len(d)
	for i := 0; i < n; i++ {
		c := d[i]
		// 13 is CR
		if c != 13 {
			d[wi] = c
			wi++
			continue
		}
		// replace CR (mac / win) with LF (unix)
		d[wi] = 10
		wi++
		if i < n-1 && d[i+1] == 10 {
			// this was CRLF, so skip the LF
			i++
		}

	}
	return d[:wi]
}
