/*
Package convert wires the parser, the passes and the printers into the
conversions used by the command line and the watcher.
*/
package convert

import (
	"bytes"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/flytaly/scrapconv/pkg/ast"
	"github.com/flytaly/scrapconv/pkg/config"
	"github.com/flytaly/scrapconv/pkg/log"
	"github.com/flytaly/scrapconv/pkg/parser"
	"github.com/flytaly/scrapconv/pkg/pass"
	"github.com/flytaly/scrapconv/pkg/printer"
	"github.com/flytaly/scrapconv/pkg/visitor"
	"github.com/pkg/errors"
)

func Parse(text string, d ast.Dialect, opts ...parser.Option) (*ast.Page, error) {
	return parser.Parse(text, d, opts...)
}

func Print(page *ast.Page, d ast.Dialect, cfg config.Config) string {
	return printer.Print(page, d, cfg)
}

func ScrapboxToMarkdown(text string, cfg config.Config) (string, error) {
	return New(cfg).Convert(text, ast.Scrapbox)
}

func MarkdownToScrapbox(text string, cfg config.Config) (string, error) {
	return New(cfg).Convert(text, ast.Markdown)
}

// ToAST parses text and returns the dump of its tree.
func ToAST(text string, d ast.Dialect, format ast.Format) (string, error) {
	page, err := Parse(text, d)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := ast.Dump(&buf, page, format, false); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Target is the dialect a page of dialect d is converted to.
func Target(d ast.Dialect) ast.Dialect {
	if d == ast.Scrapbox {
		return ast.Markdown
	}
	return ast.Scrapbox
}

var extensions = map[string]ast.Dialect{
	".sb":       ast.Scrapbox,
	".scrapbox": ast.Scrapbox,
	".md":       ast.Markdown,
	".markdown": ast.Markdown,
}

// DialectOf guesses the dialect of a file from its extension.
func DialectOf(path string) (ast.Dialect, bool) {
	d, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return d, ok
}

// OutputPath is the sibling file a converted document is written to.
func OutputPath(path string, to ast.Dialect) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	if to == ast.Scrapbox {
		return base + ".sb"
	}
	return base + ".md"
}

type Converter struct {
	cfg     config.Config
	log     log.Logger
	parsing []parser.Option
}

type Option func(*Converter)

func WithLogger(l log.Logger) Option {
	return func(c *Converter) {
		c.log = l
	}
}

func WithScrapboxOrigin(origin string) Option {
	return func(c *Converter) {
		c.parsing = append(c.parsing, parser.WithScrapboxOrigin(origin))
	}
}

func New(cfg config.Config, options ...Option) *Converter {
	c := &Converter{cfg: cfg, log: log.NewEmptyLog()}
	for _, option := range options {
		option(c)
	}
	return c
}

// Page parses text and runs the passes needed before printing it in the other dialect.
func (c *Converter) Page(text string, from ast.Dialect) (*ast.Page, error) {
	page, err := Parse(text, from, c.parsing...)
	if err != nil {
		return nil, err
	}
	if from == ast.Scrapbox {
		pass.Apply(page, pass.ForMarkdown(c.cfg, visitor.WithLogger(c.log))...)
	}
	return page, nil
}

// Convert turns text of dialect from into the other dialect.
func (c *Converter) Convert(text string, from ast.Dialect) (string, error) {
	page, err := c.Page(text, from)
	if err != nil {
		return "", err
	}
	return Print(page, Target(from), c.cfg), nil
}

// File converts the file at path and returns the converted text with its dialect.
func (c *Converter) File(fsys fs.FS, path string) (string, ast.Dialect, error) {
	from, ok := DialectOf(path)
	if !ok {
		return "", 0, errors.Errorf("unknown file type: %s", path)
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return "", 0, errors.Wrap(err, "read")
	}
	out, err := c.Convert(string(data), from)
	if err != nil {
		return "", 0, errors.Wrap(err, path)
	}
	c.log.Debug("converted %s (%s -> %s)", path, from, Target(from))
	return out, Target(from), nil
}
