package parser

import (
	"testing"

	"github.com/flytaly/scrapconv/pkg/ast"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

type noCtx struct{}

func cur(s string) Cursor[noCtx] {
	return NewCursor(s, noCtx{})
}

func node(k ast.Kind) ast.Node { return ast.NewNode(k) }

func para(children ...ast.Node) ast.Node {
	return node(&ast.Paragraph{Children: children})
}

func list(items ...ast.ListItem) ast.Node {
	return node(&ast.List{Children: items})
}

func item(kind ast.ListKind, level int, children ...ast.Node) ast.ListItem {
	return ast.ListItem{Kind: kind, Level: level, Children: children}
}

func txt(s string) ast.Node        { return node(&ast.Text{Value: s}) }
func tag_(s string) ast.Node       { return node(&ast.HashTag{Value: s}) }
func ilink(s string) ast.Node      { return node(&ast.InternalLink{Title: s}) }
func img(s string) ast.Node        { return node(&ast.Image{URI: s}) }
func quote(s string) ast.Node      { return node(&ast.BlockQuate{Value: s}) }
func math(s string) ast.Node       { return node(&ast.Math{Value: s}) }
func heading(s string, l int) ast.Node {
	return node(&ast.Heading{Text: s, Level: l})
}

func elink(title, url string) ast.Node {
	return node(ast.NewExternalLink(title, url))
}

func diffNodes(t *testing.T, want, got []ast.Node) {
	t.Helper()
	if d := cmp.Diff(want, got, cmpopts.EquateEmpty()); d != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", d)
	}
}

func parse(t *testing.T, text string, d ast.Dialect, opts ...Option) []ast.Node {
	t.Helper()
	page, err := Parse(text, d, opts...)
	require.NoError(t, err)
	require.Equal(t, d, page.Dialect)
	return page.Nodes
}
