/*
Package visitor walks an ast.Page depth-first and applies the commands
returned by a Visitor in place.
*/
package visitor

import (
	"github.com/flytaly/scrapconv/pkg/ast"
	"github.com/flytaly/scrapconv/pkg/log"
)

// Command is the outcome of visiting a node. A nil Command leaves the node as is.
type Command interface {
	command()
}

// Replace swaps the kind of the visited node. The new kind is not visited.
type Replace struct {
	Kind ast.Kind
}

// Delete turns the visited node into an *ast.Nop tombstone.
type Delete struct{}

func (Replace) command() {}
func (Delete) command()  {}

// Visitor has one method per node kind. Embed Base to get the defaults and
// override only what you need; recurse through the walker so overrides of
// the outer type are honored.
type Visitor interface {
	VisitParagraph(w *Walker, v *ast.Paragraph) Command
	VisitList(w *Walker, v *ast.List) Command
	VisitHashTag(w *Walker, v *ast.HashTag) Command
	VisitInternalLink(w *Walker, v *ast.InternalLink) Command
	VisitExternalLink(w *Walker, v *ast.ExternalLink) Command
	VisitEmphasis(w *Walker, v *ast.Emphasis) Command
	VisitHeading(w *Walker, v *ast.Heading) Command
	VisitBlockQuate(w *Walker, v *ast.BlockQuate) Command
	VisitCodeBlock(w *Walker, v *ast.CodeBlock) Command
	VisitTable(w *Walker, v *ast.Table) Command
	VisitImage(w *Walker, v *ast.Image) Command
	VisitMath(w *Walker, v *ast.Math) Command
	VisitText(w *Walker, v *ast.Text) Command
	// Finished stops the walk when it returns true. It is checked before every node.
	Finished() bool
}

// Walker drives a Visitor over a tree.
type Walker struct {
	v   Visitor
	log log.Logger
}

// Option configures a Walker.
type Option func(*Walker)

// WithLogger traces every applied command at debug level.
func WithLogger(l log.Logger) Option {
	return func(w *Walker) {
		w.log = l
	}
}

func New(v Visitor, options ...Option) *Walker {
	w := &Walker{v: v, log: log.NewEmptyLog()}
	for _, option := range options {
		option(w)
	}
	return w
}

// Walk visits every node of the page.
func Walk(page *ast.Page, v Visitor, options ...Option) {
	New(v, options...).Page(page)
}

func (w *Walker) Page(page *ast.Page) {
	w.Nodes(page.Nodes)
}

func (w *Walker) Nodes(nodes []ast.Node) {
	for i := range nodes {
		if w.v.Finished() {
			return
		}
		w.Node(&nodes[i])
	}
}

// Node visits a single node and applies the returned command to it.
func (w *Walker) Node(n *ast.Node) {
	if w.v.Finished() {
		return
	}
	var cmd Command
	switch k := n.Kind.(type) {
	case *ast.Paragraph:
		cmd = w.v.VisitParagraph(w, k)
	case *ast.List:
		cmd = w.v.VisitList(w, k)
	case *ast.HashTag:
		cmd = w.v.VisitHashTag(w, k)
	case *ast.InternalLink:
		cmd = w.v.VisitInternalLink(w, k)
	case *ast.ExternalLink:
		cmd = w.v.VisitExternalLink(w, k)
	case *ast.Emphasis:
		cmd = w.v.VisitEmphasis(w, k)
	case *ast.Heading:
		cmd = w.v.VisitHeading(w, k)
	case *ast.BlockQuate:
		cmd = w.v.VisitBlockQuate(w, k)
	case *ast.CodeBlock:
		cmd = w.v.VisitCodeBlock(w, k)
	case *ast.Table:
		cmd = w.v.VisitTable(w, k)
	case *ast.Image:
		cmd = w.v.VisitImage(w, k)
	case *ast.Math:
		cmd = w.v.VisitMath(w, k)
	case *ast.Text:
		cmd = w.v.VisitText(w, k)
	}

	switch c := cmd.(type) {
	case Replace:
		w.log.Debug("replace %T with %T", n.Kind, c.Kind)
		n.Kind = c.Kind
	case *Replace:
		w.log.Debug("replace %T with %T", n.Kind, c.Kind)
		n.Kind = c.Kind
	case Delete, *Delete:
		w.log.Debug("delete %T", n.Kind)
		n.Kind = &ast.Nop{}
	}
}

// Base provides the default behavior: containers recurse, leaves do nothing.
type Base struct{}

func (Base) VisitParagraph(w *Walker, v *ast.Paragraph) Command {
	w.Nodes(v.Children)
	return nil
}

func (Base) VisitList(w *Walker, v *ast.List) Command {
	for i := range v.Children {
		w.Nodes(v.Children[i].Children)
	}
	return nil
}

func (Base) VisitHashTag(*Walker, *ast.HashTag) Command           { return nil }
func (Base) VisitInternalLink(*Walker, *ast.InternalLink) Command { return nil }
func (Base) VisitExternalLink(*Walker, *ast.ExternalLink) Command { return nil }
func (Base) VisitEmphasis(*Walker, *ast.Emphasis) Command         { return nil }
func (Base) VisitHeading(*Walker, *ast.Heading) Command           { return nil }
func (Base) VisitBlockQuate(*Walker, *ast.BlockQuate) Command     { return nil }
func (Base) VisitCodeBlock(*Walker, *ast.CodeBlock) Command       { return nil }
func (Base) VisitTable(*Walker, *ast.Table) Command               { return nil }
func (Base) VisitImage(*Walker, *ast.Image) Command               { return nil }
func (Base) VisitMath(*Walker, *ast.Math) Command                 { return nil }
func (Base) VisitText(*Walker, *ast.Text) Command                 { return nil }
func (Base) Finished() bool                                       { return false }
