package pass

import (
	"github.com/flytaly/scrapconv/pkg/ast"
	"github.com/flytaly/scrapconv/pkg/visitor"
)

// FlattenCodeBlocks lifts code blocks out of lists. Markdown has no way to nest
// a fenced block under a list item, so a list is split around every item that
// starts with a code block.
type FlattenCodeBlocks struct {
	visitor.Base
}

func startsWithCode(it ast.ListItem) (*ast.CodeBlock, bool) {
	if len(it.Children) == 0 {
		return nil, false
	}
	cb, ok := it.Children[0].Kind.(*ast.CodeBlock)
	return cb, ok
}

func (p *FlattenCodeBlocks) VisitList(w *visitor.Walker, l *ast.List) visitor.Command {
	found := false
	for _, it := range l.Children {
		if _, ok := startsWithCode(it); ok {
			found = true
			break
		}
	}
	if !found {
		return p.Base.VisitList(w, l)
	}

	var nodes []ast.Node
	lastIsCode := true
	for _, it := range l.Children {
		if cb, ok := startsWithCode(it); ok {
			nodes = append(nodes, ast.NewNode(cb))
			lastIsCode = true
			if len(it.Children) > 1 {
				rest := ast.ListItem{Kind: it.Kind, Level: it.Level, Children: it.Children[1:]}
				nodes = append(nodes, ast.NewNode(&ast.List{Children: []ast.ListItem{rest}}))
			}
			continue
		}
		if lastIsCode {
			nodes = append(nodes, ast.NewNode(&ast.List{Children: []ast.ListItem{it}}))
		} else {
			last := nodes[len(nodes)-1].Kind.(*ast.List)
			last.Children = append(last.Children, it)
		}
		lastIsCode = false
	}

	if len(nodes) == 1 {
		return visitor.Replace{Kind: nodes[0].Kind}
	}
	return visitor.Replace{Kind: &ast.Paragraph{Children: nodes}}
}
