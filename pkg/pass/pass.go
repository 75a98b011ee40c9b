/*
Package pass rewrites a parsed page between parsing and printing.
*/
package pass

import (
	"github.com/flytaly/scrapconv/pkg/ast"
	"github.com/flytaly/scrapconv/pkg/config"
	"github.com/flytaly/scrapconv/pkg/visitor"
)

// Pass transforms a page in place.
type Pass func(*ast.Page)

// Apply runs the passes in order, each one as a full walk.
func Apply(page *ast.Page, passes ...Pass) *ast.Page {
	for _, p := range passes {
		p(page)
	}
	return page
}

// Walk turns a visitor into a pass.
func Walk(v visitor.Visitor, options ...visitor.Option) Pass {
	return func(page *ast.Page) {
		visitor.Walk(page, v, options...)
	}
}

// ForMarkdown is the default pipeline for Scrapbox pages printed as Markdown.
func ForMarkdown(cfg config.Config, options ...visitor.Option) []Pass {
	return []Pass{
		Walk(&HeadingMapping{H1Level: cfg.Heading1Mapping, BoldToHeading: cfg.BoldToHeading}, options...),
		Walk(&FlattenCodeBlocks{}, options...),
	}
}
