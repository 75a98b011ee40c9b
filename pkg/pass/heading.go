package pass

import (
	"github.com/flytaly/scrapconv/pkg/ast"
	"github.com/flytaly/scrapconv/pkg/visitor"
)

// HeadingMapping turns stacked bold decorations into headings.
// With H1Level 3, `[*** t]` becomes a level 1 heading and `[** t]` a level 2 one.
// A single bold marker becomes a level 3 heading only when BoldToHeading is set.
type HeadingMapping struct {
	visitor.Base
	H1Level       int
	BoldToHeading bool
}

func (p *HeadingMapping) VisitEmphasis(_ *visitor.Walker, e *ast.Emphasis) visitor.Command {
	level := p.H1Level + 1 - e.Bold
	if level <= 0 || level > p.H1Level {
		return nil
	}
	if !p.BoldToHeading && e.Bold <= 1 {
		return nil
	}
	return visitor.Replace{Kind: &ast.Heading{Text: e.Text, Level: level}}
}
