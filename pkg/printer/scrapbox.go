package printer

import (
	"strconv"
	"strings"

	"github.com/flytaly/scrapconv/pkg/ast"
	"github.com/flytaly/scrapconv/pkg/config"
	"github.com/flytaly/scrapconv/pkg/visitor"
)

type scrapboxPrinter struct {
	visitor.Base
	buf  buffer
	page *ast.Page
	h1   int
	// level is the number of tabs written for the current list item, 0 outside lists.
	level int
	// blockEnded is set when the last thing written was a block with its own line break.
	blockEnded bool
}

// Scrapbox renders page as Scrapbox text. Headings are written back as bold
// decorations using cfg.Heading1Mapping.
func Scrapbox(page *ast.Page, cfg config.Config) string {
	p := &scrapboxPrinter{page: page, h1: cfg.Heading1Mapping}
	visitor.Walk(page, p)
	return p.buf.String()
}

func (p *scrapboxPrinter) write(s ...string) {
	p.blockEnded = false
	p.buf.write(s...)
}

func (p *scrapboxPrinter) blockPrefix() string {
	return " " + strings.Repeat(" ", p.level)
}

func (p *scrapboxPrinter) VisitParagraph(w *visitor.Walker, v *ast.Paragraph) visitor.Command {
	p.blockEnded = false
	w.Nodes(v.Children)
	if p.blockEnded {
		return nil
	}
	p.write("\n")
	return nil
}

func (p *scrapboxPrinter) VisitList(w *visitor.Walker, v *ast.List) visitor.Command {
	var ord ordinal
	for _, it := range v.Children {
		n := ord.next(it.Kind)
		p.level = depth(p.page, it.Level) + 1
		p.write(strings.Repeat("\t", p.level))
		switch it.Kind {
		case ast.Decimal:
			p.write(strconv.Itoa(n), ". ")
		case ast.Alphabet:
			p.write(letter(n), ". ")
		}
		w.Nodes(it.Children)
		if !p.blockEnded {
			p.write("\n")
		}
		p.blockEnded = false
	}
	p.level = 0
	return nil
}

func (p *scrapboxPrinter) VisitHashTag(_ *visitor.Walker, v *ast.HashTag) visitor.Command {
	p.write("#", v.Value)
	return nil
}

func (p *scrapboxPrinter) VisitInternalLink(_ *visitor.Walker, v *ast.InternalLink) visitor.Command {
	p.write("[", v.Title, "]")
	return nil
}

func (p *scrapboxPrinter) VisitExternalLink(_ *visitor.Walker, v *ast.ExternalLink) visitor.Command {
	if v.Title != nil && *v.Title != "" {
		p.write("[", *v.Title, " ", v.URL, "]")
	} else {
		p.write("[", v.URL, "]")
	}
	return nil
}

func (p *scrapboxPrinter) VisitEmphasis(_ *visitor.Walker, v *ast.Emphasis) visitor.Command {
	p.write("[",
		strings.Repeat("*", v.Bold),
		strings.Repeat("/", v.Italic),
		strings.Repeat("-", v.Strikethrough),
		" ", v.Text, "]")
	return nil
}

func (p *scrapboxPrinter) VisitHeading(_ *visitor.Walker, v *ast.Heading) visitor.Command {
	n := 1
	if p.h1+1 > v.Level {
		n = p.h1 + 1 - v.Level
	}
	p.write("[", strings.Repeat("*", n), " ", v.Text, "]")
	return nil
}

func (p *scrapboxPrinter) VisitBlockQuate(_ *visitor.Walker, v *ast.BlockQuate) visitor.Command {
	p.write("`", v.Value, "`")
	return nil
}

func (p *scrapboxPrinter) VisitCodeBlock(_ *visitor.Walker, v *ast.CodeBlock) visitor.Command {
	prefix := p.blockPrefix()
	p.write("code:", v.FileName, "\n")
	for _, line := range v.Children {
		p.write(prefix, line, "\n")
	}
	p.blockEnded = true
	return nil
}

func (p *scrapboxPrinter) VisitTable(_ *visitor.Walker, v *ast.Table) visitor.Command {
	if len(v.Header) == 0 {
		return nil
	}
	prefix := p.blockPrefix()
	p.write("table:", v.Name, "\n")
	p.write(prefix, strings.Join(v.Header, "\t"), "\n")
	for _, r := range v.Rows {
		if len(r) == 0 {
			break
		}
		p.write(prefix, strings.Join(r, "\t"), "\n")
	}
	p.blockEnded = true
	return nil
}

func (p *scrapboxPrinter) VisitImage(_ *visitor.Walker, v *ast.Image) visitor.Command {
	p.write("[", v.URI, "]")
	return nil
}

func (p *scrapboxPrinter) VisitMath(_ *visitor.Walker, v *ast.Math) visitor.Command {
	p.write("[$ ", v.Value, "]")
	return nil
}

func (p *scrapboxPrinter) VisitText(_ *visitor.Walker, v *ast.Text) visitor.Command {
	p.write(v.Value)
	return nil
}
