package printer

import (
	"strings"

	"github.com/flytaly/scrapconv/pkg/ast"
	"github.com/flytaly/scrapconv/pkg/config"
	"github.com/flytaly/scrapconv/pkg/visitor"
)

const gyazoPrefix = "https://gyazo.com/"

type markdownPrinter struct {
	visitor.Base
	buf    buffer
	page   *ast.Page
	indent string
}

// Markdown renders page as Markdown. List items are indented with cfg.Indent.
func Markdown(page *ast.Page, cfg config.Config) string {
	p := &markdownPrinter{page: page, indent: cfg.Indent.Unit()}
	visitor.Walk(page, p)
	return p.buf.String()
}

func (p *markdownPrinter) VisitParagraph(w *visitor.Walker, v *ast.Paragraph) visitor.Command {
	w.Nodes(v.Children)
	p.buf.write("\n")
	return nil
}

func (p *markdownPrinter) VisitList(w *visitor.Walker, v *ast.List) visitor.Command {
	var ord ordinal
	for _, it := range v.Children {
		n := ord.next(it.Kind)
		p.buf.write(strings.Repeat(p.indent, depth(p.page, it.Level)))
		switch it.Kind {
		case ast.Disc:
			p.buf.write("* ")
		case ast.Decimal:
			p.buf.write("1. ")
		case ast.Alphabet:
			p.buf.write(letter(n), ". ")
		}
		w.Nodes(it.Children)
		p.buf.write("\n")
	}
	return nil
}

func (p *markdownPrinter) VisitHashTag(_ *visitor.Walker, v *ast.HashTag) visitor.Command {
	p.buf.write("#", v.Value)
	return nil
}

func (p *markdownPrinter) VisitInternalLink(_ *visitor.Walker, v *ast.InternalLink) visitor.Command {
	p.buf.write("[[", v.Title, "]]")
	return nil
}

func (p *markdownPrinter) VisitExternalLink(_ *visitor.Walker, v *ast.ExternalLink) visitor.Command {
	switch {
	case v.Title != nil:
		p.buf.write("[", *v.Title, "](", v.URL, ")")
	case strings.HasPrefix(v.URL, gyazoPrefix):
		p.buf.write("![](", v.URL, "/max_size/400)")
	default:
		p.buf.write(v.URL)
	}
	return nil
}

func (p *markdownPrinter) VisitEmphasis(_ *visitor.Walker, v *ast.Emphasis) visitor.Command {
	s := v.Text
	if v.Bold > 0 {
		s = "**" + s + "**"
	}
	if v.Italic > 0 {
		s = "*" + s + "*"
	}
	if v.Strikethrough > 0 {
		s = "~~" + s + "~~"
	}
	p.buf.write(s)
	return nil
}

func (p *markdownPrinter) VisitHeading(_ *visitor.Walker, v *ast.Heading) visitor.Command {
	p.buf.write(strings.Repeat("#", v.Level), " ", v.Text)
	return nil
}

func (p *markdownPrinter) VisitBlockQuate(_ *visitor.Walker, v *ast.BlockQuate) visitor.Command {
	p.buf.write("`", v.Value, "`")
	return nil
}

func (p *markdownPrinter) VisitCodeBlock(_ *visitor.Walker, v *ast.CodeBlock) visitor.Command {
	p.buf.write("```", v.FileName, "\n")
	for _, line := range v.Children {
		p.buf.write(line, "\n")
	}
	p.buf.write("```\n")
	return nil
}

func (p *markdownPrinter) VisitTable(_ *visitor.Walker, v *ast.Table) visitor.Command {
	if len(v.Header) == 0 {
		return nil
	}
	row := func(cells []string) {
		p.buf.write("| ", strings.Join(cells, " | "), " |\n")
	}
	row(v.Header)
	sep := make([]string, len(v.Header))
	for i := range sep {
		sep[i] = "---"
	}
	row(sep)
	for _, r := range v.Rows {
		if len(r) == 0 {
			break
		}
		row(r)
	}
	return nil
}

func (p *markdownPrinter) VisitImage(_ *visitor.Walker, v *ast.Image) visitor.Command {
	p.buf.write("![](", v.URI, ")")
	return nil
}

func (p *markdownPrinter) VisitMath(_ *visitor.Walker, v *ast.Math) visitor.Command {
	p.buf.write("$$", v.Value, "$$")
	return nil
}

func (p *markdownPrinter) VisitText(_ *visitor.Walker, v *ast.Text) visitor.Command {
	p.buf.write(v.Value)
	return nil
}
