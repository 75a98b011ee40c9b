package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/flytaly/scrapconv/pkg/ast"
)

// DefaultScrapboxOrigin is the host of links to other projects.
const DefaultScrapboxOrigin = "https://scrapbox.io"

// ScrapboxContext carries the depth of the list item being parsed.
// Multi-line blocks expect one space more than that on every line.
type ScrapboxContext struct {
	Indent int
	Origin string
}

type sbCursor = Cursor[ScrapboxContext]

var sbStops = []stop{
	untilTag,
	untilAny("["),
	untilEOL,
	until("`"),
}

func sbPage(c sbCursor) (sbCursor, []ast.Node, error) {
	return many0(c, sbBlock)
}

func sbBlock(c sbCursor) (sbCursor, ast.Node, error) {
	return alt(c, asNode(sbList), asNode(sbParagraph))
}

// sbParagraph is one line of inline nodes. Empty lines are kept.
func sbParagraph(c sbCursor) (sbCursor, *ast.Paragraph, error) {
	if c.Empty() {
		return c, nil, fail(c, "unexpected end of input")
	}
	next, children, err := sbLine(c)
	if err != nil {
		return c, nil, err
	}
	return next, &ast.Paragraph{Children: children}, nil
}

// sbLine parses inline nodes up to a line break or the end of input.
// A code block or table ends the line it starts on.
func sbLine(c sbCursor) (sbCursor, []ast.Node, error) {
	nodes := []ast.Node{}
	for {
		if next, err := lineEnd(c); err == nil {
			return next, nodes, nil
		}
		next, n, err := sbInline(c)
		if err != nil {
			return c, nil, err
		}
		nodes = append(nodes, n)
		c = next
		if ast.IsBlock(n.Kind) {
			return c, nodes, nil
		}
	}
}

func sbList(c sbCursor) (sbCursor, *ast.List, error) {
	next, items, err := many1(c, sbListItem)
	if err != nil {
		return c, nil, err
	}
	return next, &ast.List{Children: items}, nil
}

func isIndent(r rune) bool {
	return r == '\t' || r == ' ' || r == fullWidthSpace
}

// sbListItem measures its own leading run: every tab, space or full-width
// space is one level.
func sbListItem(c sbCursor) (sbCursor, ast.ListItem, error) {
	next, run := takeWhile(c, isIndent)
	if run == "" {
		return c, ast.ListItem{}, fail(c, "expected indent")
	}
	level := utf8.RuneCountInString(run)

	kind := ast.Disc
	if n, k, err := decimalMarker(next); err == nil {
		next, kind = n, k
	}

	next.Ctx.Indent = level
	next, children, err := sbLine(next)
	if err != nil {
		return c, ast.ListItem{}, err
	}
	next.Ctx.Indent = 0
	return next, ast.ListItem{Kind: kind, Level: level, Children: children}, nil
}

func sbInline(c sbCursor) (sbCursor, ast.Node, error) {
	return alt(c,
		asNode(sbCodeBlock),
		asNode(sbTable),
		asNode(hashtag[ScrapboxContext]),
		asNode(blockQuate[ScrapboxContext]),
		asNode(sbBold),
		asNode(sbEmphasis),
		asNode(sbMath),
		sbLinkOrImage,
		asNode(sbOtherProject),
		asNode(sbInternalLink),
		asNode(externalLinkPlain[ScrapboxContext]),
		asNode(sbCommandLine),
		asNode(sbText),
	)
}

func sbText(c sbCursor) (sbCursor, *ast.Text, error) {
	return text(c, sbStops)
}

// blockPrefix is the indentation every line of a block must start with.
func blockPrefix(c sbCursor) string {
	return " " + strings.Repeat(" ", c.Ctx.Indent)
}

// sbCodeBlock matches "code:name" followed by indented lines.
func sbCodeBlock(c sbCursor) (sbCursor, *ast.CodeBlock, error) {
	next, _, err := tag(c, "code:")
	if err != nil {
		return c, nil, err
	}
	next, name, err := takeUntil(next, "\n")
	if err != nil {
		return c, nil, err
	}
	next = next.Advance(1)

	prefix := blockPrefix(c)
	lines := []string{}
	for next.HasPrefix(prefix) {
		eol, line := takeUntilEOL(next.Advance(len(prefix)))
		lines = append(lines, line)
		next, _ = lineEnd(eol)
	}
	return next, &ast.CodeBlock{FileName: name, Children: lines}, nil
}

// sbTable matches "table:name" followed by indented tab separated rows.
// The first row is the header.
func sbTable(c sbCursor) (sbCursor, *ast.Table, error) {
	next, _, err := tag(c, "table:")
	if err != nil {
		return c, nil, err
	}
	next, name, err := takeUntil(next, "\n")
	if err != nil {
		return c, nil, err
	}
	next = next.Advance(1)

	t := &ast.Table{Name: name, Header: []string{}, Rows: [][]string{}}
	next, header, ok := sbTableRow(next)
	if !ok {
		return next, t, nil
	}
	t.Header = header
	for {
		n, row, ok := sbTableRow(next)
		if !ok {
			return next, t, nil
		}
		t.Rows = append(t.Rows, row)
		next = n
	}
}

func sbTableRow(c sbCursor) (sbCursor, []string, bool) {
	prefix := blockPrefix(c)
	if !c.HasPrefix(prefix) {
		return c, nil, false
	}
	eol, line := takeUntilEOL(c.Advance(len(prefix)))
	next, _ := lineEnd(eol)

	cells := strings.Split(line, "\t")
	if cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return next, cells, true
}

// sbBold matches "[[bold]]".
func sbBold(c sbCursor) (sbCursor, *ast.Emphasis, error) {
	next, v, err := delimited(c, "[[", ']', "]]")
	if err != nil {
		return c, nil, err
	}
	return next, ast.Bold(strings.TrimSpace(v)), nil
}

// sbEmphasis matches "[*/- text]". Every marker adds one level.
func sbEmphasis(c sbCursor) (sbCursor, *ast.Emphasis, error) {
	next, inner, err := brackets(c)
	if err != nil {
		return c, nil, err
	}
	e := &ast.Emphasis{}
	i := 0
loop:
	for ; i < len(inner); i++ {
		switch inner[i] {
		case '*':
			e.Bold++
		case '/':
			e.Italic++
		case '-':
			e.Strikethrough++
		default:
			break loop
		}
	}
	if i == 0 || i == len(inner) || inner[i] != ' ' {
		return c, nil, fail(c, "expected decoration")
	}
	e.Text = strings.TrimSpace(inner[i+1:])
	return next, e, nil
}

// sbMath matches "[$ tex]".
func sbMath(c sbCursor) (sbCursor, *ast.Math, error) {
	next, v, err := delimited(c, "[$", ']', "]")
	if err != nil {
		return c, nil, err
	}
	return next, &ast.Math{Value: strings.TrimSpace(v)}, nil
}

// sbLinkOrImage matches "[url]", "[url title]" and "[title url]".
// Either side ending in an image extension makes it an image.
func sbLinkOrImage(c sbCursor) (sbCursor, ast.Node, error) {
	next, inner, err := brackets(c)
	if err != nil {
		return c, ast.Node{}, err
	}
	link, ok := urlTitle(inner)
	if !ok {
		link, ok = titleURL(inner)
	}
	if !ok {
		return c, ast.Node{}, fail(c, "expected link")
	}
	switch {
	case IsImage(link.URL):
		return next, ast.NewNode(&ast.Image{URI: link.URL}), nil
	case link.Title != nil && IsImage(*link.Title):
		return next, ast.NewNode(&ast.Image{URI: *link.Title}), nil
	}
	return next, ast.NewNode(link), nil
}

func urlTitle(s string) (*ast.ExternalLink, bool) {
	u, rest, ok := scanURL(trimLeftSpace(s))
	if !ok {
		return nil, false
	}
	return ast.NewExternalLink(trimLeftSpace(rest), u), true
}

// titleURL splits at the last space; the right side must be exactly an url.
func titleURL(s string) (*ast.ExternalLink, bool) {
	i := strings.LastIndexAny(s, " 　")
	if i < 0 {
		return nil, false
	}
	title, link := s[:i], trimLeftSpace(s[i:])
	u, rest, ok := scanURL(link)
	if !ok || rest != "" {
		return nil, false
	}
	return ast.NewExternalLink(title, u), true
}

// sbOtherProject matches "[/project/page]".
func sbOtherProject(c sbCursor) (sbCursor, *ast.ExternalLink, error) {
	next, inner, err := brackets(c)
	if err != nil {
		return c, nil, err
	}
	if !strings.HasPrefix(inner, "/") {
		return c, nil, fail(c, "expected '/'")
	}
	origin := c.Ctx.Origin
	if origin == "" {
		origin = DefaultScrapboxOrigin
	}
	return next, ast.NewExternalLink(inner, strings.TrimSuffix(origin, "/")+inner), nil
}

// sbInternalLink matches "[title]".
func sbInternalLink(c sbCursor) (sbCursor, *ast.InternalLink, error) {
	next, v, err := brackets(c)
	if err != nil {
		return c, nil, err
	}
	return next, &ast.InternalLink{Title: v}, nil
}

// sbCommandLine matches "$ cmd" or "% cmd" up to the end of line.
func sbCommandLine(c sbCursor) (sbCursor, *ast.BlockQuate, error) {
	if !c.HasPrefix("$ ") && !c.HasPrefix("% ") {
		return c, nil, fail(c, "expected command line")
	}
	next, v := takeUntilEOL(c)
	return next, &ast.BlockQuate{Value: v}, nil
}
