package parser

import (
	"regexp"
	"strings"

	"github.com/flytaly/scrapconv/pkg/ast"
)

// IndentKind is the unit used to indent nested list items.
type IndentKind int

const (
	IndentTab IndentKind = iota
	IndentSpace
)

// Indent is one level of list indentation.
type Indent struct {
	Kind IndentKind
	Size int // number of spaces for IndentSpace
}

func (i Indent) String() string {
	if i.Kind == IndentTab {
		return "\t"
	}
	return strings.Repeat(" ", i.Size)
}

// MarkdownContext holds the indent locked by the first indented item of the
// list being parsed.
type MarkdownContext struct {
	Indent Indent
	Locked bool
}

type mdCursor = Cursor[MarkdownContext]

var mdStops = []stop{
	untilTag,
	untilAny("["),
	untilEOL,
	until("`"),
	until("!["),
	until("*"),
	until("~~"),
	until("$$"),
	until("<"),
}

var tableSeparator = regexp.MustCompile(`^\s*:?-+:?\s*$`)

func mdPage(c mdCursor) (mdCursor, []ast.Node, error) {
	return many0(c, mdBlock)
}

func mdBlock(c mdCursor) (mdCursor, ast.Node, error) {
	return alt(c,
		asNode(mdCodeBlock),
		asNode(mdTable),
		asNode(mdList),
		asNode(mdParagraph),
		// last line without a line break
		mdInline,
	)
}

// mdParagraph parses one physical line.
func mdParagraph(c mdCursor) (mdCursor, *ast.Paragraph, error) {
	eol, line := takeUntilEOL(c)
	next, _, err := tag(eol, "\n")
	if err != nil {
		return c, nil, err
	}
	children, err := mdLine(c.Slice(len(line)), "markdown paragraph")
	if err != nil {
		return c, nil, err
	}
	return next, &ast.Paragraph{Children: children}, nil
}

// mdLine parses inline nodes that must cover the whole cursor.
func mdLine(c mdCursor, rule string) ([]ast.Node, error) {
	rest, children, err := many0(c, mdInline)
	if err != nil {
		return nil, err
	}
	if !rest.Empty() {
		return nil, internal(rest, rule)
	}
	return children, nil
}

func mdInline(c mdCursor) (mdCursor, ast.Node, error) {
	return alt(c,
		asNode(mdHeading),
		asNode(hashtag[MarkdownContext]),
		asNode(blockQuate[MarkdownContext]),
		asNode(mdImage),
		asNode(mdEmphasis),
		asNode(mdExternalLink),
		asNode(mdMath),
		asNode(mdWikiImage),
		asNode(mdInternalLink),
		mdHTML,
		asNode(externalLinkPlain[MarkdownContext]),
		asNode(mdText),
	)
}

func mdText(c mdCursor) (mdCursor, *ast.Text, error) {
	return text(c, mdStops)
}

// mdHeading matches "## title" at the start of a line.
func mdHeading(c mdCursor) (mdCursor, *ast.Heading, error) {
	if !c.AtLineStart() {
		return c, nil, fail(c, "heading must start a line")
	}
	next, hashes := takeWhile(c, func(r rune) bool { return r == '#' })
	if hashes == "" {
		return c, nil, fail(c, "expected '#'")
	}
	next, _, err := tag(next, " ")
	if err != nil {
		return c, nil, err
	}
	next, title := takeUntilEOL(next)
	return next, &ast.Heading{Text: title, Level: len(hashes)}, nil
}

// mdImage matches "![alt](url)" where url points to an image.
func mdImage(c mdCursor) (mdCursor, *ast.Image, error) {
	next, _, err := tag(c, "!")
	if err != nil {
		return c, nil, err
	}
	next, _, err = brackets(next)
	if err != nil {
		return c, nil, err
	}
	next, uri, err := parenthesized(next)
	if err != nil {
		return c, nil, err
	}
	if !IsImage(uri) {
		return c, nil, fail(c, "URL is not image")
	}
	return next, &ast.Image{URI: uri}, nil
}

// mdWikiImage matches "![[file.png]]".
func mdWikiImage(c mdCursor) (mdCursor, *ast.Image, error) {
	next, uri, err := delimited(c, "![[", ']', "]]")
	if err != nil {
		return c, nil, err
	}
	if !IsImage(uri) {
		return c, nil, fail(c, "URL is not image")
	}
	return next, &ast.Image{URI: uri}, nil
}

func mdEmphasis(c mdCursor) (mdCursor, *ast.Emphasis, error) {
	return alt(c, mdBold, mdItalic, mdStrikethrough)
}

func mdBold(c mdCursor) (mdCursor, *ast.Emphasis, error) {
	next, v, err := delimited(c, "**", '*', "**")
	if err != nil {
		return c, nil, err
	}
	return next, ast.Bold(v), nil
}

func mdItalic(c mdCursor) (mdCursor, *ast.Emphasis, error) {
	next, v, err := delimited(c, "*", '*', "*")
	if err != nil {
		return c, nil, err
	}
	return next, ast.Italic(v), nil
}

func mdStrikethrough(c mdCursor) (mdCursor, *ast.Emphasis, error) {
	next, v, err := delimited(c, "~~", '~', "~~")
	if err != nil {
		return c, nil, err
	}
	return next, ast.Strikethrough(v), nil
}

// mdExternalLink matches "[title](url)".
func mdExternalLink(c mdCursor) (mdCursor, *ast.ExternalLink, error) {
	next, title, err := brackets(c)
	if err != nil {
		return c, nil, err
	}
	next, uri, err := parenthesized(next)
	if err != nil {
		return c, nil, err
	}
	return next, &ast.ExternalLink{Title: &title, URL: uri}, nil
}

// mdMath matches "$$tex$$".
func mdMath(c mdCursor) (mdCursor, *ast.Math, error) {
	next, v, err := delimited(c, "$$", '$', "$$")
	if err != nil {
		return c, nil, err
	}
	return next, &ast.Math{Value: v}, nil
}

// mdInternalLink matches "[[title]]".
func mdInternalLink(c mdCursor) (mdCursor, *ast.InternalLink, error) {
	next, v, err := delimited(c, "[[", ']', "]]")
	if err != nil {
		return c, nil, err
	}
	return next, &ast.InternalLink{Title: v}, nil
}

// mdCodeBlock matches a fenced block. The closing fence starts a line and is
// followed by a line break or the end of input.
func mdCodeBlock(c mdCursor) (mdCursor, *ast.CodeBlock, error) {
	next, _, err := tag(c, "```")
	if err != nil {
		return c, nil, err
	}
	next, name, err := takeUntil(next, "\n")
	if err != nil {
		return c, nil, err
	}
	next = next.Advance(1)

	lines := []string{}
	for {
		if next.HasPrefix("```") {
			end, err := lineEnd(next.Advance(3))
			if err != nil {
				return c, nil, fail(next, "unexpected text after closing fence")
			}
			return end, &ast.CodeBlock{FileName: name, Children: lines}, nil
		}
		eol, line := takeUntilEOL(next)
		if eol.Empty() {
			return c, nil, fail(eol, "unterminated code block")
		}
		if strings.Contains(line, "```") {
			return c, nil, fail(next, "fence inside code block")
		}
		lines = append(lines, line)
		next = eol.Advance(1)
	}
}

// mdTable matches a header row, a separator row and any number of data rows.
func mdTable(c mdCursor) (mdCursor, *ast.Table, error) {
	next, header, err := mdTableRow(c)
	if err != nil {
		return c, nil, err
	}
	sepNext, sep, err := mdTableRow(next)
	if err != nil {
		return c, nil, err
	}
	for _, cell := range sep {
		if !tableSeparator.MatchString(cell) {
			return c, nil, fail(next, "expected table separator")
		}
	}
	next, rows, err := many0(sepNext, mdTableRow)
	if err != nil {
		return c, nil, err
	}
	return next, &ast.Table{Name: "table", Header: header, Rows: rows}, nil
}

// mdTableRow matches "| a | b |\n" and returns the trimmed cells.
func mdTableRow(c mdCursor) (mdCursor, []string, error) {
	eol, line := takeUntilEOL(c)
	next, _, err := tag(eol, "\n")
	if err != nil {
		return c, nil, err
	}
	line = strings.TrimRight(line, " \t")
	if !strings.HasPrefix(line, "|") {
		return c, nil, fail(c, "expected '|'")
	}
	body := line[1:]
	var cells []string
	for body != "" {
		cell, rest, ok := strings.Cut(body, "|")
		if !ok {
			return c, nil, fail(c, "table row must end with '|'")
		}
		cells = append(cells, strings.TrimSpace(cell))
		body = rest
	}
	if len(cells) == 0 {
		return c, nil, fail(c, "empty table row")
	}
	return next, cells, nil
}

// mdList parses consecutive items. The indent lock is released afterwards.
func mdList(c mdCursor) (mdCursor, *ast.List, error) {
	next, items, err := many1(c, mdListItem)
	if err != nil {
		return c, nil, err
	}
	next.Ctx = MarkdownContext{}
	return next, &ast.List{Children: items}, nil
}

func mdListItem(c mdCursor) (mdCursor, ast.ListItem, error) {
	next, level := mdIndent(c)
	next, kind, err := alt(next, decimalMarker[MarkdownContext], mdDiscMarker)
	if err != nil {
		return c, ast.ListItem{}, err
	}
	eol, line := takeUntilEOL(next)
	after, _, err := tag(eol, "\n")
	if err != nil {
		return c, ast.ListItem{}, err
	}
	children, err := mdLine(next.Slice(len(line)), "markdown list item")
	if err != nil {
		return c, ast.ListItem{}, err
	}
	return after, ast.ListItem{Kind: kind, Level: level, Children: children}, nil
}

// mdIndent measures the item depth. Without a lock an indented item fixes the
// unit for the rest of the list and is at level 1.
func mdIndent(c mdCursor) (mdCursor, int) {
	if c.Ctx.Locked {
		unit := c.Ctx.Indent.String()
		level := 0
		for c.HasPrefix(unit) {
			c = c.Advance(len(unit))
			level++
		}
		return c, level
	}
	next, run := takeWhile(c, func(r rune) bool { return r == ' ' || r == '\t' })
	if run == "" {
		return next, 0
	}
	if run[0] == '\t' {
		next.Ctx.Indent = Indent{Kind: IndentTab}
	} else {
		next.Ctx.Indent = Indent{Kind: IndentSpace, Size: len(run)}
	}
	next.Ctx.Locked = true
	return next, 1
}

func mdDiscMarker(c mdCursor) (mdCursor, ast.ListKind, error) {
	if c.HasPrefix("* ") || c.HasPrefix("- ") {
		return c.Advance(2), ast.Disc, nil
	}
	return c, ast.Disc, fail(c, "expected list marker")
}
