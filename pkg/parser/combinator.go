package parser

import (
	"regexp"
	"strings"

	"github.com/flytaly/scrapconv/pkg/ast"
)

// ImgExtensions lists the file extensions treated as images.
const ImgExtensions = `\.png|\.jpg|\.jpeg|\.webp|\.svg|\.tiff|\.tff|\.gif`

var imageURL = regexp.MustCompile("(?i)(" + ImgExtensions + ")$")

// IsImage reports whether uri ends in a known image extension.
func IsImage(uri string) bool {
	return imageURL.MatchString(uri)
}

const fullWidthSpace = '　'

// Every grammar production has the shape func(Cursor[C]) (Cursor[C], T, error).

// alt returns the result of the first rule that succeeds. When every rule
// fails the error of the last one is returned.
func alt[C, T any](c Cursor[C], rules ...func(Cursor[C]) (Cursor[C], T, error)) (Cursor[C], T, error) {
	var zero T
	err := fail(c, "no alternative matched")
	for _, r := range rules {
		next, v, e := r(c)
		if e == nil {
			return next, v, nil
		}
		if IsInternal(e) {
			return c, zero, e
		}
		err = e
	}
	return c, zero, err
}

// many0 applies r until it fails or stops making progress.
// Only internal errors are returned.
func many0[C, T any](c Cursor[C], r func(Cursor[C]) (Cursor[C], T, error)) (Cursor[C], []T, error) {
	var out []T
	for {
		next, v, err := r(c)
		if err != nil {
			if IsInternal(err) {
				return c, nil, err
			}
			return c, out, nil
		}
		if next.pos == c.pos {
			return c, out, nil
		}
		out = append(out, v)
		c = next
	}
}

// many1 is many0 that requires at least one match.
func many1[C, T any](c Cursor[C], r func(Cursor[C]) (Cursor[C], T, error)) (Cursor[C], []T, error) {
	next, v, err := r(c)
	if err != nil {
		return c, nil, err
	}
	next, rest, err := many0(next, r)
	if err != nil {
		return c, nil, err
	}
	return next, append([]T{v}, rest...), nil
}

// asNode wraps a rule producing a concrete kind into one producing a node.
func asNode[C any, K ast.Kind](r func(Cursor[C]) (Cursor[C], K, error)) func(Cursor[C]) (Cursor[C], ast.Node, error) {
	return func(c Cursor[C]) (Cursor[C], ast.Node, error) {
		next, k, err := r(c)
		if err != nil {
			return c, ast.Node{}, err
		}
		return next, ast.NewNode(k), nil
	}
}

func tag[C any](c Cursor[C], s string) (Cursor[C], string, error) {
	if !c.HasPrefix(s) {
		return c, "", fail(c, "expected %q", s)
	}
	next, v := c.Take(len(s))
	return next, v, nil
}

func takeWhile[C any](c Cursor[C], pred func(rune) bool) (Cursor[C], string) {
	rest := c.Rest()
	i := strings.IndexFunc(rest, func(r rune) bool { return !pred(r) })
	if i < 0 {
		i = len(rest)
	}
	return c.Take(i)
}

// takeUntil returns the text before the first occurrence of s and fails
// when s does not occur.
func takeUntil[C any](c Cursor[C], s string) (Cursor[C], string, error) {
	i := strings.Index(c.Rest(), s)
	if i < 0 {
		return c, "", fail(c, "expected %q", s)
	}
	next, v := c.Take(i)
	return next, v, nil
}

// takeUntilEOL returns the rest of the current line without the line break.
func takeUntilEOL[C any](c Cursor[C]) (Cursor[C], string) {
	i := strings.IndexByte(c.Rest(), '\n')
	if i < 0 {
		return c.Take(c.Len())
	}
	return c.Take(i)
}

// lineEnd accepts a line break or the end of input.
func lineEnd[C any](c Cursor[C]) (Cursor[C], error) {
	if c.Empty() {
		return c, nil
	}
	next, _, err := tag(c, "\n")
	return next, err
}

// bracketed returns the content strictly between open and close on one line.
func bracketed[C any](c Cursor[C], open, close byte) (Cursor[C], string, error) {
	rest := c.Rest()
	if rest == "" || rest[0] != open {
		return c, "", fail(c, "expected %q", open)
	}
	i := strings.IndexAny(rest[1:], string(close)+"\n")
	if i < 0 || rest[1+i] != close {
		return c, "", fail(c, "missing closing %q", close)
	}
	next, _ := c.Take(i + 2)
	return next, rest[1 : 1+i], nil
}

// brackets matches "[abc]".
func brackets[C any](c Cursor[C]) (Cursor[C], string, error) {
	return bracketed(c, '[', ']')
}

// parenthesized matches "(abc)".
func parenthesized[C any](c Cursor[C]) (Cursor[C], string, error) {
	return bracketed(c, '(', ')')
}

// delimited matches open, a run without end, then close, all on one line.
func delimited[C any](c Cursor[C], open string, end byte, close string) (Cursor[C], string, error) {
	next, _, err := tag(c, open)
	if err != nil {
		return c, "", err
	}
	next, v := takeWhile(next, func(r rune) bool { return r != rune(end) && r != '\n' })
	next, _, err = tag(next, close)
	if err != nil {
		return c, "", err
	}
	return next, v, nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == fullWidthSpace
}

func space0[C any](c Cursor[C]) (Cursor[C], string) {
	return takeWhile(c, isSpace)
}

func space1[C any](c Cursor[C]) (Cursor[C], string, error) {
	next, s := space0(c)
	if s == "" {
		return c, "", fail(c, "expected space")
	}
	return next, s, nil
}

func trimLeftSpace(s string) string {
	return strings.TrimLeftFunc(s, isSpace)
}

// scanURL splits an http(s) URL off the start of s.
func scanURL(s string) (url, rest string, ok bool) {
	var proto string
	switch {
	case strings.HasPrefix(s, "https://"):
		proto = "https://"
	case strings.HasPrefix(s, "http://"):
		proto = "http://"
	default:
		return "", s, false
	}
	i := len(proto)
	for i < len(s) && s[i] >= 33 && s[i] <= 126 {
		i++
	}
	return s[:i], s[i:], true
}

// url matches "https://" or "http://" followed by printable ASCII.
func url[C any](c Cursor[C]) (Cursor[C], string, error) {
	u, _, ok := scanURL(c.Rest())
	if !ok {
		return c, "", fail(c, "expected url")
	}
	next, _ := c.Take(len(u))
	return next, u, nil
}

func externalLinkPlain[C any](c Cursor[C]) (Cursor[C], *ast.ExternalLink, error) {
	next, u, err := url(c)
	if err != nil {
		return c, nil, err
	}
	return next, &ast.ExternalLink{URL: u}, nil
}

// hashtag matches "#tag" up to a space or the end of line.
func hashtag[C any](c Cursor[C]) (Cursor[C], *ast.HashTag, error) {
	next, _, err := tag(c, "#")
	if err != nil {
		return c, nil, err
	}
	next, v := takeWhile(next, func(r rune) bool { return !isSpace(r) && r != '\n' })
	return next, &ast.HashTag{Value: v}, nil
}

// blockQuate matches a backtick code span.
func blockQuate[C any](c Cursor[C]) (Cursor[C], *ast.BlockQuate, error) {
	next, v, err := delimited(c, "`", '`', "`")
	if err != nil {
		return c, nil, err
	}
	return next, &ast.BlockQuate{Value: v}, nil
}

// stop measures how much free text precedes a competing construct.
// It returns -1 when the construct does not occur.
type stop func(rest string) int

// untilTag stops before a hashtag that follows a space on the current line.
func untilTag(rest string) int {
	line, _, _ := strings.Cut(rest, "\n")
	if !strings.Contains(line, " #") {
		return -1
	}
	return strings.IndexByte(line, '#')
}

func untilEOL(rest string) int {
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		return i
	}
	return len(rest)
}

// untilAny stops before s, or at the end of input when s does not occur.
func untilAny(s string) stop {
	return func(rest string) int {
		if i := strings.Index(rest, s); i >= 0 {
			return i
		}
		return len(rest)
	}
}

// until stops before s and fails when s does not occur.
func until(s string) stop {
	return func(rest string) int {
		return strings.Index(rest, s)
	}
}

// shortest resolves the extent of a free text run: every stop is measured
// against the same input and the smallest successful length wins.
// A zero length means another rule should handle the input.
func shortest[C any](c Cursor[C], stops []stop) (Cursor[C], string, error) {
	rest := c.Rest()
	best := -1
	for _, s := range stops {
		if n := s(rest); n >= 0 && (best < 0 || n < best) {
			best = n
		}
	}
	if best <= 0 {
		return c, "", fail(c, "expected text")
	}
	next, v := c.Take(best)
	return next, v, nil
}

// text is the catch-all inline rule. A delimiter that no other rule accepted
// is taken as a single literal character.
func text[C any](c Cursor[C], stops []stop) (Cursor[C], *ast.Text, error) {
	rest := c.Rest()
	if rest == "" {
		return c, nil, fail(c, "unexpected end of input")
	}
	if rest[0] == '#' || rest[0] == '\n' {
		return c, nil, fail(c, "unexpected %q", rest[0])
	}
	next, v, err := shortest(c, stops)
	if err != nil {
		_, size := c.peekRune()
		if size == 0 {
			size = 1
		}
		next, v = c.Take(size)
	}
	return next, &ast.Text{Value: v}, nil
}

// decimalMarker matches "12. ".
func decimalMarker[C any](c Cursor[C]) (Cursor[C], ast.ListKind, error) {
	next, digits := takeWhile(c, func(r rune) bool { return r >= '0' && r <= '9' })
	if digits == "" {
		return c, ast.Disc, fail(c, "expected digit")
	}
	next, _, err := tag(next, ". ")
	if err != nil {
		return c, ast.Disc, err
	}
	return next, ast.Decimal, nil
}
