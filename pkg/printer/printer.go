/*
Package printer renders an ast.Page as Markdown or Scrapbox text.

Both printers are visitors that append to a buffer while walking the page;
Paragraph children are walked with the default visitor behavior, every other
kind writes its own syntax.
*/
package printer

import (
	"strings"

	"github.com/flytaly/scrapconv/pkg/ast"
	"github.com/flytaly/scrapconv/pkg/config"
)

// Print renders page in the given dialect.
func Print(page *ast.Page, d ast.Dialect, cfg config.Config) string {
	if d == ast.Scrapbox {
		return Scrapbox(page, cfg)
	}
	return Markdown(page, cfg)
}

// depth normalizes a list item level to a 0-based nesting depth.
// Scrapbox levels count indent characters, so a top level item is 1.
func depth(page *ast.Page, level int) int {
	if page.Dialect == ast.Scrapbox {
		level--
	}
	return max(level, 0)
}

// letter returns the alphabetic ordinal of n: 1 is "a", 27 is "aa".
func letter(n int) string {
	if n < 1 {
		n = 1
	}
	var b []byte
	for n > 0 {
		n--
		b = append(b, byte('a'+n%26))
		n /= 26
	}
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// ordinal tracks numbering of consecutive ordered list items.
type ordinal struct {
	kind ast.ListKind
	n    int
}

func (o *ordinal) next(k ast.ListKind) int {
	if k != o.kind || k == ast.Disc {
		o.kind, o.n = k, 0
	}
	o.n++
	return o.n
}

type buffer struct {
	strings.Builder
}

func (b *buffer) write(s ...string) {
	for _, v := range s {
		b.WriteString(v)
	}
}
