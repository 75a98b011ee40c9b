package parser

import (
	"testing"

	"github.com/flytaly/scrapconv/pkg/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapboxList(t *testing.T) {
	cases := []struct {
		input string
		want  []ast.Node
	}{
		{"\t\t123abc\n", []ast.Node{list(item(ast.Disc, 2, txt("123abc")))}},
		{" \t123abc\n", []ast.Node{list(item(ast.Disc, 2, txt("123abc")))}},
		{"\t 123abc\n", []ast.Node{list(item(ast.Disc, 2, txt("123abc")))}},
		{"  123abc\n", []ast.Node{list(item(ast.Disc, 2, txt("123abc")))}},
		{"  123abc", []ast.Node{list(item(ast.Disc, 2, txt("123abc")))}},
		{"　　123abc", []ast.Node{list(item(ast.Disc, 2, txt("123abc")))}},
		{"\t123. abc\n", []ast.Node{list(item(ast.Decimal, 1, txt("abc")))}},
		{
			"\ta\n\t\tb\n\tc\n",
			[]ast.Node{list(
				item(ast.Disc, 1, txt("a")),
				item(ast.Disc, 2, txt("b")),
				item(ast.Disc, 1, txt("c")),
			)},
		},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			diffNodes(t, tc.want, parse(t, tc.input, ast.Scrapbox))
		})
	}
}

func TestScrapboxParagraph(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []ast.Node
	}{
		{
			name:  "hashtags and internal link",
			input: "#tag #tag [internal link]\n",
			want: []ast.Node{para(
				tag_("tag"), txt(" "), tag_("tag"), txt(" "), ilink("internal link"),
			)},
		},
		{
			name:  "empty lines are kept",
			input: "a\n\nb\n",
			want:  []ast.Node{para(txt("a")), para(), para(txt("b"))},
		},
		{
			name:  "unmatched bracket",
			input: "[abc\n",
			want:  []ast.Node{para(txt("["), txt("abc"))},
		},
		{
			name:  "hash inside a word",
			input: "C#\n",
			want:  []ast.Node{para(txt("C#"))},
		},
		{
			name:  "code span",
			input: "run `go test` now\n",
			want:  []ast.Node{para(txt("run "), quote("go test"), txt(" now"))},
		},
		{
			name:  "command line",
			input: "$ npm install\n",
			want:  []ast.Node{para(quote("$ npm install"))},
		},
		{
			name:  "math",
			input: "[$ x^2 ]\n",
			want:  []ast.Node{para(math("x^2"))},
		},
		{
			name:  "bare url",
			input: "https://example.com\n",
			want:  []ast.Node{para(elink("", "https://example.com"))},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			diffNodes(t, tc.want, parse(t, tc.input, ast.Scrapbox))
		})
	}
}

func TestScrapboxEmphasis(t *testing.T) {
	cases := []struct {
		input string
		want  *ast.Emphasis
	}{
		{"[* bold]", &ast.Emphasis{Text: "bold", Bold: 1}},
		{"[*** h1]", &ast.Emphasis{Text: "h1", Bold: 3}},
		{"[/ italic]", &ast.Emphasis{Text: "italic", Italic: 1}},
		{"[- strike]", &ast.Emphasis{Text: "strike", Strikethrough: 1}},
		{"[*/- mix ]", &ast.Emphasis{Text: "mix", Bold: 1, Italic: 1, Strikethrough: 1}},
		{"[[bold]]", &ast.Emphasis{Text: "bold", Bold: 1}},
		{"[[ bold ]]", &ast.Emphasis{Text: "bold", Bold: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			diffNodes(t, []ast.Node{para(node(tc.want))}, parse(t, tc.input, ast.Scrapbox))
		})
	}

	_, _, err := sbEmphasis(NewCursor("[ plain]", ScrapboxContext{}))
	assert.Error(t, err, "decoration needs a marker")
}

func TestScrapboxLinkOrImage(t *testing.T) {
	cases := []struct {
		input string
		want  ast.Node
	}{
		{"[https://x/a.png]", img("https://x/a.png")},
		{"[https://x/ Rust]", elink("Rust", "https://x/")},
		{"[Rust https://x/]", elink("Rust", "https://x/")},
		{"[Rust　Rust https://x/]", elink("Rust　Rust", "https://x/")},
		{"[https://x/]", elink("", "https://x/")},
		{"[http://cutedog.com https://i.gyazo.com/da78.png]", img("https://i.gyazo.com/da78.png")},
		{"[https://i.gyazo.com/da78.png http://cutedog.com]", img("https://i.gyazo.com/da78.png")},
		{"[/help/Page]", elink("/help/Page", "https://scrapbox.io/help/Page")},
		{"[Page name]", ilink("Page name")},
		{"[Rust https://x/ more]", ilink("Rust https://x/ more")},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			diffNodes(t, []ast.Node{para(tc.want)}, parse(t, tc.input, ast.Scrapbox))
		})
	}

	t.Run("origin", func(t *testing.T) {
		got := parse(t, "[/help/Page]", ast.Scrapbox, WithScrapboxOrigin("https://example.com/"))
		diffNodes(t, []ast.Node{para(elink("/help/Page", "https://example.com/help/Page"))}, got)
	})
}

func TestScrapboxCodeBlock(t *testing.T) {
	t.Run("top level", func(t *testing.T) {
		input := "code:hello.rs\n     panic!()\n     panic!()\n"
		want := []ast.Node{para(node(&ast.CodeBlock{
			FileName: "hello.rs",
			Children: []string{"    panic!()", "    panic!()"},
		}))}
		diffNodes(t, want, parse(t, input, ast.Scrapbox))
	})

	t.Run("ends its paragraph", func(t *testing.T) {
		input := "code:a.sh\n echo\nnext\n"
		want := []ast.Node{
			para(node(&ast.CodeBlock{FileName: "a.sh", Children: []string{"echo"}})),
			para(txt("next")),
		}
		diffNodes(t, want, parse(t, input, ast.Scrapbox))
	})

	t.Run("inside a list", func(t *testing.T) {
		input := "\tcode:a.js\n  x\n   y\nnext\n"
		want := []ast.Node{
			list(item(ast.Disc, 1, node(&ast.CodeBlock{FileName: "a.js", Children: []string{"x", " y"}}))),
			para(txt("next")),
		}
		diffNodes(t, want, parse(t, input, ast.Scrapbox))
	})

	t.Run("context depth", func(t *testing.T) {
		c := NewCursor("code:x\n   a\n", ScrapboxContext{Indent: 2})
		next, cb, err := sbCodeBlock(c)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, cb.Children)
		assert.True(t, next.Empty())
	})
}

func TestScrapboxTable(t *testing.T) {
	t.Run("rows", func(t *testing.T) {
		input := "table:t\n a\tb\n c\td\t\n"
		want := []ast.Node{para(node(&ast.Table{
			Name:   "t",
			Header: []string{"a", "b"},
			Rows:   [][]string{{"c", "d"}},
		}))}
		diffNodes(t, want, parse(t, input, ast.Scrapbox))
	})

	t.Run("empty row", func(t *testing.T) {
		input := "table:t\n a\tb\n \n c\n"
		want := []ast.Node{para(node(&ast.Table{
			Name:   "t",
			Header: []string{"a", "b"},
			Rows:   [][]string{{}, {"c"}},
		}))}
		diffNodes(t, want, parse(t, input, ast.Scrapbox))
	})

	t.Run("no header", func(t *testing.T) {
		input := "table:t\nafter\n"
		want := []ast.Node{
			para(node(&ast.Table{Name: "t"})),
			para(txt("after")),
		}
		diffNodes(t, want, parse(t, input, ast.Scrapbox))
	})
}

func TestScrapboxListContextReset(t *testing.T) {
	c := NewCursor("\t\ta\n", ScrapboxContext{})
	next, it, err := sbListItem(c)
	require.NoError(t, err)
	assert.Equal(t, 2, it.Level)
	assert.Equal(t, 0, next.Ctx.Indent)
}
