package convert

import (
	"testing"
	"testing/fstest"

	"github.com/flytaly/scrapconv/pkg/ast"
	"github.com/flytaly/scrapconv/pkg/config"
	"github.com/flytaly/scrapconv/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrapboxToMarkdown(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"tags and link", "#tag #tag [internal link]\n", "#tag #tag [[internal link]]\n"},
		{"headings", "[*** Title]\n[** Sub]\n[* bold]\n", "# Title\n## Sub\n**bold**\n"},
		{"code in list", "\tcode:a.sh\n  echo\n", "```a.sh\necho\n```\n"},
		{"nested list", "\ta\n\t\tb\n", "* a\n  * b\n"},
		{"gyazo", "[https://gyazo.com/abc]\n", "![](https://gyazo.com/abc/max_size/400)\n"},
		{"table", "table:t\n a\tb\n c\td\n", "| a | b |\n| --- | --- |\n| c | d |\n\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ScrapboxToMarkdown(tc.input, config.Default())
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("bold to heading", func(t *testing.T) {
		cfg := config.Default()
		cfg.BoldToHeading = true
		got, err := ScrapboxToMarkdown("[* bold]\n", cfg)
		require.NoError(t, err)
		assert.Equal(t, "### bold\n", got)
	})
}

func TestMarkdownToScrapbox(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"heading", "# Title\n", "[*** Title]\n"},
		{"list", "* a\n  * b\n1. c\n", "\ta\n\t\tb\n\t1. c\n"},
		{"links", "[[page]] [t](https://x)\n", "[page] [t https://x]\n"},
		{"code block", "```go\nx := 1\n```\n", "code:go\n x := 1\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MarkdownToScrapbox(tc.input, config.Default())
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		dialect ast.Dialect
		input   string
	}{
		{ast.Markdown, "## Title\n"},
		{ast.Markdown, "#tag [[page]] [t](https://x) https://y\n"},
		{ast.Markdown, "```hello.rs\n    panic!()\n```\n"},
		{ast.Scrapbox, "#tag [page] [Rust https://x/] [https://y/]\n"},
		{ast.Scrapbox, "code:hello.rs\n     panic!()\n"},
		{ast.Scrapbox, "\tcode:b.go\n  y\n"},
		{ast.Scrapbox, "[/help/Page]\n"},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			page, err := Parse(tc.input, tc.dialect)
			require.NoError(t, err)
			printed := Print(page, tc.dialect, config.Default())
			again, err := Parse(printed, tc.dialect)
			require.NoError(t, err)
			assert.Equal(t, page, again)
		})
	}
}

func TestToAST(t *testing.T) {
	out, err := ToAST("#tag\n", ast.Scrapbox, ast.FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, out, "dialect: scrapbox")
	assert.Contains(t, out, "kind: hashtag")
	assert.Contains(t, out, "value: tag")
}

func TestFile(t *testing.T) {
	fsys := fstest.MapFS{
		"notes/page.sb":  {Data: []byte("[** Sub]\n")},
		"notes/page.md":  {Data: []byte("## Sub\n")},
		"notes/page.txt": {Data: []byte("x")},
	}
	l := log.NewChanLog(1, nil)
	c := New(config.Default(), WithLogger(l))

	out, d, err := c.File(fsys, "notes/page.sb")
	require.NoError(t, err)
	assert.Equal(t, ast.Markdown, d)
	assert.Equal(t, "## Sub\n", out)

	out, d, err = c.File(fsys, "notes/page.md")
	require.NoError(t, err)
	assert.Equal(t, ast.Scrapbox, d)
	assert.Equal(t, "[** Sub]\n", out)

	_, _, err = c.File(fsys, "notes/page.txt")
	assert.Error(t, err)
	_, _, err = c.File(fsys, "notes/missing.sb")
	assert.Error(t, err)
}

func TestPaths(t *testing.T) {
	d, ok := DialectOf("a/b.Scrapbox")
	assert.True(t, ok)
	assert.Equal(t, ast.Scrapbox, d)
	_, ok = DialectOf("a/b.txt")
	assert.False(t, ok)

	assert.Equal(t, "a/b.md", OutputPath("a/b.sb", ast.Markdown))
	assert.Equal(t, "a/b.sb", OutputPath("a/b.md", ast.Scrapbox))
}

func TestOrigin(t *testing.T) {
	c := New(config.Default(), WithScrapboxOrigin("https://example.com"))
	out, err := c.Convert("[/p/Page]\n", ast.Scrapbox)
	require.NoError(t, err)
	assert.Equal(t, "[/p/Page](https://example.com/p/Page)\n", out)
}
