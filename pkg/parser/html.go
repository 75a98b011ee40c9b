package parser

import (
	"slices"
	"strings"

	"github.com/flytaly/scrapconv/pkg/ast"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func extractImgAndLinks(nodes []*html.Node) []*html.Node {
	result := make([]*html.Node, 0)
	slices.Reverse(nodes)
	for stack := nodes; len(stack) > 0; {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node.DataAtom == atom.Img || node.DataAtom == atom.A {
			result = append(result, node)
			continue
		}
		for child := node.LastChild; child != nil; child = child.PrevSibling {
			stack = append(stack, child)
		}
	}
	return result
}

func attr(node *html.Node, key string) string {
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func innerText(node *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return strings.TrimSpace(sb.String())
}

// htmlKind converts the first <img> or <a> of an HTML fragment.
func htmlKind(frag string) (ast.Kind, bool) {
	fakeBody := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}

	nodes, err := html.ParseFragment(strings.NewReader(frag), fakeBody)
	if err != nil {
		return nil, false
	}

	for _, node := range extractImgAndLinks(nodes) {
		switch node.DataAtom {
		case atom.Img:
			if src := attr(node, "src"); src != "" {
				return &ast.Image{URI: src}, true
			}
		case atom.A:
			if href := attr(node, "href"); href != "" {
				return ast.NewExternalLink(innerText(node), href), true
			}
		}
	}
	return nil, false
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// mdHTML matches inline <img ...> and <a href="...">text</a> tags.
func mdHTML(c mdCursor) (mdCursor, ast.Node, error) {
	rest := c.Rest()
	n := 0
	switch {
	case hasPrefixFold(rest, "<img"):
		n = strings.IndexByte(rest, '>') + 1
	case hasPrefixFold(rest, "<a "):
		for i := range len(rest) {
			if hasPrefixFold(rest[i:], "</a>") {
				n = i + len("</a>")
				break
			}
		}
	}
	if n <= 0 {
		return c, ast.Node{}, fail(c, "unsupported inline html")
	}
	kind, ok := htmlKind(rest[:n])
	if !ok {
		return c, ast.Node{}, fail(c, "html tag without a link")
	}
	next, _ := c.Take(n)
	return next, ast.NewNode(kind), nil
}
