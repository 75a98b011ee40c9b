package ast

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/k0kubun/pp"
	"gopkg.in/yaml.v3"
)

// Format selects the textual representation produced by Dump.
type Format int

const (
	FormatPretty Format = iota
	FormatYAML
)

// ParseFormat maps a user supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "pretty":
		return FormatPretty, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return FormatPretty, fmt.Errorf("unknown dump format %q", s)
}

// pp keeps its coloring switch in a package variable.
var ppMu sync.Mutex

// Dump writes a diagnostic rendering of the page. Colors only apply to FormatPretty.
func Dump(w io.Writer, page *Page, format Format, colored bool) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(pageNode(page)); err != nil {
			return err
		}
		return enc.Close()
	default:
		ppMu.Lock()
		defer ppMu.Unlock()
		prev := pp.ColoringEnabled
		pp.ColoringEnabled = colored
		defer func() { pp.ColoringEnabled = prev }()
		_, err := pp.Fprintln(w, page)
		return err
	}
}

func pageNode(p *Page) *yaml.Node {
	nodes := seq()
	for _, n := range p.Nodes {
		nodes.Content = append(nodes.Content, kindNode(n.Kind))
	}
	return mapping("dialect", scalar(p.Dialect.String()), "nodes", nodes)
}

func kindNode(k Kind) *yaml.Node {
	switch v := k.(type) {
	case *Paragraph:
		children := seq()
		for _, c := range v.Children {
			children.Content = append(children.Content, kindNode(c.Kind))
		}
		return mapping("kind", scalar("paragraph"), "children", children)
	case *List:
		items := seq()
		for _, item := range v.Children {
			children := seq()
			for _, c := range item.Children {
				children.Content = append(children.Content, kindNode(c.Kind))
			}
			items.Content = append(items.Content, mapping(
				"kind", scalar(item.Kind.String()),
				"level", scalar(item.Level),
				"children", children))
		}
		return mapping("kind", scalar("list"), "children", items)
	case *HashTag:
		return mapping("kind", scalar("hashtag"), "value", scalar(v.Value))
	case *InternalLink:
		return mapping("kind", scalar("internal_link"), "title", scalar(v.Title))
	case *ExternalLink:
		if v.Title == nil {
			return mapping("kind", scalar("external_link"), "url", scalar(v.URL))
		}
		return mapping("kind", scalar("external_link"), "title", scalar(*v.Title), "url", scalar(v.URL))
	case *Emphasis:
		return mapping("kind", scalar("emphasis"), "text", scalar(v.Text),
			"bold", scalar(v.Bold), "italic", scalar(v.Italic), "strikethrough", scalar(v.Strikethrough))
	case *Heading:
		return mapping("kind", scalar("heading"), "text", scalar(v.Text), "level", scalar(v.Level))
	case *BlockQuate:
		return mapping("kind", scalar("block_quate"), "value", scalar(v.Value))
	case *CodeBlock:
		lines := seq()
		for _, l := range v.Children {
			lines.Content = append(lines.Content, scalar(l))
		}
		return mapping("kind", scalar("code_block"), "file_name", scalar(v.FileName), "children", lines)
	case *Table:
		header := seq()
		for _, c := range v.Header {
			header.Content = append(header.Content, scalar(c))
		}
		rows := seq()
		for _, r := range v.Rows {
			row := seq()
			row.Style = yaml.FlowStyle
			for _, c := range r {
				row.Content = append(row.Content, scalar(c))
			}
			rows.Content = append(rows.Content, row)
		}
		header.Style = yaml.FlowStyle
		return mapping("kind", scalar("table"), "name", scalar(v.Name), "header", header, "rows", rows)
	case *Image:
		return mapping("kind", scalar("image"), "uri", scalar(v.URI))
	case *Math:
		return mapping("kind", scalar("math"), "value", scalar(v.Value))
	case *Text:
		return mapping("kind", scalar("text"), "value", scalar(v.Value))
	}
	return mapping("kind", scalar("nop"))
}

func seq() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

// mapping builds an ordered mapping from alternating keys and values.
func mapping(pairs ...any) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i+1 < len(pairs); i += 2 {
		n.Content = append(n.Content, scalar(pairs[i].(string)), pairs[i+1].(*yaml.Node))
	}
	return n
}

func scalar[T string | int](v T) *yaml.Node {
	switch x := any(v).(type) {
	case int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(x)}
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: x}
	}
	return nil
}
