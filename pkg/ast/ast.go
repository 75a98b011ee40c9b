/*
Package ast defines the document tree shared by the Markdown and Scrapbox grammars.
*/
package ast

// NodeID identifies a node inside a page. Parsers assign DummyNodeID.
type NodeID int

// DummyNodeID is the placeholder id given to every freshly parsed node.
const DummyNodeID NodeID = 0

// Dialect names one of the supported markup grammars.
type Dialect int

const (
	Markdown Dialect = iota
	Scrapbox
)

func (d Dialect) String() string {
	switch d {
	case Markdown:
		return "markdown"
	case Scrapbox:
		return "scrapbox"
	}
	return "?"
}

// Page is the root of a parsed document.
type Page struct {
	Nodes   []Node
	Dialect Dialect // grammar that produced the page
}

// Node is one slot of the tree. Transforms replace Kind in place.
type Node struct {
	ID   NodeID
	Kind Kind
}

// NewNode wraps kind into a node with a placeholder id.
func NewNode(kind Kind) Node {
	return Node{ID: DummyNodeID, Kind: kind}
}

// Kind is implemented by every node payload of this package.
type Kind interface {
	kind()
}

// ListKind is the marker style of a list item.
type ListKind int

const (
	Disc ListKind = iota
	Decimal
	Alphabet
)

func (k ListKind) String() string {
	switch k {
	case Disc:
		return "disc"
	case Decimal:
		return "decimal"
	case Alphabet:
		return "alphabet"
	}
	return "?"
}

type Paragraph struct {
	Children []Node
}

type List struct {
	Children []ListItem
}

// ListItem is a single line of a list. Level is the indentation depth.
type ListItem struct {
	Kind     ListKind
	Level    int
	Children []Node
}

type HashTag struct {
	Value string
}

type InternalLink struct {
	Title string
}

// ExternalLink is a link to an URL. A nil Title means the bare URL.
type ExternalLink struct {
	Title *string
	URL   string
}

// Emphasis counts stacked markers for each decoration.
type Emphasis struct {
	Text          string
	Bold          int
	Italic        int
	Strikethrough int
}

type Heading struct {
	Text  string
	Level int // 1-based
}

// BlockQuate is an inline code span or a one-line command.
type BlockQuate struct {
	Value string
}

type CodeBlock struct {
	FileName string
	Children []string // lines without line breaks
}

// Table rows may be ragged.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

type Image struct {
	URI string
}

type Math struct {
	Value string
}

type Text struct {
	Value string
}

// Nop is the tombstone left by a delete.
type Nop struct{}

func (*Paragraph) kind()    {}
func (*List) kind()         {}
func (*HashTag) kind()      {}
func (*InternalLink) kind() {}
func (*ExternalLink) kind() {}
func (*Emphasis) kind()     {}
func (*Heading) kind()      {}
func (*BlockQuate) kind()   {}
func (*CodeBlock) kind()    {}
func (*Table) kind()        {}
func (*Image) kind()        {}
func (*Math) kind()         {}
func (*Text) kind()         {}
func (*Nop) kind()          {}

// NewExternalLink builds a link, an empty title means no title.
func NewExternalLink(title, url string) *ExternalLink {
	if title == "" {
		return &ExternalLink{URL: url}
	}
	return &ExternalLink{Title: &title, URL: url}
}

func Bold(text string) *Emphasis          { return &Emphasis{Text: text, Bold: 1} }
func Italic(text string) *Emphasis        { return &Emphasis{Text: text, Italic: 1} }
func Strikethrough(text string) *Emphasis { return &Emphasis{Text: text, Strikethrough: 1} }

// IsBlock reports whether k ends its own line when printed.
func IsBlock(k Kind) bool {
	switch k.(type) {
	case *CodeBlock, *Table:
		return true
	}
	return false
}
