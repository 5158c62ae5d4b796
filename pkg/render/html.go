package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// AnchorID returns the element id used for a section.
func AnchorID(language, section string) string {
	return slug.Make(language + " " + section)
}

// WriteHTML writes the code area of doc as an HTML fragment. Each example
// becomes a div.example holding its tagged blocks in order.
func WriteHTML(w io.Writer, doc *Document) error {
	anchor := AnchorID(doc.Language, doc.Section)
	root := element(atom.Div, "examples", anchor)

	var current *html.Node
	currentIdx := -1
	for _, b := range doc.Blocks {
		if current == nil || b.Example != currentIdx {
			current = element(atom.Div, "example", fmt.Sprintf("%s-%d", anchor, b.Example+1))
			current.Attr = append(current.Attr, html.Attribute{Key: "data-index", Val: strconv.Itoa(b.Example)})
			root.AppendChild(current)
			currentIdx = b.Example
		}

		node, err := blockNode(b)
		if err != nil {
			return err
		}
		current.AppendChild(node)
	}

	return html.Render(w, root)
}

// HTMLString is WriteHTML into a string.
func HTMLString(doc *Document) (string, error) {
	var sb strings.Builder
	if err := WriteHTML(&sb, doc); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func blockNode(b Block) (*html.Node, error) {
	if b.Tag != TagCode {
		n := element(atom.Div, string(b.Tag), "")
		n.AppendChild(&html.Node{Type: html.TextNode, Data: b.Text})
		return n, nil
	}

	if b.Highlighted == "" {
		n := element(atom.Pre, string(TagCode), "")
		n.AppendChild(&html.Node{Type: html.TextNode, Data: b.Text})
		return n, nil
	}

	n := element(atom.Div, string(TagCode)+" highlighted", "")
	frag, err := html.ParseFragment(strings.NewReader(b.Highlighted), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse highlighted code: %w", err)
	}
	for _, c := range frag {
		n.AppendChild(c)
	}
	return n, nil
}

func element(a atom.Atom, class, id string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     a.String(),
		DataAtom: a,
		Attr:     []html.Attribute{{Key: "class", Val: class}},
	}
	if id != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "id", Val: id})
	}
	return n
}
