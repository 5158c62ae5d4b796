// Package render turns section records into tagged display documents.
package render

import (
	"syntaxsheet/pkg/model"
)

// Tag is the visual tag applied to a block.
type Tag string

// Block tags.
const (
	TagTitle       Tag = "title"
	TagExplanation Tag = "explanation"
	TagCode        Tag = "code"
)

// Highlighter colours source code. Implemented by highlight.Highlighter.
type Highlighter interface {
	Highlight(code, language string) (string, bool)
}

// Block is one tagged run of text in the code area.
type Block struct {
	Tag         Tag    `json:"tag"`
	Text        string `json:"text"`
	Example     int    `json:"example"`               // index into the section's examples
	Highlighted string `json:"highlighted,omitempty"` // HTML, code blocks only
}

// Document is a rendered section: a description label plus the code area blocks.
type Document struct {
	Language    string  `json:"language"`
	Section     string  `json:"section"`
	Description string  `json:"description"`
	Blocks      []Block `json:"blocks"`
}

// Count returns the number of blocks carrying tag.
func (d *Document) Count(tag Tag) int {
	n := 0
	for _, b := range d.Blocks {
		if b.Tag == tag {
			n++
		}
	}
	return n
}

// Renderer builds Documents. A nil highlighter leaves code uncoloured.
type Renderer struct {
	highlighter Highlighter
}

// NewRenderer creates a Renderer. Pass nil to disable highlighting.
func NewRenderer(h Highlighter) *Renderer {
	return &Renderer{highlighter: h}
}

// Render lays out a section: for every example a title line, the
// explanation if present, then the code.
func (r *Renderer) Render(language, key string, sec model.SectionRecord) *Document {
	doc := &Document{
		Language:    language,
		Section:     key,
		Description: sec.Description,
		Blocks:      make([]Block, 0, len(sec.Examples)*3),
	}

	for i, ex := range sec.Examples {
		doc.Blocks = append(doc.Blocks, Block{Tag: TagTitle, Text: ex.Title + ":\n", Example: i})
		if ex.HasExplanation() {
			doc.Blocks = append(doc.Blocks, Block{Tag: TagExplanation, Text: *ex.Explanation + "\n\n", Example: i})
		}

		code := Block{Tag: TagCode, Text: ex.Code + "\n\n", Example: i}
		if r.highlighter != nil {
			if out, ok := r.highlighter.Highlight(ex.Code, language); ok {
				code.Highlighted = out
			}
		}
		doc.Blocks = append(doc.Blocks, code)
	}
	return doc
}
