// Package highlight colours example code for display.
package highlight

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma"
	chromahtml "github.com/alecthomas/chroma/formatters/html"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
)

// DefaultStyle is the chroma style used when none is configured.
const DefaultStyle = "monokai"

// supported maps a language tag to the chroma lexer name.
var supported = map[string]string{
	"python":     "python",
	"javascript": "javascript",
	"java":       "java",
	"go":         "go",
}

// Highlighter turns source text into HTML with inline colours.
type Highlighter struct {
	lexers    map[string]chroma.Lexer
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// New creates a Highlighter for the named chroma style.
func New(styleName string, tabWidth int) (*Highlighter, error) {
	if styleName == "" {
		styleName = DefaultStyle
	}
	style, ok := styles.Registry[styleName]
	if !ok {
		return nil, fmt.Errorf("unknown highlight style %q", styleName)
	}
	if tabWidth <= 0 {
		tabWidth = 4
	}

	h := &Highlighter{
		lexers: make(map[string]chroma.Lexer, len(supported)),
		style:  style,
		formatter: chromahtml.New(
			chromahtml.Standalone(false),
			chromahtml.WithClasses(false),
			chromahtml.TabWidth(tabWidth),
		),
	}
	for tag, name := range supported {
		lexer := lexers.Get(name)
		if lexer == nil {
			return nil, fmt.Errorf("no lexer registered for %q", name)
		}
		h.lexers[tag] = chroma.Coalesce(lexer)
	}
	return h, nil
}

// Supports reports whether language has a lexer.
func (h *Highlighter) Supports(language string) bool {
	_, ok := h.lexers[strings.ToLower(language)]
	return ok
}

// Highlight returns code as highlighted HTML. For an unsupported language,
// or if tokenising fails, the code is returned unchanged with ok=false.
func (h *Highlighter) Highlight(code, language string) (out string, ok bool) {
	lexer, found := h.lexers[strings.ToLower(language)]
	if !found {
		return code, false
	}

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code, false
	}

	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, it); err != nil {
		return code, false
	}
	return sb.String(), true
}

// Languages returns the supported language tags, sorted.
func Languages() []string {
	out := make([]string, 0, len(supported))
	for tag := range supported {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
