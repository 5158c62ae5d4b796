package render

import (
	"fmt"
	"strings"
)

// TagStyle is the static look of one block tag.
type TagStyle struct {
	Color string
	Bold  bool
}

// Theme holds the colours and font of the display.
type Theme struct {
	Font        string
	FontSize    int
	Background  string
	Foreground  string
	Title       TagStyle
	Explanation TagStyle
	Code        TagStyle
}

// DefaultTheme is the dark theme of the viewer.
func DefaultTheme() Theme {
	return Theme{
		Font:        "Consolas",
		FontSize:    10,
		Background:  "#1e1e1e",
		Foreground:  "#ffffff",
		Title:       TagStyle{Color: "#ffcc00", Bold: true},
		Explanation: TagStyle{Color: "#cccccc"},
		Code:        TagStyle{Color: "#ffffff"},
	}
}

// CSS returns the stylesheet for the tagged blocks.
func (t Theme) CSS() string {
	var sb strings.Builder
	font := fmt.Sprintf("'%s', 'Monaco', 'Courier New', monospace", t.Font)
	fmt.Fprintf(&sb, ".examples { background: %s; color: %s; font-family: %s; font-size: %dpt; }\n",
		t.Background, t.Foreground, font, t.FontSize)

	for _, ts := range []struct {
		tag   Tag
		style TagStyle
	}{
		{TagTitle, t.Title},
		{TagExplanation, t.Explanation},
		{TagCode, t.Code},
	} {
		weight := "normal"
		if ts.style.Bold {
			weight = "bold"
		}
		fmt.Fprintf(&sb, ".examples .%s { color: %s; font-weight: %s; white-space: pre-wrap; word-wrap: break-word; margin: 0; font-family: inherit; }\n",
			ts.tag, ts.style.Color, weight)
	}
	return sb.String()
}
