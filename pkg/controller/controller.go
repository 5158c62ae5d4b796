// Package controller maps user selection events to view updates.
package controller

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"syntaxsheet/pkg/model"
	"syntaxsheet/pkg/render"
)

// SectionItem is one entry of the section list.
type SectionItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// View is the display surface driven by the Controller.
type View interface {
	SetLanguages(names []string)
	// SetSections clears the section list and fills it with items.
	SetSections(items []SectionItem)
	ShowContent(doc *render.Document)
	ClearContent()
}

// Clipboard receives copied example code.
type Clipboard interface {
	WriteAll(text string) error
}

// State is the current selection.
type State struct {
	Language string `json:"language"`
	Section  string `json:"section"`
}

// Controller holds the selection of one UI session. It is not safe for
// concurrent use; callers deliver events from a single goroutine.
type Controller struct {
	catalog   *model.Catalog
	renderer  *render.Renderer
	view      View
	clipboard Clipboard
	logger    *slog.Logger

	state State
	shown *model.SectionRecord
}

// New creates a Controller. clipboard may be nil.
func New(cat *model.Catalog, r *render.Renderer, v View, clipboard Clipboard, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		catalog:   cat,
		renderer:  r,
		view:      v,
		clipboard: clipboard,
		logger:    logger,
	}
}

// State returns the current selection.
func (c *Controller) State() State {
	return c.state
}

// Start publishes the language list and selects the first language.
func (c *Controller) Start() {
	c.StartAt(State{})
}

// StartAt is Start for a returning client: it reselects st when its language
// still exists, and falls back to the first language otherwise.
func (c *Controller) StartAt(st State) {
	names := c.catalog.Names()
	c.view.SetLanguages(names)

	if _, ok := c.catalog.Get(st.Language); ok {
		c.OnLanguageChosen(st.Language)
		c.OnSectionChosen(st.Section)
		return
	}
	if len(names) > 0 {
		c.OnLanguageChosen(names[0])
	}
}

// OnLanguageChosen lists the sections of the named language.
// Unknown or empty names are ignored.
func (c *Controller) OnLanguageChosen(name string) {
	def, ok := c.catalog.Get(name)
	if !ok {
		c.logger.Debug("Controller: ignoring unknown language", "language", name)
		return
	}

	c.state = State{Language: def.Name}
	c.shown = nil
	c.view.ClearContent()

	keys := def.Sections.Keys()
	items := make([]SectionItem, len(keys))
	for i, k := range keys {
		items[i] = SectionItem{Key: k, Label: Capitalize(k)}
	}
	c.view.SetSections(items)
}

// OnSectionChosen renders a section of the selected language.
// It does nothing without a selected language or for an unknown key.
func (c *Controller) OnSectionChosen(key string) {
	if key == "" || c.state.Language == "" {
		return
	}
	sec, ok := c.catalog.Section(c.state.Language, key)
	if !ok {
		c.logger.Debug("Controller: ignoring unknown section", "language", c.state.Language, "section", key)
		return
	}

	c.state.Section = key
	c.shown = &sec
	c.view.ShowContent(c.renderer.Render(c.state.Language, key, sec))
}

// OnExampleCopy copies the code of the displayed section's example at index.
// It reports whether anything was copied.
func (c *Controller) OnExampleCopy(index int) bool {
	if c.clipboard == nil || c.shown == nil || index < 0 || index >= len(c.shown.Examples) {
		return false
	}
	if err := c.clipboard.WriteAll(c.shown.Examples[index].Code); err != nil {
		c.logger.Warn("Controller: clipboard write failed", "error", err)
		return false
	}
	c.logger.Info("Copied example", "language", c.state.Language, "section", c.state.Section, "index", index)
	return true
}

// Capitalize upper-cases the first letter of s and lower-cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToTitle(r)) + strings.ToLower(s[size:])
}
