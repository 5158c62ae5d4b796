package model

// Catalog is the loaded set of language definitions.
// It is built once at startup and only read afterwards.
type Catalog struct {
	names  []string
	byName map[string]*LanguageDefinition
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]*LanguageDefinition)}
}

// Add stores def under def.Name. It reports whether an existing definition
// was replaced; a replaced name keeps its selector position.
func (c *Catalog) Add(def *LanguageDefinition) (replaced bool) {
	if _, ok := c.byName[def.Name]; ok {
		replaced = true
	} else {
		c.names = append(c.names, def.Name)
	}
	c.byName[def.Name] = def
	return replaced
}

// Get looks up a language by name.
func (c *Catalog) Get(name string) (*LanguageDefinition, bool) {
	if c == nil {
		return nil, false
	}
	def, ok := c.byName[name]
	return def, ok
}

// Names returns language names in selector order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of languages.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// Section returns the record of a language's section.
func (c *Catalog) Section(language, key string) (SectionRecord, bool) {
	def, ok := c.Get(language)
	if !ok {
		return SectionRecord{}, false
	}
	return def.Sections.Get(key)
}
