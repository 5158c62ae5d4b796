package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// LanguageDefinition holds the reference content of one programming language.
type LanguageDefinition struct {
	Name     string   `json:"name" yaml:"name"`         // Unique catalog key, e.g. "Python"
	Sections Sections `json:"sections" yaml:"sections"` // Topic -> content, in source order
}

// SectionRecord is one named topic (e.g. "loops") of a language.
type SectionRecord struct {
	Description string          `json:"description" yaml:"description"`
	Examples    []ExampleRecord `json:"examples" yaml:"examples"`
}

// ExampleRecord is a single titled code snippet.
type ExampleRecord struct {
	Title       string  `json:"title" yaml:"title"`
	Explanation *string `json:"explanation,omitempty" yaml:"explanation,omitempty"` // nil when the key is absent
	Code        string  `json:"code" yaml:"code"`
}

// HasExplanation reports whether the explanation key was present in the source.
func (e ExampleRecord) HasExplanation() bool {
	return e.Explanation != nil
}

// Sections is an insertion-ordered mapping of section key to record.
// The zero value is an empty mapping.
type Sections struct {
	keys  []string
	byKey map[string]SectionRecord
}

// NewSections builds a Sections value from parallel key and record slices.
func NewSections(keys []string, records []SectionRecord) Sections {
	var s Sections
	for i, k := range keys {
		s.Set(k, records[i])
	}
	return s
}

// Set adds or replaces a section. A replaced key keeps its original position.
func (s *Sections) Set(key string, rec SectionRecord) {
	if s.byKey == nil {
		s.byKey = make(map[string]SectionRecord)
	}
	if _, ok := s.byKey[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.byKey[key] = rec
}

// Get returns the section stored under key.
func (s Sections) Get(key string) (SectionRecord, bool) {
	rec, ok := s.byKey[key]
	return rec, ok
}

// Keys returns the section keys in source order.
func (s Sections) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of sections.
func (s Sections) Len() int {
	return len(s.keys)
}

// UnmarshalJSON implements json.Unmarshaler, keeping object key order.
func (s *Sections) UnmarshalJSON(data []byte) error {
	*s = Sections{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("sections: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("sections: unexpected key token %v", tok)
		}
		var rec SectionRecord
		if err := dec.Decode(&rec); err != nil {
			return fmt.Errorf("section %q: %w", key, err)
		}
		s.Set(key, rec)
	}

	// closing brace
	_, err = dec.Token()
	return err
}

// MarshalJSON implements json.Marshaler, writing keys in source order.
func (s Sections) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(s.byKey[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, keeping mapping key order.
func (s *Sections) UnmarshalYAML(value *yaml.Node) error {
	*s = Sections{}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("sections: expected mapping at line %d", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]
		var rec SectionRecord
		if err := valNode.Decode(&rec); err != nil {
			return fmt.Errorf("section %q: %w", keyNode.Value, err)
		}
		s.Set(keyNode.Value, rec)
	}
	return nil
}
