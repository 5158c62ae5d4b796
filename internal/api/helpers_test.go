package api

import (
	"encoding/json"
	"sync"
	"testing"

	"syntaxsheet/pkg/model"
)

const pythonJSON = `{
	"name": "Python",
	"sections": {
		"loops": {
			"description": "Repeating work",
			"examples": [
				{"title": "For loop", "explanation": "Iterates a range", "code": "for i in range(3):\n    print(i)"},
				{"title": "While loop", "code": "while x < 3:\n    x += 1"}
			]
		},
		"functions": {
			"description": "Defining functions",
			"examples": [
				{"title": "Def", "code": "def greet(name):\n    return f'hi {name}'"}
			]
		}
	}
}`

const goJSON = `{
	"name": "Go",
	"sections": {
		"Control flow": {
			"description": "if and switch",
			"examples": [{"title": "If", "code": "if x > 0 {\n}"}]
		}
	}
}`

func newTestCatalog(t *testing.T) *model.Catalog {
	t.Helper()
	cat := model.NewCatalog()
	for _, src := range []string{pythonJSON, goJSON} {
		var def model.LanguageDefinition
		if err := json.Unmarshal([]byte(src), &def); err != nil {
			t.Fatalf("bad fixture: %v", err)
		}
		cat.Add(&def)
	}
	return cat
}

type fakeClipboard struct {
	mu   sync.Mutex
	text string
}

func (c *fakeClipboard) WriteAll(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	return nil
}

func (c *fakeClipboard) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}
