// Package prompts provides externalized LLM prompt templates.
// Templates are stored as JSON files of key -> text/template source and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

//go:embed *.json
var promptFiles embed.FS

var (
	cache   = make(map[string]*template.Template)
	cacheMu sync.RWMutex
)

// Render executes the template stored under key in filename with data.
// The filename should not include the path (e.g., "feedback.json").
func Render(filename, key string, data any) (string, error) {
	tmpl, err := lookup(filename, key)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %s/%s: %w", filename, key, err)
	}
	return sb.String(), nil
}

// ClearCache drops parsed templates. Useful for testing.
func ClearCache() {
	cacheMu.Lock()
	cache = make(map[string]*template.Template)
	cacheMu.Unlock()
}

func lookup(filename, key string) (*template.Template, error) {
	id := filename + "#" + key

	cacheMu.RLock()
	tmpl, ok := cache[id]
	cacheMu.RUnlock()
	if ok {
		return tmpl, nil
	}

	sources, err := readFile(filename)
	if err != nil {
		return nil, err
	}
	src, ok := sources[key]
	if !ok {
		return nil, fmt.Errorf("prompt key %q not found in %s", key, filename)
	}

	tmpl, err = template.New(id).Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt %s: %w", id, err)
	}

	cacheMu.Lock()
	cache[id] = tmpl
	cacheMu.Unlock()
	return tmpl, nil
}

func readFile(filename string) (map[string]string, error) {
	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	var sources map[string]string
	if err := json.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}
	return sources, nil
}
