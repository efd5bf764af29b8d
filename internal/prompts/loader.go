// Package prompts provides a loader for externalized LLM prompt templates.
// Prompts are stored as JSON files (key -> template) and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

var (
	loadOnce sync.Once
	library  map[string]map[string]string
	loadErr  error
)

// load parses every embedded prompt file once.
func load() (map[string]map[string]string, error) {
	loadOnce.Do(func() {
		names, err := fs.Glob(promptFiles, "*.json")
		if err != nil {
			loadErr = fmt.Errorf("failed to list prompt files: %w", err)
			return
		}

		library = make(map[string]map[string]string, len(names))
		for _, name := range names {
			data, err := promptFiles.ReadFile(name)
			if err != nil {
				loadErr = fmt.Errorf("failed to read prompt file %s: %w", name, err)
				return
			}
			var entries map[string]string
			if err := json.Unmarshal(data, &entries); err != nil {
				loadErr = fmt.Errorf("failed to parse prompt file %s: %w", name, err)
				return
			}
			library[name] = entries
		}
	})
	return library, loadErr
}

// Get retrieves a prompt by filename (e.g. "parsing.json") and key.
func Get(filename, key string) (string, error) {
	lib, err := load()
	if err != nil {
		return "", err
	}

	entries, ok := lib[filename]
	if !ok {
		return "", fmt.Errorf("prompt file %s not found", filename)
	}
	prompt, ok := entries[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet retrieves a prompt and panics if it is missing. Prompts are embedded, so a
// missing key is a programming error.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces {{.Key}} placeholders with values from data. Unknown placeholders are left as-is.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// List returns the sorted prompt keys available in a file.
func List(filename string) ([]string, error) {
	lib, err := load()
	if err != nil {
		return nil, err
	}
	entries, ok := lib[filename]
	if !ok {
		return nil, fmt.Errorf("prompt file %s not found", filename)
	}

	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}
