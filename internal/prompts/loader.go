// Package prompts embeds the LLM prompt templates shipped with the binary.
// Each JSON file maps prompt keys to template text; placeholders use the
// {{.Key}} form and are filled with Format.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"
)

//go:embed *.json
var files embed.FS

// loadAll parses every embedded prompt file once, keyed by filename.
var loadAll = sync.OnceValues(func() (map[string]map[string]string, error) {
	all := make(map[string]map[string]string)
	err := fs.WalkDir(files, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := files.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read prompt file %s: %w", path, err)
		}
		var entries map[string]string
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("failed to parse prompt file %s: %w", path, err)
		}
		all[path] = entries
		return nil
	})
	return all, err
})

// Get returns the prompt template stored under key in the named file.
func Get(filename, key string) (string, error) {
	all, err := loadAll()
	if err != nil {
		return "", err
	}
	entries, ok := all[filename]
	if !ok {
		return "", fmt.Errorf("prompt file %s not found", filename)
	}
	prompt, ok := entries[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for prompts the binary cannot run without.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format substitutes {{.Key}} placeholders in a template. Placeholders with
// no matching entry are left in place.
func Format(template string, vars map[string]string) string {
	out := template
	for key, value := range vars {
		out = strings.ReplaceAll(out, "{{."+key+"}}", value)
	}
	return out
}
