package template

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// Render replaces every literal occurrence of each key in values with its value.
// Keys are not regular expressions, and placeholders without a key are left as-is.
// Replacement is a single left-to-right pass, so a value containing another key
// is not substituted again. At a given position the longest key wins.
func Render(text string, values map[string]string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k == "" {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return text
	}

	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, values[k])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// WriteFile renders the template at templatePath and writes the result to
// targetPath, creating parent directories as needed.
func WriteFile(templatePath, targetPath string, values map[string]string) error {
	data, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("read template %s: %w", templatePath, err)
	}

	out := Render(string(data), values)

	if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
		return fmt.Errorf("create target directory: %w", err)
	}
	if err := os.WriteFile(targetPath, []byte(out), 0644); err != nil {
		return fmt.Errorf("write file %s: %w", targetPath, err)
	}

	log.Info().Str("file", targetPath).Str("template", templatePath).Msg("Created file")
	return nil
}
