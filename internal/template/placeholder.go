package template

import (
	"regexp"
	"strings"
)

// placeholderPattern matches angle-bracket tokens such as <NAME> or <MAP_R>.
var placeholderPattern = regexp.MustCompile(`<[A-Z][A-Z0-9_]*>`)

// Placeholders returns the distinct placeholder tokens in text, in order of
// first appearance.
func Placeholders(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tok := range placeholderPattern.FindAllString(text, -1) {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// Token normalizes a user-supplied key to placeholder form: "damage",
// "DAMAGE" and "<damage>" all become "<DAMAGE>".
func Token(key string) string {
	key = strings.TrimSpace(key)
	key = strings.TrimPrefix(key, "<")
	key = strings.TrimSuffix(key, ">")
	return "<" + strings.ToUpper(key) + ">"
}
