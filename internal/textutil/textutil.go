package textutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash computes a SHA-256 hex digest, used to key extraction results by file content.
func Hash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

var tsvEscaper = strings.NewReplacer("\t", `\t`, "\n", `\n`, "\r", `\r`)

// EscapeTSV replaces tabs and line breaks so s fits in one TSV cell.
func EscapeTSV(s string) string {
	return tsvEscaper.Replace(s)
}
