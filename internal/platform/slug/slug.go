package slug

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

const maxLen = 60

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonAlphaNum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxLen {
		s = strings.TrimRight(s[:maxLen], "-")
	}
	if s == "" {
		return "untitled"
	}
	return s
}

// Tag normalizes a free-form tag for counting and linking.
func Tag(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// Key is a readable file name for an identifier that must not share a file
// with any other identifier. Make folds case and punctuation, so Key appends
// a digest of the exact input.
func Key(input string) string {
	sum := sha256.Sum256([]byte(input))
	return Make(input) + "-" + hex.EncodeToString(sum[:8])
}
