package utils

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"
)

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// ContainsString returns true iff the provided string slice hay contains string
// needle.
func ContainsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}

// TextToMd5Hash returns the hex encoded md5 digest of the input text.
func TextToMd5Hash(text string) (string, error) {
	h := md5.New()
	if _, err := h.Write([]byte(text)); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// StripHTMLTags removes every markup tag from the input, leaving the visible
// text untouched.
func StripHTMLTags(content string) string {
	return htmlTagRe.ReplaceAllString(content, "")
}

// TruncateRunes shortens s to at most limit characters, replacing the tail
// with "..." when truncation happens. Counted in runes, not bytes.
func TruncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// WordCount counts whitespace separated words in the tag-stripped content.
func WordCount(content string) int {
	return len(strings.Fields(StripHTMLTags(content)))
}
