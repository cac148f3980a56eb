package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsString(t *testing.T) {
	assert.True(t, ContainsString([]string{"a", "b"}, "a"))
	assert.False(t, ContainsString([]string{}, "a"))
	assert.False(t, ContainsString([]string{"a", "b"}, "c"))
}

func TestTextToMd5Hash(t *testing.T) {
	hash, err := TextToMd5Hash("https://example.com/image.jpg")
	assert.NoError(t, err)
	assert.Len(t, hash, 32)

	same, err := TextToMd5Hash("https://example.com/image.jpg")
	assert.NoError(t, err)
	assert.Equal(t, hash, same)
}

func TestStripHTMLTags(t *testing.T) {
	assert.Equal(t, "First sentence here. Second sentence.",
		StripHTMLTags("<p>First sentence here. Second sentence.</p>"))
	assert.Equal(t, "plain", StripHTMLTags("plain"))
}

func TestTruncateRunes(t *testing.T) {
	long := strings.Repeat("x", 80)
	truncated := TruncateRunes(long, 70)
	assert.Len(t, truncated, 70)
	assert.Equal(t, strings.Repeat("x", 67)+"...", truncated)

	assert.Equal(t, "short", TruncateRunes("short", 70))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 5, WordCount("<p>one two</p>\n<p>three four five</p>"))
	assert.Equal(t, 0, WordCount(""))
}
