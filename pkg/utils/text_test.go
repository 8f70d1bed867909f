package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	got := Words("Hello, WORLD! It's 2024 -- Ünïcode\tok")
	assert.Equal(t, []string{"hello", "world", "it", "s", "2024", "ünïcode", "ok"}, got)
	assert.Empty(t, Words("  ...  "))
}

func TestCountWords(t *testing.T) {
	text := "The cat and the dog. The CAT!"

	counts := CountWords(text, NewWordFilter(nil, false))
	assert.Equal(t, map[string]int{"the": 3, "cat": 2, "and": 1, "dog": 1}, counts)

	counts = CountWords(text, NewWordFilter(nil, true))
	assert.Equal(t, map[string]int{"cat": 2, "dog": 1}, counts)

	short := regexp.MustCompile(`.{1,3}`)
	counts = CountWords("a tiny elephant", NewWordFilter([]*regexp.Regexp{short}, false))
	assert.Equal(t, map[string]int{"tiny": 1, "elephant": 1}, counts)
}

func TestWordFilterIsFullMatch(t *testing.T) {
	filter := NewWordFilter([]*regexp.Regexp{regexp.MustCompile(`cat`)}, false)
	assert.False(t, filter.Keep("cat"))
	assert.True(t, filter.Keep("category"))
	assert.True(t, filter.Keep("bobcat"))
}

func TestFullMatcher(t *testing.T) {
	m := NewFullMatcher([]*regexp.Regexp{regexp.MustCompile(`http://example\.com/.*`), nil})
	assert.Equal(t, 1, m.Len())
	assert.True(t, m.Match("http://example.com/a"))
	assert.False(t, m.Match("see http://example.com/a"))

	alt := NewFullMatcher([]*regexp.Regexp{regexp.MustCompile(`a|ab`)})
	assert.True(t, alt.Match("ab"))
	assert.True(t, alt.Match("a"))
	assert.False(t, alt.Match("abc"))

	anchored := NewFullMatcher([]*regexp.Regexp{regexp.MustCompile(`^(?:cat)$`)})
	assert.True(t, anchored.Match("cat"))
	assert.False(t, anchored.Match("cats"))

	var empty *FullMatcher
	assert.False(t, empty.Match(""))
	assert.False(t, NewFullMatcher(nil).Match(""))
}

func TestFullMatcherPOSIX(t *testing.T) {
	re := regexp.MustCompilePOSIX(`a|ab`)
	m := NewFullMatcher([]*regexp.Regexp{re})
	assert.True(t, m.Match("ab"))
	assert.False(t, m.Match("xab"))
	assert.Equal(t, "ab", re.FindString("ab"), "POSIX pattern keeps leftmost-longest semantics")
}

func TestFullMatcherLeavesPatternUntouched(t *testing.T) {
	re := regexp.MustCompile(`a|ab`)
	NewFullMatcher([]*regexp.Regexp{re})
	assert.Equal(t, "a", re.FindString("ab"), "caller's pattern keeps leftmost-first semantics")
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b c", CleanText("  a\n\tb   c "))
}
