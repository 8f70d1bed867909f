package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Common stop words for text processing
var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "has": true, "he": true,
	"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
	"that": true, "the": true, "to": true, "was": true, "will": true, "with": true,
	"this": true, "but": true, "they": true, "have": true, "had": true,
	"were": true, "been": true, "their": true, "she": true, "which": true, "do": true,
	"or": true, "if": true, "not": true, "what": true, "there": true, "can": true,
	"out": true, "up": true, "one": true, "about": true, "more": true, "so": true,
	"said": true, "when": true, "some": true, "into": true, "them": true, "then": true,
	"two": true, "how": true, "her": true, "than": true, "first": true, "way": true,
	"even": true, "back": true, "any": true, "over": true, "where": true, "just": true,
}

var space = regexp.MustCompile(`\s+`)

// CleanText removes extra whitespace and normalizes text
func CleanText(text string) string {
	return strings.TrimSpace(space.ReplaceAllString(text, " "))
}

// IsStopWord reports whether word is a common English stop word.
// word must already be lower case.
func IsStopWord(word string) bool {
	return stopWords[word]
}

// Words splits text into lower-cased words.
// Anything that is not a letter or a digit separates words.
func Words(text string) []string {
	// Casers keep state, so each call gets its own.
	lower := cases.Lower(language.Und)
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		words = append(words, lower.String(f))
	}
	return words
}

// WordFilter decides which words are dropped before counting
type WordFilter struct {
	ignored       *FullMatcher
	skipStopWords bool
}

// NewWordFilter drops words fully matching any ignored pattern and,
// if skipStopWords is set, common English stop words.
func NewWordFilter(ignored []*regexp.Regexp, skipStopWords bool) WordFilter {
	return WordFilter{ignored: NewFullMatcher(ignored), skipStopWords: skipStopWords}
}

// Keep reports whether word should be counted
func (f WordFilter) Keep(word string) bool {
	if f.skipStopWords && IsStopWord(word) {
		return false
	}
	return !f.ignored.Match(word)
}

// CountWords counts the occurrences of every kept word in text
func CountWords(text string, filter WordFilter) map[string]int {
	counts := make(map[string]int)
	for _, word := range Words(text) {
		if filter.Keep(word) {
			counts[word]++
		}
	}
	return counts
}

// FullMatcher reports whether a string is matched in its entirety by any of
// a set of patterns. The patterns are used as compiled, POSIX or not.
type FullMatcher struct {
	patterns []*regexp.Regexp
}

// NewFullMatcher builds a FullMatcher from patterns. Nil entries are skipped.
func NewFullMatcher(patterns []*regexp.Regexp) *FullMatcher {
	m := &FullMatcher{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		if p == nil {
			continue
		}
		// With leftmost-longest matching, a match covering all of s exists
		// exactly when the leftmost match spans [0, len(s)].
		longest := *p
		longest.Longest()
		m.patterns = append(m.patterns, &longest)
	}
	return m
}

// Match reports whether some pattern matches the whole of s
func (m *FullMatcher) Match(s string) bool {
	if m == nil {
		return false
	}
	for _, p := range m.patterns {
		if loc := p.FindStringIndex(s); loc != nil && loc[0] == 0 && loc[1] == len(s) {
			return true
		}
	}
	return false
}

// Len returns the number of patterns
func (m *FullMatcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.patterns)
}
