package analyzer

import (
	"sort"
	"unicode/utf8"

	"github.com/amosWeiskopf/wordcrawler/internal/models"
)

// LessFunc reports whether a ranks ahead of b
type LessFunc func(a, b models.WordCount) bool

// Ranker turns an aggregated word tally into the most popular words
type Ranker struct {
	less LessFunc
}

// New creates a Ranker using the default popularity ordering
func New() *Ranker {
	return &Ranker{less: ByPopularity}
}

// NewWithOrder creates a Ranker with a custom ordering.
// A nil less falls back to ByPopularity.
func NewWithOrder(less LessFunc) *Ranker {
	if less == nil {
		less = ByPopularity
	}
	return &Ranker{less: less}
}

// ByPopularity orders by count descending, then by word length in characters
// descending, then alphabetically.
func ByPopularity(a, b models.WordCount) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	if la, lb := utf8.RuneCountInString(a.Word), utf8.RuneCountInString(b.Word); la != lb {
		return la > lb
	}
	return a.Word < b.Word
}

// Rank returns at most limit entries of tally in rank order.
// The tally is not modified.
func (r *Ranker) Rank(tally map[string]int, limit int) []models.WordCount {
	if limit <= 0 || len(tally) == 0 {
		return []models.WordCount{}
	}

	sorted := make([]models.WordCount, 0, len(tally))
	for word, count := range tally {
		sorted = append(sorted, models.WordCount{Word: word, Count: count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		return r.less(sorted[i], sorted[j])
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// TopWords ranks tally with the default ordering
func TopWords(tally map[string]int, limit int) []models.WordCount {
	return New().Rank(tally, limit)
}
