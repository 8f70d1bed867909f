package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amosWeiskopf/wordcrawler/internal/models"
)

func TestTopWords(t *testing.T) {
	tests := []struct {
		name  string
		tally map[string]int
		limit int
		want  []models.WordCount
	}{
		{
			name:  "length then alphabetical tie break",
			tally: map[string]int{"cat": 2, "dog": 2, "ox": 2},
			limit: 3,
			want: []models.WordCount{
				{Word: "cat", Count: 2},
				{Word: "dog", Count: 2},
				{Word: "ox", Count: 2},
			},
		},
		{
			name:  "count wins over length",
			tally: map[string]int{"a": 5, "elephant": 1, "bee": 3},
			limit: 3,
			want: []models.WordCount{
				{Word: "a", Count: 5},
				{Word: "bee", Count: 3},
				{Word: "elephant", Count: 1},
			},
		},
		{
			name:  "longer word wins a count tie",
			tally: map[string]int{"go": 4, "gopher": 4},
			limit: 2,
			want: []models.WordCount{
				{Word: "gopher", Count: 4},
				{Word: "go", Count: 4},
			},
		},
		{
			name:  "length counts characters not bytes",
			tally: map[string]int{"ééé": 1, "abcd": 1},
			limit: 2,
			want: []models.WordCount{
				{Word: "abcd", Count: 1},
				{Word: "ééé", Count: 1},
			},
		},
		{
			name:  "truncated to limit",
			tally: map[string]int{"one": 1, "two": 2, "three": 3},
			limit: 2,
			want: []models.WordCount{
				{Word: "three", Count: 3},
				{Word: "two", Count: 2},
			},
		},
		{
			name:  "fewer words than limit",
			tally: map[string]int{"solo": 7},
			limit: 10,
			want:  []models.WordCount{{Word: "solo", Count: 7}},
		},
		{
			name:  "zero limit",
			tally: map[string]int{"solo": 7},
			limit: 0,
			want:  []models.WordCount{},
		},
		{
			name:  "empty tally",
			tally: map[string]int{},
			limit: 5,
			want:  []models.WordCount{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopWords(tt.tally, tt.limit))
		})
	}
}

func TestRankIsIdempotent(t *testing.T) {
	tally := map[string]int{"b": 1, "a": 1, "cc": 1, "dd": 3, "e": 2}
	first := TopWords(tally, 4)
	second := TopWords(tally, 4)
	assert.Equal(t, first, second)
	assert.Len(t, tally, 5, "tally must not be modified")
}

func TestNewWithOrder(t *testing.T) {
	alphabetical := func(a, b models.WordCount) bool { return a.Word < b.Word }
	r := NewWithOrder(alphabetical)

	got := r.Rank(map[string]int{"zebra": 10, "apple": 1, "mango": 5}, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "apple", got[0].Word)
	assert.Equal(t, "mango", got[1].Word)

	fallback := NewWithOrder(nil)
	assert.Equal(t, TopWords(map[string]int{"x": 1, "y": 2}, 2), fallback.Rank(map[string]int{"x": 1, "y": 2}, 2))
}
