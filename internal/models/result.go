package models

// CrawlResult contains the outcome of a crawl run.
// It is built once by a crawler and never changes afterwards; the accessors
// hand out copies so callers cannot mutate it either.
type CrawlResult struct {
	wordCounts  []WordCount
	urlsVisited int
}

// NewCrawlResult freezes the ranked word counts and the visited URL count
func NewCrawlResult(wordCounts []WordCount, urlsVisited int) *CrawlResult {
	frozen := make([]WordCount, len(wordCounts))
	copy(frozen, wordCounts)
	return &CrawlResult{
		wordCounts:  frozen,
		urlsVisited: urlsVisited,
	}
}

// WordCounts returns the ranked words, most popular first
func (r *CrawlResult) WordCounts() []WordCount {
	out := make([]WordCount, len(r.wordCounts))
	copy(out, r.wordCounts)
	return out
}

// URLsVisited returns the number of distinct URLs that were parsed
func (r *CrawlResult) URLsVisited() int {
	return r.urlsVisited
}
