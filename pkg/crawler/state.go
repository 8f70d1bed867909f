package crawler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/amosWeiskopf/wordcrawler/internal/models"
	"github.com/amosWeiskopf/wordcrawler/pkg/analyzer"
	"github.com/amosWeiskopf/wordcrawler/pkg/utils"
)

var errNilResult = errors.New("parser returned no result")

// visitedSet records every URL handed to the parser during one run
type visitedSet struct {
	urls sync.Map
	size atomic.Int64
}

// Add inserts pageURL and reports whether it was not there before
func (v *visitedSet) Add(pageURL string) bool {
	if _, loaded := v.urls.LoadOrStore(pageURL, struct{}{}); loaded {
		return false
	}
	v.size.Add(1)
	return true
}

// Contains reports whether pageURL has already been added
func (v *visitedSet) Contains(pageURL string) bool {
	_, ok := v.urls.Load(pageURL)
	return ok
}

func (v *visitedSet) Len() int {
	return int(v.size.Load())
}

// wordTally sums word counts from many pages concurrently
type wordTally struct {
	counts sync.Map // string -> *atomic.Int64
}

// Merge adds each count to the running total of its word
func (t *wordTally) Merge(counts map[string]int) {
	for word, n := range counts {
		if n <= 0 {
			continue
		}
		v, ok := t.counts.Load(word)
		if !ok {
			v, _ = t.counts.LoadOrStore(word, new(atomic.Int64))
		}
		v.(*atomic.Int64).Add(int64(n))
	}
}

// Snapshot copies the current totals
func (t *wordTally) Snapshot() map[string]int {
	out := make(map[string]int)
	t.counts.Range(func(key, value any) bool {
		out[key.(string)] = int(value.(*atomic.Int64).Load())
		return true
	})
	return out
}

// crawlRun is the shared state of a single Crawl call
type crawlRun struct {
	deadline time.Time
	now      func() time.Time
	ignored  *utils.FullMatcher
	parser   PageParser
	logger   *zap.Logger

	visited visitedSet
	tally   wordTally
	failed  atomic.Int64
}

func newCrawlRun(opts Options, s *settings, ignored *utils.FullMatcher, parser PageParser, logger *zap.Logger) *crawlRun {
	return &crawlRun{
		deadline: s.now().Add(opts.Timeout),
		now:      s.now,
		ignored:  ignored,
		parser:   parser,
		logger:   logger,
	}
}

// expired reports whether the deadline has been reached or the caller gave up
func (r *crawlRun) expired(ctx context.Context) bool {
	return ctx.Err() != nil || !r.now().Before(r.deadline)
}

// skip reports whether a task for pageURL at depth should do no work at all
func (r *crawlRun) skip(ctx context.Context, pageURL string, depth int) bool {
	if depth <= 0 || r.expired(ctx) {
		return true
	}
	if r.ignored.Match(pageURL) {
		r.logger.Debug("skipped ignored URL", zap.String("url", pageURL))
		return true
	}
	return false
}

// pending reports whether a task for pageURL at depth is worth starting.
// It is a cheap pre-check; visited.Add remains the gate that claims a URL.
func (r *crawlRun) pending(ctx context.Context, pageURL string, depth int) bool {
	return !r.skip(ctx, pageURL, depth) && !r.visited.Contains(pageURL)
}

// fetch parses pageURL and merges its words into the tally.
// Failures stay inside this branch: they are counted and logged,
// and fetch reports ok=false so the branch ends.
func (r *crawlRun) fetch(ctx context.Context, pageURL string, depth int) (links []string, ok bool) {
	result, err := safeParse(ctx, r.parser, pageURL)
	if err != nil {
		r.failed.Add(1)
		r.logger.Debug("page failed", zap.String("url", pageURL), zap.Error(err))
		return nil, false
	}
	r.tally.Merge(result.WordCounts)
	r.logger.Debug("crawled page",
		zap.String("url", pageURL),
		zap.Int("depth", depth),
		zap.Int("links", len(result.Links)))
	return result.Links, true
}

// result ranks the tally and also returns the number of distinct words seen
func (r *crawlRun) result(ranker *analyzer.Ranker, limit int) (*models.CrawlResult, int) {
	tally := r.tally.Snapshot()
	if len(tally) == 0 {
		return models.NewCrawlResult(nil, r.visited.Len()), 0
	}
	return models.NewCrawlResult(ranker.Rank(tally, limit), r.visited.Len()), len(tally)
}

func safeParse(ctx context.Context, parser PageParser, pageURL string) (result *models.PageResult, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("parser panicked on %s: %v", pageURL, rec)
		}
	}()
	result, err = parser.Parse(ctx, pageURL)
	if err == nil && result == nil {
		err = errNilResult
	}
	return result, err
}
