package crawler

import (
	"context"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/amosWeiskopf/wordcrawler/internal/models"
	"github.com/amosWeiskopf/wordcrawler/pkg/utils"
)

// ParallelCrawler crawls every discovered link in its own goroutine.
// At most Parallelism parser calls run at once.
type ParallelCrawler struct {
	opts        Options
	ignored     *utils.FullMatcher
	parser      PageParser
	settings    *settings
	parallelism int
}

// New creates a ParallelCrawler that reads pages through parser
func New(opts Options, parser PageParser, options ...Option) (*ParallelCrawler, error) {
	if parser == nil {
		return nil, fmt.Errorf("%w: parser is required", ErrInvalidOptions)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	parallelism := runtime.NumCPU()
	if opts.Parallelism > 0 {
		parallelism = min(opts.Parallelism, parallelism)
	}

	return &ParallelCrawler{
		opts:        opts,
		ignored:     utils.NewFullMatcher(opts.IgnoredURLs),
		parser:      parser,
		settings:    newSettings(options),
		parallelism: parallelism,
	}, nil
}

// MaxParallelism returns the number of CPUs available
func (c *ParallelCrawler) MaxParallelism() int {
	return runtime.NumCPU()
}

// Parallelism returns how many parser calls may run at once
func (c *ParallelCrawler) Parallelism() int {
	return c.parallelism
}

// Crawl visits startingURLs concurrently and blocks until every branch ends.
// Page failures and the deadline end branches quietly; the returned error is
// always nil and exists for WebCrawler implementations that can fail.
func (c *ParallelCrawler) Crawl(ctx context.Context, startingURLs []string) (*models.CrawlResult, error) {
	logger := c.settings.logger.With(zap.String("run_id", uuid.NewString()))
	run := newCrawlRun(c.opts, c.settings, c.ignored, c.parser, logger)
	sem := semaphore.NewWeighted(int64(c.parallelism))

	logger.Info("crawl started",
		zap.Int("starting_urls", len(startingURLs)),
		zap.Int("max_depth", c.opts.MaxDepth),
		zap.Duration("timeout", c.opts.Timeout),
		zap.Int("parallelism", c.parallelism))

	var g errgroup.Group
	c.spawn(ctx, &g, run, sem, startingURLs, c.opts.MaxDepth)
	_ = g.Wait()

	result, distinct := run.result(c.settings.ranker, c.opts.PopularWordCount)
	logger.Info("crawl finished",
		zap.Int("urls_visited", result.URLsVisited()),
		zap.Int64("failed_pages", run.failed.Load()),
		zap.Int("distinct_words", distinct))
	return result, nil
}

// spawn starts a branch in g for every URL still worth visiting at depth
func (c *ParallelCrawler) spawn(ctx context.Context, g *errgroup.Group, run *crawlRun, sem *semaphore.Weighted, urls []string, depth int) {
	for _, pageURL := range urls {
		if !run.pending(ctx, pageURL, depth) {
			continue
		}
		g.Go(func() error {
			c.visit(ctx, run, sem, pageURL, depth)
			return nil
		})
	}
}

// visit handles one page and then waits for all the branches it spawned.
// Callers go through spawn, which has already checked depth, deadline and ignores.
func (c *ParallelCrawler) visit(ctx context.Context, run *crawlRun, sem *semaphore.Weighted, pageURL string, depth int) {
	// The slot is held for the parser call only, never while waiting on
	// children, so a deep recursion cannot starve itself.
	if err := sem.Acquire(ctx, 1); err != nil {
		return
	}
	if run.expired(ctx) || !run.visited.Add(pageURL) {
		sem.Release(1)
		return
	}
	links, ok := run.fetch(ctx, pageURL, depth)
	sem.Release(1)
	if !ok {
		return
	}

	var g errgroup.Group
	c.spawn(ctx, &g, run, sem, links, depth-1)
	_ = g.Wait()
}
