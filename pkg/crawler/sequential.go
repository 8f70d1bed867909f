package crawler

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/amosWeiskopf/wordcrawler/internal/models"
	"github.com/amosWeiskopf/wordcrawler/pkg/utils"
)

// SequentialCrawler visits pages one at a time, depth first, on the calling goroutine
type SequentialCrawler struct {
	opts     Options
	ignored  *utils.FullMatcher
	parser   PageParser
	settings *settings
}

// NewSequential creates a SequentialCrawler. opts.Parallelism is ignored.
func NewSequential(opts Options, parser PageParser, options ...Option) (*SequentialCrawler, error) {
	if parser == nil {
		return nil, fmt.Errorf("%w: parser is required", ErrInvalidOptions)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &SequentialCrawler{
		opts:     opts,
		ignored:  utils.NewFullMatcher(opts.IgnoredURLs),
		parser:   parser,
		settings: newSettings(options),
	}, nil
}

// MaxParallelism is always 1
func (c *SequentialCrawler) MaxParallelism() int {
	return 1
}

// Crawl visits startingURLs in order
func (c *SequentialCrawler) Crawl(ctx context.Context, startingURLs []string) (*models.CrawlResult, error) {
	logger := c.settings.logger.With(zap.String("run_id", uuid.NewString()))
	run := newCrawlRun(c.opts, c.settings, c.ignored, c.parser, logger)

	logger.Info("sequential crawl started",
		zap.Int("starting_urls", len(startingURLs)),
		zap.Int("max_depth", c.opts.MaxDepth),
		zap.Duration("timeout", c.opts.Timeout))

	for _, pageURL := range startingURLs {
		c.visit(ctx, run, pageURL, c.opts.MaxDepth)
	}

	result, distinct := run.result(c.settings.ranker, c.opts.PopularWordCount)
	logger.Info("sequential crawl finished",
		zap.Int("urls_visited", result.URLsVisited()),
		zap.Int64("failed_pages", run.failed.Load()),
		zap.Int("distinct_words", distinct))
	return result, nil
}

func (c *SequentialCrawler) visit(ctx context.Context, run *crawlRun, pageURL string, depth int) {
	if run.skip(ctx, pageURL, depth) || !run.visited.Add(pageURL) {
		return
	}
	links, ok := run.fetch(ctx, pageURL, depth)
	if !ok {
		return
	}
	for _, link := range links {
		c.visit(ctx, run, link, depth-1)
	}
}
