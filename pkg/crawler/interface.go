package crawler

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/amosWeiskopf/wordcrawler/internal/models"
	"github.com/amosWeiskopf/wordcrawler/pkg/analyzer"
)

// WebCrawler defines the interface for word-counting crawls
type WebCrawler interface {
	// Crawl visits startingURLs and everything reachable from them within
	// the configured depth and timeout.
	Crawl(ctx context.Context, startingURLs []string) (*models.CrawlResult, error)

	// MaxParallelism is the most parallelism this crawler can use
	MaxParallelism() int
}

// PageParser fetches a page and reports its words and links.
// Implementations must be safe for concurrent use.
type PageParser interface {
	Parse(ctx context.Context, pageURL string) (*models.PageResult, error)
}

// PageParserFunc adapts a function to PageParser
type PageParserFunc func(ctx context.Context, pageURL string) (*models.PageResult, error)

// Parse calls f
func (f PageParserFunc) Parse(ctx context.Context, pageURL string) (*models.PageResult, error) {
	return f(ctx, pageURL)
}

// ErrInvalidOptions is returned when crawler options are out of range
var ErrInvalidOptions = errors.New("invalid crawler options")

// Options contains configuration for the crawler
type Options struct {
	MaxDepth         int              // Pages further than this from a starting URL are not visited
	Timeout          time.Duration    // Wall-clock budget for the whole crawl
	PopularWordCount int              // Number of words in the result
	IgnoredURLs      []*regexp.Regexp // URLs fully matching any of these are skipped
	Parallelism      int              // Concurrent parser calls; 0 means one per CPU
}

// Validate checks that o describes a crawl that can run
func (o Options) Validate() error {
	if o.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth must be non-negative, got %d", ErrInvalidOptions, o.MaxDepth)
	}
	if o.Timeout < 0 {
		return fmt.Errorf("%w: timeout must be non-negative, got %v", ErrInvalidOptions, o.Timeout)
	}
	if o.PopularWordCount < 0 {
		return fmt.Errorf("%w: popular word count must be non-negative, got %d", ErrInvalidOptions, o.PopularWordCount)
	}
	if o.Parallelism < 0 {
		return fmt.Errorf("%w: parallelism must be non-negative, got %d", ErrInvalidOptions, o.Parallelism)
	}
	return nil
}

// Option tunes a crawler beyond its Options
type Option func(*settings)

type settings struct {
	logger *zap.Logger
	now    func() time.Time
	ranker *analyzer.Ranker
}

func newSettings(opts []Option) *settings {
	s := &settings{
		logger: zap.NewNop(),
		now:    time.Now,
		ranker: analyzer.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithLogger sets the logger used for progress and page failures
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRanker overrides how the final word list is ordered
func WithRanker(r *analyzer.Ranker) Option {
	return func(s *settings) {
		if r != nil {
			s.ranker = r
		}
	}
}
