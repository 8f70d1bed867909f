package crawler

import (
	"context"
	"fmt"

	"github.com/amosWeiskopf/wordcrawler/internal/models"
	"github.com/amosWeiskopf/wordcrawler/pkg/profiler"
)

// profiledCrawler records how long each Crawl call takes
type profiledCrawler struct {
	inner    WebCrawler
	profiler *profiler.Profiler
	name     string
}

// Profiled wraps inner so that Crawl timings are recorded in p
func Profiled(inner WebCrawler, p *profiler.Profiler) WebCrawler {
	return &profiledCrawler{
		inner:    inner,
		profiler: p,
		name:     fmt.Sprintf("%T#Crawl", inner),
	}
}

func (c *profiledCrawler) Crawl(ctx context.Context, startingURLs []string) (*models.CrawlResult, error) {
	defer c.profiler.Time(c.name)()
	return c.inner.Crawl(ctx, startingURLs)
}

func (c *profiledCrawler) MaxParallelism() int {
	return c.inner.MaxParallelism()
}
