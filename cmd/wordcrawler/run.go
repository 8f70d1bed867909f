package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/amosWeiskopf/wordcrawler/internal/config"
	"github.com/amosWeiskopf/wordcrawler/pkg/crawler"
	"github.com/amosWeiskopf/wordcrawler/pkg/parser"
	"github.com/amosWeiskopf/wordcrawler/pkg/profiler"
	"github.com/amosWeiskopf/wordcrawler/pkg/reporter"
)

// runCrawl performs one crawl described by cfg. Results and profiling data go
// to their configured files, or to stdout when no file is set.
func runCrawl(ctx context.Context, cfg *config.Config, log *zap.Logger, stdout io.Writer) error {
	rep, err := reporter.New(cfg.ResultFormat)
	if err != nil {
		return err
	}

	wc, prof, err := buildCrawler(cfg, log)
	if err != nil {
		return err
	}

	log.Info("Starting crawl",
		zap.Strings("start_pages", cfg.StartPages),
		zap.Int("max_depth", cfg.MaxDepth),
		zap.Duration("timeout", cfg.Timeout()),
		zap.String("implementation", cfg.Implementation()))

	result, err := wc.Crawl(ctx, cfg.StartPages)
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	log.Info("Crawl completed",
		zap.Int("urls_visited", result.URLsVisited()),
		zap.Int("popular_words", len(result.WordCounts())))

	if cfg.ResultPath != "" {
		if err := rep.WriteFile(cfg.ResultPath, result); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
		log.Info("Results saved", zap.String("path", cfg.ResultPath))
	} else if err := rep.Write(stdout, result); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	if cfg.ProfileOutputPath != "" {
		if err := prof.WriteFile(cfg.ProfileOutputPath); err != nil {
			return fmt.Errorf("failed to write profile: %w", err)
		}
		return nil
	}
	if _, err := prof.WriteTo(stdout); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

func buildCrawler(cfg *config.Config, log *zap.Logger) (crawler.WebCrawler, *profiler.Profiler, error) {
	ignoredURLs, err := cfg.IgnoredURLPatterns()
	if err != nil {
		return nil, nil, err
	}
	ignoredWords, err := cfg.IgnoredWordPatterns()
	if err != nil {
		return nil, nil, err
	}

	p := parser.New(
		parser.WithUserAgent(cfg.UserAgent),
		parser.WithTimeout(cfg.RequestTimeout()),
		parser.WithIgnoredWords(ignoredWords),
		parser.WithStopWords(cfg.SkipStopWords),
		parser.WithMainContent(cfg.ExtractMainContent),
	)

	opts := crawler.Options{
		MaxDepth:         cfg.MaxDepth,
		Timeout:          cfg.Timeout(),
		PopularWordCount: cfg.PopularWordCount,
		IgnoredURLs:      ignoredURLs,
		Parallelism:      cfg.Parallelism,
	}

	var wc crawler.WebCrawler
	switch cfg.Implementation() {
	case config.ImplementationSequential:
		wc, err = crawler.NewSequential(opts, p, crawler.WithLogger(log))
	default:
		wc, err = crawler.New(opts, p, crawler.WithLogger(log))
	}
	if err != nil {
		return nil, nil, err
	}

	prof := profiler.New()
	return crawler.Profiled(wc, prof), prof, nil
}
