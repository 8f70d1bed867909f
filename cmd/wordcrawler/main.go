package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/amosWeiskopf/wordcrawler/internal/config"
	"github.com/amosWeiskopf/wordcrawler/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "wordcrawler",
	Short: "wordcrawler - find the most popular words across linked web pages",
	Long: `wordcrawler crawls a set of start pages and the pages they link to,
up to a maximum depth and within a time budget, and reports the most
frequent words it saw.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var crawlCmd = &cobra.Command{
	Use:   "crawl [CONFIG]",
	Short: "Crawl the configured start pages and rank their words",
	Long: `Crawl reads a JSON or YAML configuration document and runs one crawl.
Flags and WORDCRAWLER_* environment variables override the document.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := ""
		if len(args) == 1 {
			configPath = args[0]
		}

		cfg, err := config.Load(configPath, cmd.Flags())
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		return runCrawl(cmd.Context(), cfg, log, cmd.OutOrStdout())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "wordcrawler "+rootCmd.Version)
	},
}

func init() {
	// Crawl command flags
	crawlCmd.Flags().StringSlice("start", nil, "Start page URL (repeatable, replaces startPages)")
	crawlCmd.Flags().Int("max-depth", 0, "Maximum crawl depth")
	crawlCmd.Flags().Int("timeout", 1, "Crawl timeout in seconds")
	crawlCmd.Flags().Int("popular-words", 0, "Number of popular words to report")
	crawlCmd.Flags().Int("parallelism", 0, "Concurrent page fetches (0 = one per CPU)")
	crawlCmd.Flags().String("implementation", "", "Crawler implementation (parallel, sequential)")
	crawlCmd.Flags().String("output", "", "Append results to this file instead of stdout")
	crawlCmd.Flags().String("format", "json", "Result format (json, yaml, markdown)")
	crawlCmd.Flags().String("profile-output", "", "Append profiling data to this file instead of stdout")
	crawlCmd.Flags().Bool("main-content", false, "Count only main page content, skipping boilerplate")
	crawlCmd.Flags().Bool("skip-stop-words", false, "Do not count common English stop words")
	crawlCmd.Flags().String("user-agent", "wordcrawler/1.0", "User-Agent header for page requests")

	// Global flags
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "Log format (console, json)")

	// Add commands to root
	rootCmd.AddCommand(crawlCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
