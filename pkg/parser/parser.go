package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/amosWeiskopf/wordcrawler/internal/models"
	"github.com/amosWeiskopf/wordcrawler/pkg/extractor"
	"github.com/amosWeiskopf/wordcrawler/pkg/utils"
)

const (
	defaultUserAgent   = "wordcrawler/1.0"
	defaultTimeout     = 15 * time.Second
	defaultMaxBodySize = 10 * 1024 * 1024
)

var (
	// ErrUnsupportedContent is returned for responses that are neither HTML nor text
	ErrUnsupportedContent = errors.New("unsupported content type")

	// ErrBodyTooLarge is returned for pages larger than the configured body size.
	// Such pages are rejected, not counted from a truncated body.
	ErrBodyTooLarge = errors.New("page body too large")
)

// HTTPParser fetches pages over HTTP(S) or from local files and counts their words
type HTTPParser struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
	filter      utils.WordFilter
	extractor   *extractor.Extractor
}

// Option configures an HTTPParser
type Option func(*httpParserConfig)

type httpParserConfig struct {
	client        *http.Client
	userAgent     string
	timeout       time.Duration
	maxBodySize   int64
	ignoredWords  []*regexp.Regexp
	skipStopWords bool
	mainContent   bool
}

// WithClient replaces the default HTTP client
func WithClient(client *http.Client) Option {
	return func(c *httpParserConfig) {
		c.client = client
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *httpParserConfig) {
		c.userAgent = ua
	}
}

// WithTimeout sets the per-request timeout of the default client
func WithTimeout(d time.Duration) Option {
	return func(c *httpParserConfig) {
		c.timeout = d
	}
}

// WithMaxBodySize sets the largest page body accepted; bigger pages fail with ErrBodyTooLarge
func WithMaxBodySize(n int64) Option {
	return func(c *httpParserConfig) {
		c.maxBodySize = n
	}
}

// WithIgnoredWords drops words fully matching any of patterns
func WithIgnoredWords(patterns []*regexp.Regexp) Option {
	return func(c *httpParserConfig) {
		c.ignoredWords = patterns
	}
}

// WithStopWords drops common English stop words when skip is true
func WithStopWords(skip bool) Option {
	return func(c *httpParserConfig) {
		c.skipStopWords = skip
	}
}

// WithMainContent counts only the main content of a page, as found by trafilatura
func WithMainContent(enabled bool) Option {
	return func(c *httpParserConfig) {
		c.mainContent = enabled
	}
}

// New creates an HTTPParser
func New(opts ...Option) *HTTPParser {
	cfg := &httpParserConfig{
		userAgent:   defaultUserAgent,
		timeout:     defaultTimeout,
		maxBodySize: defaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client := cfg.client
	if client == nil {
		jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		transport := &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        50,
			MaxIdleConnsPerHost: 50,
			IdleConnTimeout:     30 * time.Second,
		}
		client = &http.Client{Transport: transport, Timeout: cfg.timeout, Jar: jar}
	}

	return &HTTPParser{
		client:      client,
		userAgent:   cfg.userAgent,
		maxBodySize: cfg.maxBodySize,
		filter:      utils.NewWordFilter(cfg.ignoredWords, cfg.skipStopWords),
		extractor:   extractor.New(cfg.mainContent),
	}
}

// Parse fetches pageURL and returns its word counts and outbound links
func (p *HTTPParser) Parse(ctx context.Context, pageURL string) (*models.PageResult, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", pageURL, err)
	}

	var body []byte
	var contentType string
	switch u.Scheme {
	case "http", "https":
		body, contentType, err = p.fetchHTTP(ctx, pageURL)
	case "file":
		body, contentType, err = p.readFile(u)
	default:
		return nil, fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	if err != nil {
		return nil, err
	}

	result := &models.PageResult{URL: pageURL, Links: []string{}}
	switch {
	case isHTML(contentType):
		content, err := p.extractor.Extract(body, pageURL)
		if err != nil {
			return nil, fmt.Errorf("failed to extract %s: %w", pageURL, err)
		}
		result.WordCounts = utils.CountWords(content.Text, p.filter)
		result.Links = content.Links
	case strings.HasPrefix(contentType, "text/"):
		result.WordCounts = utils.CountWords(string(body), p.filter)
	default:
		return nil, fmt.Errorf("%s: %w: %s", pageURL, ErrUnsupportedContent, contentType)
	}
	return result, nil
}

func (p *HTTPParser) fetchHTTP(ctx context.Context, pageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("request error for %s: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,text/plain;q=0.8,*/*;q=0.5")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch error for %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("non-OK status for %s: %d", pageURL, resp.StatusCode)
	}

	body, err := p.readBody(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("body read error for %s: %w", pageURL, err)
	}

	contentType := mediaType(resp.Header.Get("Content-Type"))
	if contentType == "" {
		contentType = mediaType(http.DetectContentType(body))
	}
	return body, contentType, nil
}

func (p *HTTPParser) readFile(u *url.URL) ([]byte, string, error) {
	f, err := os.Open(u.Path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", u.Path, err)
	}
	defer f.Close()

	body, err := p.readBody(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", u.Path, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(u.Path))
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	return body, mediaType(contentType), nil
}

// readBody reads r up to maxBodySize bytes. One extra byte is read so that an
// oversized body is detected instead of silently truncated.
func (p *HTTPParser) readBody(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, p.maxBodySize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > p.maxBodySize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, p.maxBodySize)
	}
	return body, nil
}

func mediaType(contentType string) string {
	return strings.TrimSpace(strings.ToLower(strings.Split(contentType, ";")[0]))
}

func isHTML(mediaType string) bool {
	switch mediaType {
	case "text/html", "application/xhtml+xml", "application/xhtml":
		return true
	}
	return false
}
