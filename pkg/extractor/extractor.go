package extractor

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"

	"github.com/amosWeiskopf/wordcrawler/pkg/utils"
)

// Extractor handles content extraction from HTML
type Extractor struct {
	mainContent bool
}

// New creates a new Extractor instance.
// With mainContent set, text comes from trafilatura's boilerplate-free
// extraction instead of the whole document.
func New(mainContent bool) *Extractor {
	return &Extractor{mainContent: mainContent}
}

// Content is the text and outbound links of one HTML document
type Content struct {
	Text  string
	Links []string
}

// Extract parses body and returns its visible text and absolute links
func (e *Extractor) Extract(body []byte, pageURL string) (*Content, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL: %w", err)
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	text := ""
	if e.mainContent {
		text = e.ExtractMainText(body)
	}
	if text == "" {
		text = fullText(doc)
	}

	return &Content{
		Text:  utils.CleanText(text),
		Links: extractLinks(doc, base),
	}, nil
}

// ExtractMainText extracts clean text from HTML using trafilatura.
// It returns an empty string when trafilatura finds no main content.
func (e *Extractor) ExtractMainText(body []byte) string {
	result, err := trafilatura.Extract(bytes.NewReader(body), trafilatura.Options{})
	if err != nil || result == nil {
		return ""
	}
	return result.ContentText
}

// fullText concatenates every text node outside script, style and noscript
func fullText(doc *html.Node) string {
	var b strings.Builder
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(doc)
	return b.String()
}

// extractLinks returns the absolute targets of all <a href> elements,
// without fragments, de-duplicated in document order.
func extractLinks(doc *html.Node, base *url.URL) []string {
	links := []string{}
	seen := make(map[string]bool)

	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "href" {
					continue
				}
				link, ok := resolveURL(base, attr.Val)
				if ok && !seen[link] {
					seen[link] = true
					links = append(links, link)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(doc)
	return links
}

func resolveURL(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	abs := base.ResolveReference(ref)
	abs.Fragment = ""
	abs.RawFragment = ""
	switch abs.Scheme {
	case "http", "https", "file":
		return abs.String(), true
	default:
		return "", false
	}
}
