package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"gopkg.in/yaml.v3"

	"github.com/amosWeiskopf/wordcrawler/internal/models"
)

// Supported output formats
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
)

// Reporter writes crawl results in one output format
type Reporter struct {
	format string
}

// document is the serialized shape of a crawl result
type document struct {
	WordCounts  []models.WordCount `json:"wordCounts" yaml:"wordCounts"`
	URLsVisited int                `json:"urlsVisited" yaml:"urlsVisited"`
}

// New creates a Reporter for format; an empty format means JSON
func New(format string) (*Reporter, error) {
	format = strings.ToLower(format)
	switch format {
	case "":
		format = FormatJSON
	case FormatJSON, FormatYAML, FormatMarkdown:
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return &Reporter{format: format}, nil
}

// Format returns the output format of r
func (r *Reporter) Format() string {
	return r.format
}

// Write encodes result to w
func (r *Reporter) Write(w io.Writer, result *models.CrawlResult) error {
	doc := document{
		WordCounts:  result.WordCounts(),
		URLsVisited: result.URLsVisited(),
	}

	switch r.format {
	case FormatYAML:
		return r.writeYAML(w, doc)
	case FormatMarkdown:
		return r.writeMarkdown(w, doc)
	default:
		return r.writeJSON(w, doc)
	}
}

// WriteFile appends result to the file at path, creating it if needed
func (r *Reporter) WriteFile(path string, result *models.CrawlResult) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open result file: %w", err)
	}
	if err := r.Write(f, result); err != nil {
		f.Close()
		return fmt.Errorf("failed to write crawl result: %w", err)
	}
	return f.Close()
}

func (r *Reporter) writeJSON(w io.Writer, doc document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	return nil
}

func (r *Reporter) writeYAML(w io.Writer, doc document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	return enc.Close()
}

func (r *Reporter) writeMarkdown(w io.Writer, doc document) error {
	md := markdown.NewMarkdown(w)
	md.H1("Crawl Result")
	md.PlainText("")
	md.PlainText("URLs visited: " + strconv.Itoa(doc.URLsVisited))
	md.PlainText("")

	if len(doc.WordCounts) == 0 {
		md.PlainText("No words found.")
		return md.Build()
	}

	rows := make([][]string, 0, len(doc.WordCounts))
	for i, wc := range doc.WordCounts {
		rows = append(rows, []string{strconv.Itoa(i + 1), wc.Word, strconv.Itoa(wc.Count)})
	}
	md.H2("Popular Words")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Rank", "Word", "Count"},
		Rows:   rows,
	})
	return md.Build()
}
