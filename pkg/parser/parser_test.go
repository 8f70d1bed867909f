package parser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`
			<html><body>
				<p>Gopher gopher GOPHER and the crawler</p>
				<a href="/next">next</a>
			</body></html>
		`))
	}))
	defer server.Close()

	p := New(WithUserAgent("test-agent"))
	result, err := p.Parse(context.Background(), server.URL+"/")
	require.NoError(t, err)

	assert.Equal(t, 3, result.WordCounts["gopher"])
	assert.Equal(t, 1, result.WordCounts["crawler"])
	assert.Equal(t, 1, result.WordCounts["next"])
	assert.Equal(t, []string{server.URL + "/next"}, result.Links)
}

func TestParseIgnoredAndStopWords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><p>the quick brown fox and a lazy dog</p></body></html>`))
	}))
	defer server.Close()

	p := New(
		WithIgnoredWords([]*regexp.Regexp{regexp.MustCompile(`^.{1,3}$`)}),
		WithStopWords(true),
	)
	result, err := p.Parse(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"quick": 1, "brown": 1, "lazy": 1}, result.WordCounts)
}

func TestParsePlainText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("plain words, plain text"))
	}))
	defer server.Close()

	result, err := New().Parse(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"plain": 2, "words": 1, "text": 1}, result.WordCounts)
	assert.Empty(t, result.Links)
}

func TestParseFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		case "/binary":
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte{0x89, 0x50, 0x4e, 0x47})
		}
	}))
	defer server.Close()

	p := New()

	_, err := p.Parse(context.Background(), server.URL+"/missing")
	assert.Error(t, err)

	_, err = p.Parse(context.Background(), server.URL+"/binary")
	assert.ErrorIs(t, err, ErrUnsupportedContent)

	_, err = p.Parse(context.Background(), "ftp://example.com/file")
	assert.Error(t, err)

	_, err = p.Parse(context.Background(), "file:///definitely/not/here.html")
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(page, []byte(`<html><body>local page <a href="other.html">other</a></body></html>`), 0o644))

	result, err := New().Parse(context.Background(), "file://"+page)
	require.NoError(t, err)

	assert.Equal(t, 1, result.WordCounts["local"])
	assert.Equal(t, []string{"file://" + filepath.Join(dir, "other.html")}, result.Links)
}

func TestParseRejectsOversizedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		switch r.URL.Path {
		case "/exact":
			w.Write([]byte(strings.Repeat("a", 16)))
		default:
			w.Write([]byte(strings.Repeat("word ", 100)))
		}
	}))
	defer server.Close()

	p := New(WithMaxBodySize(16))

	_, err := p.Parse(context.Background(), server.URL+"/big")
	assert.ErrorIs(t, err, ErrBodyTooLarge)

	result, err := p.Parse(context.Background(), server.URL+"/exact")
	require.NoError(t, err)
	assert.Equal(t, 1, result.WordCounts[strings.Repeat("a", 16)])

	dir := t.TempDir()
	page := filepath.Join(dir, "big.txt")
	require.NoError(t, os.WriteFile(page, []byte(strings.Repeat("word ", 100)), 0o644))
	_, err = p.Parse(context.Background(), "file://"+page)
	assert.ErrorIs(t, err, ErrBodyTooLarge)
}
