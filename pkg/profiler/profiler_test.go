package profiler

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTimeAccumulates(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	p := NewWithClock(clock.now)

	stop := p.Time("Crawl")
	clock.advance(1500 * time.Millisecond)
	stop()

	stop = p.Time("Crawl")
	clock.advance(61 * time.Second)
	stop()

	assert.Equal(t, 62500*time.Millisecond, p.Elapsed("Crawl"))
	assert.Zero(t, p.Elapsed("never"))
}

func TestWriteTo(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	p := NewWithClock(clock.now)
	p.Record("b#Second", 2*time.Millisecond)
	p.Record("a#First", 61*time.Second+250*time.Millisecond)

	var buf bytes.Buffer
	n, err := p.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Run at Fri, 01 Mar 2024 12:00:00 UTC", lines[0])
	assert.Equal(t, "a#First took 1m 1s 250ms", lines[1])
	assert.Equal(t, "b#Second took 0m 0s 2ms", lines[2])
}

func TestWriteFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.txt")
	p := New()
	p.Record("x", time.Second)

	require.NoError(t, p.WriteFile(path))
	require.NoError(t, p.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "Run at "))
}
