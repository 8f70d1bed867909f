package profiler

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"
)

// Profiler accumulates how long named operations took
type Profiler struct {
	now       func() time.Time
	startedAt time.Time

	mu      sync.Mutex
	records map[string]time.Duration
}

// New creates a Profiler whose run starts now
func New() *Profiler {
	return NewWithClock(time.Now)
}

// NewWithClock creates a Profiler reading time from now
func NewWithClock(now func() time.Time) *Profiler {
	return &Profiler{
		now:       now,
		startedAt: now(),
		records:   make(map[string]time.Duration),
	}
}

// Record adds elapsed to the total for name
func (p *Profiler) Record(name string, elapsed time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records[name] += elapsed
}

// Time starts timing name and returns the function that stops it.
//
//	defer p.Time("Crawl")()
func (p *Profiler) Time(name string) func() {
	start := p.now()
	return func() {
		p.Record(name, p.now().Sub(start))
	}
}

// Elapsed returns the total recorded for name
func (p *Profiler) Elapsed(name string) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.records[name]
}

// WriteTo writes the run start time and one line per recorded name
func (p *Profiler) WriteTo(w io.Writer) (int64, error) {
	p.mu.Lock()
	names := make([]string, 0, len(p.records))
	for name := range p.records {
		names = append(names, name)
	}
	sort.Strings(names)
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%s took %s\n", name, formatDuration(p.records[name])))
	}
	p.mu.Unlock()

	var total int64
	n, err := fmt.Fprintf(w, "Run at %s\n", p.startedAt.Format(time.RFC1123))
	total += int64(n)
	if err != nil {
		return total, err
	}
	for _, line := range lines {
		n, err := io.WriteString(w, line)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	n, err = io.WriteString(w, "\n")
	total += int64(n)
	return total, err
}

// WriteFile appends the profile to path, creating it if needed
func (p *Profiler) WriteFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open profile output: %w", err)
	}
	if _, err := p.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return f.Close()
}

func formatDuration(d time.Duration) string {
	minutes := d / time.Minute
	seconds := (d % time.Minute) / time.Second
	millis := (d % time.Second) / time.Millisecond
	return fmt.Sprintf("%dm %ds %dms", minutes, seconds, millis)
}
