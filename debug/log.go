// Package debug is a category file logger. It is off until Enable is
// called, so library code can log freely.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	out     io.Writer
	closer  io.Closer
	mu      sync.Mutex
	enabled bool
	only    map[string]bool
)

// DefaultPath returns ~/.config/go-smf/debug.log
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "go-smf", "debug.log")
}

// Enable starts logging to path, or DefaultPath when path is empty.
// The file is truncated.
func Enable(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("debug log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("debug log: %w", err)
	}
	EnableWriter(f)
	return nil
}

// EnableWriter starts logging to w. If w is an io.Closer it is closed by Disable.
func EnableWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	if closer != nil {
		closer.Close()
	}
	out = w
	closer, _ = w.(io.Closer)
	enabled = true

	// can't call Log here, we hold the mutex
	write("debug", "=== debug logging started ===")
}

// Only restricts output to the given categories. No arguments logs everything.
func Only(categories ...string) {
	mu.Lock()
	defer mu.Unlock()
	if len(categories) == 0 {
		only = nil
		return
	}
	only = make(map[string]bool, len(categories))
	for _, c := range categories {
		only[c] = true
	}
}

// Disable stops logging and closes the log file.
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if closer != nil {
		closer.Close()
	}
	out, closer = nil, nil
	enabled = false
}

// Enabled reports whether Log writes anything.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Log writes one line under category.
func Log(category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || out == nil {
		return
	}
	if only != nil && !only[category] {
		return
	}
	write(category, fmt.Sprintf(format, args...))
}

func write(category, msg string) {
	ts := time.Now().Format("15:04:05.000")
	fmt.Fprintf(out, "[%s] %-10s %s\n", ts, category, msg)
	if f, ok := out.(*os.File); ok {
		f.Sync() // flush so lines survive a crash
	}
}

var counters = make(map[string]int)

// LogEvery logs only every n-th call with the same category and format.
// Use it for per-byte or per-clock paths.
func LogEvery(n int, category, format string, args ...any) {
	mu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if n > 0 && count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}
