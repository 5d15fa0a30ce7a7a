package loginlog

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// Entry is one successful login to record
type Entry struct {
	Time       time.Time
	Username   string
	Email      string
	RemoteAddr string
	RemoteHost string // reverse-DNS hostname; resolved from RemoteAddr when empty
}

// Recorder appends login entries to a sink
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

const header = "       TIME         |         Username        |               Email               |           REMOTE IP\n\n"

// FileLogger appends login lines to a text file. Every write takes an
// exclusive cross-process lock so concurrent logins never interleave or
// lose lines; the header is written once, when the file is empty.
type FileLogger struct {
	path string
	lock *flock.Flock
}

// NewFileLogger creates a FileLogger writing to the given path
func NewFileLogger(path string) *FileLogger {
	return &FileLogger{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Ensure FileLogger implements Recorder
var _ Recorder = (*FileLogger)(nil)

// Record appends one login line under the exclusive lock
func (l *FileLogger) Record(ctx context.Context, e Entry) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	if err := l.lock.Lock(); err != nil {
		return fmt.Errorf("lock login log: %w", err)
	}
	defer l.lock.Unlock() //nolint:errcheck

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open login log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat login log: %w", err)
	}
	if info.Size() == 0 {
		if _, err := f.WriteString(header); err != nil {
			return fmt.Errorf("write login log header: %w", err)
		}
	}

	host := e.RemoteHost
	if host == "" {
		host = lookupHost(e.RemoteAddr)
	}

	line := fmt.Sprintf("%s | %s | %s | %s (%s) \n\n",
		e.Time.Format("2006-01-02 15:04:05"), e.Username, e.Email, e.RemoteAddr, host)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write login log line: %w", err)
	}
	return nil
}

// lookupHost best-effort reverse DNS; falls back to the address itself
func lookupHost(addr string) string {
	names, err := net.LookupAddr(addr)
	if err != nil || len(names) == 0 {
		return addr
	}
	return strings.TrimSuffix(names[0], ".")
}

// MemoryRecorder collects entries in memory (for tests and dev wiring)
type MemoryRecorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemoryRecorder creates an empty MemoryRecorder
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

// Ensure MemoryRecorder implements Recorder
var _ Recorder = (*MemoryRecorder)(nil)

// Record stores the entry
func (r *MemoryRecorder) Record(ctx context.Context, e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

// Entries returns a copy of the recorded entries
func (r *MemoryRecorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
