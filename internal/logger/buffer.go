package logger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry is a single captured log record. Entries are what the dashboard's
// diagnostics strip and logs screen render.
type Entry struct {
	Timestamp time.Time `json:"time"`
	Level     string    `json:"level"`
	Message   string    `json:"msg"`
}

// Buffer is a thread-safe ring buffer of log entries with a spill file for
// overflow. It implements io.Writer over JSON-encoded zap output, so it can
// sit behind a zapcore JSON core; in TUI mode it is the only log sink, which
// keeps stdout clean for the alternate screen.
type Buffer struct {
	mu          sync.Mutex
	ring        []Entry
	maxSize     int
	next        int
	wrapped     bool
	spillFile   *os.File
	spillWriter *bufio.Writer

	totalEntries   uint64
	spilledEntries uint64
}

// NewBuffer creates a buffer holding up to maxSize entries in memory,
// spilling the oldest entries to spillPath once full.
func NewBuffer(maxSize int, spillPath string) (*Buffer, error) {
	if err := os.MkdirAll(filepath.Dir(spillPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	spillFile, err := os.OpenFile(spillPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open spill file: %w", err)
	}

	return &Buffer{
		ring:        make([]Entry, maxSize),
		maxSize:     maxSize,
		spillFile:   spillFile,
		spillWriter: bufio.NewWriter(spillFile),
	}, nil
}

// Write accepts one JSON-encoded log line from the zap core and records it
// in the ring. Lines that do not decode are kept with the raw text as the
// message so nothing is silently lost.
func (b *Buffer) Write(p []byte) (int, error) {
	var entry Entry
	if err := json.Unmarshal(p, &entry); err != nil {
		entry = Entry{Timestamp: time.Now(), Level: "info", Message: string(p)}
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.wrapped {
		// The slot being overwritten is the oldest entry; spill it first.
		if err := b.spill(b.ring[b.next]); err != nil {
			return 0, err
		}
		b.spilledEntries++
	}

	b.ring[b.next] = entry
	b.next = (b.next + 1) % b.maxSize
	if b.next == 0 {
		b.wrapped = true
	}
	b.totalEntries++

	return len(p), nil
}

func (b *Buffer) spill(entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal log entry: %w", err)
	}
	if _, err := b.spillWriter.Write(data); err != nil {
		return fmt.Errorf("failed to write to spill file: %w", err)
	}
	if _, err := b.spillWriter.WriteString("\n"); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}
	// Flushed periodically via Sync, not on every write.
	return nil
}

// Recent returns the most recent entries, oldest first, up to limit.
// A non-positive limit returns everything in memory.
func (b *Buffer) Recent(limit int) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	count := b.next
	start := 0
	if b.wrapped {
		count = b.maxSize
		start = b.next
	}
	if limit > 0 && limit < count {
		start = (start + count - limit) % b.maxSize
		count = limit
	}

	entries := make([]Entry, 0, count)
	for i := 0; i < count; i++ {
		entries = append(entries, b.ring[(start+i)%b.maxSize])
	}
	return entries
}

// Sync flushes buffered spill data to disk. It satisfies zapcore's
// WriteSyncer alongside Write.
func (b *Buffer) Sync() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.spillWriter.Flush(); err != nil {
		return fmt.Errorf("failed to flush spill writer: %w", err)
	}
	return b.spillFile.Sync()
}

// Close drains every in-memory entry to the spill file and closes it.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	count := b.next
	start := 0
	if b.wrapped {
		count = b.maxSize
		start = b.next
	}
	for i := 0; i < count; i++ {
		if err := b.spill(b.ring[(start+i)%b.maxSize]); err != nil {
			return err
		}
	}

	if err := b.spillWriter.Flush(); err != nil {
		return fmt.Errorf("failed to flush during close: %w", err)
	}
	return b.spillFile.Close()
}

// Stats returns the total number of entries seen and the number spilled to
// the overflow file.
func (b *Buffer) Stats() (total, spilled uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.totalEntries, b.spilledEntries
}
