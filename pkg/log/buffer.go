package log

import (
	"fmt"
	"io"
	"sync"
)

// DefaultBufferCapacity is used when [NewCircularBuffer] gets a capacity
// below one.
const DefaultBufferCapacity = 256

// CircularBuffer keeps the most recent log records written to it. It
// implements [io.Writer] so it can sit behind a [slog.Handler] while the TUI
// owns the terminal, and [io.WriterTo] so the records can be flushed to
// stderr afterwards.
//
// Each call to Write is one record. Once full, every new record evicts the
// oldest one.
type CircularBuffer struct {
	records [][]byte
	next    int
	count   int
	dropped int
	mu      sync.Mutex
}

func NewCircularBuffer(capacity int) *CircularBuffer {
	if capacity < 1 {
		capacity = DefaultBufferCapacity
	}

	return &CircularBuffer{records: make([][]byte, capacity)}
}

// Write stores a copy of p as one record.
func (b *CircularBuffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.count == len(b.records) {
		b.dropped++
	} else {
		b.count++
	}

	b.records[b.next] = append([]byte(nil), p...)
	b.next = (b.next + 1) % len(b.records)

	return len(p), nil
}

// Records returns copies of the stored records, oldest first.
func (b *CircularBuffer) Records() [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.count == 0 {
		return nil
	}

	out := make([][]byte, 0, b.count)
	first := (b.next - b.count + len(b.records)) % len(b.records)

	for i := range b.count {
		r := b.records[(first+i)%len(b.records)]
		out = append(out, append([]byte(nil), r...))
	}

	return out
}

// Len returns the number of stored records.
func (b *CircularBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.count
}

// Cap returns the maximum number of stored records.
func (b *CircularBuffer) Cap() int { return len(b.records) }

// Dropped returns the number of records evicted since the last [CircularBuffer.Reset].
func (b *CircularBuffer) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.dropped
}

func (b *CircularBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	clear(b.records)
	b.next, b.count, b.dropped = 0, 0, 0
}

// WriteTo writes the stored records to w, oldest first. When records were
// evicted, a notice line is written before them.
func (b *CircularBuffer) WriteTo(w io.Writer) (int64, error) {
	var total int64

	if dropped := b.Dropped(); dropped > 0 {
		n, err := fmt.Fprintf(w, "... %d earlier log records dropped\n", dropped)
		total += int64(n)

		if err != nil {
			return total, fmt.Errorf("write notice: %w", err)
		}
	}

	for _, r := range b.Records() {
		n, err := w.Write(r)
		total += int64(n)

		if err != nil {
			return total, fmt.Errorf("write record: %w", err)
		}
	}

	return total, nil
}
