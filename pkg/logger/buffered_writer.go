package logger

import (
	"bufio"
	"bytes"
	"io"
	"sync"
	"time"
)

// BufferedWriter batches log lines in memory and flushes them when the flush
// interval elapses, when the buffer fills, or as soon as an error/fatal line
// is written. Keeps log order intact.
type BufferedWriter struct {
	bufWriter     *bufio.Writer
	mu            sync.Mutex
	flushInterval time.Duration
	stopChan      chan struct{}
	wg            sync.WaitGroup
}

// NewBufferedWriter creates a BufferedWriter flushing at the given interval
func NewBufferedWriter(w io.Writer, flushInterval time.Duration) *BufferedWriter {
	bw := &BufferedWriter{
		bufWriter:     bufio.NewWriterSize(w, 64*1024),
		flushInterval: flushInterval,
		stopChan:      make(chan struct{}),
	}

	bw.wg.Add(1)
	go bw.runFlusher()

	return bw
}

// Write implements io.Writer
func (bw *BufferedWriter) Write(p []byte) (n int, err error) {
	bw.mu.Lock()
	defer bw.mu.Unlock()

	// Zerolog JSON lines carry "level":"error" / "level":"fatal"
	isError := bytes.Contains(p, []byte(`"level":"error"`)) ||
		bytes.Contains(p, []byte(`"level":"fatal"`))

	n, err = bw.bufWriter.Write(p)
	if isError {
		_ = bw.bufWriter.Flush()
	}
	return n, err
}

// Sync flushes the buffer
func (bw *BufferedWriter) Sync() error {
	bw.mu.Lock()
	defer bw.mu.Unlock()
	return bw.bufWriter.Flush()
}

// Close stops the background flusher and drains the buffer
func (bw *BufferedWriter) Close() error {
	close(bw.stopChan)
	bw.wg.Wait()
	return bw.Sync()
}

func (bw *BufferedWriter) runFlusher() {
	defer bw.wg.Done()
	ticker := time.NewTicker(bw.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = bw.Sync()
		case <-bw.stopChan:
			return
		}
	}
}
