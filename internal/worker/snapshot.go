package worker

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/routeboard/engine/internal/queue"
	"github.com/routeboard/engine/internal/storage"
	"github.com/routeboard/engine/pkg/core"
)

// DefaultFlushInterval is used when the writer is created with a non-positive interval
const DefaultFlushInterval = 2 * time.Second

// snapshotBacklog bounds the queue; only the newest snapshot is ever written
const snapshotBacklog = 64

// SnapshotWriter persists committed diagrams in the background.
// Snapshots are queued by Push and the newest one is saved every interval and on Close.
type SnapshotWriter struct {
	backend  storage.Backend
	interval time.Duration
	log      *slog.Logger
	queue    *queue.Queue[core.Diagram]

	mu        sync.Mutex // serializes writes
	lastWrite time.Duration
	written   int

	stopChan chan struct{}
	done     sync.WaitGroup
	started  bool
	stopOnce sync.Once
}

// NewSnapshotWriter creates a writer saving to backend
func NewSnapshotWriter(backend storage.Backend, interval time.Duration, logger *slog.Logger) *SnapshotWriter {
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotWriter{
		backend:  backend,
		interval: interval,
		log:      logger,
		queue:    queue.NewBounded[core.Diagram](snapshotBacklog),
		stopChan: make(chan struct{}),
	}
}

// Push queues a snapshot. It never blocks and is safe to use as a board OnCommit hook.
func (w *SnapshotWriter) Push(d core.Diagram) {
	if dropped := w.queue.Push(d); dropped > 0 {
		w.log.Debug("Snapshot backlog full, dropped oldest", "dropped", dropped)
	}
}

// Pending returns the number of queued snapshots
func (w *SnapshotWriter) Pending() int {
	return w.queue.Len()
}

// Start launches the periodic flush loop
func (w *SnapshotWriter) Start() {
	w.started = true
	w.done.Add(1)
	go w.loop()
}

func (w *SnapshotWriter) loop() {
	defer w.done.Done()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			if err := w.Flush(); err != nil {
				w.log.Error("Periodic snapshot write failed", "error", err)
			}
		}
	}
}

// Flush saves the newest queued snapshot and discards older ones.
// A failed write is requeued unless a newer snapshot arrived meanwhile.
func (w *SnapshotWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	d, ok := w.queue.Latest()
	if !ok {
		return nil
	}

	start := time.Now()
	if err := w.backend.SaveDiagram(d); err != nil {
		if w.queue.Empty() {
			w.queue.Push(d)
		}
		return fmt.Errorf("save snapshot %s: %w", d.ID, err)
	}
	w.lastWrite = time.Since(start)
	w.written++
	w.log.Debug("Snapshot written",
		"diagram", d.ID,
		"players", len(d.Players),
		"arrows", len(d.Arrows),
		"duration", w.lastWrite,
	)
	return nil
}

// Save queues d and writes it immediately
func (w *SnapshotWriter) Save(d core.Diagram) error {
	w.Push(d)
	return w.Flush()
}

// LastWriteDuration returns how long the last successful write took
func (w *SnapshotWriter) LastWriteDuration() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastWrite
}

// Written returns the number of successful writes
func (w *SnapshotWriter) Written() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Close stops the loop and writes whatever is still queued. It is safe to call more than once.
func (w *SnapshotWriter) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopChan)
		if w.started {
			w.done.Wait()
		}
		err = w.Flush()
	})
	return err
}
