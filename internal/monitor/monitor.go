package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/routeboard/engine/internal/board"
	"github.com/routeboard/engine/internal/worker"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/routeboard/engine/internal/monitor"

// DefaultInterval is used when Dependencies.Interval is not set
const DefaultInterval = time.Second

// Dependencies holds all dependencies for the monitor service
type Dependencies struct {
	Board  *board.Service
	Writer *worker.SnapshotWriter
	Logger *slog.Logger

	// StatusPath is rewritten with the current Status on every tick. Empty disables the file.
	StatusPath string
	Interval   time.Duration
}

// Status is a point-in-time view of the editing session
type Status struct {
	Time                time.Time `json:"time"`
	DiagramID           string    `json:"diagramId"`
	Players             int       `json:"players"`
	Arrows              int       `json:"arrows"`
	Tool                string    `json:"tool"`
	Drawing             bool      `json:"drawing"`
	Segments            int       `json:"segments"`
	CanUndo             bool      `json:"canUndo"`
	PendingSnapshots    int       `json:"pendingSnapshots"`
	SnapshotsWritten    int       `json:"snapshotsWritten"`
	LastWriteDurationMs float32   `json:"lastWriteDurationMs"`
}

// Service manages status monitoring
type Service struct {
	deps         Dependencies
	isRunning    bool
	mu           sync.RWMutex
	stopChan     chan struct{}
	done         chan struct{}
	registration metric.Registration
}

// NewService creates a new monitor service
func NewService(deps Dependencies) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Interval <= 0 {
		deps.Interval = DefaultInterval
	}
	return &Service{deps: deps}
}

// IsRunning returns whether the status monitor is running
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetStatus returns the current session status
func (s *Service) GetStatus() Status {
	d := s.deps.Board.Snapshot()
	ui := s.deps.Board.UIState()

	st := Status{
		Time:      time.Now(),
		DiagramID: d.ID,
		Players:   len(d.Players),
		Arrows:    len(d.Arrows),
		Tool:      string(ui.Tool),
		Drawing:   ui.Session.Drawing,
		Segments:  ui.Session.Segments(),
		CanUndo:   ui.CanUndo,
	}
	if s.deps.Writer != nil {
		st.PendingSnapshots = s.deps.Writer.Pending()
		st.SnapshotsWritten = s.deps.Writer.Written()
		st.LastWriteDurationMs = float32(s.deps.Writer.LastWriteDuration().Microseconds()) / 1000
	}
	return st
}

// WriteStatus rewrites the status file. A no-op when no path is configured.
func (s *Service) WriteStatus() error {
	if s.deps.StatusPath == "" {
		return nil
	}
	data, err := json.MarshalIndent(s.GetStatus(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode status: %w", err)
	}
	if err := os.WriteFile(s.deps.StatusPath, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write status file: %w", err)
	}
	return nil
}

// RegisterMetrics publishes session gauges through the global OTel meter (no-op if not configured)
func (s *Service) RegisterMetrics() error {
	m := otel.Meter(instrumentationName)

	players, err := m.Int64ObservableGauge("board.players",
		metric.WithDescription("Players on the active diagram"))
	if err != nil {
		return fmt.Errorf("creating players gauge: %w", err)
	}
	arrows, err := m.Int64ObservableGauge("board.arrows",
		metric.WithDescription("Arrows on the active diagram"))
	if err != nil {
		return fmt.Errorf("creating arrows gauge: %w", err)
	}
	pending, err := m.Int64ObservableGauge("snapshot.pending",
		metric.WithDescription("Snapshots waiting to be written"))
	if err != nil {
		return fmt.Errorf("creating pending gauge: %w", err)
	}

	reg, err := m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			st := s.GetStatus()
			o.ObserveInt64(players, int64(st.Players))
			o.ObserveInt64(arrows, int64(st.Arrows))
			o.ObserveInt64(pending, int64(st.PendingSnapshots))
			return nil
		},
		players, arrows, pending,
	)
	if err != nil {
		return fmt.Errorf("registering status callback: %w", err)
	}

	s.mu.Lock()
	s.registration = reg
	s.mu.Unlock()
	return nil
}

// Start starts the status monitor goroutine
func (s *Service) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.done = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		defer func() {
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
		}()

		logger := s.deps.Logger
		logger.Debug("Starting status monitor", "path", s.deps.StatusPath, "interval", s.deps.Interval)

		ticker := time.NewTicker(s.deps.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopChan:
				return
			case <-ticker.C:
				if err := s.WriteStatus(); err != nil {
					logger.Error("Error writing status file", "error", err)
				}
			}
		}
	}()

	return nil
}

// Stop stops the status monitor, writes a last status and drops the metric callback
func (s *Service) Stop() {
	s.mu.Lock()
	running, stop, done := s.isRunning, s.stopChan, s.done
	reg := s.registration
	s.registration = nil
	s.mu.Unlock()

	if running {
		close(stop)
		<-done
	}
	if reg != nil {
		if err := reg.Unregister(); err != nil {
			s.deps.Logger.Warn("Failed to unregister status metrics", "error", err)
		}
	}
	if err := s.WriteStatus(); err != nil {
		s.deps.Logger.Error("Error writing status file", "error", err)
	}
}
