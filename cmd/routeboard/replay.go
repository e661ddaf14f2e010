package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/routeboard/engine/internal/board"
	"github.com/routeboard/engine/internal/config"
	"github.com/routeboard/engine/internal/dispatcher"
	"github.com/routeboard/engine/internal/logging"
	"github.com/routeboard/engine/internal/monitor"
	"github.com/routeboard/engine/internal/parser"
	"github.com/routeboard/engine/internal/storage"
	"github.com/routeboard/engine/internal/worker"
	"github.com/routeboard/engine/internal/zone"
	"github.com/routeboard/engine/pkg/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// maxScriptLine bounds one script line; group drops and imported polylines can be long
const maxScriptLine = 1 << 20

var replayOpts struct {
	diagramID string
	name      string
	strict    bool
}

var replayCmd = &cobra.Command{
	Use:   "replay <script.jsonl>",
	Short: "Drive a diagram from a JSON-lines command script and save it",
	Long: `Each line of the script is one command object:

  {"command": ":CLICK:", "args": [120, 340]}

Blank lines and lines starting with # are skipped. Failed commands are logged and
skipped unless --strict is set. The resulting diagram is saved to the configured storage.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&replayOpts.diagramID, "diagram", "", "id of the diagram to edit; loaded from storage when it exists")
	replayCmd.Flags().StringVar(&replayOpts.name, "name", "", "diagram name")
	replayCmd.Flags().BoolVar(&replayOpts.strict, "strict", false, "stop at the first failed command")
	rootCmd.AddCommand(replayCmd)
}

// scriptLine is one command of a replay script. Args may be JSON strings, numbers or arrays.
type scriptLine struct {
	Command string            `json:"command"`
	Args    []json.RawMessage `json:"args"`
}

type replayStats struct {
	Commands int
	Failed   int
}

func runReplay(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	backend, err := openStorage()
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			Logger.Error("Failed to close storage", "error", err)
		}
	}()

	d, err := initialDiagram(backend)
	if err != nil {
		return err
	}

	writer := worker.NewSnapshotWriter(backend, config.GetStorageConfig().FlushInterval, Logger)
	svc := board.New(d, board.ConfigFromViper(), board.Dependencies{
		OnCommit: writer.Push,
		Tracer:   logging.NewTracer(Logger, viper.GetBool("trace.enabled")),
		Logger:   Logger,
	})
	snap := svc.Snapshot()
	setActiveDiagram(snap.ID)
	defer setActiveDiagram("")

	eventDispatcher, err := dispatcher.New(logging.NewDispatcherLogger(Logger))
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}
	workerManager := worker.NewManager(worker.Dependencies{
		Board:  svc,
		Parser: parser.NewParser(Logger),
		Writer: writer,
		Logger: Logger,
	})
	statusCfg := config.GetStatusConfig()
	statusMonitor := monitor.NewService(monitor.Dependencies{
		Board:      svc,
		Writer:     writer,
		Logger:     Logger,
		StatusPath: statusCfg.Path,
		Interval:   statusCfg.Interval,
	})
	if err := statusMonitor.RegisterMetrics(); err != nil {
		Logger.Warn("Failed to register status metrics", "error", err)
	}
	defer statusMonitor.Stop()

	workerManager.RegisterHandlers(eventDispatcher)
	registerLifecycleHandlers(eventDispatcher, svc, statusMonitor)
	Logger.Debug("Registered commands", "commands", eventDispatcher.Commands())

	writer.Start()
	if statusCfg.Path != "" {
		_ = statusMonitor.Start()
	}
	stats, scriptErr := runScript(f, eventDispatcher, replayOpts.strict)
	eventDispatcher.Close()

	snap = svc.Snapshot()
	if err := writer.Save(snap); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to save diagram: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to save diagram: %w", err)
	}
	Logger.Info("Replay finished",
		"commands", stats.Commands,
		"failed", stats.Failed,
		"lastWrite", workerManager.GetLastDBWriteDuration(),
	)
	if exp, ok := backend.(storage.Exportable); ok && exp.GetExportedFilePath() != "" {
		Logger.Info("Diagram exported", "path", exp.GetExportedFilePath())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved diagram %s (%d players, %d arrows) after %d commands, %d failed\n",
		snap.ID, len(snap.Players), len(snap.Arrows), stats.Commands, stats.Failed)
	return scriptErr
}

// initialDiagram loads the diagram named by --diagram or starts a new one on the default field
func initialDiagram(backend storage.Backend) (core.Diagram, error) {
	if replayOpts.diagramID != "" {
		d, err := backend.LoadDiagram(replayOpts.diagramID)
		if err == nil {
			if replayOpts.name != "" {
				d.Name = replayOpts.name
			}
			Logger.Info("Editing stored diagram", "id", d.ID, "name", d.Name)
			return d, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return core.Diagram{}, fmt.Errorf("failed to load diagram: %w", err)
		}
	}

	field := config.GetFieldConfig()
	return core.Diagram{
		ID:   replayOpts.diagramID,
		Name: replayOpts.name,
		Field: core.Field{
			Width:     field.Width,
			Height:    field.Height,
			Color:     field.Color,
			LineColor: field.LineColor,
		},
		Center: core.Center{
			ID: "center",
			X:  field.Width / 2,
			Y:  zone.BandLine(4, field.Height),
		},
	}, nil
}

// runScript dispatches every command line of r in order
func runScript(r io.Reader, d *dispatcher.Dispatcher, strict bool) (replayStats, error) {
	var stats replayStats
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxScriptLine)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		var sl scriptLine
		if err := json.Unmarshal(line, &sl); err != nil {
			stats.Failed++
			Logger.Warn("Skipping malformed script line", "line", lineNo, "error", err)
			if strict {
				return stats, fmt.Errorf("line %d: %w", lineNo, err)
			}
			continue
		}

		stats.Commands++
		if _, err := d.Dispatch(dispatcher.Event{Command: sl.Command, Args: argsFromRaw(sl.Args)}); err != nil {
			stats.Failed++
			Logger.Warn("Command failed", "line", lineNo, "command", sl.Command, "error", err)
			if strict {
				return stats, fmt.Errorf("line %d: %s: %w", lineNo, sl.Command, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read script: %w", err)
	}
	return stats, nil
}

// argsFromRaw converts JSON args to the string form the parser expects.
// Strings are decoded, anything else is passed through as its JSON text.
func argsFromRaw(raw []json.RawMessage) []string {
	out := make([]string, len(raw))
	for i, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			out[i] = s
			continue
		}
		out[i] = string(bytes.TrimSpace(r))
	}
	return out
}

// registerLifecycleHandlers registers query commands that do not edit the diagram
func registerLifecycleHandlers(d *dispatcher.Dispatcher, svc *board.Service, status *monitor.Service) {
	d.Register(":VERSION:", func(e dispatcher.Event) (any, error) {
		return []string{CurrentVersion, BuildDate}, nil
	})

	d.Register(":GETDIR:LOG:", func(e dispatcher.Event) (any, error) {
		return LogFilePath, nil
	})

	d.Register(":LOGLEVEL:", func(e dispatcher.Event) (any, error) {
		if len(e.Args) != 1 {
			return nil, fmt.Errorf("expected 1 arg, got %d", len(e.Args))
		}
		if SlogManager != nil {
			SlogManager.SetLevel(e.Args[0])
		}
		return logging.ParseLevel(e.Args[0]).String(), nil
	})

	d.Register(":STATE:", func(e dispatcher.Event) (any, error) {
		st := svc.UIState()
		Logger.Info("Editor state",
			"tool", st.Tool,
			"drawing", st.Session.Drawing,
			"segments", st.Session.Segments(),
			"flipped", st.Flipped,
			"canUndo", st.CanUndo,
		)
		return st, nil
	})

	d.Register(":STATUS:", func(e dispatcher.Event) (any, error) {
		return status.GetStatus(), nil
	})
}
