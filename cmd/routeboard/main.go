package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/routeboard/engine/internal/config"
	"github.com/routeboard/engine/internal/logging"
	intOtel "github.com/routeboard/engine/internal/otel"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// module defs - BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.1.0"
	BuildDate      string = "unknown"

	AppName string = "routeboard"
)

// global variables
var (
	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger = slog.Default()

	// DBLogger is the zerolog logger handed to the database manager
	DBLogger zerolog.Logger = zerolog.Nop()

	// OTelProvider handles OpenTelemetry
	OTelProvider *intOtel.Provider

	// LogFile is the session log file, nil when logging to stderr
	LogFile     *os.File
	LogFilePath string

	SessionStartTime time.Time = time.Now()

	configDir string
	logLevel  string

	activeDiagram struct {
		sync.RWMutex
		id string
	}
)

var rootCmd = &cobra.Command{
	Use:   AppName,
	Short: "Route diagram annotation engine",
	Long: `routeboard edits route diagrams: players placed in team zones, arrows drawn
as styled segments, anchored arrows that follow their player. Diagrams are driven
by command scripts and persisted to memory/JSON, SQLite or Postgres storage.`,
	Version:           fmt.Sprintf("%s (%s)", CurrentVersion, BuildDate),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "directory containing "+config.FileName)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")
	cobra.OnFinalize(teardown)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setActiveDiagram sets the diagram id attached to every log record
func setActiveDiagram(id string) {
	activeDiagram.Lock()
	defer activeDiagram.Unlock()
	activeDiagram.id = id
}

func diagramContext() []slog.Attr {
	activeDiagram.RLock()
	defer activeDiagram.RUnlock()
	if activeDiagram.id == "" {
		return nil
	}
	return []slog.Attr{slog.String("diagram", activeDiagram.id)}
}

// setup loads the configuration and brings up logging and OTel
func setup(cmd *cobra.Command, args []string) error {
	if err := loadConfig(configDir); err != nil {
		return err
	}
	if logLevel != "" {
		viper.Set("logLevel", logLevel)
	}

	SlogManager = logging.NewSlogManager()
	SlogManager.SetContextProvider(diagramContext)

	var out io.Writer = cmd.ErrOrStderr()
	if logsDir := viper.GetString("logsDir"); logsDir != "" {
		f, path, err := openLogFile(logsDir)
		if err != nil {
			return err
		}
		LogFile, LogFilePath, out = f, path, f
	}

	var otelLogProvider *sdklog.LoggerProvider
	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		providerCfg := intOtel.FromConfig(otelCfg, out)
		providerCfg.ServiceVersion = CurrentVersion
		p, err := intOtel.New(providerCfg)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Failed to initialize OTel provider: %v\n", err)
		} else {
			OTelProvider = p
			otelLogProvider = p.LoggerProvider()
		}
	}

	SlogManager.Setup(out, viper.GetString("logLevel"), otelLogProvider)
	Logger = SlogManager.Logger()
	DBLogger = newDBLogger(out, viper.GetString("logLevel"))
	if LogFilePath != "" {
		Logger.Info("Logging to file", "path", LogFilePath)
	}
	if OTelProvider != nil {
		Logger.Info("OTel provider initialized", "endpoint", otelCfg.Endpoint)
	}
	return nil
}

// loadConfig reads the config file. A missing file falls back to defaults.
func loadConfig(dir string) error {
	err := config.Load(dir)
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return err
}

func openLogFile(logsDir string) (*os.File, string, error) {
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, "", fmt.Errorf("failed to create logs dir: %w", err)
	}
	path := logging.LogFilePath(logsDir, AppName, SessionStartTime)

	// keep the previous log of the same session second
	if _, err := os.Stat(path); err == nil {
		_ = os.Rename(path, path+".old")
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open log file: %w", err)
	}
	return f, path, nil
}

// newDBLogger builds the console-format zerolog logger used for connection diagnostics
func newDBLogger(w io.Writer, level string) zerolog.Logger {
	var lvl zerolog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		lvl = zerolog.DebugLevel
	case "WARN":
		lvl = zerolog.WarnLevel
	case "ERROR":
		lvl = zerolog.ErrorLevel
	case "TRACE":
		lvl = zerolog.TraceLevel
	default:
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}).Level(lvl).With().Timestamp().Str("component", "database").Logger()
}

// teardown flushes telemetry and closes the log file. It runs after every command, failed ones included.
func teardown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if SlogManager != nil {
		if err := SlogManager.Flush(ctx); err != nil {
			Logger.Warn("Failed to flush logs", "error", err)
		}
	}
	if OTelProvider != nil {
		if err := OTelProvider.Shutdown(ctx); err != nil {
			Logger.Warn("Failed to shut down OTel provider", "error", err)
		}
		OTelProvider = nil
	}
	if LogFile != nil {
		_ = LogFile.Close()
		LogFile, LogFilePath = nil, ""
	}
	Logger = slog.Default()
}
