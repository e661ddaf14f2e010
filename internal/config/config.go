package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory
const FileName = "routeboard.cfg.json"

// FieldConfig holds the default field surface for new diagrams
type FieldConfig struct {
	Width     float64 `json:"width" mapstructure:"width"`
	Height    float64 `json:"height" mapstructure:"height"`
	Color     string  `json:"color" mapstructure:"color"`
	LineColor string  `json:"lineColor" mapstructure:"lineColor"`
}

// DrawingConfig holds arrow tool defaults
type DrawingConfig struct {
	MaxSegments  int           `json:"maxSegments" mapstructure:"maxSegments"`
	WarningTTL   time.Duration `json:"warningTTL" mapstructure:"warningTTL"`
	DefaultStyle string        `json:"defaultStyle" mapstructure:"defaultStyle"`
	DefaultHead  string        `json:"defaultHead" mapstructure:"defaultHead"`
	Color        string        `json:"color" mapstructure:"color"`
	StrokeWidth  float64       `json:"strokeWidth" mapstructure:"strokeWidth"`
}

// SnapConfig holds the initial snap toggle and tolerance
type SnapConfig struct {
	Enabled   bool    `json:"enabled" mapstructure:"enabled"`
	Tolerance float64 `json:"tolerance" mapstructure:"tolerance"`
}

// GeometryConfig holds zigzag rendering parameters
type GeometryConfig struct {
	ZigzagStep      float64 `json:"zigzagStep" mapstructure:"zigzagStep"`
	ZigzagAmplitude float64 `json:"zigzagAmplitude" mapstructure:"zigzagAmplitude"`
}

// MemoryConfig holds in-memory/JSON storage backend settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// SQLiteConfig holds SQLite storage backend settings
type SQLiteConfig struct {
	Path         string        `json:"path" mapstructure:"path"`
	DumpInterval time.Duration `json:"dumpInterval" mapstructure:"dumpInterval"`
	DumpPath     string        `json:"dumpPath" mapstructure:"dumpPath"`
}

// StorageConfig selects and configures the storage backend
type StorageConfig struct {
	Type          string        `json:"type" mapstructure:"type"`
	FlushInterval time.Duration `json:"flushInterval" mapstructure:"flushInterval"`
	Memory        MemoryConfig  `json:"memory" mapstructure:"memory"`
	SQLite        SQLiteConfig  `json:"sqlite" mapstructure:"sqlite"`
}

// DBConfig holds Postgres connection settings
type DBConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled        bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName    string        `json:"serviceName" mapstructure:"serviceName"`
	BatchTimeout   time.Duration `json:"batchTimeout" mapstructure:"batchTimeout"`
	MetricInterval time.Duration `json:"metricInterval" mapstructure:"metricInterval"`
	Endpoint       string        `json:"endpoint" mapstructure:"endpoint"`
	Insecure       bool          `json:"insecure" mapstructure:"insecure"`
}

// StatusConfig holds the session status file settings
type StatusConfig struct {
	Path     string        `json:"path" mapstructure:"path"`
	Interval time.Duration `json:"interval" mapstructure:"interval"`
}

// SetDefaults registers every default value
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./logs")
	viper.SetDefault("trace.enabled", false)

	viper.SetDefault("field.width", 800)
	viper.SetDefault("field.height", 600)
	viper.SetDefault("field.color", "#2e7d32")
	viper.SetDefault("field.lineColor", "#ffffff")

	viper.SetDefault("drawing.maxSegments", 10)
	viper.SetDefault("drawing.warningTTL", "3s")
	viper.SetDefault("drawing.defaultStyle", "straight")
	viper.SetDefault("drawing.defaultHead", "normal")
	viper.SetDefault("drawing.color", "#000000")
	viper.SetDefault("drawing.strokeWidth", 2)

	viper.SetDefault("snap.enabled", false)
	viper.SetDefault("snap.tolerance", 15)

	viper.SetDefault("geometry.zigzagStep", 12)
	viper.SetDefault("geometry.zigzagAmplitude", 8)

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.flushInterval", "2s")
	viper.SetDefault("storage.memory.outputDir", "./diagrams")
	viper.SetDefault("storage.memory.compressOutput", true)
	viper.SetDefault("storage.sqlite.path", "")
	viper.SetDefault("storage.sqlite.dumpInterval", "3m")
	viper.SetDefault("storage.sqlite.dumpPath", "")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "routeboard")

	viper.SetDefault("status.path", "")
	viper.SetDefault("status.interval", "1s")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "routeboard")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.metricInterval", "30s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	SetDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFieldConfig returns the default field surface
func GetFieldConfig() FieldConfig {
	return FieldConfig{
		Width:     viper.GetFloat64("field.width"),
		Height:    viper.GetFloat64("field.height"),
		Color:     viper.GetString("field.color"),
		LineColor: viper.GetString("field.lineColor"),
	}
}

// GetDrawingConfig returns arrow tool defaults
func GetDrawingConfig() DrawingConfig {
	return DrawingConfig{
		MaxSegments:  viper.GetInt("drawing.maxSegments"),
		WarningTTL:   viper.GetDuration("drawing.warningTTL"),
		DefaultStyle: viper.GetString("drawing.defaultStyle"),
		DefaultHead:  viper.GetString("drawing.defaultHead"),
		Color:        viper.GetString("drawing.color"),
		StrokeWidth:  viper.GetFloat64("drawing.strokeWidth"),
	}
}

// GetSnapConfig returns the initial snap settings
func GetSnapConfig() SnapConfig {
	return SnapConfig{
		Enabled:   viper.GetBool("snap.enabled"),
		Tolerance: viper.GetFloat64("snap.tolerance"),
	}
}

// GetGeometryConfig returns zigzag rendering parameters
func GetGeometryConfig() GeometryConfig {
	return GeometryConfig{
		ZigzagStep:      viper.GetFloat64("geometry.zigzagStep"),
		ZigzagAmplitude: viper.GetFloat64("geometry.zigzagAmplitude"),
	}
}

// GetStorageConfig returns the storage backend settings
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type:          viper.GetString("storage.type"),
		FlushInterval: viper.GetDuration("storage.flushInterval"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
		SQLite: SQLiteConfig{
			Path:         viper.GetString("storage.sqlite.path"),
			DumpInterval: viper.GetDuration("storage.sqlite.dumpInterval"),
			DumpPath:     viper.GetString("storage.sqlite.dumpPath"),
		},
	}
}

// GetDBConfig returns Postgres connection settings
func GetDBConfig() DBConfig {
	return DBConfig{
		Host:     viper.GetString("db.host"),
		Port:     viper.GetString("db.port"),
		Username: viper.GetString("db.username"),
		Password: viper.GetString("db.password"),
		Database: viper.GetString("db.database"),
	}
}

// GetOTelConfig returns OpenTelemetry settings
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:        viper.GetBool("otel.enabled"),
		ServiceName:    viper.GetString("otel.serviceName"),
		BatchTimeout:   viper.GetDuration("otel.batchTimeout"),
		MetricInterval: viper.GetDuration("otel.metricInterval"),
		Endpoint:       viper.GetString("otel.endpoint"),
		Insecure:       viper.GetBool("otel.insecure"),
	}
}

// GetStatusConfig returns the session status file settings
func GetStatusConfig() StatusConfig {
	return StatusConfig{
		Path:     viper.GetString("status.path"),
		Interval: viper.GetDuration("status.interval"),
	}
}
