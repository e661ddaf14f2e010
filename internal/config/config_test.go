package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadJSON writes body as the config file of a fresh directory and loads it.
func loadJSON(t *testing.T, body string) {
	t.Helper()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0644))
	require.NoError(t, Load(dir))
}

func TestLoad_Defaults(t *testing.T) {
	loadJSON(t, `{}`)

	want := map[string]any{
		"logLevel":                      "info",
		"logsDir":                       "./logs",
		"trace.enabled":                 false,
		"field.width":                   800,
		"field.height":                  600,
		"drawing.maxSegments":           10,
		"drawing.warningTTL":            "3s",
		"drawing.defaultStyle":          "straight",
		"drawing.defaultHead":           "normal",
		"snap.enabled":                  false,
		"snap.tolerance":                15,
		"db.host":                       "localhost",
		"db.port":                       "5432",
		"db.username":                   "postgres",
		"db.password":                   "postgres",
		"db.database":                   "routeboard",
		"storage.type":                  "memory",
		"storage.memory.outputDir":      "./diagrams",
		"storage.memory.compressOutput": true,
		"storage.sqlite.dumpInterval":   "3m",
		"otel.enabled":                  false,
		"otel.serviceName":              "routeboard",
		"otel.batchTimeout":             "5s",
		"otel.endpoint":                 "",
		"otel.insecure":                 true,
		"status.path":                   "",
		"status.interval":               "1s",
	}
	for key, value := range want {
		switch v := value.(type) {
		case string:
			assert.Equal(t, v, viper.GetString(key), key)
		case int:
			assert.Equal(t, v, viper.GetInt(key), key)
		case bool:
			assert.Equal(t, v, viper.GetBool(key), key)
		}
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	loadJSON(t, `{
		"logLevel": "debug",
		"field": { "width": 1000 },
		"db": { "host": "10.0.0.1", "port": "5433" }
	}`)

	assert.Equal(t, "debug", GetString("logLevel"))
	assert.Equal(t, 1000, GetInt("field.width"))
	assert.Equal(t, 600, GetInt("field.height"), "sibling keys keep their defaults")
	assert.Equal(t, "10.0.0.1", GetString("db.host"))
	assert.Equal(t, "5433", GetString("db.port"))
	assert.False(t, GetBool("snap.enabled"))
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Cleanup(viper.Reset)
		err := Load(filepath.Join(t.TempDir(), "absent"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config file")
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Cleanup(viper.Reset)
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"field":`), 0644))
		assert.Error(t, Load(dir))
	})
}

func TestGetStorageConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		loadJSON(t, `{}`)

		sc := GetStorageConfig()
		assert.Equal(t, "memory", sc.Type)
		assert.Equal(t, 2*time.Second, sc.FlushInterval)
		assert.Equal(t, "./diagrams", sc.Memory.OutputDir)
		assert.True(t, sc.Memory.CompressOutput)
		assert.Empty(t, sc.SQLite.Path)
		assert.Equal(t, 3*time.Minute, sc.SQLite.DumpInterval)
	})

	t.Run("sqlite", func(t *testing.T) {
		loadJSON(t, `{"storage": {
			"type": "sqlite",
			"memory": { "outputDir": "/tmp/out", "compressOutput": false },
			"sqlite": { "path": "/tmp/board.db", "dumpInterval": "10m" }
		}}`)

		sc := GetStorageConfig()
		assert.Equal(t, "sqlite", sc.Type)
		assert.Equal(t, "/tmp/out", sc.Memory.OutputDir)
		assert.False(t, sc.Memory.CompressOutput)
		assert.Equal(t, "/tmp/board.db", sc.SQLite.Path)
		assert.Equal(t, 10*time.Minute, sc.SQLite.DumpInterval)
	})
}

func TestGetOTelConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		loadJSON(t, `{}`)

		oc := GetOTelConfig()
		assert.False(t, oc.Enabled)
		assert.Equal(t, "routeboard", oc.ServiceName)
		assert.Equal(t, 5*time.Second, oc.BatchTimeout)
		assert.Equal(t, 30*time.Second, oc.MetricInterval)
		assert.Empty(t, oc.Endpoint)
		assert.True(t, oc.Insecure)
	})

	t.Run("metrics off", func(t *testing.T) {
		loadJSON(t, `{"otel": {
			"enabled": true,
			"serviceName": "board-ci",
			"batchTimeout": "30s",
			"metricInterval": "0s",
			"endpoint": "collector:4318",
			"insecure": false
		}}`)

		oc := GetOTelConfig()
		assert.True(t, oc.Enabled)
		assert.Equal(t, "board-ci", oc.ServiceName)
		assert.Equal(t, 30*time.Second, oc.BatchTimeout)
		assert.Zero(t, oc.MetricInterval)
		assert.Equal(t, "collector:4318", oc.Endpoint)
		assert.False(t, oc.Insecure)
	})
}

func TestGetDrawingConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	SetDefaults()

	dc := GetDrawingConfig()
	assert.Equal(t, 10, dc.MaxSegments)
	assert.Equal(t, 3*time.Second, dc.WarningTTL)
	assert.Equal(t, "straight", dc.DefaultStyle)
	assert.Equal(t, "normal", dc.DefaultHead)
	assert.Equal(t, "#000000", dc.Color)
	assert.Equal(t, 2.0, dc.StrokeWidth)
}

func TestGetFieldSnapGeometryConfig(t *testing.T) {
	loadJSON(t, `{
		"field": { "width": 1024, "height": 768 },
		"snap": { "enabled": true, "tolerance": 8.5 },
		"geometry": { "zigzagStep": 20 }
	}`)

	fc := GetFieldConfig()
	assert.Equal(t, 1024.0, fc.Width)
	assert.Equal(t, 768.0, fc.Height)

	sc := GetSnapConfig()
	assert.True(t, sc.Enabled)
	assert.Equal(t, 8.5, sc.Tolerance)

	gc := GetGeometryConfig()
	assert.Equal(t, 20.0, gc.ZigzagStep)
	assert.Equal(t, 8.0, gc.ZigzagAmplitude, "unset geometry keys keep defaults")
}

func TestGetDBConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	SetDefaults()

	dc := GetDBConfig()
	assert.Equal(t, "localhost", dc.Host)
	assert.Equal(t, "5432", dc.Port)
	assert.Equal(t, "routeboard", dc.Database)
}

func TestGetStatusConfig(t *testing.T) {
	loadJSON(t, `{"status": {"path": "/tmp/status.json"}}`)

	sc := GetStatusConfig()
	assert.Equal(t, "/tmp/status.json", sc.Path)
	assert.Equal(t, time.Second, sc.Interval)
}
