// internal/storage/memory/export.go
package memory

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	v1 "github.com/routeboard/engine/internal/storage/memory/export/v1"
	"github.com/routeboard/engine/pkg/core"
)

const (
	jsonExt = ".json"
	gzipExt = ".json.gz"
)

// exportBaseName turns a diagram id into a safe file name stem
func exportBaseName(id string) string {
	r := strings.NewReplacer(" ", "_", ":", "_", "/", "_", "\\", "_")
	return r.Replace(id)
}

func (b *Backend) exportPath(id string) string {
	ext := jsonExt
	if b.cfg.CompressOutput {
		ext = gzipExt
	}
	return filepath.Join(b.cfg.OutputDir, exportBaseName(id)+ext)
}

// exportJSON writes the diagram to a (optionally gzipped) JSON file
func (b *Backend) exportJSON(d core.Diagram) error {
	export := v1.Build(d, b.opts)
	outputPath := b.exportPath(d.ID)

	// Ensure output directory exists
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// Write file
	if b.cfg.CompressOutput {
		if err := writeGzipJSON(outputPath, export); err != nil {
			return err
		}
	} else {
		if err := writeJSON(outputPath, export); err != nil {
			return err
		}
	}

	b.lastExportPath = outputPath
	return nil
}

// removeExport deletes both the plain and compressed export of id
func (b *Backend) removeExport(id string) error {
	base := filepath.Join(b.cfg.OutputDir, exportBaseName(id))
	for _, path := range []string{base + jsonExt, base + gzipExt} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove export: %w", err)
		}
	}
	return nil
}

// readExports decodes every export file in OutputDir. Unreadable files are skipped.
func (b *Backend) readExports() ([]core.Diagram, error) {
	files, err := os.ReadDir(b.cfg.OutputDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var out []core.Diagram
	for _, file := range files {
		name := file.Name()
		if file.IsDir() || !(strings.HasSuffix(name, jsonExt) || strings.HasSuffix(name, gzipExt)) {
			continue
		}
		path := filepath.Join(b.cfg.OutputDir, name)
		export, err := readExport(path)
		if err != nil {
			b.log.Warn("Skipping unreadable export", "path", path, "error", err)
			continue
		}
		out = append(out, v1.ToDiagram(export))
	}
	return out, nil
}

func readExport(path string) (v1.Export, error) {
	var export v1.Export

	f, err := os.Open(path)
	if err != nil {
		return export, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, gzipExt) {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return export, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return export, fmt.Errorf("failed to decode export: %w", err)
	}
	if export.ID == "" {
		return export, fmt.Errorf("export has no id")
	}
	return export, nil
}

func writeJSON(path string, data v1.Export) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	return encoder.Encode(data)
}

func writeGzipJSON(path string, data v1.Export) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	gzWriter := gzip.NewWriter(f)
	defer gzWriter.Close()

	encoder := json.NewEncoder(gzWriter)
	return encoder.Encode(data)
}
