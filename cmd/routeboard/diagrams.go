package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/routeboard/engine/internal/config"
	"github.com/routeboard/engine/internal/storage"
	v1 "github.com/routeboard/engine/internal/storage/memory/export/v1"
	"github.com/spf13/cobra"
)

var (
	listJSON   bool
	showRender bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored diagrams, most recently updated first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored diagram as JSON",
	Long:  "Print a stored diagram as JSON. With --render the output carries band lines, expanded zigzag runs and arrowheads.",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored diagram",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a stored diagram to the export directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print JSON instead of a table")
	showCmd.Flags().BoolVar(&showRender, "render", false, "include render-ready geometry")
	rootCmd.AddCommand(listCmd, showCmd, deleteCmd, exportCmd)
}

// withStorage opens the configured backend for the duration of fn
func withStorage(fn func(storage.Backend) error) error {
	backend, err := openStorage()
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			Logger.Error("Failed to close storage", "error", err)
		}
	}()
	return fn(backend)
}

func runList(cmd *cobra.Command, args []string) error {
	return withStorage(func(backend storage.Backend) error {
		summaries, err := backend.ListDiagrams()
		if err != nil {
			return fmt.Errorf("failed to list diagrams: %w", err)
		}
		if listJSON {
			return writeIndentedJSON(cmd.OutOrStdout(), summaries)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPLAYERS\tARROWS\tUPDATED")
		for _, s := range summaries {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", s.ID, s.Name, s.Players, s.Arrows, s.UpdatedAt.UTC().Format(time.RFC3339))
		}
		return w.Flush()
	})
}

func runShow(cmd *cobra.Command, args []string) error {
	return withStorage(func(backend storage.Backend) error {
		d, err := backend.LoadDiagram(args[0])
		if err != nil {
			return notFound(args[0], err)
		}
		if !showRender {
			return writeIndentedJSON(cmd.OutOrStdout(), d)
		}
		geometry := config.GetGeometryConfig()
		return writeIndentedJSON(cmd.OutOrStdout(), v1.Build(d, v1.Options{
			ZigzagStep:      geometry.ZigzagStep,
			ZigzagAmplitude: geometry.ZigzagAmplitude,
		}))
	})
}

func runDelete(cmd *cobra.Command, args []string) error {
	return withStorage(func(backend storage.Backend) error {
		if err := backend.DeleteDiagram(args[0]); err != nil {
			return notFound(args[0], err)
		}
		Logger.Info("Deleted diagram", "id", args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted diagram %s\n", args[0])
		return nil
	})
}

func runExport(cmd *cobra.Command, args []string) error {
	return withStorage(func(backend storage.Backend) error {
		exp, ok := backend.(storage.Exportable)
		if !ok {
			return fmt.Errorf("%s storage does not support export", config.GetStorageConfig().Type)
		}
		path, err := exp.Export(args[0])
		if err != nil {
			return notFound(args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	})
}

func notFound(id string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("diagram %s not found: %w", id, err)
	}
	return err
}

func writeIndentedJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
