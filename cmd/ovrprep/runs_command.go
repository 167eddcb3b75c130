package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ovrprep/internal/manifest"
	"ovrprep/internal/vocab"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List runs recorded in the manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			path := cfg.Manifest.Path
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				if jsonOutput {
					return writeJSON(out, jsonList[manifest.Run](nil))
				}
				fmt.Fprintf(out, "No runs recorded (manifest %s does not exist)\n", path)
				return nil
			}

			store, err := manifest.Open(cmd.Context(), path)
			if err != nil {
				return fmt.Errorf("open manifest: %w", err)
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(out, jsonList(runs))
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderRunsTable(runs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print runs as JSON")
	return cmd
}

func renderRunsTable(runs []manifest.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		status := string(run.Status)
		if run.DryRun {
			status += " (dry)"
		}
		if run.ErrorKind != "" {
			status += ": " + run.ErrorKind
		}
		rows = append(rows, []string{
			shortID(run.ID),
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Duration().Round(time.Millisecond).String(),
			status,
			vocab.FormatCutoff(run.MinFreq) + "/" + vocab.FormatCutoff(run.MaxFreq),
			formatCount(run.VocabSize),
			formatClasses(run.Classes),
			formatCount(run.FilesWritten),
			run.DataFolder,
		})
	}
	return renderTable("",
		[]string{"ID", "Started", "Duration", "Status", "Min/Max", "Vocab", "Classes", "Files", "Data Folder"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignLeft},
	)
}

func shortID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
