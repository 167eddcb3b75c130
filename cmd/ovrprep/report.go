package main

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"ovrprep/internal/services"
	"ovrprep/internal/vocab"
	"ovrprep/internal/workflow"
)

var (
	numberPrinter = message.NewPrinter(language.English)
	titleCaser    = cases.Title(language.English)
)

// runReport is the JSON shape of `ovrprep run --json`.
type runReport struct {
	*workflow.Result
	Status    string `json:"status"`
	ErrorKind string `json:"error_kind,omitempty"`
	Error     string `json:"error,omitempty"`
}

func newRunReport(result *workflow.Result, runErr error) runReport {
	report := runReport{Result: result, Status: "succeeded"}
	if runErr != nil {
		report.Status = "failed"
		report.ErrorKind = services.Kind(runErr)
		report.Error = runErr.Error()
	}
	return report
}

func formatCount(n int) string {
	return numberPrinter.Sprintf("%d", n)
}

func renderRunReport(result *workflow.Result, runErr error, colorize bool) string {
	var lines []string

	lines = append(lines, renderSectionHeader("Splits", colorize)...)
	lines = append(lines, splitTable(result))
	lines = append(lines, "")

	lines = append(lines, renderSectionHeader("Vocabulary", colorize)...)
	lines = append(lines, vocabularyLines(result, colorize)...)
	lines = append(lines, "")

	lines = append(lines, renderSectionHeader("One-vs-rest labels", colorize)...)
	lines = append(lines, ovrLines(result, colorize)...)
	lines = append(lines, "")

	lines = append(lines, renderSectionHeader("Run", colorize)...)
	lines = append(lines, runLines(result, runErr, colorize)...)

	return strings.Join(lines, "\n") + "\n"
}

func splitTable(result *workflow.Result) string {
	rows := make([][]string, 0, len(result.Splits))
	for _, split := range result.Splits {
		row := []string{
			titleCaser.String(split.Name),
			formatCount(split.Inputs),
			formatCount(split.Targets),
			"-", "-", "-",
		}
		if split.Stats.Count > 0 {
			row[3] = fmt.Sprintf("%.3f", split.Stats.Mean)
			row[4] = formatCount(split.Stats.Max)
			row[5] = formatCount(split.Stats.Min)
		}
		rows = append(rows, row)
	}
	return renderTable("",
		[]string{"Split", "Inputs", "Targets", "Avg Len", "Max Len", "Min Len"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
	)
}

func vocabularyLines(result *workflow.Result, colorize bool) []string {
	v := result.Vocabulary
	if v.Path == "" {
		return []string{renderStatusLine("Vocabulary", statusInfo, "not built", colorize)}
	}
	lines := []string{
		renderStatusLine("Size", vocabularyStatus(v.Size), fmt.Sprintf("%s of %s distinct tokens", formatCount(v.Size), formatCount(v.Distinct)), colorize),
		renderStatusLine("Cutoffs", statusInfo, fmt.Sprintf("min %s (-%s rare), max %s (-%s frequent)",
			vocab.FormatCutoff(v.Cutoffs.MinFreq), formatCount(v.DroppedRare),
			vocab.FormatCutoff(v.Cutoffs.MaxFreq), formatCount(v.DroppedFrequent)), colorize),
		renderStatusLine("Coverage", statusInfo, fmt.Sprintf("%.1f%% of %s training tokens", 100*v.Coverage(), formatCount(v.Occurrences)), colorize),
	}
	if v.Written {
		lines = append(lines, renderStatusLine("File", statusOK, v.Path, colorize))
	} else {
		lines = append(lines, renderStatusLine("File", statusInfo, v.Path+" (not written)", colorize))
	}
	return lines
}

func ovrLines(result *workflow.Result, colorize bool) []string {
	o := result.OVR
	if len(o.Tallies) == 0 {
		return []string{renderStatusLine("Labels", statusInfo, "not expanded", colorize)}
	}

	lines := []string{
		renderStatusLine("Classes", statusInfo, fmt.Sprintf("%s (%s)", formatClasses(o.Classes.Classes), o.Classes.Source), colorize),
	}
	lines = append(lines, renderStatusLine("Files", filesStatus(o.FilesWritten, o.FilesPlanned, result.DryRun),
		fmt.Sprintf("%s of %s written to %s", formatCount(o.FilesWritten), formatCount(o.FilesPlanned), o.OutputDir), colorize))

	rows := make([][]string, 0, len(o.Tallies))
	for _, tally := range o.Tallies {
		rows = append(rows, []string{
			titleCaser.String(tally.Split),
			formatCount(tally.Total),
			formatCount(tally.Total - tally.Unclassified),
			formatCount(tally.Unclassified),
		})
	}
	lines = append(lines, renderTable("",
		[]string{"Split", "Records", "Covered", "Outside Class Set"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
	))
	return lines
}

func runLines(result *workflow.Result, runErr error, colorize bool) []string {
	lines := []string{
		renderStatusLine("Run ID", statusInfo, result.RunID, colorize),
		renderStatusLine("Dry run", statusInfo, yesNo(result.DryRun), colorize),
		renderStatusLine("Duration", statusInfo, result.Duration().Round(time.Millisecond).String(), colorize),
	}
	if runErr != nil {
		lines = append(lines, renderStatusLine("Status", statusError, fmt.Sprintf("failed (%s)", services.Kind(runErr)), colorize))
	} else {
		lines = append(lines, renderStatusLine("Status", statusOK, "completed", colorize))
	}
	return lines
}

// formatClasses renders contiguous runs as ranges: [0 1 2 5] -> "0-2, 5".
func formatClasses(classes []int) string {
	if len(classes) == 0 {
		return "none"
	}
	sorted := slices.Clone(classes)
	slices.Sort(sorted)

	var parts []string
	start, prev := sorted[0], sorted[0]
	flush := func() {
		if start == prev {
			parts = append(parts, strconv.Itoa(start))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", start, prev))
		}
	}
	for _, c := range sorted[1:] {
		if c == prev+1 {
			prev = c
			continue
		}
		flush()
		start, prev = c, c
	}
	flush()
	return strings.Join(parts, ", ")
}
