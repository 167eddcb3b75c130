package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

const (
	statusLabelWidth = 16
	statusIndent     = "  "
)

type statusStyle struct {
	tag   string
	color string
}

var statusStyles = map[statusKind]statusStyle{
	statusInfo:  {tag: "INFO", color: ansiCyan},
	statusOK:    {tag: "OK", color: ansiGreen},
	statusWarn:  {tag: "WARN", color: ansiYellow},
	statusError: {tag: "FAIL", color: ansiRed},
}

// renderStatusLine formats "  Label:   [TAG] message", coloured on terminals.
func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	style, ok := statusStyles[kind]
	if !ok {
		style = statusStyles[statusInfo]
	}
	status := "[" + style.tag + "]"
	if message != "" {
		status += " " + message
	}
	line := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", status)
	if colorize {
		return style.color + line + ansiReset
	}
	return line
}

// checkStatus maps a preflight result to a line status.
func checkStatus(passed bool) statusKind {
	if passed {
		return statusOK
	}
	return statusError
}

// filesStatus warns when fewer files were written than planned. A dry run
// writes nothing by intent.
func filesStatus(written, planned int, dryRun bool) statusKind {
	switch {
	case written >= planned:
		return statusOK
	case dryRun:
		return statusInfo
	default:
		return statusWarn
	}
}

// vocabularyStatus warns when trimming left no tokens.
func vocabularyStatus(size int) statusKind {
	if size == 0 {
		return statusWarn
	}
	return statusOK
}

// renderSectionHeader underlines title to its own width.
func renderSectionHeader(title string, colorize bool) []string {
	title = strings.TrimSpace(title)
	rule := strings.Repeat("=", len(title))
	if colorize {
		return []string{ansiCyan + title + ansiReset, ansiCyan + rule + ansiReset}
	}
	return []string{title, rule}
}

// shouldColorize reports whether w is a terminal.
func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
