package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/sprintchart/burndown/schema"
)

// Color variables for console output.
var (
	OnTrackColor = color.New(color.FgGreen, color.Bold) // at or under the guideline
	BehindColor  = color.New(color.FgRed, color.Bold)   // above the guideline
	NoDataColor  = color.New(color.FgYellow)            // missing snapshot
	FutureColor  = color.New(color.FgCyan)              // not yet reached
)

// GetPlainLabel returns the plain text label for a pace status. This is the
// core logic used for CSV, JSON, and table printing.
func GetPlainLabel(status schema.PaceStatus) string {
	switch status {
	case schema.OnTrackStatus:
		return "On track"
	case schema.BehindStatus:
		return "Behind"
	case schema.NoDataStatus:
		return "No data"
	default:
		return "-"
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(status schema.PaceStatus) string {
	text := GetPlainLabel(status)

	switch status {
	case schema.OnTrackStatus:
		return OnTrackColor.Sprint(text)
	case schema.BehindStatus:
		return BehindColor.Sprint(text)
	case schema.NoDataStatus:
		return NoDataColor.Sprint(text)
	default:
		return FutureColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetDBFilePath returns the path to the SQLite DB file for snapshot storage.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".burndown_snapshots.db"
	}
	return filepath.Join(homeDir, ".burndown_snapshots.db")
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// "auto" and the empty string resolve to whether stdout is a terminal.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	case "", "auto":
		return IsTerminal(os.Stdout), nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0/auto)", s)
	}
}

// WriteFileAtomic writes data to a temp file in the target directory and renames it into place,
// so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
