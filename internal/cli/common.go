package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/briandowns/spinner"

	"wpm/internal/control"
)

// Dial connects to the daemon's control endpoint, showing a connecting
// spinner unless quiet is set.
func Dial(ctx context.Context, endpoint string, quiet bool) (*control.Client, error) {
	if quiet {
		return control.Dial(ctx, endpoint)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = fmt.Sprintf(" connecting to %s...", endpoint)
	s.Start()
	defer s.Stop()

	client, err := control.Dial(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%s (is wpmd running? start it with: wpmctl serve)", err)
	}
	return client, nil
}

// WithSpinner runs fn, showing suffix as a progress spinner unless quiet.
func WithSpinner(quiet bool, suffix string, fn func() error) error {
	if quiet {
		return fn()
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + suffix
	s.Start()
	defer s.Stop()
	return fn()
}

// FormatError formats an error message for consistent CLI output display.
func FormatError(err error) string {
	return fmt.Sprintf("Error: %v", err)
}

// FormatSuccess formats a success message for CLI output with a checkmark icon.
func FormatSuccess(msg string) string {
	return fmt.Sprintf("✓ %s", msg)
}

// FormatWarning formats a warning message for CLI output with a warning icon.
func FormatWarning(msg string) string {
	return fmt.Sprintf("⚠ %s", msg)
}

// PrintBatchResult renders a Start/Stop/Restart/Reset batch's per-unit
// outcome, one line per unit in alphabetical order, and returns a non-nil
// error (listing the failed unit names) if any unit in the batch failed --
// so the CLI command exits non-zero.
func PrintBatchResult(out io.Writer, errs map[string]string) error {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)

	var failed []string
	for _, name := range names {
		if msg := errs[name]; msg == "" {
			fmt.Fprintln(out, FormatSuccess(name))
		} else {
			fmt.Fprintln(out, FormatWarning(fmt.Sprintf("%s: %s", name, msg)))
			failed = append(failed, name)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d units failed: %v", len(failed), len(names), failed)
	}
	return nil
}
