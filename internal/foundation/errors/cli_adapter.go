package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter prints an error for the user, logs it and exits with the
// code its category maps to.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		out:     os.Stderr,
		exit:    os.Exit,
	}
}

// ExitCodeFor returns 0 for nil, 1 for unclassified errors and the category code otherwise.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if classified, ok := AsClassified(err); ok {
		return classified.category.exitCode()
	}
	return 1
}

// FormatError renders the line printed to stderr.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	classified, ok := AsClassified(err)
	switch {
	case !ok:
		return fmt.Sprintf("Error: %v", err)
	case a.verbose:
		return fmt.Sprintf("Error: %s", classified.Error())
	case !classified.category.describesInput():
		return "Internal error occurred (use -v for details)"
	case classified.cause != nil:
		return fmt.Sprintf("Error: %s: %v", classified.message, classified.cause)
	default:
		return fmt.Sprintf("Error: %s", classified.message)
	}
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	if a.shouldLog(err) {
		a.logError(err)
	}
	_, _ = fmt.Fprintln(a.out, a.FormatError(err))
	a.exit(a.ExitCodeFor(err))
}

func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}
	if classified, ok := AsClassified(err); ok {
		return classified.severity == SeverityFatal
	}
	return true
}

func (a *CLIErrorAdapter) logError(err error) {
	classified, ok := AsClassified(err)
	if !ok {
		a.logger.Error("Unclassified error", "error", err)
		return
	}
	attrs := []slog.Attr{slog.String("category", string(classified.category))}
	for k, v := range classified.context {
		attrs = append(attrs, slog.Any(k, v))
	}
	if classified.NeedsUserAction() {
		attrs = append(attrs, slog.Bool("user_action", true))
	}
	a.logger.LogAttrs(context.Background(), slog.LevelError, classified.message, attrs...)
}
