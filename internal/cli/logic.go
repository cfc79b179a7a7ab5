package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/idelchi/fileattrs/internal/attrs"
	"github.com/idelchi/fileattrs/internal/config"
	"github.com/idelchi/fileattrs/internal/report"
)

// formatTable prints the report to standard output instead of writing a file.
const formatTable = "table"

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && isatty.IsTerminal(f.Fd())
}

//nolint:funlen,cyclop // Linear wiring of validation, run and output
func logic(ctx context.Context, cfg *config.Config, root string, stdout, stderr io.Writer) error {
	log := newLogger(stderr, cfg.Debug)

	options, err := cfg.Options(root)
	if err != nil {
		return err
	}

	options.Logger = &log

	table := strings.EqualFold(cfg.Format, formatTable)

	var (
		format report.Format
		target *report.Target
	)

	if !table {
		if format, err = cfg.OutputFormat(); err != nil {
			return err
		}

		// The destination is validated before anything is walked.
		if cfg.Output != config.Stdout {
			if target, err = report.FileTarget(cfg.Output); err != nil {
				return err
			}

			if err := target.Check(); err != nil {
				return err
			}
		}
	}

	enableProgress := !cfg.Debug && isTerminal(stderr)

	// Simple progress callback that prints directly to stderr
	var progressHook func(files, bytes int64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(stderr, "\033[?25l")
		defer fmt.Fprint(stderr, "\033[?25h")

		progressHook = func(files, bytes int64) {
			msg := fmt.Sprintf("Scanning… %d files, %s",
				files, humanize.IBytes(uint64(bytes))) //nolint:gosec // Bytes is always positive
			fmt.Fprintf(stderr, "\r\033[2K%s\r", msg)
		}
	}

	rep, err := attrs.Run(ctx, options, progressHook)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	if n := len(rep.Failures); n > 0 {
		log.Warn().Int("files", n).Msg("some files could not be read, their fields are empty")
	}

	switch {
	case table:
		return PrintTable(rep, stdout)
	case target == nil:
		return report.Write(stdout, rep, format)
	default:
		if err := target.WriteTo(rep, format); err != nil {
			return err
		}

		log.Debug().Str("output", cfg.Output).Int("records", len(rep.Records)).Msg("report written")

		return nil
	}
}
