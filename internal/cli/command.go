package cli

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/idelchi/fileattrs/internal/attrs"
	"github.com/idelchi/fileattrs/internal/config"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Execute runs the CLI until completion or interrupt.
func (c CLI) Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return fang.Execute(ctx, c.command(), fang.WithVersion(c.version))
}

func (c CLI) command() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "fileattrs [flags] [path]",
		Short: "List file attributes recursively",
		Long: heredoc.Doc(`
			fileattrs walks a directory and writes one row per file and directory:
			its path, its size and a content hash of files.

			Directory sizes are the sum of everything below them. Directory paths
			end with a path separator. Rows are ordered depth first: each directory,
			then its files, then its sub-directories, all sorted by name.

			The report is never overwritten. Use '-o -' to write to standard output.

			Every flag can also be set in .fileattrs.yaml or as FILEATTRS_<FLAG>,
			for example FILEATTRS_PATH_STYLE=relative.
		`),
		Example: heredoc.Doc(`
			fileattrs ~/Music -o music.csv
			fileattrs -a size -s relative -f table .
			fileattrs --algorithm blake2b-256 -p 1 -o - src
		`),
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags(), configPath)
			if err != nil {
				return err
			}

			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			return logic(cmd.Context(), cfg, root, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringSliceP("attributes", "a", []string{string(attrs.AttributeSize), string(attrs.AttributeHash)},
		"Attributes to compute: size, hash")
	flags.IntP("workers", "p", attrs.DefaultWorkers(), "Files processed in parallel (0 or 1 = sequential)")
	flags.String("algorithm", string(attrs.DefaultAlgorithm),
		"Hash algorithm: "+joinAlgorithms())
	flags.StringP("path-style", "s", string(attrs.PathAsWalked), "Path format: as-walked, absolute or relative")
	flags.StringP("output", "o", config.DefaultOutput, "Report file, '-' for standard output")
	flags.StringP("format", "f", "csv", "Report format: csv, json, yaml or table")
	flags.Bool("tolerant", false, "Leave fields of unreadable files empty instead of aborting")
	flags.Bool("debug", false, "Enable debug output")
	flags.StringVar(&configPath, "config", "", "Config file (default .fileattrs.yaml)")
	flags.SortFlags = false

	cmd.AddCommand(newTreeCommand())

	return cmd
}

func joinAlgorithms() string {
	names := make([]string, 0, len(attrs.Algorithms()))
	for _, a := range attrs.Algorithms() {
		names = append(names, string(a))
	}

	return strings.Join(names, ", ")
}
