package cli

import (
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/idelchi/fileattrs/internal/attrs"
	"github.com/idelchi/fileattrs/internal/config"
)

func newTreeCommand() *cobra.Command {
	var (
		sizes      bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "tree [path]",
		Short: "Print the directory tree in report order",
		Long: heredoc.Doc(`
			Print the directory tree in the same order as the report rows:
			each directory, then its files, then its sub-directories, sorted by name.

			Workers and debug output follow the same config file and FILEATTRS_*
			variables as the report. To list the attributes of a directory named
			'tree', write it as './tree'.
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags(), configPath)
			if err != nil {
				return err
			}

			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			log := newLogger(cmd.ErrOrStderr(), cfg.Debug)

			options := attrs.Options{
				Root:      root,
				Workers:   cfg.Workers,
				PathStyle: attrs.PathRelative,
				Logger:    &log,
			}

			if sizes {
				options.Attributes = []attrs.Attribute{attrs.AttributeSize}
			}

			rep, err := attrs.Run(cmd.Context(), options, nil)
			if err != nil {
				return err
			}

			return PrintTree(rep, filepath.Base(filepath.Clean(root)), cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&sizes, "sizes", false, "Show file and directory sizes")
	flags.IntP("workers", "p", attrs.DefaultWorkers(), "Files processed in parallel (0 or 1 = sequential)")
	flags.Bool("debug", false, "Enable debug output")
	flags.StringVar(&configPath, "config", "", "Config file (default .fileattrs.yaml)")

	return cmd
}
