package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/fileattrs/internal/attrs"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
	// TreeIndent is the indentation per tree level.
	TreeIndent = "  "
)

// PrintTable outputs the report in human-readable table format.
func PrintTable(rep *attrs.Report, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintln(w, strings.ToUpper(strings.Join(rep.Columns(), "\t")))

	for i, rec := range rep.Records {
		row := rep.Row(i)

		// Humanize sizes in place of the raw byte counts.
		for j, attr := range rep.Attributes {
			if attr == attrs.AttributeSize && rec.Size != nil {
				row[j+1] = humanize.IBytes(*rec.Size)
			}
		}

		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Total files:\t%d\n", rep.Files)
	fmt.Fprintf(w, "Total directories:\t%d\n", rep.Directories)

	if len(rep.Records) > 0 && rep.Records[0].Size != nil {
		fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n", humanize.IBytes(rep.TotalBytes), rep.TotalBytes)
	}

	if n := len(rep.Failures); n > 0 {
		fmt.Fprintf(w, "Unreadable files:\t%d\n", n)
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\n", rep.Elapsed)

	return w.Flush()
}

// PrintTree prints records with relative paths as an indented tree.
// Directories are suffixed with '/', and sizes are appended when known.
func PrintTree(rep *attrs.Report, rootName string, writer io.Writer) error {
	for _, rec := range rep.Records {
		rel := filepath.Clean(rec.Path)

		depth := 0
		if rel != "." {
			depth = strings.Count(rel, string(filepath.Separator)) + 1
		}

		name := filepath.Base(rel)
		if depth == 0 {
			name = rootName
		}

		if rec.IsDir() && !strings.HasSuffix(name, string(filepath.Separator)) {
			name += "/"
		}

		line := strings.Repeat(TreeIndent, depth) + name
		if rec.Size != nil {
			line += " (" + humanize.IBytes(*rec.Size) + ")"
		}

		if _, err := fmt.Fprintln(writer, line); err != nil {
			return err
		}
	}

	return nil
}
