package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/idelchi/fileattrs/internal/attrs"
)

// Format names a serialization format.
type Format string

const (
	// CSV writes a header row and one row per record.
	CSV Format = "csv"
	// JSON writes the whole report as an indented JSON document.
	JSON Format = "json"
	// YAML writes the whole report as a YAML document.
	YAML Format = "yaml"
)

// Formats lists the file formats a Writer understands.
//
//nolint:gochecknoglobals // Config constant
var Formats = []Format{CSV, JSON, YAML}

// ParseFormat resolves a format name. An empty name selects CSV.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return CSV, nil
	}

	f := Format(strings.ToLower(name))
	if !slices.Contains(Formats, f) {
		return "", fmt.Errorf("invalid format %q: must be one of %v", name, Formats)
	}

	return f, nil
}

// Write serializes report to w in the given format.
func Write(w io.Writer, report *attrs.Report, format Format) error {
	switch format {
	case CSV, "":
		return WriteCSV(w, report)
	case JSON:
		return WriteJSON(w, report)
	case YAML:
		return WriteYAML(w, report)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// WriteCSV writes the header row followed by one row per record.
// Missing values are written as empty fields.
func WriteCSV(w io.Writer, report *attrs.Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(report.Columns()); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for i := range report.Records {
		if err := cw.Write(report.Row(i)); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i+1, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV output: %w", err)
	}

	return nil
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, report *attrs.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return err
	}

	return nil
}

// WriteYAML writes the report as a YAML document.
func WriteYAML(w io.Writer, report *attrs.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encoding YAML output: %w", err)
	}

	return enc.Close()
}
