package attrs

import (
	"context"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options configures a single attribute collection run.
type Options struct {
	// Root is the directory to walk.
	Root string
	// Attributes lists what to compute. Empty yields path-only records.
	Attributes []Attribute
	// Algorithm selects the hash digest.
	Algorithm Algorithm
	// Workers bounds parallel file processing (0 or 1 = sequential).
	Workers int
	// PathStyle controls how paths are written to records.
	PathStyle PathStyle
	// Tolerant keeps going past unreadable files.
	Tolerant bool
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Logger receives debug and warning output. Nil disables logging.
	Logger *zerolog.Logger
}

// DefaultWorkers returns the worker count used when none is configured.
func DefaultWorkers() int {
	return runtime.NumCPU()
}

// Report is the outcome of one run.
type Report struct {
	// RunID identifies the run in logs. It is never serialized, so
	// reports of the same tree are byte-identical.
	RunID string `json:"-" yaml:"-"`
	// Root is the walked directory as given.
	Root string `json:"root" yaml:"root"`
	// Attributes lists the computed attributes in column order.
	Attributes []Attribute `json:"attributes" yaml:"attributes"`
	// Algorithm is the digest used for hashes.
	Algorithm Algorithm `json:"algorithm" yaml:"algorithm"`
	// Records holds one record per entry in enumeration order.
	Records []Record `json:"records" yaml:"records"`
	// Failures lists files tolerated as unreadable.
	Failures []*AttributeComputeError `json:"-" yaml:"-"`
	// Files is the number of file records.
	Files int `json:"files" yaml:"files"`
	// Directories is the number of directory records.
	Directories int `json:"directories" yaml:"directories"`
	// TotalBytes is the root directory's size, when known.
	TotalBytes uint64 `json:"total_bytes" yaml:"total_bytes"`
	// Elapsed is the total time taken.
	Elapsed time.Duration `json:"-" yaml:"-"`
}

// Run enumerates opt.Root, computes the requested attributes for every
// entry, and rolls directory sizes up from their children.
//
// The run can be cancelled via ctx, in which case it returns ErrCancelled.
// Progress updates are sent to progressHook if provided.
func Run(ctx context.Context, opt Options, progressHook func(int64, int64)) (*Report, error) {
	if opt.Root == "" {
		opt.Root = "."
	}

	opt.Root = filepath.Clean(opt.Root)

	if opt.Algorithm == "" {
		opt.Algorithm = DefaultAlgorithm
	}

	runID := uuid.NewString()

	log := zerolog.Nop()
	if opt.Logger != nil {
		log = opt.Logger.With().Str("run", runID).Logger()
	}

	log.Debug().
		Str("root", opt.Root).
		Interface("attributes", opt.Attributes).
		Str("algorithm", string(opt.Algorithm)).
		Int("workers", opt.Workers).
		Str("path_style", string(opt.PathStyle)).
		Bool("tolerant", opt.Tolerant).
		Msg("starting run")

	start := time.Now()

	entries, err := Enumerate(ctx, opt.Root)
	if err != nil {
		return nil, err
	}

	log.Debug().Int("entries", len(entries)).Dur("took", time.Since(start)).Msg("enumerated tree")

	// Create child context to ensure progress reporter cleanup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog := &progress{}
	startProgressReporter(ctx, prog, progressHook, opt.ProgressInterval)

	computer := NewComputer(opt.Attributes, opt.Algorithm)

	records, failures, err := distribute(ctx, entries, computer, DistributeOptions{
		Workers:  opt.Workers,
		Tolerant: opt.Tolerant,
		Logger:   &log,
	}, prog)
	if err != nil {
		return nil, err
	}

	if wants(opt.Attributes, AttributeSize) {
		Aggregate(records)
	}

	report := &Report{
		RunID:      runID,
		Root:       opt.Root,
		Attributes: opt.Attributes,
		Algorithm:  opt.Algorithm,
		Records:    records,
		Failures:   failures,
	}

	for _, entry := range entries {
		if entry.IsDir() {
			report.Directories++
		} else {
			report.Files++
		}
	}

	if len(records) > 0 && records[0].Size != nil {
		report.TotalBytes = *records[0].Size
	}

	if err := restyle(records, opt.Root, opt.PathStyle); err != nil {
		return nil, err
	}

	report.Elapsed = time.Since(start)

	log.Debug().
		Int("files", report.Files).
		Int("directories", report.Directories).
		Int("failures", len(failures)).
		Dur("elapsed", report.Elapsed).
		Msg("run finished")

	return report, nil
}

// Columns returns the report's column names: path first, then one per
// attribute, the hash column named after its algorithm.
func (r *Report) Columns() []string {
	cols := make([]string, 0, len(r.Attributes)+1)
	cols = append(cols, "path")

	for _, attr := range r.Attributes {
		if attr == AttributeHash {
			cols = append(cols, string(r.Algorithm))

			continue
		}

		cols = append(cols, string(attr))
	}

	return cols
}

// Row returns the string fields of record i in column order.
// Missing values are empty strings.
func (r *Report) Row(i int) []string {
	rec := r.Records[i]

	row := make([]string, 0, len(r.Attributes)+1)
	row = append(row, rec.Path)

	for _, attr := range r.Attributes {
		switch attr {
		case AttributeSize:
			if rec.Size == nil {
				row = append(row, "")
			} else {
				row = append(row, strconv.FormatUint(*rec.Size, 10))
			}
		case AttributeHash:
			row = append(row, rec.Hash)
		}
	}

	return row
}
