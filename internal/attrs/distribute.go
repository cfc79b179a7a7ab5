package attrs

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
)

// DistributeOptions configures how file attributes are computed in parallel.
type DistributeOptions struct {
	// Workers bounds the number of concurrent computations. 0 or 1 runs sequentially.
	Workers int
	// Tolerant records per-file failures and continues instead of aborting.
	Tolerant bool
	// Logger receives tolerated failures. Nil disables logging.
	Logger *zerolog.Logger
}

// Distribute computes a record for every entry and returns them indexed by
// enumeration position, regardless of worker count or completion order.
//
// In the default strict mode the first failing file, by enumeration position,
// aborts the run. In tolerant mode failed files keep empty fields and their
// errors are returned alongside the records.
func Distribute(
	ctx context.Context,
	entries []Entry,
	computer *Computer,
	opt DistributeOptions,
) ([]Record, []*AttributeComputeError, error) {
	return distribute(ctx, entries, computer, opt, nil)
}

//nolint:gocognit // Sequential and pooled paths share the same work function
func distribute(
	ctx context.Context,
	entries []Entry,
	computer *Computer,
	opt DistributeOptions,
	prog *progress,
) ([]Record, []*AttributeComputeError, error) {
	log := zerolog.Nop()
	if opt.Logger != nil {
		log = *opt.Logger
	}

	records := make([]Record, len(entries))
	failures := make([]*AttributeComputeError, len(entries))

	// Each call writes only its own slot, so no locking is needed.
	work := func(ctx context.Context, i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec, err := computer.Compute(entries[i])
		records[i] = rec

		if err != nil {
			var cerr *AttributeComputeError
			if !errors.As(err, &cerr) {
				cerr = &AttributeComputeError{Path: entries[i].Path, Err: err}
			}

			failures[i] = cerr

			if !opt.Tolerant {
				return cerr
			}

			log.Warn().Str("path", cerr.Path).Err(cerr.Err).Msg("skipping unreadable file")

			return nil
		}

		prog.record(rec)

		return nil
	}

	for i, entry := range entries {
		if entry.IsDir() {
			records[i] = Record{Path: entry.Path}
		}
	}

	if opt.Workers <= 1 {
		log.Debug().Int("entries", len(entries)).Msg("computing attributes sequentially")

		for i, entry := range entries {
			if entry.IsDir() {
				continue
			}

			if err := work(ctx, i); err != nil {
				break
			}
		}
	} else {
		log.Debug().Int("entries", len(entries)).Int("workers", opt.Workers).Msg("computing attributes in parallel")

		p := pool.New().WithMaxGoroutines(opt.Workers).WithContext(ctx).WithCancelOnError()

		for i, entry := range entries {
			if entry.IsDir() {
				continue
			}

			p.Go(func(ctx context.Context) error {
				return work(ctx, i)
			})
		}

		// Errors are read back from their slots in enumeration order below.
		_ = p.Wait()
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrCancelled, err)
	}

	var failed []*AttributeComputeError

	for _, f := range failures {
		if f != nil {
			failed = append(failed, f)
		}
	}

	if len(failed) > 0 && !opt.Tolerant {
		return nil, nil, failed[0]
	}

	return records, failed, nil
}
