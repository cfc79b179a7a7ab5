package attrs

import (
	"context"
	"sync/atomic"
	"time"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// progress counts finished files and their bytes across workers.
type progress struct {
	files atomic.Int64
	bytes atomic.Int64
}

// record accounts for one finished file.
func (p *progress) record(rec Record) {
	if p == nil {
		return
	}

	p.files.Add(1)

	if rec.Size != nil {
		p.bytes.Add(int64(*rec.Size)) //nolint:gosec // Sizes originate from int64 stats
	}
}

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is done.
func startProgressReporter(ctx context.Context, p *progress, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(p.files.Load(), p.bytes.Load())
			case <-ctx.Done():
				return
			}
		}
	}()
}
