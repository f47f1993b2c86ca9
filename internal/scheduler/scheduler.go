// Package scheduler implements the Batch Scheduler (§4.10): a bounded
// worker pool that runs one task per discovered crash log, aggregating
// results into a shared ScanStatistics and reporting progress.
package scheduler

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/classic-scan/classic/internal/model"
)

// ProgressSink receives monotonically non-decreasing percentages in
// [0, 100] with a short operation label and the current item's label
// (§4.10 "Progress reporting").
type ProgressSink interface {
	Report(percent int, operation, currentItem string)
}

// NoopSink discards progress reports.
type NoopSink struct{}

func (NoopSink) Report(int, string, string) {}

// Task processes one crash log end to end (parse -> detect -> write). A
// non-nil error is recorded against path in stats and does not abort
// sibling tasks (§4.10 "Model").
type Task func(ctx context.Context, path string) error

// Run fans task out across min(runtime.GOMAXPROCS(0), len(paths)) worker
// slots (§4.10, the concurrency bound grounded on the same `jobs <= 0`
// fallback vovakirdan-surge's parallel driver uses). Cancellation is
// cooperative: each task checks ctx before starting its segment-pass, so an
// in-flight task finishes its current phase and queued tasks are simply
// never started (§5 "Suspension points").
func Run(ctx context.Context, paths []string, stats *model.ScanStatistics, sink ProgressSink, task Task) error {
	if sink == nil {
		sink = NoopSink{}
	}
	if len(paths) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(runtime.GOMAXPROCS(0), len(paths)))

	completed := newCounter()
	total := len(paths)

	for _, path := range paths {
		g.Go(func(path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				stats.AddScanned()
				if err := task(gctx, path); err != nil {
					stats.AddFailed(path)
				}

				done := completed.incr()
				sink.Report(done*100/total, "scan", path)
				return nil
			}
		}(path))
	}

	return g.Wait()
}
