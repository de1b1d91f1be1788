// Package batch eagerly expands a collection's lazy entries into full video
// records. Fetches may run concurrently, but results are emitted in the
// collection's source order regardless of completion order.
package batch

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	archiver "github.com/videotools/arte-archiver"
	"github.com/videotools/arte-archiver/arte"
)

// VideoResolver resolves a single entry target. *arte.Client implements it.
type VideoResolver interface {
	ResolveVideoURL(ctx context.Context, rawURL string) (*arte.VideoRecord, error)
}

// Entry pairs a collection entry with its resolution outcome. Exactly one of
// Record and Err is set.
type Entry struct {
	Entry  arte.PlaylistEntry
	Record *arte.VideoRecord
	Err    error
}

type Expander struct {
	Resolver VideoResolver
	// Concurrency bounds in-flight fetches; values below 1 mean sequential.
	Concurrency int
	// Progress, if set, is called after each entry completes with the number
	// of completed entries and the total.
	Progress func(done int, total int)
}

// Expand resolves every entry of the collection. A failed entry is reported
// in its slot and never aborts its siblings; the returned slice always has
// one element per input entry, in input order.
func (e *Expander) Expand(ctx context.Context, collection *arte.CollectionResult) []Entry {
	total := len(collection.Entries)
	log := archiver.Logger(ctx).Sugar().Named("expand").
		With("run_id", uuid.NewString(), "collection_id", collection.ID)
	log.Debugw("expanding collection", "entries", total)

	concurrency := e.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	tokens := make(chan struct{}, concurrency)
	results := make([]Entry, total)
	var done int32

	var g errgroup.Group
	for i, entry := range collection.Entries {
		i, entry := i, entry
		g.Go(func() error {
			tokens <- struct{}{}
			defer func() { <-tokens }()
			record, err := e.Resolver.ResolveVideoURL(ctx, entry.TargetURL)
			results[i] = Entry{Entry: entry, Record: record, Err: err}
			if err != nil {
				log.Warnw("entry resolution failed", "index", i, "url", entry.TargetURL, "error", err)
			}
			if e.Progress != nil {
				e.Progress(int(atomic.AddInt32(&done, 1)), total)
			}
			// Per-entry failures are recorded, never propagated: a bad entry
			// must not cancel its siblings.
			return nil
		})
	}
	_ = g.Wait()
	return results
}
