package arte_archiver

import (
	"context"
)

// A Strategy is one of the URL-handling variants a Provider can claim a URL
// for.
type Strategy string

const (
	StrategyVideo    Strategy = "video"
	StrategyEmbed    Strategy = "embed"
	StrategyPlaylist Strategy = "playlist"
	StrategyCategory Strategy = "category"
)

// Resolved is the outcome of a successful Source.Recon: either a single video
// record or a playlist-shaped collection of lazy entries.
type Resolved interface {
	// Kind is the result family: StrategyVideo for a single record,
	// StrategyPlaylist for any collection, including one discovered by a
	// category crawl.
	Kind() Strategy
}

type Source interface {
	// URL should return the canonical URL for this source. It is assumed that the Provider.Match that created the
	// Source would successfully match this canonical URL.
	URL() string
	// Strategy reports which strategy claimed the URL.
	Strategy() Strategy
	// Recon should resolve the source into records, performing at most one fetch of its own. Entries of a resolved
	// collection stay lazy.
	Recon(ctx context.Context) (Resolved, error)
}
