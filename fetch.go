package arte_archiver

import (
	"context"
)

// Fetcher is the external collaborator that owns all network I/O. The core
// only decides what to fetch and how to interpret the result; cancellation,
// timeouts and retries belong to the Fetcher.
type Fetcher interface {
	// FetchJSON gets the document at url and decodes it into v. The id is the
	// video or playlist identifier the fetch is on behalf of, for logging.
	FetchJSON(ctx context.Context, url string, id string, v any) error
	// FetchPage gets the raw page text at url.
	FetchPage(ctx context.Context, url string, id string) (string, error)
}
