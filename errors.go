package arte_archiver

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedResponse means a required structural field was missing from
	// a fetched document. It is non-recoverable for that single resolution and
	// usually indicates an upstream API contract change.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrUnresolvableEntry means a playlist or category entry had no
	// derivable target. Such entries are skipped, never escalated.
	ErrUnresolvableEntry = errors.New("entry has no resolvable target")
	// ErrNoResult means a crawl found nothing to claim: the page is not a
	// playlist page, which is distinct from an empty collection.
	ErrNoResult = errors.New("no result")
)

// MalformedResponse wraps ErrMalformedResponse with the missing field path.
func MalformedResponse(field string) error {
	return fmt.Errorf("%w: missing %s", ErrMalformedResponse, field)
}
