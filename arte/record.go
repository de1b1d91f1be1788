package arte

import (
	"time"

	archiver "github.com/videotools/arte-archiver"
)

// A FormatDescriptor is one playable stream of a video, ranked by quality.
// Descriptors are immutable once built.
type FormatDescriptor struct {
	QualityCode  string
	QualityLabel string
	StreamURL    string
	// Note is the "CODE, label" annotation for display.
	Note string
	// Rank is the index of QualityCode in the configured quality order, or
	// Unranked for codes outside it.
	Rank int
	// Reserved fields, populated only under Config.ExtendedFormats.
	Width     int
	Height    int
	Bitrate   int
	MediaType string
}

// A VideoRecord is the canonical resolved form of a single video. It is
// created fresh per resolution call, never mutated afterwards, and owned
// solely by the caller.
type VideoRecord struct {
	ID           string
	Title        string
	Description  string
	UploadDate   time.Time
	ThumbnailURL string
	Formats      []FormatDescriptor
}

func (r *VideoRecord) Kind() archiver.Strategy {
	return archiver.StrategyVideo
}

// A PlaylistEntry is a pointer to a video, not a resolved record: resolution
// is deferred to whoever later visits TargetURL through the video resolver.
type PlaylistEntry struct {
	TargetURL string
	ID        string
	Title     string
	AltTitle  string
	Thumbnail string
	// Duration in seconds, 0 when unknown.
	Duration  int
	ViewCount int
}

// A CollectionResult is an ordered sequence of lazy entries in source-document
// order (page-appearance order for category crawls). Entries are not
// deduplicated.
type CollectionResult struct {
	ID          string
	Title       string
	Description string
	Entries     []PlaylistEntry
}

// Kind is StrategyPlaylist for every collection: category crawls produce
// playlist-shaped results too.
func (r *CollectionResult) Kind() archiver.Strategy {
	return archiver.StrategyPlaylist
}
