package arte

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	archiver "github.com/videotools/arte-archiver"
)

var playlistIDPattern = regexp.MustCompile(`^RC-\d{6}$`)

type collectionDocument struct {
	Title            string             `json:"title"`
	ShortDescription string             `json:"shortDescription"`
	TeaserText       string             `json:"teaserText"`
	Videos           *[]json.RawMessage `json:"videos"`
}

type collectionVideo struct {
	ProgramID string `json:"programId"`
	URL       string `json:"url"`
	JSONURL   string `json:"jsonUrl"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	MainImage struct {
		URL string `json:"url"`
	} `json:"mainImage"`
	DurationSeconds any `json:"durationSeconds"`
	Views           any `json:"views"`
}

// ResolveCollection fetches the collection document and emits lazy entries in
// source-document order. Entries with no resolvable target and entries that
// fail to decode are skipped; a missing top-level videos list is a malformed
// response.
func (c *Client) ResolveCollection(ctx context.Context, lang Language, playlistID string) (*CollectionResult, error) {
	c.assertPlaylistInput(lang, playlistID)

	collectionURL := fmt.Sprintf("%s/collectionData/%s/%s?source=videos", c.config.APIBase, lang, playlistID)
	var doc collectionDocument
	if err := c.fetch.FetchJSON(ctx, collectionURL, playlistID, &doc); err != nil {
		return nil, err
	}
	if doc.Videos == nil {
		return nil, archiver.MalformedResponse("videos")
	}

	log := archiver.Logger(ctx).Sugar().Named("playlist").With("playlist_id", playlistID)
	entries := make([]PlaylistEntry, 0, len(*doc.Videos))
	for i, raw := range *doc.Videos {
		var v collectionVideo
		if err := json.Unmarshal(raw, &v); err != nil {
			log.Debugw("skipping malformed collection entry", "index", i, "error", err)
			continue
		}
		target := urlOrEmpty(v.URL)
		if target == "" {
			target = urlOrEmpty(v.JSONURL)
		}
		if target == "" {
			log.Debugw("skipping entry with no resolvable target", "index", i, "error", archiver.ErrUnresolvableEntry)
			continue
		}
		entries = append(entries, PlaylistEntry{
			TargetURL: target,
			ID:        v.ProgramID,
			Title:     v.Title,
			AltTitle:  v.Subtitle,
			Thumbnail: urlOrEmpty(v.MainImage.URL),
			Duration:  intOrZero(v.DurationSeconds),
			ViewCount: intOrZero(v.Views),
		})
	}

	description := doc.ShortDescription
	if description == "" {
		description = doc.TeaserText
	}
	return &CollectionResult{
		ID:          playlistID,
		Title:       doc.Title,
		Description: description,
		Entries:     entries,
	}, nil
}

func (c *Client) assertPlaylistInput(lang Language, playlistID string) {
	if !c.config.Languages.Contains(lang) {
		panic(fmt.Sprintf("arte: resolver contract violation: unsupported language %q", lang))
	}
	if !playlistIDPattern.MatchString(playlistID) {
		panic(fmt.Sprintf("arte: resolver contract violation: malformed playlist id %q", playlistID))
	}
}

// urlOrEmpty returns s only if it parses as an absolute http(s) URL.
func urlOrEmpty(s string) string {
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return s
}

// intOrZero coerces the JSON number or numeric string to an int, zeroing
// anything unparseable instead of failing the aggregation.
func intOrZero(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}
