package arte

import (
	"context"
	"fmt"
	"regexp"
	"time"

	archiver "github.com/videotools/arte-archiver"
)

var videoIDPattern = regexp.MustCompile(`^\d{6}-\d{3}-[A-Z]$`)

type configDocument struct {
	Data struct {
		Attributes *videoAttributes `json:"attributes"`
	} `json:"data"`
}

type videoAttributes struct {
	Rights *struct {
		Begin string `json:"begin"`
	} `json:"rights"`
	Metadata *videoMetadata `json:"metadata"`
	Streams  []stream       `json:"streams"`
}

type videoMetadata struct {
	ProviderID  string `json:"providerId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Images      []struct {
		URL string `json:"url"`
	} `json:"images"`
}

// rights.begin is ISO-8601 but not always offset-qualified.
var beginLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ResolveVideo fetches the video's player configuration and builds a fresh
// VideoRecord. Inputs must already have been validated by classification;
// passing an unsupported language or a malformed id is a contract violation.
// The only side effect is the single fetch, so identical inputs yield an
// equivalent record.
func (c *Client) ResolveVideo(ctx context.Context, lang Language, videoID string) (*VideoRecord, error) {
	c.assertVideoInput(lang, videoID)

	configURL := fmt.Sprintf("%s/config/%s/%s", c.config.APIBase, lang, videoID)
	var doc configDocument
	if err := c.fetch.FetchJSON(ctx, configURL, videoID, &doc); err != nil {
		return nil, err
	}

	attrs := doc.Data.Attributes
	if attrs == nil {
		return nil, archiver.MalformedResponse("data.attributes")
	}
	if attrs.Rights == nil || attrs.Rights.Begin == "" {
		return nil, archiver.MalformedResponse("data.attributes.rights.begin")
	}
	uploadDate, err := parseUploadDate(attrs.Rights.Begin)
	if err != nil {
		return nil, fmt.Errorf("%w: bad rights.begin %q", archiver.ErrMalformedResponse, attrs.Rights.Begin)
	}
	md := attrs.Metadata
	if md == nil {
		return nil, archiver.MalformedResponse("data.attributes.metadata")
	}

	record := &VideoRecord{
		ID:          videoID,
		Title:       md.Title,
		Description: md.Description,
		UploadDate:  uploadDate,
		Formats:     c.buildFormats(attrs.Streams),
	}
	if md.ProviderID != "" {
		record.ID = md.ProviderID
	}
	if len(md.Images) > 0 {
		record.ThumbnailURL = md.Images[0].URL
	}
	return record, nil
}

// ResolveVideoURL resolves a video or player-config URL directly. URLs the
// Video strategy would not claim are unresolvable entries.
func (c *Client) ResolveVideoURL(ctx context.Context, rawURL string) (*VideoRecord, error) {
	lang, id, ok := c.match.matchVideo(rawURL)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a video url", archiver.ErrUnresolvableEntry, rawURL)
	}
	return c.ResolveVideo(ctx, lang, id)
}

func (c *Client) assertVideoInput(lang Language, videoID string) {
	if !c.config.Languages.Contains(lang) {
		panic(fmt.Sprintf("arte: resolver contract violation: unsupported language %q", lang))
	}
	if !videoIDPattern.MatchString(videoID) {
		panic(fmt.Sprintf("arte: resolver contract violation: malformed video id %q", videoID))
	}
}

// parseUploadDate keeps only the calendar-date portion of the timestamp, in UTC.
func parseUploadDate(begin string) (time.Time, error) {
	var firstErr error
	for _, layout := range beginLayouts {
		t, err := time.Parse(layout, begin)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
