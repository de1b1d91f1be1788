package arte

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	archiver "github.com/videotools/arte-archiver"
	"github.com/videotools/arte-archiver/internal/htmlx"
)

// ResolveEmbed resolves an embedded-player URL by delegating to the video
// resolver on its json_url target. The result is identical to resolving the
// embedded video directly.
func (c *Client) ResolveEmbed(ctx context.Context, rawURL string) (*VideoRecord, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	jsonURL := u.Query().Get("json_url")
	if jsonURL == "" {
		return nil, fmt.Errorf("%w: embed url has no json_url parameter", archiver.ErrUnresolvableEntry)
	}
	record, err := c.ResolveVideoURL(ctx, jsonURL)
	if err != nil {
		return nil, fmt.Errorf("embed json_url %q: %w", jsonURL, err)
	}
	return record, nil
}

// ExtractEmbedURLs returns the embedded-player URLs referenced by iframe or
// script elements in the page, as written in the page (possibly
// protocol-relative).
func (c *Client) ExtractEmbedURLs(page string) []string {
	var urls []string
	for _, tag := range []string{"iframe", "script"} {
		for _, src := range htmlx.Attrs(page, tag, "src") {
			candidate := src
			if strings.HasPrefix(candidate, "//") {
				candidate = "https:" + candidate
			}
			if c.EmbedSuitable(candidate) {
				urls = append(urls, src)
			}
		}
	}
	return urls
}
