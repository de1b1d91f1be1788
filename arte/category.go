package arte

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	archiver "github.com/videotools/arte-archiver"
	"github.com/videotools/arte-archiver/internal/htmlx"
)

// CrawlCategory scans a category page for video and playlist links and
// composes them into a playlist-shaped result. Links are kept in
// page-appearance order without deduplication; the page's own URL is always
// excluded. Only links the Video or Playlist strategy would claim are kept,
// so nested category pages are never followed (one-level policy).
//
// A page yielding no candidate links is not a playlist page: the result is
// (nil, nil), which is distinct from an empty collection.
//
// Calling this with a URL the Video or Playlist strategy claims is a
// programming error and panics.
func (c *Client) CrawlCategory(ctx context.Context, pageURL string) (*CollectionResult, error) {
	if c.VideoSuitable(pageURL) || c.PlaylistSuitable(pageURL) {
		panic(fmt.Sprintf("arte: category crawl contract violation: %s belongs to another strategy", pageURL))
	}
	lang, categoryID, ok := c.match.matchCategory(pageURL)
	if !ok {
		panic(fmt.Sprintf("arte: category crawl contract violation: %s is not a category url", pageURL))
	}

	page, err := c.fetch.FetchPage(ctx, pageURL, categoryID)
	if err != nil {
		return nil, err
	}

	// Same-language links only, trimmed to the video-path shape the way the
	// page presents them.
	linkPattern := regexp.MustCompile(fmt.Sprintf(`^https?://www\.arte\.tv/%s/videos/[\w/-]+`, regexp.QuoteMeta(string(lang))))
	var items []string
	for _, href := range htmlx.Links(page) {
		link := linkPattern.FindString(href)
		if link == "" {
			continue
		}
		if link == pageURL {
			// Self-reference exclusion.
			continue
		}
		if c.VideoSuitable(link) || c.PlaylistSuitable(link) {
			items = append(items, link)
		}
	}
	if len(items) == 0 {
		archiver.Logger(ctx).Sugar().Named("category").
			Debugw("no candidate links found", "url", pageURL)
		return nil, nil
	}

	title := htmlx.MetaProperty(page, "og:title")
	if title == "" {
		if t := htmlx.Title(page); t != "" {
			title = strings.TrimSpace(strings.SplitN(t, "|", 2)[0])
		}
	}
	if title == "" {
		title = genericTitle(pageURL)
	}

	entries := make([]PlaylistEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, PlaylistEntry{TargetURL: item})
	}
	result := &CollectionResult{
		ID:      categoryID,
		Title:   title,
		Entries: entries,
	}
	if description := htmlx.MetaProperty(page, "og:description"); description != "" {
		result.Description = description
	}
	return result, nil
}

// genericTitle derives a last-resort title from the URL's final path segment.
func genericTitle(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	return segments[len(segments)-1]
}
