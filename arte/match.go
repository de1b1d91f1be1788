package arte

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	archiver "github.com/videotools/arte-archiver"
)

// matcher holds the compiled URL patterns for the four strategies. The
// language alternation is built from the configured language set, so an
// unsupported code never reaches a resolver.
type matcher struct {
	video    *regexp.Regexp
	config   *regexp.Regexp
	embed    *regexp.Regexp
	playlist *regexp.Regexp
	category *regexp.Regexp
}

func newMatcher(cfg Config) *matcher {
	langs := make([]string, 0, cfg.Languages.Count())
	for _, l := range cfg.Languages.ToSlice() {
		langs = append(langs, regexp.QuoteMeta(string(l)))
	}
	sort.Strings(langs)
	alt := strings.Join(langs, "|")
	return &matcher{
		video:    regexp.MustCompile(fmt.Sprintf(`^https?://(?:www\.)?arte\.tv/(%s)/videos/(\d{6}-\d{3}-[A-Z])(?:[/?#]|$)`, alt)),
		config:   regexp.MustCompile(fmt.Sprintf(`^https?://api\.arte\.tv/api/player/v\d+/config/(%s)/(\d{6}-\d{3}-[A-Z])(?:[/?#]|$)`, alt)),
		embed:    regexp.MustCompile(`^https?://(?:www\.)?arte\.tv/player/v\d+/index\.php\?.*\bjson_url=.+`),
		playlist: regexp.MustCompile(fmt.Sprintf(`^https?://(?:www\.)?arte\.tv/(%s)/videos/(RC-\d{6})(?:[/?#]|$)`, alt)),
		category: regexp.MustCompile(fmt.Sprintf(`^https?://(?:www\.)?arte\.tv/(%s)/videos/([\w-]+(?:/[\w-]+)*)/?$`, alt)),
	}
}

// matchVideo recognizes both the site video URL and the player config URL.
func (m *matcher) matchVideo(s string) (Language, string, bool) {
	for _, re := range []*regexp.Regexp{m.video, m.config} {
		if groups := re.FindStringSubmatch(s); groups != nil {
			return Language(groups[1]), groups[2], true
		}
	}
	return "", "", false
}

func (m *matcher) matchPlaylist(s string) (Language, string, bool) {
	if groups := m.playlist.FindStringSubmatch(s); groups != nil {
		return Language(groups[1]), groups[2], true
	}
	return "", "", false
}

func (m *matcher) matchCategory(s string) (Language, string, bool) {
	if groups := m.category.FindStringSubmatch(s); groups != nil {
		return Language(groups[1]), groups[2], true
	}
	return "", "", false
}

// VideoSuitable reports whether the URL structurally belongs to the Video
// strategy. Purely structural, no fetching.
func (c *Client) VideoSuitable(rawURL string) bool {
	_, _, ok := c.match.matchVideo(rawURL)
	return ok
}

// EmbedSuitable reports whether the URL is an embedded-player URL carrying a
// json_url query parameter.
func (c *Client) EmbedSuitable(rawURL string) bool {
	return c.match.embed.MatchString(rawURL)
}

// PlaylistSuitable reports whether the URL structurally belongs to the
// Playlist strategy.
func (c *Client) PlaylistSuitable(rawURL string) bool {
	_, _, ok := c.match.matchPlaylist(rawURL)
	return ok
}

// CategorySuitable reports whether the URL is a category page. A URL claimed
// by the Video or Playlist strategy is never a category; that guard is what
// lets the category crawler classify discovered links without re-entering
// itself.
func (c *Client) CategorySuitable(rawURL string) bool {
	if c.VideoSuitable(rawURL) || c.PlaylistSuitable(rawURL) {
		return false
	}
	_, _, ok := c.match.matchCategory(rawURL)
	return ok
}

// Classify returns the strategy claiming the URL, querying the strategies
// most specific first: Video, Embed, Playlist, Category.
func (c *Client) Classify(rawURL string) (archiver.Strategy, bool) {
	switch {
	case c.VideoSuitable(rawURL):
		return archiver.StrategyVideo, true
	case c.EmbedSuitable(rawURL):
		return archiver.StrategyEmbed, true
	case c.PlaylistSuitable(rawURL):
		return archiver.StrategyPlaylist, true
	case c.CategorySuitable(rawURL):
		return archiver.StrategyCategory, true
	}
	return "", false
}

// Providers returns the client's four strategies as registry providers in
// fixed priority order, the category catch-all last.
func (c *Client) Providers() []archiver.Provider {
	return []archiver.Provider{
		{Name: "arte:video", Match: c.matchVideoSource, Priority: archiver.PriorityDefault},
		{Name: "arte:embed", Match: c.matchEmbedSource, Priority: archiver.PriorityDefault + 10},
		{Name: "arte:playlist", Match: c.matchPlaylistSource, Priority: archiver.PriorityDefault + 20},
		{Name: "arte:category", Match: c.matchCategorySource, Priority: archiver.PriorityLowest},
	}
}

func (c *Client) matchVideoSource(rawURL string) (archiver.Source, error) {
	lang, id, ok := c.match.matchVideo(rawURL)
	if !ok {
		return nil, fmt.Errorf("not an arte video url")
	}
	return &videoSource{client: c, url: rawURL, lang: lang, id: id}, nil
}

func (c *Client) matchEmbedSource(rawURL string) (archiver.Source, error) {
	if !c.EmbedSuitable(rawURL) {
		return nil, fmt.Errorf("not an arte player embed url")
	}
	return &embedSource{client: c, url: rawURL}, nil
}

func (c *Client) matchPlaylistSource(rawURL string) (archiver.Source, error) {
	lang, id, ok := c.match.matchPlaylist(rawURL)
	if !ok {
		return nil, fmt.Errorf("not an arte playlist url")
	}
	return &playlistSource{client: c, url: rawURL, lang: lang, id: id}, nil
}

func (c *Client) matchCategorySource(rawURL string) (archiver.Source, error) {
	if !c.CategorySuitable(rawURL) {
		return nil, fmt.Errorf("not an arte category url")
	}
	return &categorySource{client: c, url: rawURL}, nil
}

type videoSource struct {
	client *Client
	url    string
	lang   Language
	id     string
}

func (s *videoSource) URL() string                 { return s.url }
func (s *videoSource) String() string              { return s.url }
func (s *videoSource) Strategy() archiver.Strategy { return archiver.StrategyVideo }

func (s *videoSource) Recon(ctx context.Context) (archiver.Resolved, error) {
	return s.client.ResolveVideo(ctx, s.lang, s.id)
}

type embedSource struct {
	client *Client
	url    string
}

func (s *embedSource) URL() string                 { return s.url }
func (s *embedSource) String() string              { return s.url }
func (s *embedSource) Strategy() archiver.Strategy { return archiver.StrategyEmbed }

func (s *embedSource) Recon(ctx context.Context) (archiver.Resolved, error) {
	return s.client.ResolveEmbed(ctx, s.url)
}

type playlistSource struct {
	client *Client
	url    string
	lang   Language
	id     string
}

func (s *playlistSource) URL() string                 { return s.url }
func (s *playlistSource) String() string              { return s.url }
func (s *playlistSource) Strategy() archiver.Strategy { return archiver.StrategyPlaylist }

func (s *playlistSource) Recon(ctx context.Context) (archiver.Resolved, error) {
	return s.client.ResolveCollection(ctx, s.lang, s.id)
}

type categorySource struct {
	client *Client
	url    string
}

func (s *categorySource) URL() string                 { return s.url }
func (s *categorySource) String() string              { return s.url }
func (s *categorySource) Strategy() archiver.Strategy { return archiver.StrategyCategory }

func (s *categorySource) Recon(ctx context.Context) (archiver.Resolved, error) {
	result, err := s.client.CrawlCategory(ctx, s.url)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, archiver.ErrNoResult
	}
	return result, nil
}
