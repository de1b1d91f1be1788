// Package arte resolves Arte.tv URLs into playable video records and
// playlist-shaped collections. It decides what to fetch and how to interpret
// the results; all network I/O happens in the Fetcher collaborator.
package arte

import (
	archiver "github.com/videotools/arte-archiver"
	"github.com/videotools/arte-archiver/fetch"
	"github.com/videotools/arte-archiver/generic"
)

const (
	DefaultAPIBase  = "https://api.arte.tv/api/player/v2"
	DefaultSiteBase = "https://www.arte.tv"
)

// Language is one of the site's supported language codes. Every URL pattern
// and API call carries exactly one of them; the URL patterns themselves keep
// unsupported codes away from the resolvers.
type Language string

const (
	French  Language = "fr"
	German  Language = "de"
	English Language = "en"
	Spanish Language = "es"
	Italian Language = "it"
	Polish  Language = "pl"
)

var displayCodes = map[Language]string{
	French:  "F",
	German:  "A",
	English: "E[ANG]",
	Spanish: "E[ESP]",
	Italian: "E[ITA]",
	Polish:  "E[POL]",
}

// DisplayCode is the site's version-label code for the language, used when
// annotating formats. Unknown languages fall back to the code itself.
func (l Language) DisplayCode() string {
	if code, ok := displayCodes[l]; ok {
		return code
	}
	return string(l)
}

// Config is the immutable configuration shared by all components. Build one
// with NewConfig and hand it to NewClient; it is captured at construction and
// never mutated.
type Config struct {
	APIBase   string
	SiteBase  string
	Languages generic.Set[Language]
	// QualityOrder is the ascending quality-code preference used for format
	// ranking.
	QualityOrder []string
	// ExtendedFormats also captures width/height/bitrate/media type on
	// formats when the API provides them. Off by default; ranking never reads
	// these fields.
	ExtendedFormats bool
}

func NewConfig() Config {
	return Config{
		APIBase:      DefaultAPIBase,
		SiteBase:     DefaultSiteBase,
		Languages:    generic.NewSet(French, German, English, Spanish, Italian, Polish),
		QualityOrder: []string{"MQ", "HQ", "EQ", "SQ"},
	}
}

// Client is the dispatch-and-resolution pipeline: URL classification, video
// resolution, playlist aggregation and category crawling over a single fetch
// collaborator. A Client is stateless between calls and safe for concurrent
// use as long as its Fetcher is.
type Client struct {
	config Config
	fetch  archiver.Fetcher
	match  *matcher
}

func NewClient(config Config, fetcher archiver.Fetcher) *Client {
	return &Client{
		config: config,
		fetch:  fetcher,
		match:  newMatcher(config),
	}
}

// Config returns the configuration captured at construction.
func (c *Client) Config() Config {
	return c.config
}

// DefaultClient uses the default configuration and HTTP fetcher. Its
// providers are registered with the default registry.
var DefaultClient = NewClient(NewConfig(), fetch.NewHTTP())

func init() {
	for _, p := range DefaultClient.Providers() {
		archiver.DefaultRegistry.MustAdd(p)
	}
}
