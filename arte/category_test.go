package arte

import (
	"context"
	"testing"

	assert_ "github.com/stretchr/testify/assert"
)

const categoryURL = "https://www.arte.tv/en/videos/politics-and-society/"

const categoryPage = `<!DOCTYPE html>
<html>
<head>
<title>Politics and society | ARTE in English</title>
<meta property="og:title" content="Politics and society"/>
<meta property="og:description" content="Investigative documentary series"/>
</head>
<body>
<a href="https://www.arte.tv/en/videos/politics-and-society/">All videos</a>
<a href="https://www.arte.tv/en/videos/088501-000-A/mexico-stealing-petrol-to-survive/">Mexico</a>
<a href="https://www.arte.tv/en/videos/RC-016954/earn-a-living/">Earn a Living</a>
<a href="https://www.arte.tv/en/videos/politics-and-society/documentaries-and-reportage/">Nested category</a>
<a href="https://www.arte.tv/de/videos/100605-013-A/other-language/">Wrong language</a>
<a href="https://www.arte.tv/en/videos/088501-000-A/mexico-stealing-petrol-to-survive/">Mexico again</a>
</body>
</html>`

func TestCrawlCategory(t *testing.T) {
	assert := assert_.New(t)

	fetcher := &fakeFetcher{pages: map[string]string{categoryURL: categoryPage}}
	client := newTestClient(fetcher)

	result, err := client.CrawlCategory(context.Background(), categoryURL)
	assert.NoError(err)
	assert.NotNil(result)
	assert.Equal("politics-and-society", result.ID)
	assert.Equal("Politics and society", result.Title)
	assert.Equal("Investigative documentary series", result.Description)

	targets := make([]string, 0, len(result.Entries))
	for _, e := range result.Entries {
		targets = append(targets, e.TargetURL)
	}
	// Page-appearance order, no deduplication. The page's own URL, the
	// nested category and the other-language link are all excluded.
	assert.Equal([]string{
		"https://www.arte.tv/en/videos/088501-000-A/mexico-stealing-petrol-to-survive/",
		"https://www.arte.tv/en/videos/RC-016954/earn-a-living/",
		"https://www.arte.tv/en/videos/088501-000-A/mexico-stealing-petrol-to-survive/",
	}, targets)
}

func TestCrawlCategory_NoResult(t *testing.T) {
	assert := assert_.New(t)

	fetcher := &fakeFetcher{pages: map[string]string{
		categoryURL: `<html><head><title>Nothing here</title></head><body>
			<a href="https://www.arte.tv/en/videos/politics-and-society/">self</a>
			<a href="https://www.arte.tv/en/videos/another/category/">category only</a>
		</body></html>`,
	}}
	client := newTestClient(fetcher)

	result, err := client.CrawlCategory(context.Background(), categoryURL)
	assert.NoError(err)
	// No candidate links: no result, not an empty collection.
	assert.Nil(result)
}

func TestCrawlCategory_TitlePrecedence(t *testing.T) {
	assert := assert_.New(t)

	link := `<a href="https://www.arte.tv/en/videos/088501-000-A/x/">v</a>`

	fetcher := &fakeFetcher{pages: map[string]string{
		categoryURL: `<html><head><title> Politics and society | ARTE </title></head><body>` + link + `</body></html>`,
	}}
	result, err := newTestClient(fetcher).CrawlCategory(context.Background(), categoryURL)
	assert.NoError(err)
	// No og:title: the <title> element is used, split at the first pipe.
	assert.Equal("Politics and society", result.Title)
	// No og:description either: none is attached.
	assert.Equal("", result.Description)

	fetcher = &fakeFetcher{pages: map[string]string{
		categoryURL: `<html><body>` + link + `</body></html>`,
	}}
	result, err = newTestClient(fetcher).CrawlCategory(context.Background(), categoryURL)
	assert.NoError(err)
	// Neither og:title nor <title>: fall back to a title derived from the URL.
	assert.Equal("politics-and-society", result.Title)
}

func TestCrawlCategory_ContractViolation(t *testing.T) {
	assert := assert_.New(t)
	client := newTestClient(&fakeFetcher{})

	assert.Panics(func() {
		_, _ = client.CrawlCategory(context.Background(), "https://www.arte.tv/en/videos/088501-000-A/mexico/")
	})
	assert.Panics(func() {
		_, _ = client.CrawlCategory(context.Background(), "https://example.org/not-arte")
	})
}
