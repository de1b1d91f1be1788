package arte

import (
	"testing"

	assert_ "github.com/stretchr/testify/assert"
)

func makeStream(code string, label string, url string) stream {
	s := stream{URL: url}
	s.MainQuality.Code = code
	s.MainQuality.Label = label
	return s
}

func TestBuildFormats_Ordering(t *testing.T) {
	assert := assert_.New(t)
	client := newTestClient(&fakeFetcher{})

	formats := client.buildFormats([]stream{
		makeStream("SQ", "1080p", "https://example.org/sq"),
		makeStream("XQ", "mystery", "https://example.org/xq"),
		makeStream("MQ", "406p", "https://example.org/mq1"),
		makeStream("HQ", "720p", "https://example.org/hq"),
		makeStream("MQ", "406p", "https://example.org/mq2"),
		makeStream("EQ", "540p", "https://example.org/eq"),
	})

	codes := make([]string, 0, len(formats))
	for _, f := range formats {
		codes = append(codes, f.QualityCode)
	}
	// Ascending MQ < HQ < EQ < SQ; the unranked XQ sorts first; the duplicate
	// MQ entries keep their input order.
	assert.Equal([]string{"XQ", "MQ", "MQ", "HQ", "EQ", "SQ"}, codes)
	assert.Equal(Unranked, formats[0].Rank)
	assert.Equal("https://example.org/mq1", formats[1].StreamURL)
	assert.Equal("https://example.org/mq2", formats[2].StreamURL)
	assert.Equal("MQ, 406p", formats[1].Note)
}

func TestBuildFormats_UnrankedNeverReordersRanked(t *testing.T) {
	assert := assert_.New(t)
	client := newTestClient(&fakeFetcher{})

	with := client.buildFormats([]stream{
		makeStream("HQ", "720p", "https://example.org/hq"),
		makeStream("??", "odd", "https://example.org/odd"),
		makeStream("MQ", "406p", "https://example.org/mq"),
	})
	without := client.buildFormats([]stream{
		makeStream("HQ", "720p", "https://example.org/hq"),
		makeStream("MQ", "406p", "https://example.org/mq"),
	})

	ranked := func(formats []FormatDescriptor) []string {
		var codes []string
		for _, f := range formats {
			if f.Rank != Unranked {
				codes = append(codes, f.QualityCode)
			}
		}
		return codes
	}
	assert.Equal(ranked(without), ranked(with))
}

func TestBuildFormats_ExtendedFormats(t *testing.T) {
	assert := assert_.New(t)

	raw := stream{URL: "https://example.org/hq", Width: 1280, Height: 720, Bitrate: 2200, MediaType: "mp4"}
	raw.MainQuality.Code = "HQ"
	raw.MainQuality.Label = "720p"

	plain := newTestClient(&fakeFetcher{}).buildFormats([]stream{raw})
	assert.Zero(plain[0].Width)
	assert.Zero(plain[0].Bitrate)
	assert.Empty(plain[0].MediaType)

	config := NewConfig()
	config.ExtendedFormats = true
	extended := NewClient(config, &fakeFetcher{}).buildFormats([]stream{raw})
	assert.Equal(1280, extended[0].Width)
	assert.Equal(720, extended[0].Height)
	assert.Equal(2200, extended[0].Bitrate)
	assert.Equal("mp4", extended[0].MediaType)
	// Ranking is unaffected by the reserved fields.
	assert.Equal(plain[0].Rank, extended[0].Rank)
}
