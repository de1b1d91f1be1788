package arte

import (
	"fmt"
	"sort"
)

// Unranked marks a quality code outside the configured order: no known
// preference.
const Unranked = -1

// stream is a raw stream entry from the player config document.
type stream struct {
	URL         string `json:"url"`
	MainQuality struct {
		Code  string `json:"code"`
		Label string `json:"label"`
	} `json:"mainQuality"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Bitrate   int    `json:"bitrate"`
	MediaType string `json:"mediaType"`
}

// buildFormats turns raw stream entries into ranked descriptors. Entries with
// the same quality code are all preserved, in input order.
func (c *Client) buildFormats(streams []stream) []FormatDescriptor {
	formats := make([]FormatDescriptor, 0, len(streams))
	for _, s := range streams {
		f := FormatDescriptor{
			QualityCode:  s.MainQuality.Code,
			QualityLabel: s.MainQuality.Label,
			StreamURL:    s.URL,
			Note:         fmt.Sprintf("%s, %s", s.MainQuality.Code, s.MainQuality.Label),
			Rank:         rankOf(c.config.QualityOrder, s.MainQuality.Code),
		}
		if c.config.ExtendedFormats {
			f.Width = s.Width
			f.Height = s.Height
			f.Bitrate = s.Bitrate
			f.MediaType = s.MediaType
		}
		formats = append(formats, f)
	}
	sortFormats(formats)
	return formats
}

// sortFormats orders ascending by rank. The sort is stable: unranked entries
// sort before all ranked ones and keep their input order among themselves,
// and equal ranks keep input order.
func sortFormats(formats []FormatDescriptor) {
	sort.SliceStable(formats, func(i, j int) bool {
		return formats[i].Rank < formats[j].Rank
	})
}

func rankOf(order []string, code string) int {
	for i, known := range order {
		if known == code {
			return i
		}
	}
	return Unranked
}
