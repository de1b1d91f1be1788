package arte

import (
	"context"
	"encoding/json"
	"fmt"
)

// fakeFetcher serves canned payloads keyed by URL, standing in for the
// external fetch collaborator.
type fakeFetcher struct {
	json  map[string]string
	pages map[string]string
	calls []string
}

func (f *fakeFetcher) FetchJSON(_ context.Context, url string, _ string, v any) error {
	f.calls = append(f.calls, url)
	payload, ok := f.json[url]
	if !ok {
		return fmt.Errorf("unexpected fetch of %s", url)
	}
	return json.Unmarshal([]byte(payload), v)
}

func (f *fakeFetcher) FetchPage(_ context.Context, url string, _ string) (string, error) {
	f.calls = append(f.calls, url)
	page, ok := f.pages[url]
	if !ok {
		return "", fmt.Errorf("unexpected fetch of %s", url)
	}
	return page, nil
}

func newTestClient(f *fakeFetcher) *Client {
	return NewClient(NewConfig(), f)
}
