// Package fetch is the default HTTP implementation of the fetch collaborator.
// Cancellation and timeouts live here, plumbed through the request context.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	archiver "github.com/videotools/arte-archiver"
)

const defaultUserAgent = "arte-archiver/1.0"

type HTTP struct {
	Client    *http.Client
	UserAgent string
}

func NewHTTP() *HTTP {
	return &HTTP{
		Client:    &http.Client{Timeout: 30 * time.Second},
		UserAgent: defaultUserAgent,
	}
}

func (f *HTTP) FetchJSON(ctx context.Context, url string, id string, v any) error {
	body, err := f.get(ctx, url, id, "application/json")
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", url, err)
	}
	return nil
}

func (f *HTTP) FetchPage(ctx context.Context, url string, id string) (string, error) {
	body, err := f.get(ctx, url, id, "")
	if err != nil {
		return "", err
	}
	defer body.Close()
	page, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", url, err)
	}
	return string(page), nil
}

func (f *HTTP) get(ctx context.Context, url string, id string, accept string) (io.ReadCloser, error) {
	archiver.Logger(ctx).Sugar().Named("fetch").Debugw("fetching", "url", url, "id", id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.UserAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch failed: %s returned %s", url, resp.Status)
	}
	return resp.Body, nil
}
