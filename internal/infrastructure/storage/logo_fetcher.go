package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxLogoBytes = 5 << 20

// HTTPLogoFetcher downloads remote images over plain HTTP(S).
type HTTPLogoFetcher struct {
	client *http.Client
}

func NewHTTPLogoFetcher(timeout time.Duration) *HTTPLogoFetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPLogoFetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch returns the image body, capped at 5 MiB, and its content type.
func (f *HTTPLogoFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("invalid logo url: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download logo: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", fmt.Errorf("failed to download logo: status %d", resp.StatusCode)
	}

	body := struct {
		io.Reader
		io.Closer
	}{io.LimitReader(resp.Body, maxLogoBytes), resp.Body}
	return body, resp.Header.Get("Content-Type"), nil
}
