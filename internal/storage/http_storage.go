package storage

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"time"
)

// ImageFetcher retrieves a leaf photograph from a URL.
type ImageFetcher interface {
	FetchImage(ctx context.Context, imageURL string) (image.Image, error)
}

// HTTPImageFetcher fetches photographs over plain HTTP(S) with bounded
// retries.
type HTTPImageFetcher struct {
	client *http.Client
}

// NewHTTPImageFetcher creates an HTTP image fetcher tuned for single-image
// downloads.
func NewHTTPImageFetcher() ImageFetcher {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		MaxResponseHeaderBytes: 4096,
	}

	return &HTTPImageFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
	}
}

// FetchImage downloads and decodes the image at imageURL. Transient errors
// and 5xx responses are retried up to 3 attempts with linear backoff; 4xx
// responses fail immediately.
func (h *HTTPImageFetcher) FetchImage(ctx context.Context, imageURL string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	req.Header.Set("Accept", "image/jpeg, image/png, image/gif, */*")
	req.Header.Set("User-Agent", "Go-Leaf-Inspector/1.0")

	var resp *http.Response
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		resp, err = h.client.Do(req)
		if err == nil && resp.StatusCode == http.StatusOK {
			break
		}

		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("unexpected status code %d", resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				lastErr = fmt.Errorf("client error: status code %d", resp.StatusCode)
			} else if resp.StatusCode >= 500 {
				lastErr = fmt.Errorf("server error: status code %d", resp.StatusCode)
			}
			resp.Body.Close()
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				resp = nil
				break
			}
		}
		resp = nil

		if attempt < 2 {
			time.Sleep(time.Duration(attempt+1) * time.Second)
		}
	}

	if resp == nil {
		return nil, fmt.Errorf("failed to fetch image after 3 attempts: %w", lastErr)
	}
	defer resp.Body.Close()

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
