package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// servePNG writes a tiny valid PNG response.
func servePNG(t *testing.T, w http.ResponseWriter) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 60, G: 140, B: 70, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

func TestHTTPImageFetcher_RetryLogic(t *testing.T) {
	tests := []struct {
		name          string
		responses     []int // status codes returned in sequence, 200 serves a PNG
		expectedCalls int
		errorContains string // empty means success expected
	}{
		{"success on first attempt", []int{200}, 1, ""},
		{"retry after 5xx", []int{500, 200}, 2, ""},
		{"4xx fails immediately", []int{404}, 1, "client error: status code 404"},
		{"5xx then 4xx stops at the 4xx", []int{500, 404}, 2, "client error: status code 404"},
		{"all attempts exhausted on 5xx", []int{500, 502, 503}, 3, "server error: status code 503"},
		{"bad request fails immediately", []int{400}, 1, "client error: status code 400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				status := http.StatusInternalServerError
				if calls < len(tt.responses) {
					status = tt.responses[calls]
				}
				calls++
				if status == http.StatusOK {
					servePNG(t, w)
					return
				}
				w.WriteHeader(status)
				fmt.Fprintf(w, "error %d", status)
			}))
			defer server.Close()

			fetcher := NewHTTPImageFetcher()
			_, err := fetcher.FetchImage(context.Background(), server.URL)

			if calls != tt.expectedCalls {
				t.Errorf("expected %d requests, got %d", tt.expectedCalls, calls)
			}
			if tt.errorContains == "" {
				if err != nil {
					t.Errorf("expected success, got %v", err)
				}
			} else if err == nil || !strings.Contains(err.Error(), tt.errorContains) {
				t.Errorf("expected error containing %q, got %v", tt.errorContains, err)
			}
		})
	}
}

func TestHTTPImageFetcher_RetriesNetworkErrors(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			// drop the connection to simulate a network error
			if hj, ok := w.(http.Hijacker); ok {
				conn, _, _ := hj.Hijack()
				conn.Close()
			}
			return
		}
		servePNG(t, w)
	}))
	defer server.Close()

	fetcher := NewHTTPImageFetcher()
	start := time.Now()
	_, err := fetcher.FetchImage(context.Background(), server.URL)

	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 requests, got %d", calls)
	}
	// linear backoff: 1s after the first failure, 2s after the second
	if elapsed := time.Since(start); elapsed < 3*time.Second {
		t.Errorf("expected at least 3s of backoff, took %v", elapsed)
	}
}

func TestHTTPImageFetcher_UndecodableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("not a png"))
	}))
	defer server.Close()

	fetcher := NewHTTPImageFetcher()
	if _, err := fetcher.FetchImage(context.Background(), server.URL); err == nil {
		t.Error("expected decode error for a non-image body")
	}
}
