package storage

import "testing"

func TestNewFetcher(t *testing.T) {
	t.Run("http backend", func(t *testing.T) {
		fetcher, err := NewFetcher(HTTPBackend, Credentials{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := fetcher.(*HTTPImageFetcher); !ok {
			t.Errorf("expected HTTP fetcher, got %T", fetcher)
		}
	})

	t.Run("azure backend", func(t *testing.T) {
		fetcher, err := NewFetcher(AzureBackend, Credentials{
			AzureAccountName: "leafstore",
			AzureAccountKey:  "c2VjcmV0a2V5",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := fetcher.(*AzureImageFetcher); !ok {
			t.Errorf("expected Azure fetcher, got %T", fetcher)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		if _, err := NewFetcher("ftp", Credentials{}); err == nil {
			t.Error("expected error for unknown backend")
		}
	})
}
