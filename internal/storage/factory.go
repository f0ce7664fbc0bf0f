package storage

import "fmt"

// BackendType selects how leaf photographs are acquired.
type BackendType string

const (
	// HTTPBackend fetches over plain HTTP(S)
	HTTPBackend BackendType = "http"
	// AzureBackend fetches from Azure Blob Storage
	AzureBackend BackendType = "azure"
)

// Credentials carries backend-specific secrets.
type Credentials struct {
	AzureAccountName string
	AzureAccountKey  string
}

// NewFetcher creates the fetcher for the configured backend.
func NewFetcher(backend BackendType, creds Credentials) (ImageFetcher, error) {
	switch backend {
	case HTTPBackend:
		return NewHTTPImageFetcher(), nil
	case AzureBackend:
		return NewAzureImageFetcher(creds.AzureAccountName, creds.AzureAccountKey)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", backend)
	}
}
