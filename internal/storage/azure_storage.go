package storage

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// AzureImageFetcher fetches leaf photographs from Azure Blob Storage, for
// deployments where field captures are synced to a container. Blob URLs use
// the form https://host/container?blob=name.
type AzureImageFetcher struct {
	client *azblob.Client
}

// NewAzureImageFetcher creates a fetcher authenticated with a shared key.
func NewAzureImageFetcher(accountName, accountKey string) (ImageFetcher, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, err
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &AzureImageFetcher{client: client}, nil
}

// FetchImage downloads and decodes the blob referenced by blobURL.
func (s *AzureImageFetcher) FetchImage(ctx context.Context, blobURL string) (image.Image, error) {
	parsedURL, err := url.Parse(blobURL)
	if err != nil {
		return nil, fmt.Errorf("invalid blob URL: %w", err)
	}
	if len(parsedURL.Path) < 2 {
		return nil, fmt.Errorf("blob URL missing container: %s", blobURL)
	}

	containerName := parsedURL.Path[1:]
	blobName := parsedURL.Query().Get("blob")
	if blobName == "" {
		return nil, fmt.Errorf("blob URL missing blob parameter: %s", blobURL)
	}

	downloadResponse, err := s.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	retryReader := downloadResponse.Body
	defer retryReader.Close()

	img, _, err := image.Decode(retryReader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode blob image: %w", err)
	}
	return img, nil
}
