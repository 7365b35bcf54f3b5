package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ghibliart/server/internal/logger"
)

// bound on the generated-image download, independent of provider polling
const archiveFetchTimeout = 30 * time.Second

// Archiver re-hosts externally produced images in application-controlled
// storage. Archiving is best-effort: any failure falls back to the original
// external URL and never fails the overall request.
type Archiver struct {
	store      ObjectStore
	httpClient *http.Client
}

func NewArchiver(store ObjectStore) *Archiver {
	return &Archiver{
		store: store,
		httpClient: &http.Client{
			Timeout: archiveFetchTimeout,
		},
	}
}

// downloads the image at imageURL and re-uploads it to the object store,
// returning the stable application-hosted URL. On any failure the original
// URL is returned unchanged.
func (a *Archiver) Archive(ctx context.Context, imageURL string) string {
	stored, err := a.archive(ctx, imageURL)
	if err != nil {
		logger.ErrorErr(err, "failed to archive generated image, falling back to external URL",
			"image_url", imageURL,
		)

		return imageURL
	}

	return stored
}

func (a *Archiver) archive(ctx context.Context, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image download returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(raw))

	return a.store.Upload(ctx, dataURL, KindGenerated)
}
