package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/ghibliart/server/internal/apierrors"
	"github.com/ghibliart/server/internal/logger"
	"github.com/ghibliart/server/internal/validation"
	"github.com/gin-gonic/gin"
)

// creates the download proxy handler. The proxy exists so the browser can
// save provider-hosted images without tripping cross-origin restrictions;
// the source allowlist keeps it from becoming an open relay.
func Handler(cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validation.DownloadRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.Respond(c, apierrors.Validation("invalid request body"))
			return
		}

		if vErr := validation.ValidateDownload(req); vErr != nil {
			apierrors.Respond(c, vErr)
			return
		}

		if !allowedSource(req.ImageURL, cfg.AllowedHosts) {
			apierrors.Respond(c, apierrors.InvalidSource())
			return
		}

		body, contentType, err := fetchImage(c.Request.Context(), req.ImageURL)
		if err != nil {
			apierrors.Respond(c, err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", req.Filename))
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")

		c.Data(http.StatusOK, contentType, body)
	}
}

// a URL is an allowed source when its hostname contains one of the
// configured hosts
func allowedSource(rawURL string, allowedHosts []string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	hostname := parsed.Hostname()

	for _, host := range allowedHosts {
		if host != "" && strings.Contains(hostname, host) {
			return true
		}
	}

	return false
}

// fetches the image with the proxy's timeout and size/type limits; the
// returned error is always a typed *apierrors.Error
func fetchImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", apierrors.FetchFailed()
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := downloadHTTPClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, "", apierrors.DownloadTimeout()
		}

		logger.ErrorErr(err, "image fetch failed", "url", imageURL)

		return nil, "", apierrors.FetchFailed()
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("image source returned non-2xx", "url", imageURL, "status", resp.StatusCode)
		return nil, "", apierrors.FetchFailed()
	}

	if resp.ContentLength > maxDownloadBytes {
		return nil, "", apierrors.ImageTooLarge(http.StatusRequestEntityTooLarge)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", apierrors.InvalidFileType()
	}

	// cap the actual read too; Content-Length can lie
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes+1))
	if err != nil {
		if isTimeout(err) {
			return nil, "", apierrors.DownloadTimeout()
		}

		return nil, "", apierrors.FetchFailed()
	}

	if len(body) > maxDownloadBytes {
		return nil, "", apierrors.ImageTooLarge(http.StatusRequestEntityTooLarge)
	}

	return body, contentType, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}
