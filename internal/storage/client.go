package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/ghibliart/server/internal/apierrors"
	"github.com/google/uuid"
)

// decoded payload size ceiling (30MB)
const maxUploadBytes = 30 * 1024 * 1024

var dataURLPrefix = regexp.MustCompile(`^data:image/(\w+);base64,`)

// Client stores images in a Cloudflare R2 bucket through the S3 API
type Client struct {
	s3            *s3.Client
	bucket        string
	publicURLBase string
	now           func() time.Time // test seam
}

func NewClient(cfg Config) *Client {
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)

	return &Client{
		s3: s3.New(s3.Options{
			Region:       "auto",
			BaseEndpoint: aws.String(endpoint),
			Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		}),
		bucket:        cfg.Bucket,
		publicURLBase: strings.TrimSuffix(cfg.PublicURLBase, "/"),
		now:           time.Now,
	}
}

// decodes an inline base64 image and puts it in the bucket under a dated
// key, returning the application-controlled public URL
func (c *Client) Upload(ctx context.Context, dataURL string, kind ObjectKind) (string, error) {
	ext, raw, err := decodeDataURL(dataURL)
	if err != nil {
		return "", apierrors.Validation("invalid image payload")
	}

	if len(raw) > maxUploadBytes {
		return "", apierrors.ImageTooLarge(400)
	}

	key := c.objectKey(kind, ext)

	_, err = c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(raw),
		ContentType: aws.String("image/" + ext),
	})
	if err != nil {
		return "", apierrors.UploadFailed()
	}

	return c.publicURLBase + "/" + key, nil
}

// key layout: YYYY-MM-DD/<kind>/<timestamp>-<uuid8>.<ext>
func (c *Client) objectKey(kind ObjectKind, ext string) string {
	now := c.now().UTC()
	dateStr := now.Format("2006-01-02")
	timeStr := now.Format("2006-01-02T15-04-05")
	shortID := uuid.NewString()[:8]

	return fmt.Sprintf("%s/%s/%s-%s.%s", dateStr, kind, timeStr, shortID, ext)
}

// splits a data URL into its image extension and decoded bytes. Payloads
// without the data: prefix are treated as bare base64 png data.
func decodeDataURL(dataURL string) (string, []byte, error) {
	ext := "png"
	encoded := dataURL

	if m := dataURLPrefix.FindStringSubmatch(dataURL); m != nil {
		ext = m[1]
		encoded = dataURL[len(m[0]):]
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}

	return ext, raw, nil
}
