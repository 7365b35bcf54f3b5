package storage

import "context"

// ObjectKind partitions stored images by origin in the bucket layout
type ObjectKind string

const (
	KindUploaded  ObjectKind = "uploaded"
	KindGenerated ObjectKind = "generated"
)

// ObjectStore is the narrow capability the generation flow needs from the
// object-storage collaborator
type ObjectStore interface {
	// stores an inline-encoded image and returns its public URL
	Upload(ctx context.Context, dataURL string, kind ObjectKind) (string, error)
}

// Config holds R2 credentials and addressing
type Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURLBase   string
}
