package generation

import (
	"context"
	"time"

	"github.com/ghibliart/server/internal/storage"
)

// prediction lifecycle states reported by the polling provider
type Status string

const (
	StatusStarting   Status = "starting"
	StatusProcessing Status = "processing"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// Prediction is one asynchronous generation unit tracked by the polling
// provider; polled until terminal, then discarded
type Prediction struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
	Output string `json:"output,omitempty"`
}

// ImageInput is the payload for image-conditioned generation
type ImageInput struct {
	Prompt     string
	InputImage string
}

// TextInput is the payload for text-conditioned generation
type TextInput struct {
	Prompt         string
	NegativePrompt string
	AspectRatio    string
}

// ImageProvider is the polling-style provider used when a reference image
// is supplied
type ImageProvider interface {
	CreatePrediction(ctx context.Context, input ImageInput) (*Prediction, error)
	GetPrediction(ctx context.Context, id string) (*Prediction, error)
}

// TextProvider is the webhook-style provider used for pure text prompts.
// Its synchronous response is authoritative in the current design.
type TextProvider interface {
	Generate(ctx context.Context, input TextInput) (string, error)
}

// Uploader stores the reference image so the external provider can fetch it
type Uploader interface {
	Upload(ctx context.Context, dataURL string, kind storage.ObjectKind) (string, error)
}

// Archiver re-hosts the generated image, falling back to the external URL
type Archiver interface {
	Archive(ctx context.Context, imageURL string) string
}

// Request is a validated, normalized generation request
type Request struct {
	Prompt      string
	AspectRatio string
	Quality     string
	InputImage  string
}

// Result is the outcome of one successful generation
type Result struct {
	ImageURL string
	Model    string
	Elapsed  time.Duration
}
