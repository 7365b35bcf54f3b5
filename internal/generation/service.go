package generation

import (
	"context"
	"time"

	"github.com/ghibliart/server/internal/apierrors"
	"github.com/ghibliart/server/internal/logger"
	"github.com/ghibliart/server/internal/storage"
)

const (
	defaultPollInterval = 2 * time.Second
	defaultMaxPolls     = 30

	modelNameImage = "flux-kontext-pro (Replicate)"
	modelNameText  = "flux-kontext-pro (Ismaque)"
)

// Service orchestrates one generation request: routes between the two
// provider paths based on the presence of a reference image, polls the
// image path to completion, and archives the result.
type Service struct {
	image    ImageProvider // nil when REPLICATE_API_TOKEN is unset
	text     TextProvider  // nil when ISMAQUE_API_KEY is unset
	uploads  Uploader
	archiver Archiver

	pollInterval time.Duration
	maxPolls     int
}

func NewService(image ImageProvider, text TextProvider, uploads Uploader, archiver Archiver) *Service {
	return &Service{
		image:        image,
		text:         text,
		uploads:      uploads,
		archiver:     archiver,
		pollInterval: defaultPollInterval,
		maxPolls:     defaultMaxPolls,
	}
}

// runs the full flow for an already-validated request and returns the
// archived image URL with generation stats
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	var (
		imageURL string
		model    string
		err      error
	)

	if req.InputImage != "" {
		model = modelNameImage
		imageURL, err = s.generateFromImage(ctx, req)
	} else {
		model = modelNameText
		imageURL, err = s.generateFromText(ctx, req)
	}

	if err != nil {
		return nil, err
	}

	if imageURL == "" {
		return nil, apierrors.GenerationFailed()
	}

	// best-effort re-hosting; falls back to the external URL on failure
	stored := s.archiver.Archive(ctx, imageURL)

	return &Result{
		ImageURL: stored,
		Model:    model,
		Elapsed:  time.Since(start),
	}, nil
}

// image-conditioned path: upload the reference so the provider can fetch
// it, submit a prediction, then poll until terminal or the attempt budget
// is exhausted
func (s *Service) generateFromImage(ctx context.Context, req Request) (string, error) {
	if s.image == nil {
		return "", apierrors.ServiceUnavailable("image generation service unavailable")
	}

	referenceURL, err := s.uploads.Upload(ctx, req.InputImage, storage.KindUploaded)
	if err != nil {
		return "", err
	}

	prediction, err := s.image.CreatePrediction(ctx, ImageInput{
		Prompt:     buildImagePrompt(req.Prompt),
		InputImage: referenceURL,
	})
	if err != nil {
		return "", err
	}

	switch prediction.Status {
	case StatusSucceeded:
		if prediction.Output != "" {
			return prediction.Output, nil
		}

		return "", apierrors.GenerationFailed()
	case StatusFailed:
		return "", apierrors.GenerationFailed()
	}

	return s.pollPrediction(ctx, prediction.ID)
}

// polls at a fixed interval for a bounded number of attempts. The select
// on ctx lets a cancelled request stop the loop early; under a background
// context the loop runs to completion as before.
func (s *Service) pollPrediction(ctx context.Context, id string) (string, error) {
	for i := 0; i < s.maxPolls; i++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.pollInterval):
		}

		prediction, err := s.image.GetPrediction(ctx, id)
		if err != nil {
			// transient poll failures keep polling until the budget runs out
			logger.Warn("prediction poll failed", "prediction_id", id, "attempt", i+1, "error", err)
			continue
		}

		switch prediction.Status {
		case StatusSucceeded:
			if prediction.Output != "" {
				return prediction.Output, nil
			}

			return "", apierrors.GenerationFailed()
		case StatusFailed:
			return "", apierrors.GenerationFailed()
		}
	}

	return "", apierrors.GenerationTimeout()
}

// text-conditioned path: single synchronous call, response taken as
// authoritative
func (s *Service) generateFromText(ctx context.Context, req Request) (string, error) {
	if s.text == nil {
		return "", apierrors.ServiceUnavailable("text generation service unavailable")
	}

	return s.text.Generate(ctx, TextInput{
		Prompt:         buildTextPrompt(req.Prompt),
		NegativePrompt: negativePrompt,
		AspectRatio:    req.AspectRatio,
	})
}
