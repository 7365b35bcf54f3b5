package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ghibliart/server/internal/apierrors"
	"github.com/ghibliart/server/internal/logger"
	"golang.org/x/time/rate"
)

const (
	replicateAPIURL = "https://api.replicate.com/v1"
	replicateModel  = "black-forest-labs/flux-kontext-pro"
)

// shared HTTP client for Replicate API calls
var replicateHTTPClient = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// rate limiter for Replicate API calls (10 requests/second with burst capacity of 5)
var replicateRateLimiter = rate.NewLimiter(10, 5)

type replicateCreateRequest struct {
	Input replicateInput `json:"input"`
}

type replicateInput struct {
	Prompt          string `json:"prompt"`
	InputImage      string `json:"input_image"`
	AspectRatio     string `json:"aspect_ratio"`
	OutputFormat    string `json:"output_format"`
	SafetyTolerance int    `json:"safety_tolerance"`
}

// ReplicateClient drives image-conditioned generation through Replicate's
// prediction API
type ReplicateClient struct {
	apiToken   string
	baseURL    string
	httpClient *http.Client
}

func NewReplicateClient(apiToken string) *ReplicateClient {
	return &ReplicateClient{
		apiToken:   apiToken,
		baseURL:    replicateAPIURL,
		httpClient: replicateHTTPClient,
	}
}

// submits one synchronous creation call; the response may already carry a
// terminal status
func (c *ReplicateClient) CreatePrediction(ctx context.Context, input ImageInput) (*Prediction, error) {
	if err := replicateRateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	reqBody := replicateCreateRequest{
		Input: replicateInput{
			Prompt:     input.Prompt,
			InputImage: input.InputImage,
			// the provider matches the reference image's ratio; the requested
			// ratio is not forwarded on this path
			AspectRatio:     "match_input_image",
			OutputFormat:    "jpg",
			SafetyTolerance: 2,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s/predictions", c.baseURL, replicateModel)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Token %s", c.apiToken))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		logger.Error("replicate API error", "status", resp.StatusCode, "body", string(body))

		return nil, apierrors.GenerationFailed()
	}

	var prediction Prediction
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &prediction, nil
}

// fetches the current status of a prediction
func (c *ReplicateClient) GetPrediction(ctx context.Context, id string) (*Prediction, error) {
	if err := replicateRateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	url := fmt.Sprintf("%s/predictions/%s", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Token %s", c.apiToken))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("replicate API error (status %d): %s", resp.StatusCode, string(body))
	}

	var prediction Prediction
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &prediction, nil
}
