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
)

const (
	ismaqueBaseURL         = "https://ismaque.org"
	ismaqueGenerationsPath = "/v1/images/generations"
)

// shared HTTP client for Ismaque API calls
var ismaqueHTTPClient = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

type ismaqueRequest struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt"`
	N              int    `json:"n"`
	Model          string `json:"model"`
	AspectRatio    string `json:"aspect_ratio"`
	WebhookURL     string `json:"webhook_url,omitempty"`
}

type ismaqueResponse struct {
	Data []struct {
		URL     string `json:"url,omitempty"`
		B64JSON string `json:"b64_json,omitempty"`
	} `json:"data"`
}

// IsmaqueClient drives text-conditioned generation. The provider also
// delivers results asynchronously to callbackURL, but the synchronous
// response body is authoritative in the current design; the callback is
// registered and then ignored (see api/rest/webhooks).
type IsmaqueClient struct {
	apiKey      string
	callbackURL string
	baseURL     string
	httpClient  *http.Client
}

func NewIsmaqueClient(apiKey, callbackURL string) *IsmaqueClient {
	return &IsmaqueClient{
		apiKey:      apiKey,
		callbackURL: callbackURL,
		baseURL:     ismaqueBaseURL,
		httpClient:  ismaqueHTTPClient,
	}
}

// submits one generation request and extracts the image URL (or an inline
// base64 payload as a data URL) from the synchronous response
func (c *IsmaqueClient) Generate(ctx context.Context, input TextInput) (string, error) {
	reqBody := ismaqueRequest{
		Prompt:         input.Prompt,
		NegativePrompt: input.NegativePrompt,
		N:              1,
		Model:          "flux-kontext-pro",
		AspectRatio:    input.AspectRatio,
		WebhookURL:     c.callbackURL,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ismaqueGenerationsPath, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		logger.Error("ismaque API error", "status", resp.StatusCode, "body", string(body))

		switch resp.StatusCode {
		case http.StatusTooManyRequests:
			return "", apierrors.ServiceBusy()
		case http.StatusUnauthorized:
			return "", apierrors.ServiceAuthFailed()
		default:
			return "", apierrors.GenerationFailed()
		}
	}

	var result ismaqueResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Data) == 0 {
		return "", apierrors.GenerationFailed()
	}

	if result.Data[0].URL != "" {
		return result.Data[0].URL, nil
	}

	if result.Data[0].B64JSON != "" {
		return "data:image/png;base64," + result.Data[0].B64JSON, nil
	}

	return "", apierrors.GenerationFailed()
}
