package generation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghibliart/server/internal/apierrors"
)

func newReplicateTestClient(server *httptest.Server) *ReplicateClient {
	client := NewReplicateClient("test-token")
	client.baseURL = server.URL
	client.httpClient = server.Client()

	return client
}

func TestReplicateCreatePrediction(t *testing.T) {
	var received replicateCreateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/"+replicateModel+"/predictions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		if got := r.Header.Get("Authorization"); got != "Token test-token" {
			t.Errorf("unexpected authorization header: %s", got)
		}

		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"p1","status":"starting"}`))
	}))
	defer server.Close()

	client := newReplicateTestClient(server)
	prediction, err := client.CreatePrediction(context.Background(), ImageInput{
		Prompt:     "redraw",
		InputImage: "https://images.example.com/uploaded/ref.png",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if prediction.ID != "p1" || prediction.Status != StatusStarting {
		t.Errorf("unexpected prediction: %+v", prediction)
	}

	// the reference image drives the output ratio on this path
	if received.Input.AspectRatio != "match_input_image" {
		t.Errorf("unexpected aspect ratio: %s", received.Input.AspectRatio)
	}

	if received.Input.InputImage != "https://images.example.com/uploaded/ref.png" {
		t.Errorf("reference image must be forwarded, got %s", received.Input.InputImage)
	}
}

func TestReplicateCreatePrediction_ProviderFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := newReplicateTestClient(server)
	_, err := client.CreatePrediction(context.Background(), ImageInput{Prompt: "redraw"})

	var apiErr *apierrors.Error
	if !errors.As(err, &apiErr) || apiErr.Code != apierrors.CodeGenerationFailed {
		t.Fatalf("expected generation_failed, got %v", err)
	}
}

func TestReplicateGetPrediction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predictions/p1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		_, _ = w.Write([]byte(`{"id":"p1","status":"succeeded","output":"https://replicate.delivery/x.jpg"}`))
	}))
	defer server.Close()

	client := newReplicateTestClient(server)
	prediction, err := client.GetPrediction(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if prediction.Status != StatusSucceeded || prediction.Output != "https://replicate.delivery/x.jpg" {
		t.Errorf("unexpected prediction: %+v", prediction)
	}
}
