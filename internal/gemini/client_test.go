package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Meghana-05-02/RFP-System/internal/config"
	"github.com/Meghana-05-02/RFP-System/internal/extraction"
)

func newTestClient(url string) *Client {
	return NewClient(config.GeminiConfig{
		APIKey:  "test-key",
		BaseURL: url,
		Model:   "gemini-2.5-flash",
	})
}

func TestGenerateSuccess(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}

		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{
					{"text": `{"title": `},
					{"text": `"Laptops"}`},
				}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	text, err := client.Generate(context.Background(), "extract this", extraction.GenerateOptions{
		Temperature:     0.1,
		TopP:            0.95,
		TopK:            40,
		MaxOutputTokens: 2048,
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if text != `{"title": "Laptops"}` {
		t.Errorf("text = %q, candidate parts should be concatenated", text)
	}

	if gotPath != "/models/gemini-2.5-flash:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("x-goog-api-key = %q", gotKey)
	}
	if len(gotBody.Contents) != 1 || gotBody.Contents[0].Parts[0].Text != "extract this" {
		t.Errorf("request contents = %+v", gotBody.Contents)
	}
	if gotBody.GenerationConfig.Temperature != 0.1 || gotBody.GenerationConfig.MaxOutputTokens != 2048 {
		t.Errorf("generation config = %+v", gotBody.GenerationConfig)
	}
	if len(gotBody.SafetySettings) != 4 {
		t.Errorf("safety settings = %+v", gotBody.SafetySettings)
	}
}

func TestGenerateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    400,
				"message": "API key not valid",
				"status":  "INVALID_ARGUMENT",
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Generate(context.Background(), "prompt", extraction.GenerateOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "status 400") || !strings.Contains(err.Error(), "API key not valid") {
		t.Errorf("error = %v", err)
	}
}

func TestGenerateMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Generate(context.Background(), "prompt", extraction.GenerateOptions{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "failed to parse response") {
		t.Errorf("error = %v", err)
	}
}

func TestGenerateNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	text, err := client.Generate(context.Background(), "prompt", extraction.GenerateOptions{})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if text != "" {
		t.Errorf("text = %q, want empty", text)
	}
}

func TestGenerateNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL)

	_, err := client.Generate(context.Background(), "prompt", extraction.GenerateOptions{})
	if err == nil {
		t.Fatal("expected error for closed server")
	}
	if !strings.Contains(err.Error(), "failed to send request") {
		t.Errorf("error = %v", err)
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(config.GeminiConfig{APIKey: "k"})
	if client.cfg.BaseURL != defaultBaseURL {
		t.Errorf("BaseURL = %q", client.cfg.BaseURL)
	}
	if client.cfg.Model != defaultModel {
		t.Errorf("Model = %q", client.cfg.Model)
	}
}
