// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestTokenLimitMarshal(t *testing.T) {
	tests := []struct {
		name  string
		limit TokenLimit
		want  string
	}{
		{"adaptive serializes as auto", 0, `"auto"`},
		{"negative treated as adaptive", -1, `"auto"`},
		{"fixed count serializes as number", 2048, `2048`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.limit)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestChatRequestShape(t *testing.T) {
	req := ChatRequest{
		Messages: []ChatMessage{
			{Role: "user", Content: "hi"},
		},
		Stream: true,
		Parameters: Parameters{
			Temperature:    0.7,
			ResponseFormat: "balanced",
			MaxTokens:      0,
		},
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded["stream"] != true {
		t.Error("stream flag missing or false")
	}
	params, ok := decoded["parameters"].(map[string]any)
	if !ok {
		t.Fatal("parameters object missing")
	}
	if params["temperature"] != 0.7 {
		t.Errorf("temperature = %v, want 0.7", params["temperature"])
	}
	if params["response_format"] != "balanced" {
		t.Errorf("response_format = %v, want balanced", params["response_format"])
	}
	if params["max_tokens"] != "auto" {
		t.Errorf("max_tokens = %v, want auto", params["max_tokens"])
	}
}

func TestChatStreamAccumulates(t *testing.T) {
	chunks := []string{"Hel", "lo ", "there"}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		flusher := w.(http.Flusher)
		for _, chunk := range chunks {
			fmt.Fprint(w, chunk)
			flusher.Flush()
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var partials []string
	got, err := client.ChatStream(context.Background(), "/integrations/chat-gpt/conversationgpt4", ChatRequest{
		Messages: []ChatMessage{{Role: "user", Content: "hi"}},
	}, func(cumulative string) {
		partials = append(partials, cumulative)
	})
	if err != nil {
		t.Fatalf("ChatStream failed: %v", err)
	}

	if got != "Hello there" {
		t.Errorf("final content = %q, want %q", got, "Hello there")
	}

	// Partials arrive in order and only ever grow.
	if len(partials) == 0 {
		t.Fatal("no partials reported")
	}
	for i := 1; i < len(partials); i++ {
		if !strings.HasPrefix(partials[i], partials[i-1]) {
			t.Errorf("partial %d (%q) does not extend partial %d (%q)", i, partials[i], i-1, partials[i-1])
		}
	}
	if partials[len(partials)-1] != "Hello there" {
		t.Errorf("last partial = %q, want full content", partials[len(partials)-1])
	}
}

func TestChatStreamSendsRequestBody(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.ChatStream(context.Background(), "/chat", ChatRequest{
		Messages:   []ChatMessage{{Role: "user", Content: "hi"}},
		Parameters: Parameters{Temperature: 0.5, MaxTokens: 100},
	}, nil)
	if err != nil {
		t.Fatalf("ChatStream failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(gotBody, &decoded); err != nil {
		t.Fatalf("request body not JSON: %v", err)
	}
	// Stream is forced on regardless of what the caller set.
	if decoded["stream"] != true {
		t.Error("stream flag not forced on")
	}
}

func TestChatStreamBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.ChatStream(context.Background(), "/chat", ChatRequest{}, nil)

	if !errors.Is(err, ErrBadStatus) {
		t.Errorf("err = %v, want ErrBadStatus", err)
	}
}

func TestChatStreamMidStreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Promise more bytes than we send, then bail: the client sees
		// an unexpected EOF after receiving the partial content.
		w.Header().Set("Content-Length", "1000")
		fmt.Fprint(w, "partial text")
		w.(http.Flusher).Flush()
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.ChatStream(context.Background(), "/chat", ChatRequest{}, nil)

	if err == nil {
		t.Fatal("expected mid-stream error")
	}
	var streamErr *StreamError
	if !errors.As(err, &streamErr) {
		t.Fatalf("err = %T, want *StreamError", err)
	}
	if streamErr.Partial != "partial text" {
		t.Errorf("Partial = %q, want %q", streamErr.Partial, "partial text")
	}
}

func TestChatStreamTimeoutBoundsTurn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "partial")
		w.(http.Flusher).Flush()
		// Hold the stream open until the client gives up.
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(server.URL).WithStreamTimeout(100 * time.Millisecond)

	start := time.Now()
	_, err := client.ChatStream(context.Background(), "/chat", ChatRequest{}, nil)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected timeout error")
	}
	var streamErr *StreamError
	if !errors.As(err, &streamErr) {
		t.Fatalf("err = %T, want *StreamError", err)
	}
	if streamErr.Partial != "partial" {
		t.Errorf("Partial = %q, want %q", streamErr.Partial, "partial")
	}
	if elapsed > 5*time.Second {
		t.Errorf("turn ran %v, configured timeout not applied", elapsed)
	}
}

func TestWithStreamTimeoutIgnoresNonPositive(t *testing.T) {
	client := NewClient("http://proxy.local").WithStreamTimeout(0)
	if client.streamTimeout != DefaultStreamTimeout {
		t.Errorf("streamTimeout = %v, want default %v", client.streamTimeout, DefaultStreamTimeout)
	}
}

func TestGenerateImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if got := r.URL.Query().Get("prompt"); got != "draw a cat & dog" {
			t.Errorf("prompt = %q, want %q", got, "draw a cat & dog")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": []string{"https://img.example.com/1.png"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	url, err := client.GenerateImage(context.Background(), "/integrations/dall-e-3/", "draw a cat & dog")
	if err != nil {
		t.Fatalf("GenerateImage failed: %v", err)
	}
	if url != "https://img.example.com/1.png" {
		t.Errorf("url = %q", url)
	}
}

func TestGenerateImageEmptyData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []string{}})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GenerateImage(context.Background(), "/img", "prompt")

	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("err = %v, want ErrEmptyResponse", err)
	}
}

func TestGenerateImageBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GenerateImage(context.Background(), "/img", "prompt")

	if !errors.Is(err, ErrBadStatus) {
		t.Errorf("err = %v, want ErrBadStatus", err)
	}
}

func TestAnalyzeImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		var req visionRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("request body not JSON: %v", err)
		}
		if len(req.Messages) != 1 || len(req.Messages[0].Content) != 2 {
			t.Fatalf("unexpected request shape: %s", body)
		}
		if req.Messages[0].Content[0].Text != analysisPrompt {
			t.Errorf("text = %q", req.Messages[0].Content[0].Text)
		}
		if req.Messages[0].Content[1].ImageURL.URL != "https://example.com/photo.png" {
			t.Errorf("image url = %q", req.Messages[0].Content[1].ImageURL.URL)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "A sunset over water."}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	got, err := client.AnalyzeImage(context.Background(), "/integrations/gpt-vision/", "https://example.com/photo.png")
	if err != nil {
		t.Fatalf("AnalyzeImage failed: %v", err)
	}
	if got != "A sunset over water." {
		t.Errorf("analysis = %q", got)
	}
}

func TestAnalyzeImageNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.AnalyzeImage(context.Background(), "/vision", "x.png")

	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("err = %v, want ErrEmptyResponse", err)
	}
}
