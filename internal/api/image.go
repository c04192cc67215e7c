// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// analysisPrompt is the fixed instruction sent with every image analysis.
const analysisPrompt = "Analyze this image and provide insights."

// =============================================================================
// IMAGE GENERATION
// =============================================================================

// imageResponse is the body returned by the image integrations.
type imageResponse struct {
	Data []string `json:"data"`
}

// GenerateImage renders an image from a prompt via the given integration
// path and returns the URL of the first result.
func (c *Client) GenerateImage(ctx context.Context, path, prompt string) (string, error) {
	reqURL := c.url(path) + "?prompt=" + url.QueryEscape(prompt)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	var body imageResponse
	if err := c.doJSON(req, &body); err != nil {
		return "", err
	}

	if len(body.Data) == 0 {
		return "", fmt.Errorf("%w: no image returned", ErrEmptyResponse)
	}
	return body.Data[0], nil
}

// =============================================================================
// IMAGE ANALYSIS
// =============================================================================

// visionContent is one element of the multimodal content array.
type visionContent struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *visionImageURL `json:"image_url,omitempty"`
}

type visionImageURL struct {
	URL string `json:"url"`
}

// visionMessage is a chat turn whose content is a multimodal array.
type visionMessage struct {
	Role    string          `json:"role"`
	Content []visionContent `json:"content"`
}

type visionRequest struct {
	Messages []visionMessage `json:"messages"`
}

// visionResponse is the completion-shaped body the vision integration
// returns.
type visionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// AnalyzeImage sends an image URL to the vision integration and returns
// the textual description.
func (c *Client) AnalyzeImage(ctx context.Context, path, imageURL string) (string, error) {
	reqBody := visionRequest{
		Messages: []visionMessage{
			{
				Role: "user",
				Content: []visionContent{
					{Type: "text", Text: analysisPrompt},
					{Type: "image_url", ImageURL: &visionImageURL{URL: imageURL}},
				},
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := newJSONRequest(ctx, c.url(path), bodyBytes)
	if err != nil {
		return "", err
	}

	var body visionResponse
	if err := c.doJSON(req, &body); err != nil {
		return "", err
	}

	if len(body.Choices) == 0 {
		return "", fmt.Errorf("%w: no analysis returned", ErrEmptyResponse)
	}
	return body.Choices[0].Message.Content, nil
}
