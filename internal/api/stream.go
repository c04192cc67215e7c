// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// STREAMING: ordered chunk ingestion with partial-content errors

// streamReadSize is the buffer handed to each read of the stream body.
const streamReadSize = 4 * 1024

// =============================================================================
// STREAM ERROR
// =============================================================================

// StreamError represents a failure mid-stream, preserving any partial
// content received before the error. Callers must not treat the partial
// content as a completed reply.
type StreamError struct {
	Partial string // Content received before the error
	Err     error
}

// Error implements the error interface.
func (e *StreamError) Error() string {
	if e.Partial != "" {
		return fmt.Sprintf("stream error (partial content received: %d chars): %v", len(e.Partial), e.Err)
	}
	return fmt.Sprintf("stream error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *StreamError) Unwrap() error {
	return e.Err
}

// =============================================================================
// STREAMING CHAT
// =============================================================================

// PartialFunc receives the cumulative text after each chunk. It is called
// synchronously from the read loop, so calls arrive in chunk order and the
// argument only ever grows.
type PartialFunc func(cumulative string)

// ChatStream performs a streaming chat turn against the given integration
// path. Chunks are plain text; they are appended in arrival order and the
// full reply is returned once the stream ends cleanly.
//
// On transport failure after the stream has started, the returned error is
// a *StreamError wrapping the partial content. The turn must not be
// recorded as complete in that case.
func (c *Client) ChatStream(ctx context.Context, path string, reqBody ChatRequest, onPartial PartialFunc) (string, error) {
	reqBody.Stream = true

	// The configured timeout bounds the whole turn, including every
	// chunk read; the streaming http.Client itself has none.
	ctx, cancel := context.WithTimeout(ctx, c.streamTimeout)
	defer cancel()

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := newJSONRequest(ctx, c.url(path), bodyBytes)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("Cache-Control", "no-cache")

	start := time.Now()
	c.logRequest(req)

	// Streaming client has no timeout; the context bounds the turn.
	resp, err := c.streamClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	c.logResponse(resp, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	return c.ingest(ctx, resp.Body, onPartial)
}

// ingest reads the stream body chunk by chunk, accumulating text and
// reporting the cumulative content after every read. A single reader loop
// guarantees chunk order.
func (c *Client) ingest(ctx context.Context, body io.Reader, onPartial PartialFunc) (string, error) {
	var acc strings.Builder
	reader := bufio.NewReader(body)
	buf := make([]byte, streamReadSize)

	for {
		select {
		case <-ctx.Done():
			return "", &StreamError{Partial: acc.String(), Err: ctx.Err()}
		default:
		}

		n, err := reader.Read(buf)
		if n > 0 {
			acc.Write(buf[:n])
			if onPartial != nil {
				onPartial(acc.String())
			}
		}
		if err != nil {
			if err == io.EOF {
				return acc.String(), nil
			}
			return "", &StreamError{Partial: acc.String(), Err: err}
		}
	}
}
