package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Video generation is a long-running operation on the Generative Language
// REST API; the Go SDK does not cover it, so the client calls the REST
// surface directly and polls the returned operation until done.

const (
	videoAPIBase      = "https://generativelanguage.googleapis.com/v1beta"
	videoPollInterval = 10 * time.Second
)

type videoOperation struct {
	Name     string `json:"name"`
	Done     bool   `json:"done"`
	Error    *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
	Response *struct {
		GenerateVideoResponse struct {
			GeneratedSamples []struct {
				Video struct {
					URI string `json:"uri"`
				} `json:"video"`
			} `json:"generatedSamples"`
		} `json:"generateVideoResponse"`
	} `json:"response,omitempty"`
}

// GenerateVideo starts a video generation and polls until the operation
// completes or the context expires. Returns the video URI, or empty when
// the model produced no video. Generation is observed to take one to two
// minutes; callers own the deadline.
func (c *GeminiClient) GenerateVideo(ctx context.Context, prompt string) (string, error) {
	modelName := c.config.GetModel(RoleVideo)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for role %s", RoleVideo)
	}

	body, err := json.Marshal(map[string]any{
		"instances": []map[string]any{{"prompt": prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode video request: %w", err)
	}

	startURL := fmt.Sprintf("%s/models/%s:predictLongRunning", videoAPIBase, modelName)
	var op videoOperation
	if err := c.videoCall(ctx, http.MethodPost, startURL, body, &op); err != nil {
		return "", fmt.Errorf("failed to start video generation: %w", err)
	}
	if op.Name == "" {
		return "", fmt.Errorf("video generation returned no operation name")
	}

	pollURL := fmt.Sprintf("%s/%s", videoAPIBase, op.Name)
	for !op.Done {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("video generation interrupted: %w", ctx.Err())
		case <-time.After(videoPollInterval):
		}
		if err := c.videoCall(ctx, http.MethodGet, pollURL, nil, &op); err != nil {
			return "", fmt.Errorf("failed to poll video operation: %w", err)
		}
	}

	if op.Error != nil {
		return "", fmt.Errorf("video generation failed: %s", op.Error.Message)
	}
	if op.Response == nil {
		return "", nil
	}
	samples := op.Response.GenerateVideoResponse.GeneratedSamples
	if len(samples) == 0 {
		return "", nil
	}
	return samples[0].Video.URI, nil
}

func (c *GeminiClient) videoCall(ctx context.Context, method, url string, body []byte, out *videoOperation) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(data))
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode operation: %w", err)
	}
	return nil
}
