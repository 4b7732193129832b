package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ModelClient is a thin wrapper over a chat-completions style generative
// model API. All AI behavior is delegated to the external service; this
// client only shapes requests and extracts the first choice.
type ModelClient struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	model      string
}

func NewModelClient(apiURL, apiKey, model string) *ModelClient {
	return &ModelClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiURL:     apiURL,
		apiKey:     apiKey,
		model:      model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends one system+user exchange and returns the model's reply.
func (c *ModelClient) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	if c.apiURL == "" {
		return "", errors.New("assistant API is not configured")
	}

	body, err := json.Marshal(chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal model request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build model request: %w", err)
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Bearer "+c.apiKey)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("model request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		responseBody, _ := io.ReadAll(io.LimitReader(response.Body, 4096))
		return "", fmt.Errorf("model returned status %d: %s", response.StatusCode, string(responseBody))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(response.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("failed to decode model response: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}
