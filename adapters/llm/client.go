package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"qiming/ports"
)

// OpenAIClient implements ports.LLMClient against an OpenAI-compatible
// chat-completions endpoint.
type OpenAIClient struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// NewOpenAIClient validates the minimal settings and returns a client.
func NewOpenAIClient(apiKey, baseURL, model string, temperature float64, maxTokens int, timeout time.Duration) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing OpenAI API key")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("missing model")
	}
	return &OpenAIClient{
		APIKey:      apiKey,
		BaseURL:     baseURL,
		Model:       model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Timeout:     timeout,
	}, nil
}

func (c *OpenAIClient) ChatCompletion(ctx context.Context, messages []ports.ChatMessage) (string, error) {
	maxTokens := c.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2000
	}

	type reqBody struct {
		Model       string              `json:"model"`
		Messages    []ports.ChatMessage `json:"messages"`
		Temperature float64             `json:"temperature,omitempty"`
		MaxTokens   int                 `json:"max_tokens,omitempty"`
	}
	body := reqBody{
		Model:       c.Model,
		Messages:    messages,
		Temperature: c.Temperature,
		MaxTokens:   maxTokens,
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	client := &http.Client{Timeout: c.Timeout}
	url := strings.TrimRight(c.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	respRaw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai http %d: %s", resp.StatusCode, string(respRaw))
	}

	type choice struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	type respBody struct {
		Choices []choice `json:"choices"`
	}
	var decoded respBody
	if err := json.Unmarshal(respRaw, &decoded); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("openai response missing choices")
	}
	return decoded.Choices[0].Message.Content, nil
}

// MockLLMClient is a mock LLM client for testing
type MockLLMClient struct {
	Response string // Set this for testing
	Error    error  // Set this to simulate errors

	// LastMessages records the most recent request for assertions.
	LastMessages []ports.ChatMessage
}

func (m *MockLLMClient) ChatCompletion(ctx context.Context, messages []ports.ChatMessage) (string, error) {
	m.LastMessages = messages
	if m.Error != nil {
		return "", m.Error
	}
	if m.Response != "" {
		return m.Response, nil
	}
	// Default mock response
	return `{"names":[{"firstName":"思源","fullName":"李思源","meaning":"饮水思源，不忘根本","source":"取自成语饮水思源","confidence":92,"tags":["文雅","内涵"]}]}`, nil
}

var (
	_ ports.LLMClient = (*OpenAIClient)(nil)
	_ ports.LLMClient = (*MockLLMClient)(nil)
)
