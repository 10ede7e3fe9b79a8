package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultOllamaBaseURL = "http://localhost:11434"

// Ollama is the local-runtime fallback: no credential, just an endpoint.
// Options are pinned for fast, deterministic-ish completions on small
// machines.
type ollamaConfig struct {
	BaseURL string `json:"base_url"`
}

type ollamaProvider struct {
	baseURL string
}

type ollamaChatRequest struct {
	Model    string                 `json:"model"`
	Messages []ollamaChatMsg        `json:"messages"`
	Stream   bool                   `json:"stream"`
	Options  map[string]interface{} `json:"options,omitempty"`
}

type ollamaChatMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

func (p *ollamaProvider) Name() string {
	return "ollama"
}

func (p *ollamaProvider) Generate(ctx context.Context, model string, prompt string) (string, error) {
	if p.baseURL == "" {
		return "", ErrNotConfigured
	}
	endpoint := strings.TrimRight(p.baseURL, "/") + "/api/chat"
	reqBody := ollamaChatRequest{
		Model:    model,
		Messages: []ollamaChatMsg{{Role: "user", Content: prompt}},
		Stream:   false,
		Options: map[string]interface{}{
			"temperature": 0.1,
			"top_p":       0.7,
			"top_k":       20,
		},
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama request failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	var out ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.Message.Content), nil
}

func createOllamaFactory(args interface{}) (IProvider, error) {
	cfg := &ollamaConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	return &ollamaProvider{baseURL: baseURL}, nil
}

func init() {
	Register("ollama", createOllamaFactory)
}
