package services

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/bst-coder/irrigation-last/config"
)

// GroqClient talks to a Groq-compatible chat-completions API.
type GroqClient struct {
	client *resty.Client
	model  string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func NewGroqClient(cfg *config.Config) *GroqClient {
	client := resty.New().
		SetBaseURL(cfg.GroqAPIURL).
		SetAuthToken(cfg.GroqAPIKey).
		SetHeader("Content-Type", "application/json")
	return &GroqClient{client: client, model: cfg.GroqModel}
}

// Generate sends one system+user exchange and returns the assistant reply.
func (g *GroqClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	var out chatCompletionResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(chatCompletionRequest{
			Model: g.model,
			Messages: []chatMessage{
				{Role: "system", Content: system},
				{Role: "user", Content: prompt},
			},
		}).
		SetResult(&out).
		Post("/chat/completions")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("chat completion failed with status %d", resp.StatusCode())
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}
