package llm

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

type GeminiCompleter struct {
	client *genai.Client
}

func NewGemini(ctx context.Context, apiKey, baseURL string, hc *http.Client) (*GeminiCompleter, error) {
	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if hc != nil {
		cc.HTTPClient = hc
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiCompleter{client: client}, nil
}

func (c *GeminiCompleter) Provider() string { return "gemini" }

func (c *GeminiCompleter) Complete(ctx context.Context, req Request) (string, error) {
	temperature := float32(req.Temperature)
	gcfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		Temperature:       &temperature,
	}
	if req.MaxTokens > 0 {
		gcfg.MaxOutputTokens = int32(req.MaxTokens)
	}

	resp, err := c.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), gcfg)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
