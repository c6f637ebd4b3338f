package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/quokkabay/quokkabay/internal/config"
)

// Request is one single-turn completion.
type Request struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Completer returns the model's text for a request. An empty string with a nil error
// means the model produced no content. Implementations never retry.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
	Provider() string
}

// New builds the completer selected by llm.provider.
func New(ctx context.Context, cfg *config.Config, hc *http.Client) (Completer, error) {
	timeout := time.Duration(cfg.LLM.TimeoutSec) * time.Second

	switch cfg.LLM.Provider {
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.LLM.APIKey, cfg.LLM.BaseURL, timeout, hc), nil
	case config.ProviderAnthropic:
		return NewAnthropic(cfg.LLM.APIKey, cfg.LLM.BaseURL, timeout, hc), nil
	case config.ProviderGemini:
		return NewGemini(ctx, cfg.LLM.APIKey, cfg.LLM.BaseURL, hc)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.LLM.Provider)
	}
}
