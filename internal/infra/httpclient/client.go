package httpclient

import (
	"net/http"
	"time"

	"github.com/quokkabay/quokkabay/internal/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// New returns the outbound client shared by the LLM providers and the identity
// provider. Requests are traced through otelhttp.
func New(cfg *config.Config) *http.Client {
	timeout := time.Duration(cfg.LLM.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}
