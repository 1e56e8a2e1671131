// Package llm classifies unresolved bank transactions with a Gemini model.
// The rules engine resolves everything it can first; this package only sees
// the leftovers, in batches, and answers with account choices the pipeline
// merges back into partial entries.
package llm

import (
	"context"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	apperrors "github.com/midwestsb/autobooks/internal/shared/errors"
	"github.com/midwestsb/autobooks/pkg/logger"
)

// Config carries the model tiers and throttling for the Gemini client.
type Config struct {
	APIKey string
	// ModelDefault handles first-pass classification.
	ModelDefault string
	// ModelRetry handles transactions that already failed posting once.
	ModelRetry string
	// RequestsPerMinute throttles outbound calls across the whole process.
	RequestsPerMinute int
}

// DefaultConfig returns the client defaults used when env configuration
// leaves a field unset.
func DefaultConfig() Config {
	return Config{
		ModelDefault:      "gemini-2.0-flash",
		ModelRetry:        "gemini-2.5-pro",
		RequestsPerMinute: 30,
	}
}

// generator is the model call seam. Client implements it against the real
// Gemini API; tests substitute a canned implementation.
type generator interface {
	generate(ctx context.Context, model, system, user string) (string, usage, error)
}

type usage struct {
	tokensIn  int
	tokensOut int
}

// Client wraps the Gemini API with rate limiting and cost accounting.
type Client struct {
	genai   *genai.Client
	limiter *rate.Limiter
	cfg     Config
	log     *logger.Logger
}

// NewClient builds a Gemini-backed client. A missing API key is a
// configuration error: the pipeline refuses to start rather than fail on
// the first unclassified batch.
func NewClient(ctx context.Context, cfg Config, log *logger.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, apperrors.Configuration("GEMINI_API_KEY is not configured")
	}
	if cfg.ModelDefault == "" {
		cfg.ModelDefault = DefaultConfig().ModelDefault
	}
	if cfg.ModelRetry == "" {
		cfg.ModelRetry = DefaultConfig().ModelRetry
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = DefaultConfig().RequestsPerMinute
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, apperrors.Provider("create gemini client", err)
	}

	return &Client{
		genai:   gc,
		limiter: rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1),
		cfg:     cfg,
		log:     log,
	}, nil
}

func (c *Client) generate(ctx context.Context, model, system, user string) (string, usage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", usage{}, apperrors.Provider("rate limit wait", err)
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		ResponseMIMEType:  "application/json",
		ResponseSchema:    responseSchema(),
		Temperature:       genai.Ptr[float32](0),
	}

	start := time.Now()
	resp, err := c.genai.Models.GenerateContent(ctx, model, genai.Text(user), config)
	if err != nil {
		return "", usage{}, apperrors.Provider("generate content", err)
	}

	var u usage
	if resp.UsageMetadata != nil {
		u.tokensIn = int(resp.UsageMetadata.PromptTokenCount)
		u.tokensOut = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	text := resp.Text()
	c.log.WithField("model", model).
		WithField("tokens_in", u.tokensIn).
		WithField("tokens_out", u.tokensOut).
		WithDuration(time.Since(start)).
		Debug("model call completed")

	return text, u, nil
}
