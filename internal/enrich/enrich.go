// Package enrich sends terms the local pipeline could not standardize to the
// model API for cleanup. Calls are rate limited and every result is suitable
// for cache write-back so a term is only ever enriched once.
package enrich

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/medclean-cli/internal/resilience"
	"github.com/sells-group/medclean-cli/pkg/anthropic"
)

const systemPrompt = "You are a medical data cleaner."

const promptTemplate = `Clean and standardize the following term into proper medical terminology:
- Correct spelling errors
- Expand abbreviations
- Replace local terms with global medical terms

Text: %TEXT%
Output:`

// Options configures the cleaner.
type Options struct {
	Model     string
	MaxTokens int64
	// RatePerSecond caps API calls. Zero means 1 request per second.
	RatePerSecond float64
}

// Cleaner wraps the model API for single-term cleanup.
type Cleaner struct {
	client  anthropic.Client
	model   string
	maxTok  int64
	limiter *rate.Limiter
}

// New creates a Cleaner.
func New(client anthropic.Client, opts Options) *Cleaner {
	model := opts.Model
	if model == "" {
		model = "claude-haiku-4-5-20251001"
	}
	maxTok := opts.MaxTokens
	if maxTok <= 0 {
		maxTok = 64
	}
	rps := opts.RatePerSecond
	if rps <= 0 {
		rps = 1
	}
	return &Cleaner{
		client:  client,
		model:   model,
		maxTok:  maxTok,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// CleanTerm standardizes one term via the API. The returned string is the
// model's cleaned form; blank responses are an error so callers never cache
// an empty standardization.
func (c *Cleaner) CleanTerm(ctx context.Context, text string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "enrich: rate limit wait")
	}

	temp := 0.0
	req := anthropic.MessageRequest{
		Model:       c.model,
		MaxTokens:   c.maxTok,
		Temperature: &temp,
		System:      []anthropic.SystemBlock{{Text: systemPrompt}},
		Messages: []anthropic.Message{{
			Role:    "user",
			Content: strings.ReplaceAll(promptTemplate, "%TEXT%", text),
		}},
	}

	retryCfg := resilience.DefaultRetryConfig()
	retryCfg.OnRetry = resilience.RetryLogger("anthropic", "clean_term")
	resp, err := resilience.DoVal(ctx, retryCfg, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return c.client.CreateMessage(ctx, req)
	})
	if err != nil {
		return "", eris.Wrap(err, "enrich: clean term")
	}

	resp.Usage.LogCost(c.model, "enrich")

	cleaned := resp.Text()
	if cleaned == "" {
		return "", eris.Errorf("enrich: empty response for %q", text)
	}

	zap.L().Debug("term enriched",
		zap.String("original", text),
		zap.String("cleaned", cleaned),
	)
	return cleaned, nil
}
