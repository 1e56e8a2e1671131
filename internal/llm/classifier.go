package llm

import (
	"context"
	"encoding/json"
	"time"

	"github.com/midwestsb/autobooks/internal/classify"
	"github.com/midwestsb/autobooks/internal/ledger"
	apperrors "github.com/midwestsb/autobooks/internal/shared/errors"
	"github.com/midwestsb/autobooks/pkg/logger"
)

// side selects which half of the chart the model classifies against.
type side int

const (
	sideExpense side = iota
	sideRevenue
)

// ChartProvider supplies the leaf accounts the model may choose from.
type ChartProvider interface {
	ChartExcerpt(ctx context.Context, roots []ledger.RootType) ([]*ledger.Account, error)
}

// Classifier turns batches of unresolved transactions into AI account
// choices. It is stateless between calls; batching and merge-back are the
// pipeline's job.
type Classifier struct {
	gen   generator
	chart ChartProvider
	costs CostLog
	cfg   Config
	log   *logger.Logger
}

// NewClassifier builds a classifier over an initialized Gemini client.
func NewClassifier(client *Client, chart ChartProvider, costs CostLog, log *logger.Logger) *Classifier {
	return &Classifier{
		gen:   client,
		chart: chart,
		costs: costs,
		cfg:   client.cfg,
		log:   log,
	}
}

// ClassifyExpenses asks the model to pick expense accounts for outflow
// partials. Transactions the model omits are absent from the result.
func (c *Classifier) ClassifyExpenses(ctx context.Context, reqs []Request) ([]classify.AIResult, error) {
	return c.classifyBatch(ctx, reqs, sideExpense)
}

// ClassifyRevenues asks the model to pick income accounts for inflow
// partials.
func (c *Classifier) ClassifyRevenues(ctx context.Context, reqs []Request) ([]classify.AIResult, error) {
	return c.classifyBatch(ctx, reqs, sideRevenue)
}

func (c *Classifier) classifyBatch(ctx context.Context, reqs []Request, s side) ([]classify.AIResult, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	roots := []ledger.RootType{ledger.RootExpense}
	if s == sideRevenue {
		roots = []ledger.RootType{ledger.RootIncome}
	}
	accounts, err := c.chart.ChartExcerpt(ctx, roots)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, apperrors.Configuration("chart of accounts has no leaf accounts for classification")
	}

	system := systemPrompt(s, isRetry(reqs))
	user, err := userPrompt(accounts, reqs)
	if err != nil {
		return nil, apperrors.Internal("build classification prompt", err)
	}

	model := c.model(reqs)
	start := time.Now()
	text, u, err := c.gen.generate(ctx, model, system, user)
	if err != nil {
		return nil, err
	}
	c.recordCost(ctx, model, u, user, text, time.Since(start))

	results, err := parseResults(text)
	if err != nil {
		return nil, err
	}

	c.log.WithField("model", model).
		WithField("requested", len(reqs)).
		WithField("classified", len(results)).
		Info("batch classified")
	return results, nil
}

// model escalates to the retry tier when the batch is a retry pass.
func (c *Classifier) model(reqs []Request) string {
	if isRetry(reqs) {
		return c.cfg.ModelRetry
	}
	return c.cfg.ModelDefault
}

func isRetry(reqs []Request) bool {
	for _, r := range reqs {
		if r.Retry {
			return true
		}
	}
	return false
}

// recordCost is best effort. A failed cost write must never fail the
// classification that produced it.
func (c *Classifier) recordCost(ctx context.Context, model string, u usage, input, output string, d time.Duration) {
	if c.costs == nil {
		return
	}
	rec := Record{
		Date:      time.Now().UTC(),
		Model:     model,
		TokensIn:  u.tokensIn,
		TokensOut: u.tokensOut,
		Cost:      EstimateCost(model, u.tokensIn, u.tokensOut),
		Input:     input,
		Output:    output,
		Duration:  d,
		Actor:     "classifier",
	}
	if err := c.costs.Append(ctx, rec); err != nil {
		c.log.WithError(err).Warn("failed to append cost record")
	}
}

type modelResponse struct {
	Results []modelResult `json:"results"`
}

type modelResult struct {
	Name    string       `json:"name"`
	Entries []modelEntry `json:"entries"`
}

type modelEntry struct {
	Account    string  `json:"account"`
	Memo       string  `json:"memo"`
	Confidence float64 `json:"confidence"`
}

func parseResults(text string) ([]classify.AIResult, error) {
	var resp modelResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, apperrors.Provider("decode model response", err)
	}

	results := make([]classify.AIResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		entries := make([]classify.AIEntry, 0, len(r.Entries))
		for _, e := range r.Entries {
			entries = append(entries, classify.AIEntry{
				Account:    e.Account,
				Memo:       e.Memo,
				Confidence: e.Confidence,
			})
		}
		results = append(results, classify.AIResult{Name: r.Name, Entries: entries})
	}
	return results, nil
}
