package llm

import (
	"context"
	"strings"
	"time"
)

// Record captures the usage and estimated cost of one model call.
// Cost accounting is a side effect of classification, never part of its
// contract.
type Record struct {
	Date      time.Time
	Model     string
	TokensIn  int
	TokensOut int
	// Cost is the estimated charge in USD.
	Cost     float64
	Input    string
	Output   string
	Duration time.Duration
	Actor    string
}

// CostLog appends model usage records for observability.
type CostLog interface {
	Append(ctx context.Context, rec Record) error
}

// tierPricing is the per-token USD rate for a model family, matched by
// model name prefix. Rates follow published per-1M-token pricing.
type tierPricing struct {
	prefix  string
	inRate  float64
	outRate float64
}

var pricingTable = []tierPricing{
	{prefix: "gemini-2.0-flash", inRate: 0.10 / 1e6, outRate: 0.40 / 1e6},
	{prefix: "gemini-2.5-flash", inRate: 0.30 / 1e6, outRate: 2.50 / 1e6},
	{prefix: "gemini-2.5-pro", inRate: 1.25 / 1e6, outRate: 10.00 / 1e6},
}

// defaultPricing covers unknown models at the premium-tier rate so cost
// estimates err high rather than low.
var defaultPricing = tierPricing{inRate: 1.25 / 1e6, outRate: 10.00 / 1e6}

// EstimateCost returns the estimated USD cost of a call for the given model
// and token counts.
func EstimateCost(model string, tokensIn, tokensOut int) float64 {
	p := defaultPricing
	for _, t := range pricingTable {
		if strings.HasPrefix(model, t.prefix) {
			p = t
			break
		}
	}
	return float64(tokensIn)*p.inRate + float64(tokensOut)*p.outRate
}
