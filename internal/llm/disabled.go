package llm

import (
	"context"

	"github.com/midwestsb/autobooks/internal/classify"
	apperrors "github.com/midwestsb/autobooks/internal/shared/errors"
)

// Disabled stands in for the classifier when no API key is configured.
// Every call fails, so unresolved batches stay in place while the rule
// classifier keeps working.
type Disabled struct{}

func (Disabled) ClassifyExpenses(context.Context, []Request) ([]classify.AIResult, error) {
	return nil, apperrors.Configuration("AI classification is disabled: GEMINI_API_KEY is not set")
}

func (Disabled) ClassifyRevenues(context.Context, []Request) ([]classify.AIResult, error) {
	return nil, apperrors.Configuration("AI classification is disabled: GEMINI_API_KEY is not set")
}
