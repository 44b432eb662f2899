package ai

import (
	"context"
)

// IntentClassifier turns free-text meeting intent into a structured venue
// category. Implementations must degrade to a default category on upstream
// failure rather than block the pipeline.
type IntentClassifier interface {
	// ClassifyIntent analyzes text like "grab a quiet coffee" and extracts
	// the venue category, optional subcategory, and search keywords.
	ClassifyIntent(ctx context.Context, text string) (InterpretedIntent, error)
}
