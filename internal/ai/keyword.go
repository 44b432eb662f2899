package ai

import (
	"context"
	"strings"
)

// KeywordClassifier is the deterministic fallback used when no Gemini key is
// configured or the model call fails. It never returns an error.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

// Ordered so more specific categories win over "restaurant".
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"cafe", []string{"coffee", "cafe", "latte", "espresso"}},
	{"bar", []string{"bar", "pub", "drinks", "beer", "cocktail", "wine"}},
	{"park", []string{"park", "outdoor", "nature", "walk", "picnic"}},
	{"beach", []string{"beach", "seaside", "coast", "ocean"}},
	{"gym", []string{"gym", "workout", "fitness", "exercise"}},
	{"cinema", []string{"cinema", "movie", "film"}},
	{"museum", []string{"museum", "gallery", "exhibition", "art"}},
	{"shopping", []string{"shop", "mall", "store", "buy"}},
	{"restaurant", []string{"lunch", "dinner", "eat", "food", "restaurant", "brunch", "breakfast"}},
}

func (c *KeywordClassifier) ClassifyIntent(_ context.Context, text string) (InterpretedIntent, error) {
	lower := strings.ToLower(text)
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return InterpretedIntent{Category: entry.category, Keywords: []string{text}}, nil
			}
		}
	}
	// Default to restaurant, the broadest useful category.
	return InterpretedIntent{Category: "restaurant", Keywords: []string{text}}, nil
}
