package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements IntentClassifier using Google's Gemini models.
type GeminiProvider struct {
	client   *genai.Client
	model    *genai.GenerativeModel
	fallback *KeywordClassifier
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Flash keeps classification latency well under the routing calls.
	model := client.GenerativeModel("gemini-2.0-flash")

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.2)

	return &GeminiProvider{
		client:   client,
		model:    model,
		fallback: NewKeywordClassifier(),
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// ClassifyIntent extracts a venue category from the user's free-text intent.
// Any model or parsing failure falls back to keyword matching so the caller
// always receives a usable category.
func (p *GeminiProvider) ClassifyIntent(ctx context.Context, text string) (InterpretedIntent, error) {
	prompt := fmt.Sprintf("%s\n\nUser request: %s", classifierPrompt(), text)

	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Printf("gemini classify: %v", err)
		return p.fallback.ClassifyIntent(ctx, text)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		log.Printf("gemini classify: no response candidates")
		return p.fallback.ClassifyIntent(ctx, text)
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	// JSON mode should already be clean; strip markdown fences anyway.
	cleanJSON := cleanJSONString(responseText.String())

	var result InterpretedIntent
	if err := json.Unmarshal([]byte(cleanJSON), &result); err != nil {
		log.Printf("gemini classify: parse response: %v (raw: %s)", err, cleanJSON)
		return p.fallback.ClassifyIntent(ctx, text)
	}
	if result.Category == "" {
		return p.fallback.ClassifyIntent(ctx, text)
	}
	result.Category = strings.ToLower(result.Category)
	return result, nil
}

func classifierPrompt() string {
	return fmt.Sprintf(`Role: You interpret requests for meeting places.
Understand what type of venue the user wants and extract search criteria.
Be flexible with common phrases like "grab a coffee", "have lunch", "go for drinks".
Extract specific requirements like "quiet", "outdoor seating", "dog-friendly" as keywords.

Output JSON Schema:
{
  "category": one of [%s],
  "subcategory": "string, more specific type if applicable (e.g. 'italian' for restaurant), else omit",
  "keywords": ["string", additional search keywords from the request]
}
Respond with the JSON object only.`, strings.Join(Categories, ", "))
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
