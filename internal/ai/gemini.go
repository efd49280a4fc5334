package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-2.0-flash"

// GeminiProvider implements IntentModel using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(geminiModel)

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"

	// Low temperature: classification should be near-deterministic.
	model.SetTemperature(0.1)

	// The answer is a small JSON object; bound the output so a runaway
	// completion cannot blow up latency or cost.
	model.SetMaxOutputTokens(512)

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// ClassifyService asks Gemini to pick the catalog service that best matches
// the user's problem description.
func (p *GeminiProvider) ClassifyService(ctx context.Context, description string, services []ServiceOption) (*Classification, error) {
	prompt := buildClassifyPrompt(description, services)

	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	// Clean up potential markdown formatting (JSON mode should prevent it,
	// safety first).
	cleanJSON := cleanJSONString(responseText.String())

	var result Classification
	if err := json.Unmarshal([]byte(cleanJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleanJSON)
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model answer: %w. Raw: %s", err, cleanJSON)
	}

	return &result, nil
}

// buildClassifyPrompt constructs the instructions for the AI.
func buildClassifyPrompt(description string, services []ServiceOption) string {
	var list strings.Builder
	for _, svc := range services {
		fmt.Fprintf(&list, "- %s | categoría: %s | precio: %s | popularidad: %d\n",
			svc.Name, svc.Category, svc.PriceLabel, svc.Popularity)
	}

	return fmt.Sprintf(`Role: You are the service-matching core for "Manitas", a home-services marketplace in Mexico.

A client described a problem at home. Pick the SINGLE service from the catalog below that best matches it.

RULES:
1. You MUST pick service_name EXACTLY as it appears in the catalog list. Never invent a service.
2. Prefer the MOST SPECIFIC match. If the user says "lámpara", a narrow "Instalación de Lámpara" entry beats a broad "Actualización de Panel Eléctrico" entry.
3. "discipline" MUST be the categoría of the chosen service.
4. "urgency" is one of "alta", "media", "baja" based on how pressing the problem sounds. Default "media".
5. "confidence" is your certainty in [0,1] that the chosen service is what the client needs.
6. "alternatives" lists up to 3 other catalog service names in the same categoría, best first.
7. Answer in Spanish in the "reasoning" field, one or two short sentences a client can read.

CATALOG:
%s
Problem description: %s

Output STRICT JSON only, no prose, matching this schema:
{
  "service_name": "string (exact catalog name)",
  "discipline": "string (categoría)",
  "confidence": 0.0,
  "reasoning": "string",
  "matched_keywords": ["string"],
  "urgency": "alta" | "media" | "baja",
  "price_estimate": {"min": 0, "max": 0},
  "alternatives": ["string"]
}
`, list.String(), description)
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
