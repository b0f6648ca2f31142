package enrich

import (
	"context"
	"fmt"
	"strings"

	"filinglens/pkg/core/section"
	"filinglens/pkg/core/utils"
	"filinglens/pkg/models"
)

// maxSectionChars bounds how much section text goes into the prompt. MD&A
// sections run to hundreds of KB; the opening carries the tone.
const maxSectionChars = 12000

const systemPrompt = `You are a financial filing analyst. Respond ONLY with a JSON object of this shape:
{"sentiment": "positive|neutral|negative", "sentiment_score": -1.0 to 1.0, "entities": ["..."], "topics": ["..."]}
Entities are companies, products, and people named in the text. Topics are the dominant business themes.`

// annotationResponse is the expected model output shape.
type annotationResponse struct {
	Sentiment      string   `json:"sentiment"`
	SentimentScore *float64 `json:"sentiment_score"`
	Entities       []string `json:"entities"`
	Topics         []string `json:"topics"`
}

// LLMEnricher annotates analysis results via an LLM provider. It satisfies
// the analyzer's Enricher interface.
type LLMEnricher struct {
	provider Provider
	name     string
}

// NewLLMEnricher wraps a provider. The name is recorded on annotations so
// consumers know which model produced them.
func NewLLMEnricher(provider Provider, name string) *LLMEnricher {
	return &LLMEnricher{provider: provider, name: name}
}

// Annotate asks the provider for sentiment, entities, and topics over the
// filing's narrative sections.
func (e *LLMEnricher) Annotate(ctx context.Context, result models.AnalysisResult) (*models.EnrichmentAnnotations, error) {
	prompt := buildPrompt(result)
	if prompt == "" {
		return nil, fmt.Errorf("no narrative sections to enrich")
	}

	raw, err := e.provider.GenerateResponse(ctx, prompt, systemPrompt, map[string]interface{}{
		"response_format": map[string]interface{}{"type": "json_object"},
	})
	if err != nil {
		return nil, err
	}

	var resp annotationResponse
	if _, err := utils.SmartParse(raw, &resp); err != nil {
		return nil, fmt.Errorf("unparseable enrichment response: %w", err)
	}

	return &models.EnrichmentAnnotations{
		Sentiment:      resp.Sentiment,
		SentimentScore: resp.SentimentScore,
		Entities:       resp.Entities,
		Topics:         resp.Topics,
		Provider:       e.name,
	}, nil
}

// buildPrompt assembles the narrative text to annotate: MD&A first, risk
// factors second, full document as a last resort.
func buildPrompt(result models.AnalysisResult) string {
	var parts []string
	for _, name := range []string{
		section.NameManagementDiscussion,
		section.NameOperatingReview,
		section.NameRiskFactors,
	} {
		if sec := result.Sections.Get(name); sec != nil {
			parts = append(parts, truncate(sec.Content, maxSectionChars))
		}
	}
	if len(parts) == 0 {
		if sec := result.Sections.Get(models.FallbackSectionName); sec != nil {
			parts = append(parts, truncate(sec.Content, maxSectionChars))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "Analyze the following filing excerpts:\n\n" + strings.Join(parts, "\n\n---\n\n")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
