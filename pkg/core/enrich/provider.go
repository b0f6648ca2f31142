// Package enrich adds optional LLM-derived annotations (sentiment, entities,
// topics) on top of a finished analysis. Annotations are strictly additive:
// enrichment never modifies extracted numbers or sections.
package enrich

import (
	"context"
)

// Provider is the interface for all LLM providers.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}
