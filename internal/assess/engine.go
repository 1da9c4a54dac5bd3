// Package assess invokes the generative-text provider to summarize
// corroborating content, produce media-literacy suggestions, and render a
// verdict comparing the claim against scraped sources.
package assess

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/factlens/factlens/internal/llm"
	"github.com/factlens/factlens/internal/model"
)

// Fallback strings returned when an individual model call fails. A failure
// in one call never aborts the others.
const (
	SummaryFallback   = "Summarization failed due to an error."
	EducationFallback = "Further education suggestions could not be generated."
	VerdictFallback   = "Fact-checking failed due to an error."
)

// Engine runs the three independent assessment calls. Each call carries its
// own generation parameters.
type Engine struct {
	provider llm.Provider
}

// NewEngine creates an assessment engine over the given provider. A nil
// provider makes every call return its fallback string.
func NewEngine(provider llm.Provider) *Engine {
	return &Engine{provider: provider}
}

// Summarize produces a short summary of the scraped corroborating content
func (e *Engine) Summarize(ctx context.Context, contents []string) string {
	combined := strings.Join(contents, "\n\n")

	out, err := e.generate(ctx, llm.GenerateRequest{
		Prompt:      summaryPrompt(combined),
		Temperature: 0.2,
		MaxTokens:   500,
	})
	if err != nil {
		log.Printf("assess: summarization failed: %v", err)
		return SummaryFallback
	}
	return out
}

// Educate produces 3-5 media-literacy suggestions for the claim's domain
func (e *Engine) Educate(ctx context.Context, newsText string, domain model.DomainCategory) string {
	out, err := e.generate(ctx, llm.GenerateRequest{
		Prompt:      educationPrompt(newsText, domain),
		Temperature: 0.3,
		MaxTokens:   300,
	})
	if err != nil {
		log.Printf("assess: education suggestions failed: %v", err)
		return EducationFallback
	}
	return out
}

// Verdict compares the claim against the scraped content and renders a
// natural-language verdict in the vocabulary of the recency category
func (e *Engine) Verdict(ctx context.Context, newsText string, contents []string, recency model.RecencyCategory) string {
	combined := strings.Join(contents, " ")

	req := llm.GenerateRequest{
		Prompt:      evergreenVerdictPrompt(newsText, combined),
		Temperature: 0.1,
		MaxTokens:   300,
	}
	if recency == model.RecencyRealtime {
		req.Prompt = realtimeVerdictPrompt(newsText, combined)
		req.MaxTokens = 400
	}

	out, err := e.generate(ctx, req)
	if err != nil {
		log.Printf("assess: verdict failed: %v", err)
		return VerdictFallback
	}
	return out
}

// TrustScore derives the numeric trust score from a verdict string
func (e *Engine) TrustScore(assessment string, recency model.RecencyCategory) float64 {
	if recency == model.RecencyRealtime {
		return TrustScoreRealtime(assessment)
	}
	return TrustScoreEvergreen(assessment)
}

func (e *Engine) generate(ctx context.Context, req llm.GenerateRequest) (string, error) {
	if e.provider == nil {
		return "", errNoProvider
	}
	return e.provider.Generate(ctx, req)
}

var errNoProvider = errors.New("no LLM provider configured")
