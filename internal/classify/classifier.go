// Package classify determines a news item's recency and domain categories
// by prompting the generative-text provider, and resolves URL inputs into
// text bodies.
package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/factlens/factlens/internal/llm"
	"github.com/factlens/factlens/internal/model"
)

// Classifier categorizes news text along the two axes the pipeline branches
// on: recency and misinformation domain.
type Classifier struct {
	provider llm.Provider
}

// NewClassifier creates a classifier over the given provider
func NewClassifier(provider llm.Provider) *Classifier {
	return &Classifier{provider: provider}
}

// Classification carries the parsed model output
type Classification struct {
	Recency model.RecencyCategory
	Domain  model.DomainCategory
	// Raw is the unparsed model output, kept for result objects
	Raw string
}

func classificationPrompt(newsText string) string {
	return fmt.Sprintf(`Categorize the following news text into two aspects:
1. News Type: 'Real-time News' or 'Evergreen News'.
   - Real-time news refers to current events, breaking news, or topics with a short shelf-life.
   - Evergreen news refers to content that remains relevant over a long period, often educational, how-to, or historical.
2. Misinformation Domain: 'Health', 'Finance', 'General', or 'Other'.
   - Health misinformation relates to medical treatments, diseases, or public health.
   - Finance misinformation relates to investments, economic claims, or financial advice.
   - General misinformation covers social, political, or miscellaneous topics not falling into Health or Finance.
   - Other is for categories not explicitly listed.

News Text: %s

Please provide the output in the format: News Type: [Category], Misinformation Domain: [Category].`, newsText)
}

// Classify asks the model for the two categories and parses its answer
func (c *Classifier) Classify(ctx context.Context, newsText string) (*Classification, error) {
	if c.provider == nil {
		return nil, fmt.Errorf("no LLM provider configured")
	}

	out, err := c.provider.Generate(ctx, llm.GenerateRequest{
		Prompt:      classificationPrompt(newsText),
		Temperature: 0.2,
		MaxTokens:   60,
	})
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	parsed := ParseClassification(out)
	return parsed, nil
}

// ParseClassification extracts the categories from model output of the form
// "News Type: [X], Misinformation Domain: [Y]", tolerating surrounding
// prose, brackets and case drift. Unparsable axes stay empty.
func ParseClassification(out string) *Classification {
	cls := &Classification{Raw: out}

	newsType := fieldAfter(out, "News Type:")
	domain := fieldAfter(out, "Misinformation Domain:")

	switch {
	case strings.Contains(strings.ToLower(newsType), "evergreen"):
		cls.Recency = model.RecencyEvergreen
	case strings.Contains(strings.ToLower(newsType), "real-time"),
		strings.Contains(strings.ToLower(newsType), "realtime"):
		cls.Recency = model.RecencyRealtime
	}

	switch {
	case strings.EqualFold(domain, "health"):
		cls.Domain = model.DomainHealth
	case strings.EqualFold(domain, "finance"):
		cls.Domain = model.DomainFinance
	case strings.EqualFold(domain, "general"):
		cls.Domain = model.DomainGeneral
	case strings.EqualFold(domain, "other"):
		cls.Domain = model.DomainOther
	}

	return cls
}

// fieldAfter returns the cleaned token following the label, up to the next
// comma or line break
func fieldAfter(s, label string) string {
	idx := strings.Index(s, label)
	if idx < 0 {
		return ""
	}

	rest := s[idx+len(label):]
	if end := strings.IndexAny(rest, ",\n"); end >= 0 {
		rest = rest[:end]
	}

	rest = strings.TrimSpace(rest)
	rest = strings.Trim(rest, "[]'\".")
	rest = strings.TrimSuffix(rest, " News")
	return strings.TrimSpace(rest)
}
