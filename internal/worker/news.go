package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/factlens/factlens/internal/classify"
	"github.com/factlens/factlens/internal/model"
	"github.com/factlens/factlens/internal/pipeline"
)

// NewsItem is one inbound unit of work: free text or a URL, with an
// optional caller-assigned identifier.
type NewsItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	URL  string `json:"url"`
}

// ItemResult is the per-item output object. The fact-check report fields
// are inlined via embedding, mirroring the merged result shape consumers
// expect.
type ItemResult struct {
	ID                 string `json:"id"`
	OriginalText       string `json:"original_text,omitempty"`
	OriginalURL        string `json:"original_url,omitempty"`
	ProcessedContent   string `json:"processed_content,omitempty"`
	RawClassification  string `json:"raw_classification,omitempty"`
	NewsType           string `json:"news_type"`
	MisinfoDomain      string `json:"misinformation_domain"`
	ItemStatus         string `json:"status"`
	Error              string `json:"error,omitempty"`
	Timestamp          string `json:"timestamp"`
	FactCheckCompleted bool   `json:"fact_check_completed"`

	*model.Report
}

// GetError satisfies the Result interface
func (r *ItemResult) GetError() error {
	if r.Error != "" {
		return fmt.Errorf("%s", r.Error)
	}
	return nil
}

// Processor resolves, classifies and fact-checks news items
type Processor struct {
	resolver   *classify.Resolver
	classifier *classify.Classifier
	checker    *pipeline.Checker
	workers    int
}

// NewProcessor creates a processor over the given collaborators
func NewProcessor(resolver *classify.Resolver, classifier *classify.Classifier, checker *pipeline.Checker, workers int) *Processor {
	return &Processor{
		resolver:   resolver,
		classifier: classifier,
		checker:    checker,
		workers:    workers,
	}
}

// ProcessAll runs every item through the pool and returns results in item
// order
func (p *Processor) ProcessAll(ctx context.Context, items []NewsItem) []*ItemResult {
	jobs := make([]Job, len(items))
	for i, item := range items {
		jobs[i] = &newsJob{item: item, processor: p}
	}

	results := Run(ctx, p.workers, jobs)

	out := make([]*ItemResult, len(results))
	for i, res := range results {
		if ir, ok := res.(*ItemResult); ok {
			out[i] = ir
			continue
		}
		out[i] = &ItemResult{
			ID:         items[i].ID,
			ItemStatus: "failed",
			Error:      fmt.Sprintf("processing cancelled: %v", res.GetError()),
			Timestamp:  time.Now().Format(time.RFC3339),
		}
	}
	return out
}

// newsJob adapts one item to the pool's Job interface
type newsJob struct {
	item      NewsItem
	processor *Processor
}

// Execute processes a single news item end to end
func (j *newsJob) Execute(ctx context.Context) Result {
	return j.processor.processOne(ctx, j.item)
}

func (p *Processor) processOne(ctx context.Context, item NewsItem) *ItemResult {
	result := &ItemResult{
		ID:           item.ID,
		OriginalText: item.Text,
		OriginalURL:  item.URL,
		Timestamp:    time.Now().Format(time.RFC3339),
		ItemStatus:   "failed",
	}
	if result.ID == "" {
		result.ID = uuid.NewString()
	}

	input := item.Text
	if input == "" {
		input = item.URL
	}
	if input == "" {
		result.Error = "No text or URL provided"
		return result
	}

	log.Printf("worker: processing news item %s", result.ID)

	content, err := p.resolver.Resolve(ctx, input)
	if err != nil {
		result.Error = fmt.Sprintf("Could not process input content: %v", err)
		return result
	}
	result.ProcessedContent = content

	cls, err := p.classifier.Classify(ctx, content)
	if err != nil {
		result.Error = fmt.Sprintf("Could not categorize news: %v", err)
		return result
	}
	result.RawClassification = cls.Raw
	result.NewsType = string(cls.Recency)
	result.MisinfoDomain = string(cls.Domain)
	result.ItemStatus = "processed"

	if !cls.Recency.Recognized() {
		return result
	}

	claim := model.Claim{
		ID:      result.ID,
		Text:    content,
		Recency: cls.Recency,
		Domain:  cls.Domain,
	}
	result.Report = p.checker.Run(ctx, claim)
	result.FactCheckCompleted = result.Report.Success

	return result
}
