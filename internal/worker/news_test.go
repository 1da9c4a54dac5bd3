package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/factlens/factlens/internal/classify"
	"github.com/factlens/factlens/internal/llm"
	"github.com/factlens/factlens/internal/model"
	"github.com/factlens/factlens/internal/pipeline"
)

// fixedProvider answers every generation request with the same string
type fixedProvider struct {
	output string
	err    error
}

func (p *fixedProvider) Name() string                         { return "fixed" }
func (p *fixedProvider) IsAvailable(ctx context.Context) bool { return true }
func (p *fixedProvider) Generate(ctx context.Context, req llm.GenerateRequest) (string, error) {
	return p.output, p.err
}

type stubSearcher struct{ urls []string }

func (s *stubSearcher) Search(ctx context.Context, query string, domain model.DomainCategory, recency model.RecencyCategory) []string {
	return s.urls
}

type stubScraper struct{ contents []string }

func (s *stubScraper) ScrapeAll(ctx context.Context, urls []string) []string {
	return s.contents
}

type stubAssessor struct{}

func (s *stubAssessor) Summarize(ctx context.Context, contents []string) string { return "summary" }
func (s *stubAssessor) Educate(ctx context.Context, newsText string, domain model.DomainCategory) string {
	return "education"
}
func (s *stubAssessor) Verdict(ctx context.Context, newsText string, contents []string, recency model.RecencyCategory) string {
	return "The claim is True."
}
func (s *stubAssessor) TrustScore(assessment string, recency model.RecencyCategory) float64 {
	return 9.0
}

func testProcessor(classification string, urls []string) *Processor {
	resolver := classify.NewResolver(time.Second, "test-agent", 1<<20)
	classifier := classify.NewClassifier(&fixedProvider{output: classification})
	checker := pipeline.NewChecker(
		&stubSearcher{urls: urls},
		&stubScraper{contents: []string{"scraped content"}},
		&stubAssessor{},
		nil,
	)
	return NewProcessor(resolver, classifier, checker, 4)
}

func TestProcessAll_FullFactCheck(t *testing.T) {
	p := testProcessor(
		"News Type: Evergreen News, Misinformation Domain: Health",
		[]string{"https://www.cdc.gov/page"},
	)

	results := p.ProcessAll(context.Background(), []NewsItem{
		{ID: "item-1", Text: "Eating rice makes you fat"},
	})

	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	r := results[0]

	if r.ID != "item-1" {
		t.Errorf("Expected caller-assigned ID to survive, got %s", r.ID)
	}
	if r.ItemStatus != "processed" {
		t.Errorf("Expected status processed, got %s", r.ItemStatus)
	}
	if r.NewsType != "Evergreen" || r.MisinfoDomain != "Health" {
		t.Errorf("Unexpected classification: %s / %s", r.NewsType, r.MisinfoDomain)
	}
	if r.Report == nil {
		t.Fatal("Expected an attached fact-check report")
	}
	if !r.FactCheckCompleted || !r.Report.Success {
		t.Errorf("Expected a completed fact-check, got completed=%v success=%v", r.FactCheckCompleted, r.Report.Success)
	}
	if r.Report.TrustScore != 9.0 {
		t.Errorf("Expected trust score 9.0, got %v", r.Report.TrustScore)
	}
}

func TestProcessAll_UnrecognizedRecencySkipsFactCheck(t *testing.T) {
	p := testProcessor("I cannot categorize this.", nil)

	results := p.ProcessAll(context.Background(), []NewsItem{{Text: "some claim"}})
	r := results[0]

	if r.ItemStatus != "processed" {
		t.Errorf("Classification alone still counts as processed, got %s", r.ItemStatus)
	}
	if r.Report != nil {
		t.Errorf("Fact-check must not run without a recognized recency")
	}
	if r.FactCheckCompleted {
		t.Errorf("Expected fact_check_completed=false")
	}
	if r.ID == "" {
		t.Errorf("Expected a generated ID for items without one")
	}
}

func TestProcessAll_EmptyItem(t *testing.T) {
	p := testProcessor("News Type: Evergreen News, Misinformation Domain: General", nil)

	results := p.ProcessAll(context.Background(), []NewsItem{{}})
	r := results[0]

	if r.ItemStatus != "failed" {
		t.Errorf("Expected status failed, got %s", r.ItemStatus)
	}
	if r.Error == "" {
		t.Errorf("Expected an error message for an empty item")
	}
}

func TestProcessAll_ClassificationFailure(t *testing.T) {
	resolver := classify.NewResolver(time.Second, "test-agent", 1<<20)
	classifier := classify.NewClassifier(&fixedProvider{err: context.DeadlineExceeded})
	checker := pipeline.NewChecker(&stubSearcher{}, &stubScraper{}, &stubAssessor{}, nil)
	p := NewProcessor(resolver, classifier, checker, 2)

	results := p.ProcessAll(context.Background(), []NewsItem{{Text: "claim"}})
	r := results[0]

	if r.ItemStatus != "failed" {
		t.Errorf("Expected status failed, got %s", r.ItemStatus)
	}
	if r.GetError() == nil {
		t.Errorf("Expected GetError to surface the failure")
	}
}

func TestItemResult_JSONInlinesReport(t *testing.T) {
	p := testProcessor(
		"News Type: Evergreen News, Misinformation Domain: Health",
		[]string{"https://www.cdc.gov/page"},
	)

	results := p.ProcessAll(context.Background(), []NewsItem{{ID: "j1", Text: "claim"}})
	data, err := json.Marshal(results[0])
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	// Report fields sit at the top level next to the item fields
	if flat["trust_score"] != 9.0 {
		t.Errorf("Expected inlined trust_score, got %v", flat["trust_score"])
	}
	if flat["fact_check_completed"] != true {
		t.Errorf("Expected fact_check_completed=true, got %v", flat["fact_check_completed"])
	}

	// Item status and report status travel under separate keys
	if flat["status"] != "processed" {
		t.Errorf("Expected item status processed, got %v", flat["status"])
	}
	if flat["fact_check_status"] != "completed" {
		t.Errorf("Expected report status completed, got %v", flat["fact_check_status"])
	}
}

func TestItemResult_JSONCarriesEarlyExitStatus(t *testing.T) {
	// No trusted sources: the report ends in an early exit whose status must
	// survive serialization next to the item-level status
	p := testProcessor(
		"News Type: Evergreen News, Misinformation Domain: Health",
		nil,
	)

	results := p.ProcessAll(context.Background(), []NewsItem{{ID: "n1", Text: "claim"}})
	data, err := json.Marshal(results[0])
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if flat["status"] != "processed" {
		t.Errorf("Expected item status processed, got %v", flat["status"])
	}
	if flat["fact_check_status"] != "no_sources" {
		t.Errorf("Expected report status no_sources, got %v", flat["fact_check_status"])
	}
	if flat["success"] != false {
		t.Errorf("Expected success=false, got %v", flat["success"])
	}
}
