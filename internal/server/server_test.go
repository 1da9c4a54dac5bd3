package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/factlens/factlens/internal/classify"
	"github.com/factlens/factlens/internal/config"
	"github.com/factlens/factlens/internal/llm"
	"github.com/factlens/factlens/internal/model"
	"github.com/factlens/factlens/internal/pipeline"
	"github.com/factlens/factlens/internal/worker"
)

type fixedProvider struct {
	output string
}

func (p *fixedProvider) Name() string                         { return "fixed" }
func (p *fixedProvider) IsAvailable(ctx context.Context) bool { return true }
func (p *fixedProvider) Generate(ctx context.Context, req llm.GenerateRequest) (string, error) {
	return p.output, nil
}

type emptySearcher struct{}

func (s *emptySearcher) Search(ctx context.Context, query string, domain model.DomainCategory, recency model.RecencyCategory) []string {
	return nil
}

type emptyScraper struct{}

func (s *emptyScraper) ScrapeAll(ctx context.Context, urls []string) []string { return nil }

type emptyAssessor struct{}

func (s *emptyAssessor) Summarize(ctx context.Context, contents []string) string { return "" }
func (s *emptyAssessor) Educate(ctx context.Context, newsText string, domain model.DomainCategory) string {
	return ""
}
func (s *emptyAssessor) Verdict(ctx context.Context, newsText string, contents []string, recency model.RecencyCategory) string {
	return ""
}
func (s *emptyAssessor) TrustScore(assessment string, recency model.RecencyCategory) float64 {
	return 0.0
}

func testServer(t *testing.T) (*Server, string) {
	t.Helper()

	dir := t.TempDir()
	cfg := config.ServerConfig{
		UploadDir:     filepath.Join(dir, "uploads"),
		ResultsDir:    filepath.Join(dir, "results"),
		MaxUploadSize: 16 << 20,
	}

	resolver := classify.NewResolver(time.Second, "test-agent", 1<<20)
	classifier := classify.NewClassifier(&fixedProvider{
		output: "News Type: Evergreen News, Misinformation Domain: Health",
	})
	checker := pipeline.NewChecker(&emptySearcher{}, &emptyScraper{}, &emptyAssessor{}, nil)
	processor := worker.NewProcessor(resolver, classifier, checker, 2)

	return New(cfg, processor), cfg.ResultsDir
}

func doRequest(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := testServer(t)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("Expected status healthy, got %v", body["status"])
	}
}

func TestCategorize_SingleItem(t *testing.T) {
	s, resultsDir := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/categorize",
		strings.NewReader(`{"id": "n1", "text": "Eating rice makes you fat"}`))
	w := doRequest(s, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		ProcessedCount int    `json:"processed_count"`
		Status         string `json:"status"`
		ResultsFile    string `json:"results_file"`
		Results        []struct {
			ID            string `json:"id"`
			NewsType      string `json:"news_type"`
			MisinfoDomain string `json:"misinformation_domain"`
			ItemStatus    string `json:"status"`
		} `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	if resp.ProcessedCount != 1 || resp.Status != "completed" {
		t.Errorf("Unexpected batch header: count=%d status=%s", resp.ProcessedCount, resp.Status)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(resp.Results))
	}
	r := resp.Results[0]
	if r.ID != "n1" || r.NewsType != "Evergreen" || r.MisinfoDomain != "Health" {
		t.Errorf("Unexpected result: %+v", r)
	}
	if r.ItemStatus != "processed" {
		t.Errorf("Expected status processed, got %s", r.ItemStatus)
	}

	// Aggregate snapshot persisted under a timestamped filename
	if resp.ResultsFile == "" {
		t.Fatal("Expected a results_file in the response")
	}
	if _, err := os.Stat(filepath.Join(resultsDir, resp.ResultsFile)); err != nil {
		t.Errorf("Results file not written: %v", err)
	}
}

func TestCategorize_ArrayAndWrapperShapes(t *testing.T) {
	s, _ := testServer(t)

	bodies := []string{
		`[{"text": "claim one"}, {"text": "claim two"}]`,
		`{"news_items": [{"text": "claim one"}, {"text": "claim two"}]}`,
	}

	for _, body := range bodies {
		w := doRequest(s, httptest.NewRequest(http.MethodPost, "/categorize", strings.NewReader(body)))
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200 for body %s, got %d", body, w.Code)
		}

		var resp struct {
			ProcessedCount int `json:"processed_count"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Invalid JSON: %v", err)
		}
		if resp.ProcessedCount != 2 {
			t.Errorf("Expected 2 processed items for body %s, got %d", body, resp.ProcessedCount)
		}
	}
}

func TestCategorize_EmptyWrapperIsEmptyBatch(t *testing.T) {
	s, _ := testServer(t)

	w := doRequest(s, httptest.NewRequest(http.MethodPost, "/categorize",
		strings.NewReader(`{"news_items": []}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for an empty batch, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		ProcessedCount int    `json:"processed_count"`
		Status         string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if resp.ProcessedCount != 0 || resp.Status != "completed" {
		t.Errorf("Expected an empty completed batch, got count=%d status=%s", resp.ProcessedCount, resp.Status)
	}
}

func TestCategorize_InvalidBody(t *testing.T) {
	s, _ := testServer(t)

	w := doRequest(s, httptest.NewRequest(http.MethodPost, "/categorize", strings.NewReader(`"just a string"`)))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid body, got %d", w.Code)
	}
}

func TestUpload_JSONFile(t *testing.T) {
	s, _ := testServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "items.json")
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	_, _ = part.Write([]byte(`{"news_items": [{"text": "uploaded claim"}]}`))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := doRequest(s, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		UploadedFile   string `json:"uploaded_file"`
		ProcessedCount int    `json:"processed_count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if resp.ProcessedCount != 1 {
		t.Errorf("Expected 1 processed item, got %d", resp.ProcessedCount)
	}
	if !strings.HasSuffix(resp.UploadedFile, "items.json") {
		t.Errorf("Unexpected uploaded filename: %s", resp.UploadedFile)
	}
}

func TestUpload_RejectsNonJSON(t *testing.T) {
	s, _ := testServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "items.txt")
	_, _ = part.Write([]byte("not json"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := doRequest(s, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for non-JSON file, got %d", w.Code)
	}
}

func TestResults_RoundTrip(t *testing.T) {
	s, resultsDir := testServer(t)

	// Produce a saved results file via a categorize call
	w := doRequest(s, httptest.NewRequest(http.MethodPost, "/categorize",
		strings.NewReader(`{"text": "some claim"}`)))
	var resp struct {
		ResultsFile string `json:"results_file"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	got := doRequest(s, httptest.NewRequest(http.MethodGet, "/results/"+resp.ResultsFile, nil))
	if got.Code != http.StatusOK {
		t.Fatalf("Expected 200 fetching %s, got %d", resp.ResultsFile, got.Code)
	}

	list := doRequest(s, httptest.NewRequest(http.MethodGet, "/list-results", nil))
	if list.Code != http.StatusOK {
		t.Fatalf("Expected 200 from list-results, got %d", list.Code)
	}
	var listing struct {
		Count int `json:"count"`
		Files []struct {
			Filename string `json:"filename"`
		} `json:"files"`
	}
	if err := json.Unmarshal(list.Body.Bytes(), &listing); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if listing.Count != 1 || listing.Files[0].Filename != resp.ResultsFile {
		t.Errorf("Unexpected listing: %+v", listing)
	}

	// Sanity check against the directory itself
	entries, err := os.ReadDir(resultsDir)
	if err != nil || len(entries) != 1 {
		t.Errorf("Expected exactly one file in results dir, err=%v", err)
	}
}

func TestResults_NotFound(t *testing.T) {
	s, _ := testServer(t)

	w := doRequest(s, httptest.NewRequest(http.MethodGet, "/results/missing.json", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}
