package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/factlens/factlens/internal/model"
)

// Archiver persists a debug snapshot of a completed run: all inputs plus
// intermediate results. Persistence failures never fail the pipeline.
type Archiver struct {
	dir string
}

// NewArchiver creates an archiver writing into dir
func NewArchiver(dir string) *Archiver {
	return &Archiver{dir: dir}
}

// artifact is the serialized debug snapshot
type artifact struct {
	InputNewsText       string   `json:"input_news_text"`
	RecencyCategory     string   `json:"recency_category"`
	DomainCategory      string   `json:"domain_category"`
	TrustedURLsFound    []string `json:"trusted_urls_found"`
	ScrapedContents     []string `json:"scraped_contents"`
	SummarizedAnswer    string   `json:"summarized_answer"`
	FactCheckAssessment string   `json:"fact_check_assessment"`
	TrustScore          float64  `json:"trust_score"`
	Timestamp           string   `json:"timestamp"`
}

// Save writes the snapshot to a timestamped JSON file and returns its path
func (a *Archiver) Save(claim model.Claim, report *model.Report) (string, error) {
	snapshot := artifact{
		InputNewsText:       claim.Text,
		RecencyCategory:     string(claim.Recency),
		DomainCategory:      string(claim.Domain),
		TrustedURLsFound:    report.TrustedURLs,
		ScrapedContents:     report.ScrapedContents,
		SummarizedAnswer:    report.SummarizedAnswer,
		FactCheckAssessment: report.FactCheckAssessment,
		TrustScore:          report.TrustScore,
		Timestamp:           time.Now().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal artifact: %w", err)
	}

	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifacts dir: %w", err)
	}

	name := fmt.Sprintf("scraped_data_%s_%s.json", claim.Domain, time.Now().Format("20060102_150405"))
	path := filepath.Join(a.dir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}

	return path, nil
}
