package model

// Status tells apart the ways a fact-check run can end. The success flag
// alone cannot distinguish "legitimately found nothing" from "pipeline
// error", so early exits carry their own status.
type Status string

const (
	StatusCompleted          Status = "completed"
	StatusNoSources          Status = "no_sources"
	StatusNoContent          Status = "no_content"
	StatusUnsupportedRecency Status = "unsupported_recency"
	StatusError              Status = "error"
)

// Report is the fact-check pipeline's output. It is built incrementally
// stage by stage and immutable once returned to the caller.
//
// ScrapedContents is retained for the debug artifact but excluded from the
// serialized report; only the count travels in JSON.
type Report struct {
	NewsID              string   `json:"news_id,omitempty"`
	TrustedURLs         []string `json:"trusted_urls"`
	SourcesUsed         []string `json:"sources_used"`
	ScrapedContents     []string `json:"-"`
	ScrapedContentCount int      `json:"scraped_content_count"`
	SummarizedAnswer    string   `json:"summarized_answer"`
	FactCheckAssessment string   `json:"fact_check_assessment"`
	EducationSuggestions string  `json:"further_education_suggestions"`
	TrustScore          float64  `json:"trust_score"`
	ProcessingErrors    []string `json:"processing_errors"`
	Success             bool     `json:"success"`
	Status              Status   `json:"fact_check_status"`
	DebugData           map[string]string `json:"debug_data,omitempty"`
}

// NewReport creates an empty report for the given claim identifier
func NewReport(newsID string) *Report {
	return &Report{
		NewsID:           newsID,
		TrustedURLs:      []string{},
		SourcesUsed:      []string{},
		ScrapedContents:  []string{},
		ProcessingErrors: []string{},
		DebugData:        map[string]string{},
	}
}

// AddError records a non-fatal processing error message
func (r *Report) AddError(msg string) {
	r.ProcessingErrors = append(r.ProcessingErrors, msg)
}

// SetScraped stores scraped contents and keeps the count in sync.
// ScrapedContentCount must always equal len(ScrapedContents).
func (r *Report) SetScraped(contents []string) {
	r.ScrapedContents = contents
	r.ScrapedContentCount = len(contents)
}
