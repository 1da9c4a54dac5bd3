package model

// RecencyCategory distinguishes durable topics from breaking news
type RecencyCategory string

const (
	RecencyEvergreen RecencyCategory = "Evergreen"
	RecencyRealtime  RecencyCategory = "Realtime"
)

// Recognized reports whether the category is one the pipeline can handle
func (r RecencyCategory) Recognized() bool {
	return r == RecencyEvergreen || r == RecencyRealtime
}

// DomainCategory is the topical bucket that selects trusted-source lists
type DomainCategory string

const (
	DomainHealth  DomainCategory = "Health"
	DomainFinance DomainCategory = "Finance"
	DomainGeneral DomainCategory = "General"
	DomainOther   DomainCategory = "Other"
)

// Claim is the input unit for a fact-check run. Immutable once constructed.
type Claim struct {
	ID      string          `json:"id,omitempty"`
	Text    string          `json:"text"`
	Recency RecencyCategory `json:"recency_category"`
	Domain  DomainCategory  `json:"domain_category"`
}

// SearchHit is a URL plus its ranking position from the search gateway.
// Discarded after trusted-source filtering.
type SearchHit struct {
	URL  string
	Rank int
}

// ScrapeResult pairs a URL with the text extracted from it.
// An empty Text with OK=false signals a failed fetch.
type ScrapeResult struct {
	URL  string
	Text string
	OK   bool
}
