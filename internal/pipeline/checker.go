// Package pipeline coordinates the fact-check stages: source discovery
// through the search gateway, concurrent scraping, LLM assessment, and
// trust-score derivation. All failure is communicated through the returned
// report; no error or panic escapes to the caller.
package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/factlens/factlens/internal/model"
)

// NotRecognizedMessage is the fixed assessment text returned when the
// recency category is neither Evergreen nor Realtime.
const NotRecognizedMessage = "N/A - News recency category not recognized"

// Fixed assessment texts for the early-exit states.
const (
	noSourcesMessage = "N/A - No trusted sources found"
	noContentMessage = "N/A - No content scraped from trusted URLs"
)

// Searcher discovers trusted source URLs for a claim
type Searcher interface {
	Search(ctx context.Context, query string, domain model.DomainCategory, recency model.RecencyCategory) []string
}

// Scraper fetches a batch of URLs and returns the extracted texts of the
// successful fetches
type Scraper interface {
	ScrapeAll(ctx context.Context, urls []string) []string
}

// Assessor runs the generative-model calls and trust-score derivation
type Assessor interface {
	Summarize(ctx context.Context, contents []string) string
	Educate(ctx context.Context, newsText string, domain model.DomainCategory) string
	Verdict(ctx context.Context, newsText string, contents []string, recency model.RecencyCategory) string
	TrustScore(assessment string, recency model.RecencyCategory) float64
}

// state names the orchestrator's position in the pipeline
type state string

const (
	stateStart           state = "start"
	stateSourceDiscovery state = "source_discovery"
	stateScraping        state = "scraping"
	stateSynthesis       state = "synthesis"
	stateScored          state = "scored"
	stateDone            state = "done"
)

// Checker is the fact-check orchestrator. It owns no mutable state across
// invocations; concurrent Run calls are safe as long as the injected
// collaborators are.
type Checker struct {
	searcher Searcher
	scraper  Scraper
	assessor Assessor
	archiver *Archiver
}

// NewChecker creates an orchestrator over the given collaborators. A nil
// archiver disables debug-artifact persistence.
func NewChecker(searcher Searcher, scraper Scraper, assessor Assessor, archiver *Archiver) *Checker {
	return &Checker{
		searcher: searcher,
		scraper:  scraper,
		assessor: assessor,
		archiver: archiver,
	}
}

// Run executes the full fact-check pipeline for the claim and returns the
// assembled report. Early exits (unrecognized recency, no sources, no
// content) leave Success false with a distinct Status; only a run that
// passes through scoring sets Success true.
func (c *Checker) Run(ctx context.Context, claim model.Claim) (report *model.Report) {
	report = model.NewReport(claim.ID)

	// Pipeline-level exceptions are caught at this boundary: partial
	// fields already populated are retained, never rolled back.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("pipeline: recovered from panic: %v", r)
			report.AddError(fmt.Sprintf("Fact-checking failed: %v", r))
			report.Success = false
			report.Status = model.StatusError
		}
	}()

	if !claim.Recency.Recognized() {
		report.FactCheckAssessment = NotRecognizedMessage
		report.Status = model.StatusUnsupportedRecency
		return report
	}

	log.Printf("pipeline: starting %s fact-check for claim %q", claim.Recency, head(claim.Text, 100))

	for st := stateStart; st != stateDone; {
		st = c.step(ctx, st, claim, report)
	}

	return report
}

// step advances the state machine by one transition
func (c *Checker) step(ctx context.Context, st state, claim model.Claim, report *model.Report) state {
	switch st {
	case stateStart:
		return stateSourceDiscovery

	case stateSourceDiscovery:
		report.TrustedURLs = c.searcher.Search(ctx, claim.Text, claim.Domain, claim.Recency)
		if len(report.TrustedURLs) == 0 {
			report.AddError("No trusted sources found")
			report.FactCheckAssessment = noSourcesMessage
			report.TrustScore = 0.0
			report.Status = model.StatusNoSources
			return stateDone
		}
		report.SourcesUsed = append([]string{}, report.TrustedURLs...)
		log.Printf("pipeline: found %d trusted URLs", len(report.TrustedURLs))
		return stateScraping

	case stateScraping:
		report.SetScraped(c.scraper.ScrapeAll(ctx, report.TrustedURLs))
		if report.ScrapedContentCount == 0 {
			report.AddError("Could not scrape content from any trusted URLs")
			report.FactCheckAssessment = noContentMessage
			report.TrustScore = 0.0
			report.Status = model.StatusNoContent
			return stateDone
		}
		log.Printf("pipeline: scraped content from %d URLs", report.ScrapedContentCount)
		return stateSynthesis

	case stateSynthesis:
		// The three model calls fail independently; each substitutes its
		// fallback text without aborting the siblings.
		report.SummarizedAnswer = c.assessor.Summarize(ctx, report.ScrapedContents)
		report.EducationSuggestions = c.assessor.Educate(ctx, claim.Text, claim.Domain)
		report.FactCheckAssessment = c.assessor.Verdict(ctx, claim.Text, report.ScrapedContents, claim.Recency)
		return stateScored

	case stateScored:
		report.TrustScore = c.assessor.TrustScore(report.FactCheckAssessment, claim.Recency)
		report.Success = true
		report.Status = model.StatusCompleted

		if c.archiver != nil {
			if path, err := c.archiver.Save(claim, report); err != nil {
				log.Printf("pipeline: failed to save debug artifact: %v", err)
			} else {
				report.DebugData["saved_file"] = path
			}
		}

		log.Printf("pipeline: fact-check completed, trust score %.1f", report.TrustScore)
		return stateDone
	}

	return stateDone
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
