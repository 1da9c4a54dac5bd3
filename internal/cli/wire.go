package cli

import (
	"fmt"

	"github.com/factlens/factlens/internal/assess"
	"github.com/factlens/factlens/internal/classify"
	"github.com/factlens/factlens/internal/config"
	"github.com/factlens/factlens/internal/llm"
	"github.com/factlens/factlens/internal/pipeline"
	"github.com/factlens/factlens/internal/scrape"
	"github.com/factlens/factlens/internal/search"
	"github.com/factlens/factlens/internal/worker"
)

// buildChecker assembles the fact-check pipeline from configuration
func buildChecker(cfg *config.Config) (*pipeline.Checker, llm.Provider, error) {
	provider, err := llm.NewProvider(llm.ConfigFrom(cfg.LLM))
	if err != nil {
		return nil, nil, fmt.Errorf("configure LLM provider: %w", err)
	}

	var archiver *pipeline.Archiver
	if cfg.Output.ArtifactsDir != "" {
		archiver = pipeline.NewArchiver(cfg.Output.ArtifactsDir)
	}

	checker := pipeline.NewChecker(
		search.NewGateway(cfg.Search),
		scrape.NewEngine(cfg.Scrape),
		assess.NewEngine(provider),
		archiver,
	)

	return checker, provider, nil
}

// buildProcessor assembles the full batch processor, classification
// included
func buildProcessor(cfg *config.Config) (*worker.Processor, error) {
	checker, provider, err := buildChecker(cfg)
	if err != nil {
		return nil, err
	}

	resolver := classify.NewResolver(cfg.Scrape.Timeout, cfg.Scrape.UserAgent, cfg.Scrape.MaxBodyBytes)
	classifier := classify.NewClassifier(provider)

	return worker.NewProcessor(resolver, classifier, checker, cfg.Concurrency.Workers), nil
}
