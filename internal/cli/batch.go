package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/factlens/factlens/internal/config"
	"github.com/factlens/factlens/internal/worker"
)

var (
	batchConcurrency int
	batchOutputDir   string
	batchTimeout     time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Classify and fact-check news items from a JSON file",
	Long: `Batch processes a JSON file of news items concurrently.

The file holds either a bare array of items or an object with a
news_items field; each item carries a text or url and an optional id.

Example:
  factlens batch news.json
  factlens batch news.json --concurrency 10 --output-dir ./results
  factlens batch news.json --timeout 10m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "number of concurrent workers (0 = config default)")
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", "./factlens-results", "output directory for results")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := config.Load()
	if batchConcurrency > 0 {
		cfg.Concurrency.Workers = batchConcurrency
	}

	processor, err := buildProcessor(cfg)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read input file: %w", err)
	}

	items, err := decodeNewsFile(data)
	if err != nil {
		return fmt.Errorf("parse input file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Processing %d items with %d workers...\n", len(items), cfg.Concurrency.Workers)

	results := processor.ProcessAll(ctx, items)

	if err := os.MkdirAll(batchOutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	outPath := filepath.Join(batchOutputDir, fmt.Sprintf("batch_results_%s.json", time.Now().Format("20060102_150405")))
	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	successCount := 0
	for _, r := range results {
		if r.FactCheckCompleted {
			successCount++
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:        %d items\n", len(results))
	fmt.Fprintf(os.Stderr, "  Fact-checked: %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Output:       %s\n", outPath)
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

// decodeNewsFile accepts a bare array of items or a news_items wrapper.
// An empty news_items list is a valid empty batch.
func decodeNewsFile(data []byte) ([]worker.NewsItem, error) {
	var wrapper struct {
		NewsItems *[]worker.NewsItem `json:"news_items"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && wrapper.NewsItems != nil {
		return *wrapper.NewsItems, nil
	}

	var list []worker.NewsItem
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("expected JSON array or news_items object: %w", err)
	}
	return list, nil
}
