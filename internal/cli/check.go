package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/factlens/factlens/internal/config"
	"github.com/factlens/factlens/internal/worker"
)

var (
	checkTimeout time.Duration
	checkOutJSON string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <text-or-url>",
	Short: "Classify and fact-check a single news claim",
	Long: `Check runs one claim through the full pipeline:
- Resolve the input (plain text passes through, URLs are fetched and
  their article text extracted)
- Classify recency (Evergreen/Realtime) and misinformation domain
- Search trusted sources and scrape their coverage
- Generate a summary, educational suggestions, and a fact-check verdict
- Derive a trust score (0.0-9.0) from the verdict

Example:
  factlens check "Eating rice makes you fat"
  factlens check https://example.com/article --json result.json
  factlens check "Vaccines cause autism" --timeout 3m`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall check timeout")
	checkCmd.Flags().StringVar(&checkOutJSON, "json", "", "write result JSON to this path instead of stdout")
}

func runCheck(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg := config.Load()
	processor, err := buildProcessor(cfg)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Checking: %s\n", input)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", checkTimeout)
		fmt.Fprintln(os.Stderr)
	}

	results := processor.ProcessAll(ctx, []worker.NewsItem{{Text: input}})
	result := results[0]

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if checkOutJSON != "" {
		if err := os.WriteFile(checkOutJSON, data, 0o644); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", checkOutJSON)
		}
		return nil
	}

	fmt.Println(string(data))
	return nil
}
