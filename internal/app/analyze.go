package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vitalwatch/vitalwatch/internal/capture"
	"github.com/vitalwatch/vitalwatch/internal/config"
	"github.com/vitalwatch/vitalwatch/internal/output"
	"github.com/vitalwatch/vitalwatch/internal/vitals"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <capture.json> [capture.json...]",
	Short: "Analyze capture files and report metrics and issues",
	Long: `Replay one or more recorded performance captures through the analysis
engine and render a report per capture: metric values with ratings,
shift session windows, interaction phase breakdowns, and classified
issues with remediation suggestions.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

// captureResult pairs a loaded capture with its final snapshot.
type captureResult struct {
	Path     string          `json:"path"`
	PageURL  string          `json:"page_url,omitempty"`
	Snapshot vitals.Snapshot `json:"snapshot"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	setupColor()

	// Load all captures in parallel; analysis itself stays sequential
	// per capture since each engine is single-writer.
	captures := make([]*capture.Capture, len(args))
	var g errgroup.Group
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			c, err := capture.LoadFile(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			captures[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	results := make([]captureResult, len(captures))
	for i, c := range captures {
		engine := vitals.New(cfg.Thresholds.Vitals(), vitals.WithLookup(c.Lookup()))
		results[i] = captureResult{
			Path:     args[i],
			PageURL:  c.PageURL,
			Snapshot: c.Replay(engine),
		}
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for i, r := range results {
		if len(results) > 1 {
			if i > 0 {
				fmt.Println()
			}
			fmt.Println(output.StyleBold.Render(r.Path))
		}
		if r.PageURL != "" {
			fmt.Println(output.StyleMuted.Render(r.PageURL))
		}
		fmt.Print(output.RenderReport(r.Snapshot))
	}
	return nil
}
