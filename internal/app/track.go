package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vitalwatch/vitalwatch/internal/capture"
	"github.com/vitalwatch/vitalwatch/internal/config"
	"github.com/vitalwatch/vitalwatch/internal/output"
	"github.com/vitalwatch/vitalwatch/internal/store"
	"github.com/vitalwatch/vitalwatch/internal/vitals"
)

var (
	trackCompare int
	trackDBPath  string
)

var trackCmd = &cobra.Command{
	Use:   "track <capture.json>",
	Short: "Analyze a capture, store a run, and compare with the previous one",
	Long: `Replay the capture through the analysis engine, persist the resulting
metric values, interactions, and issues as a new run, and compare
against a previous run to show deltas with trend arrows.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrack,
}

func init() {
	trackCmd.Flags().IntVar(&trackCompare, "compare", 1, "Compare against Nth previous run (1 = most recent)")
	trackCmd.Flags().StringVar(&trackDBPath, "db", "", "Path to the runs database (default: config dir)")
	trackCmd.Flags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(trackCmd)
}

// metricDelta describes how one metric moved between two runs.
type metricDelta struct {
	Metric   string  `json:"metric"`
	Previous float64 `json:"previous"`
	Current  float64 `json:"current"`
	Delta    float64 `json:"delta"`
}

// lowerIsBetter marks metrics where a decrease is an improvement.
var lowerIsBetter = map[string]bool{
	"layout_shift":        true,
	"interaction_latency": true,
	"issue_count":         true,
}

func runTrack(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	setupColor()

	c, err := capture.LoadFile(args[0])
	if err != nil {
		return err
	}

	engine := vitals.New(cfg.Thresholds.Vitals(), vitals.WithLookup(c.Lookup()))
	snap := c.Replay(engine)

	dbPath := trackDBPath
	if dbPath == "" {
		dbPath = config.DBPath()
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Grab the comparison run before inserting the new one.
	prev, err := db.GetRunN(trackCompare)
	if err != nil {
		return fmt.Errorf("loading previous run: %w", err)
	}

	runID, err := db.SaveSnapshot("track", c.PageURL, appVersion, snap)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	deltas, err := compareRuns(db, prev, runID)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			RunID    int64           `json:"run_id"`
			Snapshot vitals.Snapshot `json:"snapshot"`
			Deltas   []metricDelta   `json:"deltas,omitempty"`
		}{runID, snap, deltas})
	}

	fmt.Print(output.RenderReport(snap))
	fmt.Println()

	if prev == nil {
		fmt.Println(output.StyleMuted.Render("First run recorded; nothing to compare against yet."))
		return nil
	}

	fmt.Println(output.StyleHeader.Render(fmt.Sprintf("Compared with run %d (%s)", prev.ID, prev.TakenAt.Format("2006-01-02 15:04"))))
	table := output.NewTable("Metric", "Previous", "Current", "Trend").AlignRight(1, 2)
	for _, d := range deltas {
		table.AddRow(d.Metric, formatMetric(d.Metric, d.Previous), formatMetric(d.Metric, d.Current), trendArrow(d))
	}
	table.Print()
	return nil
}

// compareRuns computes deltas for metrics present in both runs.
func compareRuns(db *store.DB, prev *store.Run, currID int64) ([]metricDelta, error) {
	if prev == nil {
		return nil, nil
	}
	prevValues, err := db.MetricValues(prev.ID)
	if err != nil {
		return nil, err
	}
	currValues, err := db.MetricValues(currID)
	if err != nil {
		return nil, err
	}

	order := []string{"layout_shift", "interaction_latency", "good_interaction_pct", "interaction_count", "issue_count"}
	var deltas []metricDelta
	for _, name := range order {
		p, pok := prevValues[name]
		c, cok := currValues[name]
		if !pok || !cok {
			continue
		}
		deltas = append(deltas, metricDelta{
			Metric:   name,
			Previous: p.MetricValue,
			Current:  c.MetricValue,
			Delta:    c.MetricValue - p.MetricValue,
		})
	}
	return deltas, nil
}

func formatMetric(name string, v float64) string {
	switch name {
	case "layout_shift":
		return fmt.Sprintf("%.3f", v)
	case "interaction_latency":
		return fmt.Sprintf("%.0fms", v)
	case "good_interaction_pct":
		return fmt.Sprintf("%.0f%%", v)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

func trendArrow(d metricDelta) string {
	if d.Delta == 0 {
		return output.StyleMuted.Render("→")
	}
	improved := d.Delta < 0
	if !lowerIsBetter[d.Metric] {
		improved = d.Delta > 0
	}
	arrow := "↑"
	if d.Delta < 0 {
		arrow = "↓"
	}
	if improved {
		return output.StyleGood.Render(arrow)
	}
	return output.StylePoor.Render(arrow)
}
