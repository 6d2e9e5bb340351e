package store

import (
	"database/sql"
	"time"

	"github.com/vitalwatch/vitalwatch/internal/vitals"
)

// Run represents one persisted analysis run.
type Run struct {
	ID      int64     `json:"id"`
	TakenAt time.Time `json:"taken_at"`
	Source  string    `json:"source"`
	PageURL string    `json:"page_url,omitempty"`
	Version string    `json:"version"`
}

// MetricValue is one named metric value within a run.
type MetricValue struct {
	MetricName  string  `json:"metric_name"`
	MetricValue float64 `json:"metric_value"`
	Rating      string  `json:"rating"`
}

// SaveSnapshot persists an engine snapshot as a new run and returns
// the run ID.
func (db *DB) SaveSnapshot(source, pageURL, version string, snap vitals.Snapshot) (int64, error) {
	result, err := db.conn.Exec(
		"INSERT INTO runs (taken_at, source, page_url, version) VALUES (?, ?, ?, ?)",
		time.Now().UTC().Format(time.RFC3339), source, pageURL, version,
	)
	if err != nil {
		return 0, err
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err := db.insertMetric(runID, "layout_shift", snap.LayoutShift.Value, string(snap.LayoutShift.Rating)); err != nil {
		return 0, err
	}
	if snap.Responsiveness.Value != nil {
		if err := db.insertMetric(runID, "interaction_latency", *snap.Responsiveness.Value, string(snap.Responsiveness.Rating)); err != nil {
			return 0, err
		}
	}
	stats := snap.Responsiveness.Stats
	if err := db.insertMetric(runID, "good_interaction_pct", stats.GoodPercentage, ""); err != nil {
		return 0, err
	}
	if err := db.insertMetric(runID, "interaction_count", float64(stats.Count), ""); err != nil {
		return 0, err
	}
	if err := db.insertMetric(runID, "issue_count", float64(len(snap.Issues)), ""); err != nil {
		return 0, err
	}

	for _, in := range snap.Responsiveness.Interactions {
		if _, err := db.conn.Exec(
			`INSERT INTO interactions
			(run_id, interaction_id, kind, latency, rating, target, start_time,
			 input_delay, processing, presentation, dominant_event)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, in.ID, string(in.Kind), in.Latency, string(in.Rating), in.Target,
			in.StartTime, in.Phases.InputDelay, in.Phases.ProcessingDuration,
			in.Phases.PresentationDelay, in.DominantEventName,
		); err != nil {
			return 0, err
		}
	}

	for _, issue := range snap.Issues {
		if _, err := db.conn.Exec(
			`INSERT INTO issues (run_id, category, element, contribution, suggestion, timestamp)
			VALUES (?, ?, ?, ?, ?, ?)`,
			runID, string(issue.Category), issue.Element, issue.Contribution,
			issue.Suggestion, issue.Timestamp,
		); err != nil {
			return 0, err
		}
	}

	for _, s := range snap.Responsiveness.TopScripts {
		if _, err := db.conn.Exec(
			`INSERT INTO script_costs (run_id, url, total_duration, occurrences, third_party)
			VALUES (?, ?, ?, ?, ?)`,
			runID, s.URL, s.TotalDuration, s.Occurrences, s.IsThirdParty,
		); err != nil {
			return 0, err
		}
	}

	return runID, nil
}

func (db *DB) insertMetric(runID int64, name string, value float64, rating string) error {
	_, err := db.conn.Exec(
		"INSERT INTO metric_values (run_id, metric_name, metric_value, rating) VALUES (?, ?, ?, ?)",
		runID, name, value, rating,
	)
	return err
}

// GetLatestRun returns the most recent run, or nil if none exist.
func (db *DB) GetLatestRun() (*Run, error) {
	row := db.conn.QueryRow("SELECT id, taken_at, source, page_url, version FROM runs ORDER BY id DESC LIMIT 1")
	return scanRun(row)
}

// GetRunN returns the Nth most recent run (1 = latest, 2 = previous).
func (db *DB) GetRunN(n int) (*Run, error) {
	row := db.conn.QueryRow(
		"SELECT id, taken_at, source, page_url, version FROM runs ORDER BY id DESC LIMIT 1 OFFSET ?",
		n-1,
	)
	return scanRun(row)
}

func scanRun(row *sql.Row) (*Run, error) {
	var r Run
	var takenAt string
	var pageURL sql.NullString
	err := row.Scan(&r.ID, &takenAt, &r.Source, &pageURL, &r.Version)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
	r.PageURL = pageURL.String
	return &r, nil
}

// MetricValues returns all metric values for a run keyed by name.
func (db *DB) MetricValues(runID int64) (map[string]MetricValue, error) {
	rows, err := db.conn.Query(
		"SELECT metric_name, metric_value, rating FROM metric_values WHERE run_id = ?",
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	values := make(map[string]MetricValue)
	for rows.Next() {
		var mv MetricValue
		if err := rows.Scan(&mv.MetricName, &mv.MetricValue, &mv.Rating); err != nil {
			return nil, err
		}
		values[mv.MetricName] = mv
	}
	return values, rows.Err()
}

// Issues returns the issues persisted for a run.
func (db *DB) Issues(runID int64) ([]vitals.Issue, error) {
	rows, err := db.conn.Query(
		"SELECT category, element, contribution, suggestion, timestamp FROM issues WHERE run_id = ? ORDER BY id",
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var issues []vitals.Issue
	for rows.Next() {
		var issue vitals.Issue
		var category, element sql.NullString
		if err := rows.Scan(&category, &element, &issue.Contribution, &issue.Suggestion, &issue.Timestamp); err != nil {
			return nil, err
		}
		issue.Category = vitals.IssueCategory(category.String)
		issue.Element = element.String
		issues = append(issues, issue)
	}
	return issues, rows.Err()
}
