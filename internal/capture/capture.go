// Package capture decodes recorded performance captures: the callback
// sequence delivered by the in-page sampling subsystem, serialized to
// JSON together with a snapshot of the document element tree. Replaying
// a capture feeds the analysis engine exactly the updates the live page
// produced, in the order it produced them.
package capture

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vitalwatch/vitalwatch/internal/dom"
	"github.com/vitalwatch/vitalwatch/internal/vitals"
)

// Metric names accepted in capture updates.
const (
	MetricLayoutShift    = "layout-shift"
	MetricResponsiveness = "responsiveness"
)

// Update is one recorded metric-stabilization callback.
type Update struct {
	// Metric is "layout-shift" or "responsiveness".
	Metric string `json:"metric"`

	// Value is the stabilized metric value.
	Value float64 `json:"value"`

	// ShiftEntries carries the raw shift samples for a layout-shift
	// update. May be empty.
	ShiftEntries []vitals.ShiftSample `json:"shift_entries,omitempty"`

	// EventEntries carries the raw timing entries for a responsiveness
	// update. May be empty.
	EventEntries []vitals.RawEventEntry `json:"event_entries,omitempty"`
}

// Capture is one recorded analysis session.
type Capture struct {
	Version    int          `json:"version"`
	PageURL    string       `json:"page_url,omitempty"`
	PageOrigin string       `json:"page_origin,omitempty"`
	Document   *dom.Element `json:"document,omitempty"`
	Updates    []Update     `json:"updates,omitempty"`
}

// LoadFile reads and decodes a capture file, linking the document tree
// so parent-dependent selectors resolve.
func LoadFile(path string) (*Capture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading capture: %w", err)
	}
	return Decode(data)
}

// Decode parses capture JSON. Missing sections decode to their zero
// values: a capture with no updates replays to the initial snapshot.
func Decode(data []byte) (*Capture, error) {
	var c Capture
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding capture: %w", err)
	}
	dom.Link(c.Document)
	return &c, nil
}

// Lookup returns an element lookup over the capture's document tree,
// or nil when no document was captured.
func (c *Capture) Lookup() vitals.ElementLookup {
	if c.Document == nil {
		return nil
	}
	root := c.Document
	return func(selector string) *dom.Element {
		return dom.Lookup(root, selector)
	}
}

// Replay feeds every recorded update to the engine in recorded order
// and returns the final snapshot. Updates with an unknown metric name
// are skipped rather than failing the replay.
func (c *Capture) Replay(e *vitals.Engine) vitals.Snapshot {
	for _, u := range c.Updates {
		switch u.Metric {
		case MetricLayoutShift:
			e.HandleShiftUpdate(u.Value, u.ShiftEntries)
		case MetricResponsiveness:
			e.HandleEventUpdate(u.Value, u.EventEntries)
		}
	}
	return e.Snapshot()
}
