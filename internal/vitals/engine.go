package vitals

import (
	"fmt"

	"github.com/google/uuid"
)

// State is the engine's externally visible lifecycle state.
type State string

const (
	// StateMeasuring means no metric value has stabilized yet.
	StateMeasuring State = "measuring"

	// StateStabilized means at least one metric callback has fired.
	StateStabilized State = "stabilized"
)

// Metric names reported through the OnMetric hook.
const (
	MetricLayoutShift    = "layout-shift"
	MetricResponsiveness = "responsiveness"
)

// MetricUpdate is delivered through the OnMetric hook once per
// stabilized metric value.
type MetricUpdate struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Rating Rating  `json:"rating"`
}

// Hooks are optional caller-supplied notification handlers. Each is
// invoked synchronously at most once per new entity and is never
// awaited; a nil handler is skipped.
type Hooks struct {
	OnMetric      func(MetricUpdate)
	OnInteraction func(Interaction)
	OnShift       func(ShiftSample)
	OnIssue       func(Issue)
}

// ShiftReport is the layout instability half of a snapshot.
type ShiftReport struct {
	Value         float64         `json:"value"`
	Rating        Rating          `json:"rating"`
	Windows       []SessionWindow `json:"windows,omitempty"`
	LargestWindow *SessionWindow  `json:"largest_window,omitempty"`
	LargestShift  *ShiftSample    `json:"largest_shift,omitempty"`
}

// InteractionReport is the responsiveness half of a snapshot.
type InteractionReport struct {
	Value        *float64         `json:"value,omitempty"`
	Rating       Rating           `json:"rating,omitempty"`
	Interactions []Interaction    `json:"interactions,omitempty"`
	Stats        InteractionStats `json:"stats"`
	TopScripts   []ScriptCost     `json:"top_scripts,omitempty"`
}

// Snapshot is an immutable view of the engine's state after an update.
type Snapshot struct {
	State          State             `json:"state"`
	LayoutShift    ShiftReport       `json:"layout_shift"`
	Responsiveness InteractionReport `json:"responsiveness"`
	Issues         []Issue           `json:"issues,omitempty"`
}

// Engine owns the accumulated sample history and runs every analysis
// pass. It has exactly one logical writer: all mutation happens
// synchronously inside the metric callbacks, and readers only see
// snapshots copied out after a write completes. It is not safe for
// concurrent use; the owning context must serialize calls.
type Engine struct {
	th     Thresholds
	lookup ElementLookup
	hooks  Hooks

	shifts       []ShiftSample
	interactions []Interaction
	issues       []Issue
	scripts      []ScriptCost

	shiftValue float64
	eventValue *float64
	stabilized bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLookup supplies the selector-to-element lookup used by the shift
// issue classifier.
func WithLookup(lookup ElementLookup) Option {
	return func(e *Engine) { e.lookup = lookup }
}

// WithHooks supplies the notification handlers.
func WithHooks(hooks Hooks) Option {
	return func(e *Engine) { e.hooks = hooks }
}

// New creates an engine in the measuring state.
func New(th Thresholds, opts ...Option) *Engine {
	e := &Engine{th: th}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the engine's lifecycle state.
func (e *Engine) State() State {
	if e.stabilized {
		return StateStabilized
	}
	return StateMeasuring
}

// HandleShiftUpdate processes one stabilized layout-shift callback:
// the cumulative value plus zero or more raw shift samples. It appends
// the samples to history, re-derives session windows from the full
// history, classifies the largest shift, and returns the new snapshot.
func (e *Engine) HandleShiftUpdate(value float64, entries []ShiftSample) Snapshot {
	e.stabilized = true
	e.shiftValue = value

	for _, entry := range entries {
		e.shifts = append(e.shifts, entry)
		e.notifyShift(entry)
	}

	if issue := ClassifyShift(LargestShift(e.shifts), e.lookup, e.th); issue != nil {
		e.recordIssue(*issue)
	}

	e.notifyMetric(MetricUpdate{Name: MetricLayoutShift, Value: value, Rating: RateShift(value)})
	return e.Snapshot()
}

// HandleEventUpdate processes one stabilized responsiveness callback:
// the metric value plus zero or more raw event timing entries. Only
// the entry with the longest duration becomes the interaction of
// record for this update.
func (e *Engine) HandleEventUpdate(value float64, entries []RawEventEntry) Snapshot {
	e.stabilized = true
	v := value
	e.eventValue = &v

	if dominant := DominantEntry(entries); dominant != nil {
		in := e.buildInteraction(*dominant)
		e.appendInteraction(in)
	}

	e.notifyMetric(MetricUpdate{Name: MetricResponsiveness, Value: value, Rating: RateInteraction(value)})
	return e.Snapshot()
}

// ObserveShifts forwards raw shift samples from the optional
// attribution observer to the caller's shift handler. It does not
// mutate history: attribution may arrive before or after the primary
// callback, and core correctness never depends on it.
func (e *Engine) ObserveShifts(entries []ShiftSample) {
	for _, entry := range entries {
		e.notifyShift(entry)
	}
}

// InjectInteraction appends a synthetic interaction directly into
// history, bypassing the phase analyzer. The whole latency is booked
// as processing time. Injection is not a stabilization callback, so
// the engine state is left untouched.
func (e *Engine) InjectInteraction(latency float64, target string, kind InteractionKind) Snapshot {
	in := Interaction{
		ID:      uuid.NewString(),
		Kind:    kind,
		Latency: latency,
		Rating:  RateInteraction(latency),
		Target:  target,
		Phases:  PhaseBreakdown{ProcessingDuration: latency},
		Scripts: []ScriptCost{},
	}
	e.appendInteraction(in)
	return e.Snapshot()
}

// Reset clears all accumulated history and returns the engine to the
// measuring state and its initial snapshot.
func (e *Engine) Reset() {
	e.shifts = nil
	e.interactions = nil
	e.issues = nil
	e.scripts = nil
	e.shiftValue = 0
	e.eventValue = nil
	e.stabilized = false
}

// Snapshot copies out the current state. The copy shares nothing
// mutable with the engine, so callers can hold it across later
// updates.
func (e *Engine) Snapshot() Snapshot {
	windows := SessionWindows(e.shifts, e.th)

	snap := Snapshot{
		State: e.State(),
		LayoutShift: ShiftReport{
			Value:   e.shiftValue,
			Rating:  RateShift(e.shiftValue),
			Windows: copyWindows(windows),
		},
		Responsiveness: InteractionReport{
			Interactions: copyInteractions(e.interactions),
			Stats:        ComputeStats(e.interactions, e.th),
			TopScripts:   TopScripts(e.scripts, e.th.TopScripts),
		},
		Issues: copyIssues(e.issues),
	}

	if largest := LargestWindow(windows); largest != nil {
		w := *largest
		w.Entries = copyShifts(largest.Entries)
		snap.LayoutShift.LargestWindow = &w
	}
	if largest := LargestShift(e.shifts); largest != nil {
		s := *largest
		s.Sources = copyAttributions(largest.Sources)
		snap.LayoutShift.LargestShift = &s
	}
	if e.eventValue != nil {
		v := *e.eventValue
		snap.Responsiveness.Value = &v
		snap.Responsiveness.Rating = RateInteraction(v)
	}
	return snap
}

// buildInteraction normalizes the dominant raw entry into an
// interaction record. Entries without a platform interaction ID get a
// generated one so every occurrence stays unique.
func (e *Engine) buildInteraction(entry RawEventEntry) Interaction {
	id := uuid.NewString()
	if entry.InteractionID != 0 {
		id = fmt.Sprintf("%d", entry.InteractionID)
	}
	return Interaction{
		ID:                id,
		Kind:              ClassifyKind(entry.Name),
		Latency:           entry.Duration,
		Rating:            RateInteraction(entry.Duration),
		Target:            entry.Target,
		StartTime:         entry.StartTime,
		Phases:            BreakDownPhases(entry),
		Scripts:           []ScriptCost{},
		DominantEventName: entry.Name,
	}
}

func (e *Engine) appendInteraction(in Interaction) {
	e.interactions = append(e.interactions, in)
	e.scripts = append(e.scripts, in.Scripts...)
	if e.hooks.OnInteraction != nil {
		e.hooks.OnInteraction(in)
	}
	if issue := ClassifyInteraction(in, e.th); issue != nil {
		e.recordIssue(*issue)
	}
}

// recordIssue appends the issue unless one with the same (element,
// category) pair already exists. Recorded issues are never re-scored.
func (e *Engine) recordIssue(issue Issue) {
	if dedupeIssue(e.issues, issue) {
		return
	}
	e.issues = append(e.issues, issue)
	if e.hooks.OnIssue != nil {
		e.hooks.OnIssue(issue)
	}
}

func (e *Engine) notifyShift(entry ShiftSample) {
	if e.hooks.OnShift != nil {
		e.hooks.OnShift(entry)
	}
}

func (e *Engine) notifyMetric(update MetricUpdate) {
	if e.hooks.OnMetric != nil {
		e.hooks.OnMetric(update)
	}
}

func copyShifts(in []ShiftSample) []ShiftSample {
	if in == nil {
		return nil
	}
	out := make([]ShiftSample, len(in))
	copy(out, in)
	for i := range out {
		out[i].Sources = copyAttributions(out[i].Sources)
	}
	return out
}

func copyAttributions(in []ShiftAttribution) []ShiftAttribution {
	if in == nil {
		return nil
	}
	out := make([]ShiftAttribution, len(in))
	copy(out, in)
	return out
}

func copyWindows(in []SessionWindow) []SessionWindow {
	if in == nil {
		return nil
	}
	out := make([]SessionWindow, len(in))
	copy(out, in)
	for i := range out {
		out[i].Entries = copyShifts(out[i].Entries)
	}
	return out
}

func copyInteractions(in []Interaction) []Interaction {
	if in == nil {
		return nil
	}
	out := make([]Interaction, len(in))
	copy(out, in)
	for i := range out {
		if out[i].Scripts != nil {
			scripts := make([]ScriptCost, len(out[i].Scripts))
			copy(scripts, out[i].Scripts)
			out[i].Scripts = scripts
		}
	}
	return out
}

func copyIssues(in []Issue) []Issue {
	if in == nil {
		return nil
	}
	out := make([]Issue, len(in))
	copy(out, in)
	return out
}
