package vitals

import (
	"math"
	"testing"
)

func TestEngine_InitialSnapshot(t *testing.T) {
	e := New(defaultTh())
	snap := e.Snapshot()

	if snap.State != StateMeasuring {
		t.Errorf("expected measuring state, got %q", snap.State)
	}
	if snap.LayoutShift.Value != 0 {
		t.Errorf("expected zero shift value, got %f", snap.LayoutShift.Value)
	}
	if snap.Responsiveness.Value != nil {
		t.Error("expected nil responsiveness value before any callback")
	}
	if snap.Responsiveness.Stats.GoodPercentage != 100 {
		t.Errorf("expected good percentage 100, got %f", snap.Responsiveness.Stats.GoodPercentage)
	}
	if len(snap.Issues) != 0 {
		t.Errorf("expected no issues, got %d", len(snap.Issues))
	}
}

func TestEngine_ShiftUpdate(t *testing.T) {
	e := New(defaultTh())
	snap := e.HandleShiftUpdate(0.15, []ShiftSample{
		{Value: 0.05, StartTime: 1000},
		{Value: 0.10, StartTime: 1500},
	})

	if snap.State != StateStabilized {
		t.Errorf("expected stabilized state, got %q", snap.State)
	}
	if snap.LayoutShift.Value != 0.15 {
		t.Errorf("expected shift value 0.15, got %f", snap.LayoutShift.Value)
	}
	if len(snap.LayoutShift.Windows) != 1 {
		t.Fatalf("expected 1 session window, got %d", len(snap.LayoutShift.Windows))
	}
	if math.Abs(snap.LayoutShift.Windows[0].Value-0.15) > 1e-9 {
		t.Errorf("expected window value 0.15, got %f", snap.LayoutShift.Windows[0].Value)
	}
	if snap.LayoutShift.LargestShift == nil || snap.LayoutShift.LargestShift.Value != 0.10 {
		t.Errorf("expected largest shift 0.10, got %v", snap.LayoutShift.LargestShift)
	}
	if snap.LayoutShift.Rating != RatingNeedsImprovement {
		t.Errorf("expected needs-improvement rating, got %q", snap.LayoutShift.Rating)
	}
}

func TestEngine_ShiftHistoryAccumulatesAcrossCallbacks(t *testing.T) {
	e := New(defaultTh())
	e.HandleShiftUpdate(0.05, []ShiftSample{{Value: 0.05, StartTime: 100}})
	snap := e.HandleShiftUpdate(0.15, []ShiftSample{{Value: 0.10, StartTime: 1300}})

	// Gap 1200ms splits history into two windows.
	if len(snap.LayoutShift.Windows) != 2 {
		t.Fatalf("expected 2 windows from full history, got %d", len(snap.LayoutShift.Windows))
	}
}

func TestEngine_ShiftIssueDedupedOnReprocessing(t *testing.T) {
	issueCount := 0
	e := New(defaultTh(), WithHooks(Hooks{
		OnIssue: func(Issue) { issueCount++ },
	}))

	sample := ShiftSample{
		Value:     0.3,
		StartTime: 100,
		Sources:   []ShiftAttribution{{Node: "#hero", CurrentRect: Rect{Y: 200}}},
	}
	e.HandleShiftUpdate(0.3, []ShiftSample{sample})
	// Same largest shift reclassified on the next two callbacks.
	e.HandleShiftUpdate(0.3, nil)
	snap := e.HandleShiftUpdate(0.3, nil)

	if len(snap.Issues) != 1 {
		t.Fatalf("expected 1 deduplicated issue, got %d", len(snap.Issues))
	}
	if issueCount != 1 {
		t.Errorf("expected OnIssue fired once, got %d", issueCount)
	}
}

func TestEngine_EventUpdate(t *testing.T) {
	var interactions []Interaction
	var metrics []MetricUpdate
	e := New(defaultTh(), WithHooks(Hooks{
		OnInteraction: func(in Interaction) { interactions = append(interactions, in) },
		OnMetric:      func(m MetricUpdate) { metrics = append(metrics, m) },
	}))

	snap := e.HandleEventUpdate(250, []RawEventEntry{
		{Name: "pointerdown", StartTime: 100, ProcessingStart: 110, ProcessingEnd: 150, Duration: 120, Target: "#btn"},
		{Name: "click", StartTime: 100, ProcessingStart: 120, ProcessingEnd: 220, Duration: 250, Target: "#btn", InteractionID: 7},
	})

	if len(snap.Responsiveness.Interactions) != 1 {
		t.Fatalf("expected only the dominant entry recorded, got %d", len(snap.Responsiveness.Interactions))
	}
	in := snap.Responsiveness.Interactions[0]
	if in.DominantEventName != "click" {
		t.Errorf("expected click to dominate, got %q", in.DominantEventName)
	}
	if in.ID != "7" {
		t.Errorf("expected platform interaction id, got %q", in.ID)
	}
	if in.Kind != KindPointer {
		t.Errorf("expected pointer kind for click, got %q", in.Kind)
	}
	if in.Phases.InputDelay != 20 || in.Phases.ProcessingDuration != 100 || in.Phases.PresentationDelay != 130 {
		t.Errorf("unexpected phases: %+v", in.Phases)
	}
	if snap.Responsiveness.Value == nil || *snap.Responsiveness.Value != 250 {
		t.Errorf("expected responsiveness value 250, got %v", snap.Responsiveness.Value)
	}

	if len(interactions) != 1 {
		t.Errorf("expected OnInteraction fired once, got %d", len(interactions))
	}
	if len(metrics) != 1 || metrics[0].Name != MetricResponsiveness {
		t.Errorf("expected one responsiveness metric update, got %v", metrics)
	}
}

func TestEngine_EventUpdateEmptyBatch(t *testing.T) {
	e := New(defaultTh())
	snap := e.HandleEventUpdate(180, nil)

	if snap.State != StateStabilized {
		t.Errorf("expected stabilized after empty batch, got %q", snap.State)
	}
	if snap.Responsiveness.Value == nil || *snap.Responsiveness.Value != 180 {
		t.Errorf("expected value 180 recorded without entries, got %v", snap.Responsiveness.Value)
	}
	if snap.Responsiveness.Stats.Count != 0 {
		t.Errorf("expected no interactions, got %d", snap.Responsiveness.Stats.Count)
	}
}

func TestEngine_SlowInteractionRaisesIssue(t *testing.T) {
	e := New(defaultTh())
	snap := e.HandleEventUpdate(500, []RawEventEntry{
		{Name: "click", StartTime: 0, ProcessingStart: 100, ProcessingEnd: 400, Duration: 500, Target: "#save"},
	})

	if len(snap.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(snap.Issues))
	}
	if snap.Issues[0].Category != IssueHighInputDelay {
		t.Errorf("expected high-input-delay (input delay 100ms), got %q", snap.Issues[0].Category)
	}
}

func TestEngine_InjectInteraction(t *testing.T) {
	e := New(defaultTh())
	snap := e.InjectInteraction(150, "#buy", KindTap)

	if snap.State != StateMeasuring {
		t.Errorf("injection is not a stabilization callback, expected measuring, got %q", snap.State)
	}
	if snap.Responsiveness.Stats.Count != 1 {
		t.Fatalf("expected 1 interaction, got %d", snap.Responsiveness.Stats.Count)
	}
	in := snap.Responsiveness.Interactions[0]
	if in.Rating != RatingGood {
		t.Errorf("expected rating good at 150ms, got %q", in.Rating)
	}
	if in.ID == "" {
		t.Error("expected a generated interaction id")
	}
	if in.Phases.ProcessingDuration != 150 || in.Phases.InputDelay != 0 || in.Phases.PresentationDelay != 0 {
		t.Errorf("expected all-processing phases, got %+v", in.Phases)
	}
}

func TestEngine_InjectedIDsUnique(t *testing.T) {
	e := New(defaultTh())
	e.InjectInteraction(100, "", KindPointer)
	snap := e.InjectInteraction(100, "", KindPointer)
	ins := snap.Responsiveness.Interactions
	if ins[0].ID == ins[1].ID {
		t.Error("expected unique ids per injected occurrence")
	}
}

func TestEngine_Reset(t *testing.T) {
	e := New(defaultTh())
	e.HandleShiftUpdate(0.3, []ShiftSample{{Value: 0.3, StartTime: 100, Sources: []ShiftAttribution{{Node: "#x"}}}})
	e.HandleEventUpdate(600, []RawEventEntry{
		{Name: "click", StartTime: 0, ProcessingStart: 100, ProcessingEnd: 500, Duration: 600},
	})
	e.InjectInteraction(900, "#x", KindKey)

	e.Reset()
	snap := e.Snapshot()

	if snap.State != StateMeasuring {
		t.Errorf("expected measuring after reset, got %q", snap.State)
	}
	if snap.LayoutShift.Value != 0 || len(snap.LayoutShift.Windows) != 0 {
		t.Error("expected empty layout shift state after reset")
	}
	if snap.LayoutShift.LargestShift != nil || snap.LayoutShift.LargestWindow != nil {
		t.Error("expected no largest shift/window after reset")
	}
	if snap.Responsiveness.Value != nil || snap.Responsiveness.Stats.Count != 0 {
		t.Error("expected empty responsiveness state after reset")
	}
	if snap.Responsiveness.Stats.GoodPercentage != 100 {
		t.Errorf("expected good percentage back to 100, got %f", snap.Responsiveness.Stats.GoodPercentage)
	}
	if len(snap.Issues) != 0 {
		t.Errorf("expected no issues after reset, got %d", len(snap.Issues))
	}
}

func TestEngine_SnapshotImmutable(t *testing.T) {
	e := New(defaultTh())
	snap := e.HandleShiftUpdate(0.1, []ShiftSample{{Value: 0.1, StartTime: 100}})

	// Mutating the returned snapshot must not leak into later reads.
	snap.LayoutShift.Windows[0].Value = 99
	snap.LayoutShift.Windows[0].Entries[0].Value = 99

	fresh := e.Snapshot()
	if fresh.LayoutShift.Windows[0].Value != 0.1 {
		t.Errorf("engine state mutated through snapshot: %f", fresh.LayoutShift.Windows[0].Value)
	}
	if fresh.LayoutShift.Windows[0].Entries[0].Value != 0.1 {
		t.Errorf("engine entries mutated through snapshot: %f", fresh.LayoutShift.Windows[0].Entries[0].Value)
	}
}

func TestEngine_ObserveShiftsForwardsWithoutMutating(t *testing.T) {
	var observed []ShiftSample
	e := New(defaultTh(), WithHooks(Hooks{
		OnShift: func(s ShiftSample) { observed = append(observed, s) },
	}))

	e.ObserveShifts([]ShiftSample{{Value: 0.2, StartTime: 50}})

	if len(observed) != 1 {
		t.Fatalf("expected 1 forwarded shift, got %d", len(observed))
	}
	snap := e.Snapshot()
	if snap.State != StateMeasuring {
		t.Error("attribution observation must not stabilize the engine")
	}
	if len(snap.LayoutShift.Windows) != 0 {
		t.Error("attribution observation must not mutate shift history")
	}
}

func TestRateInteraction(t *testing.T) {
	tests := []struct {
		latency float64
		want    Rating
	}{
		{0, RatingGood},
		{150, RatingGood},
		{200, RatingGood},
		{201, RatingNeedsImprovement},
		{500, RatingNeedsImprovement},
		{501, RatingPoor},
	}
	for _, tt := range tests {
		if got := RateInteraction(tt.latency); got != tt.want {
			t.Errorf("RateInteraction(%f) = %q, want %q", tt.latency, got, tt.want)
		}
	}
}

func TestRateShift(t *testing.T) {
	tests := []struct {
		value float64
		want  Rating
	}{
		{0, RatingGood},
		{0.1, RatingGood},
		{0.11, RatingNeedsImprovement},
		{0.25, RatingNeedsImprovement},
		{0.3, RatingPoor},
	}
	for _, tt := range tests {
		if got := RateShift(tt.value); got != tt.want {
			t.Errorf("RateShift(%f) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
