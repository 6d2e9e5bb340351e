// Package vitals analyzes user-perceived performance signals captured
// from a page: layout instability (cumulative shift) and interaction
// responsiveness. It turns raw timing samples into session windows,
// phase breakdowns, aggregate statistics, and classified issues with
// remediation suggestions.
package vitals

// Rating is one of three fixed bands derived from a numeric value.
type Rating string

const (
	RatingGood             Rating = "good"
	RatingNeedsImprovement Rating = "needs-improvement"
	RatingPoor             Rating = "poor"
)

// Interaction latency rating bands, in milliseconds.
const (
	interactionGoodMs = 200
	interactionPoorMs = 500
)

// Cumulative shift rating bands (unitless score).
const (
	shiftGoodScore = 0.1
	shiftPoorScore = 0.25
)

// RateInteraction rates an interaction latency in milliseconds.
func RateInteraction(latency float64) Rating {
	switch {
	case latency <= interactionGoodMs:
		return RatingGood
	case latency <= interactionPoorMs:
		return RatingNeedsImprovement
	default:
		return RatingPoor
	}
}

// RateShift rates a cumulative layout shift score.
func RateShift(value float64) Rating {
	switch {
	case value <= shiftGoodScore:
		return RatingGood
	case value <= shiftPoorScore:
		return RatingNeedsImprovement
	default:
		return RatingPoor
	}
}

// InteractionKind classifies an interaction by its triggering event.
type InteractionKind string

const (
	KindPointer InteractionKind = "pointer"
	KindKey     InteractionKind = "key"
	KindTap     InteractionKind = "tap"
)

// Rect is an element bounding box at a point in time.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ShiftAttribution names the element a layout shift is attributed to,
// with its geometry before and after the shift. Node is a resolved
// selector string, empty when the element could not be resolved.
type ShiftAttribution struct {
	Node         string `json:"node,omitempty"`
	PreviousRect Rect   `json:"previous_rect"`
	CurrentRect  Rect   `json:"current_rect"`
}

// ShiftSample is one recorded layout instability event.
type ShiftSample struct {
	// Value is the non-negative shift magnitude.
	Value float64 `json:"value"`

	// StartTime is the monotonic timestamp in milliseconds.
	StartTime float64 `json:"start_time"`

	// HadRecentInput marks user-initiated shifts, which are excluded
	// from scoring and session windows.
	HadRecentInput bool `json:"had_recent_input"`

	// Sources are the attributed elements in delivery order.
	Sources []ShiftAttribution `json:"sources,omitempty"`
}

// SessionWindow is a maximal run of non-input-driven shift samples
// satisfying the gap/duration grouping rule.
type SessionWindow struct {
	Value     float64       `json:"value"`
	Entries   []ShiftSample `json:"entries"`
	StartTime float64       `json:"start_time"`
	EndTime   float64       `json:"end_time"`
}

// PhaseBreakdown is the three-way additive split of an interaction's
// latency. Values are milliseconds, derived once and never adjusted.
type PhaseBreakdown struct {
	InputDelay         float64 `json:"input_delay"`
	ProcessingDuration float64 `json:"processing_duration"`
	PresentationDelay  float64 `json:"presentation_delay"`
}

// ScriptCost is the accumulated cost attributed to one script URL.
type ScriptCost struct {
	URL           string  `json:"url"`
	TotalDuration float64 `json:"total_duration"`
	Occurrences   int     `json:"occurrences"`
	IsThirdParty  bool    `json:"is_third_party"`
}

// Interaction is one user interaction and the latency until the next
// visual update reflecting it. Interactions are appended to history
// and never mutated afterward.
type Interaction struct {
	ID                string          `json:"id"`
	Kind              InteractionKind `json:"kind"`
	Latency           float64         `json:"latency"`
	Rating            Rating          `json:"rating"`
	Target            string          `json:"target,omitempty"`
	StartTime         float64         `json:"start_time"`
	Phases            PhaseBreakdown  `json:"phases"`
	Scripts           []ScriptCost    `json:"scripts,omitempty"`
	DominantEventName string          `json:"dominant_event_name,omitempty"`
}

// IssueCategory is the closed set of diagnosable root causes.
type IssueCategory string

// Shift issue categories.
const (
	IssueDynamicContent         IssueCategory = "dynamic-content"
	IssueImageWithoutDimensions IssueCategory = "image-without-dimensions"
	IssueUnsizedMedia           IssueCategory = "unsized-media"
	IssueAdEmbedShift           IssueCategory = "ad-embed-shift"
	IssueWebFontShift           IssueCategory = "web-font-shift"
	IssueAnimationShift         IssueCategory = "animation-shift"
)

// Interaction issue categories. IssueLongRunningScript is reserved for
// attribution-based detection and is mapped in the suggestion table but
// not emitted until script attribution is wired.
const (
	IssueHighInputDelay        IssueCategory = "high-input-delay"
	IssueHeavyEventHandler     IssueCategory = "heavy-event-handler"
	IssueThirdPartyScript      IssueCategory = "third-party-script"
	IssueHighPresentationDelay IssueCategory = "high-presentation-delay"
	IssueLongRunningScript     IssueCategory = "long-running-script"
)

// suggestions maps each category to its fixed remediation text.
var suggestions = map[IssueCategory]string{
	IssueDynamicContent:         "Reserve space for dynamically inserted content with min-height or a skeleton placeholder so late-arriving content does not push the page around.",
	IssueImageWithoutDimensions: "Set explicit width and height attributes (or a CSS aspect-ratio) on the image so the browser reserves its space before it loads.",
	IssueUnsizedMedia:           "Give the media element explicit dimensions or an aspect-ratio so its box is reserved before playback assets arrive.",
	IssueAdEmbedShift:           "Reserve a fixed-size slot for the ad or embed (min-height on the container) and avoid collapsing it when nothing fills.",
	IssueWebFontShift:           "Use font-display: optional or swap with a metric-compatible fallback font, and preload critical web fonts to limit reflow from late font swaps.",
	IssueAnimationShift:         "Animate with transform and opacity instead of layout-affecting properties such as top, left, width, or height.",
	IssueHighInputDelay:         "Break up long tasks on the main thread so input handlers can start promptly; consider scheduler.yield or splitting work into smaller chunks.",
	IssueHeavyEventHandler:      "Move non-visual work out of the event handler: defer it with requestIdleCallback, debounce repeated events, or offload to a web worker.",
	IssueThirdPartyScript:       "Audit the third-party script's event listeners; load it with async/defer, delay it until after first interaction, or replace it with a lighter alternative.",
	IssueHighPresentationDelay:  "Reduce rendering work after the handler runs: shrink the affected DOM, avoid forced synchronous layout, and batch style changes.",
	IssueLongRunningScript:      "Profile the attributed script and split its longest tasks; code-split so the page only parses what the current view needs.",
}

// Suggestion returns the fixed remediation text for a category.
func Suggestion(category IssueCategory) string {
	return suggestions[category]
}

// Issue is a classified, deduplicated diagnostic record. At most one
// issue exists per (element, category) pair, and issues are never
// re-scored after creation.
type Issue struct {
	Category     IssueCategory `json:"category"`
	Element      string        `json:"element,omitempty"`
	Contribution float64       `json:"contribution"`
	Suggestion   string        `json:"suggestion"`
	Timestamp    float64       `json:"timestamp"`
}

// Thresholds holds every tunable constant the analyzers use.
type Thresholds struct {
	// InteractionMs is the latency above which an interaction is
	// considered slow and eligible for issue classification.
	InteractionMs float64

	// GoodMs is the latency at or below which an interaction counts
	// toward the good percentage.
	GoodMs float64

	// LongTaskMs flags input delay caused by a blocking long task.
	LongTaskMs float64

	// ThirdPartyScriptMs is the attributed cost above which a
	// third-party script is blamed for processing time.
	ThirdPartyScriptMs float64

	// SessionGapMs closes a session window when the gap between
	// consecutive shifts exceeds it.
	SessionGapMs float64

	// SessionMaxMs closes a session window when its total duration
	// exceeds it.
	SessionMaxMs float64

	// FontShiftPx bounds the vertical displacement attributed to a
	// font swap. Heuristic constant, not a derived threshold.
	FontShiftPx float64

	// TopScripts is how many ranked script costs to report.
	TopScripts int
}

// DefaultThresholds returns the standard thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		InteractionMs:      200,
		GoodMs:             200,
		LongTaskMs:         50,
		ThirdPartyScriptMs: 50,
		SessionGapMs:       1000,
		SessionMaxMs:       5000,
		FontShiftPx:        20,
		TopScripts:         5,
	}
}
