package vitals

import "strings"

// RawEventEntry is one raw interaction timing record as delivered by
// the sampling subsystem.
type RawEventEntry struct {
	Name            string  `json:"name"`
	StartTime       float64 `json:"start_time"`
	ProcessingStart float64 `json:"processing_start"`
	ProcessingEnd   float64 `json:"processing_end"`
	Duration        float64 `json:"duration"`
	InteractionID   uint64  `json:"interaction_id,omitempty"`
	Target          string  `json:"target,omitempty"`
}

// BreakDownPhases splits an interaction's duration into input delay,
// processing time, and presentation delay. The arithmetic is exact:
// inconsistent inputs can legitimately produce a negative presentation
// delay, which is preserved rather than clamped so the inconsistency
// stays visible downstream.
func BreakDownPhases(e RawEventEntry) PhaseBreakdown {
	return PhaseBreakdown{
		InputDelay:         e.ProcessingStart - e.StartTime,
		ProcessingDuration: e.ProcessingEnd - e.ProcessingStart,
		PresentationDelay:  e.Duration - (e.ProcessingEnd - e.StartTime),
	}
}

// ClassifyKind maps an event name to an interaction kind. Key events
// win over pointer/touch tokens; anything unrecognized defaults to
// pointer.
func ClassifyKind(eventName string) InteractionKind {
	name := strings.ToLower(eventName)
	if strings.Contains(name, "key") {
		return KindKey
	}
	if strings.Contains(name, "pointer") || strings.Contains(name, "touch") {
		return KindTap
	}
	return KindPointer
}

// DominantEntry selects the interaction of record for one callback
// batch: the entry with the longest duration, first in iteration order
// on ties. Returns nil for an empty batch.
func DominantEntry(entries []RawEventEntry) *RawEventEntry {
	var dominant *RawEventEntry
	for i := range entries {
		if dominant == nil || entries[i].Duration > dominant.Duration {
			dominant = &entries[i]
		}
	}
	return dominant
}
