package vitals

// SessionWindows groups the full time-ordered shift history into
// session windows. Samples flagged with recent input never start or
// extend a window. A window closes when the gap since its last member
// exceeds the session gap, or when its total duration exceeds the
// session maximum; the offending sample opens the next window.
//
// Windows are re-derived from the complete history on every pass, so
// the result depends only on the input ordering.
func SessionWindows(samples []ShiftSample, th Thresholds) []SessionWindow {
	var windows []SessionWindow
	var current *SessionWindow

	for _, s := range samples {
		if s.HadRecentInput {
			continue
		}
		if current != nil {
			gap := s.StartTime - current.EndTime
			duration := s.StartTime - current.StartTime
			if gap > th.SessionGapMs || duration > th.SessionMaxMs {
				windows = append(windows, *current)
				current = nil
			}
		}
		if current == nil {
			current = &SessionWindow{
				Value:     s.Value,
				Entries:   []ShiftSample{s},
				StartTime: s.StartTime,
				EndTime:   s.StartTime,
			}
			continue
		}
		current.Value += s.Value
		current.Entries = append(current.Entries, s)
		current.EndTime = s.StartTime
	}

	if current != nil {
		windows = append(windows, *current)
	}
	return windows
}

// LargestWindow returns the window with the greatest value, or nil if
// there are none. The first window encountered wins ties.
func LargestWindow(windows []SessionWindow) *SessionWindow {
	var largest *SessionWindow
	for i := range windows {
		if largest == nil || windows[i].Value > largest.Value {
			largest = &windows[i]
		}
	}
	return largest
}

// LargestShift returns the non-input-driven sample with the greatest
// value, or nil if there are none. The first sample encountered wins
// ties.
func LargestShift(samples []ShiftSample) *ShiftSample {
	var largest *ShiftSample
	for i := range samples {
		if samples[i].HadRecentInput {
			continue
		}
		if largest == nil || samples[i].Value > largest.Value {
			largest = &samples[i]
		}
	}
	return largest
}
