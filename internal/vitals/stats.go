package vitals

import "sort"

// InteractionStats are the running aggregate statistics over the full
// interaction history, recomputed on every update.
type InteractionStats struct {
	// Count is the number of interactions recorded.
	Count int `json:"count"`

	// SlowCount is the number of interactions above the latency
	// threshold.
	SlowCount int `json:"slow_count"`

	// AverageLatency is the mean latency in milliseconds, nil when no
	// interactions exist.
	AverageLatency *float64 `json:"average_latency,omitempty"`

	// GoodPercentage is the share of interactions at or below the good
	// threshold, in [0,100]. Defaults to 100 with no interactions.
	GoodPercentage float64 `json:"good_percentage"`

	// CountsByKind partitions the history over the three kinds.
	CountsByKind map[InteractionKind]int `json:"counts_by_kind"`

	// Slowest is the highest-latency interaction, first encountered on
	// ties; nil when no interactions exist.
	Slowest *Interaction `json:"slowest,omitempty"`
}

// ComputeStats derives aggregate statistics from the interaction
// history.
func ComputeStats(interactions []Interaction, th Thresholds) InteractionStats {
	stats := InteractionStats{
		Count:          len(interactions),
		GoodPercentage: 100,
		CountsByKind: map[InteractionKind]int{
			KindPointer: 0,
			KindKey:     0,
			KindTap:     0,
		},
	}
	if len(interactions) == 0 {
		return stats
	}

	var sum float64
	good := 0
	var slowest *Interaction
	for i := range interactions {
		in := &interactions[i]
		sum += in.Latency
		if in.Latency > th.InteractionMs {
			stats.SlowCount++
		}
		if in.Latency <= th.GoodMs {
			good++
		}
		stats.CountsByKind[in.Kind]++
		if slowest == nil || in.Latency > slowest.Latency {
			slowest = in
		}
	}

	avg := sum / float64(len(interactions))
	stats.AverageLatency = &avg
	stats.GoodPercentage = float64(good) / float64(len(interactions)) * 100
	if slowest != nil {
		copied := *slowest
		if copied.Scripts != nil {
			scripts := make([]ScriptCost, len(copied.Scripts))
			copy(scripts, copied.Scripts)
			copied.Scripts = scripts
		}
		stats.Slowest = &copied
	}
	return stats
}

// TopScripts groups attributed script costs by URL, sums their
// durations and occurrences, and returns the costliest n in descending
// order. The sort is stable, so equal totals keep insertion order.
func TopScripts(scripts []ScriptCost, n int) []ScriptCost {
	if n <= 0 {
		return nil
	}

	index := make(map[string]int)
	var grouped []ScriptCost
	for _, s := range scripts {
		if i, ok := index[s.URL]; ok {
			grouped[i].TotalDuration += s.TotalDuration
			grouped[i].Occurrences += s.Occurrences
			continue
		}
		index[s.URL] = len(grouped)
		grouped = append(grouped, s)
	}

	sort.SliceStable(grouped, func(i, j int) bool {
		return grouped[i].TotalDuration > grouped[j].TotalDuration
	})

	if len(grouped) > n {
		grouped = grouped[:n]
	}
	return grouped
}
