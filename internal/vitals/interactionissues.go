package vitals

// Processing and presentation shares of the latency threshold used by
// the interaction classifier. Fixed ratios, not configuration.
const (
	processingShare   = 0.6
	presentationShare = 0.4
)

// ClassifyInteraction maps an interaction's phase magnitudes, plus any
// attributed script costs, to an issue category. Interactions at or
// below the latency threshold raise nothing. The decision order is:
// input delay, then processing (third-party script if one is costly
// enough, otherwise the page's own handler), then presentation delay.
func ClassifyInteraction(in Interaction, th Thresholds) *Issue {
	if in.Latency <= th.InteractionMs {
		return nil
	}

	category, contribution, ok := classifyPhases(in, th)
	if !ok {
		return nil
	}
	return &Issue{
		Category:     category,
		Element:      in.Target,
		Contribution: contribution,
		Suggestion:   Suggestion(category),
		Timestamp:    in.StartTime,
	}
}

func classifyPhases(in Interaction, th Thresholds) (IssueCategory, float64, bool) {
	if in.Phases.InputDelay > th.LongTaskMs {
		return IssueHighInputDelay, in.Phases.InputDelay, true
	}

	if in.Phases.ProcessingDuration > th.InteractionMs*processingShare {
		for _, s := range in.Scripts {
			if s.IsThirdParty && s.TotalDuration > th.ThirdPartyScriptMs {
				return IssueThirdPartyScript, in.Phases.ProcessingDuration, true
			}
		}
		return IssueHeavyEventHandler, in.Phases.ProcessingDuration, true
	}

	if in.Phases.PresentationDelay > th.InteractionMs*presentationShare {
		return IssueHighPresentationDelay, in.Phases.PresentationDelay, true
	}

	return "", 0, false
}

// dedupeIssue reports whether issues already contains an entry with the
// same (element, category) pair as candidate.
func dedupeIssue(issues []Issue, candidate Issue) bool {
	for _, existing := range issues {
		if existing.Element == candidate.Element && existing.Category == candidate.Category {
			return true
		}
	}
	return false
}
