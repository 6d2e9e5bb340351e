package output

import (
	"fmt"
	"strings"

	"github.com/vitalwatch/vitalwatch/internal/vitals"
)

// RenderReport formats an engine snapshot as a terminal report.
func RenderReport(snap vitals.Snapshot) string {
	var sb strings.Builder

	sb.WriteString(StyleHeader.Render("Metrics"))
	sb.WriteString("\n")
	sb.WriteString(metricLine("Cumulative layout shift", fmt.Sprintf("%.3f", snap.LayoutShift.Value), snap.LayoutShift.Rating))
	if snap.Responsiveness.Value != nil {
		sb.WriteString(metricLine("Interaction latency", fmt.Sprintf("%.0fms", *snap.Responsiveness.Value), snap.Responsiveness.Rating))
	} else {
		sb.WriteString(StyleLabel.Render("Interaction latency"))
		sb.WriteString(StyleMuted.Render("no interactions yet"))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if len(snap.LayoutShift.Windows) > 0 {
		sb.WriteString(StyleHeader.Render("Shift session windows"))
		sb.WriteString("\n")
		sb.WriteString(renderWindows(snap.LayoutShift))
		sb.WriteString("\n")
	}

	sb.WriteString(StyleHeader.Render("Interactions"))
	sb.WriteString("\n")
	sb.WriteString(renderStats(snap.Responsiveness.Stats))
	if slowest := snap.Responsiveness.Stats.Slowest; slowest != nil {
		sb.WriteString(renderPhases(slowest))
	}
	sb.WriteString("\n")

	if len(snap.Responsiveness.TopScripts) > 0 {
		sb.WriteString(StyleHeader.Render("Costliest scripts"))
		sb.WriteString("\n")
		sb.WriteString(renderScripts(snap.Responsiveness.TopScripts))
		sb.WriteString("\n")
	}

	sb.WriteString(StyleHeader.Render("Issues"))
	sb.WriteString("\n")
	if len(snap.Issues) == 0 {
		sb.WriteString(StyleMuted.Render("none detected"))
		sb.WriteString("\n")
	} else {
		sb.WriteString(renderIssues(snap.Issues))
	}

	return sb.String()
}

func metricLine(label, value string, rating vitals.Rating) string {
	return fmt.Sprintf("%s%s %s\n",
		StyleLabel.Render(label),
		RatingStyle(rating).Render(value),
		StyleMuted.Render("("+string(rating)+")"),
	)
}

func renderWindows(report vitals.ShiftReport) string {
	table := NewTable("Window", "Value", "Shifts", "Start", "End").AlignRight(1, 2, 3, 4)
	for i, w := range report.Windows {
		marker := fmt.Sprintf("#%d", i+1)
		if report.LargestWindow != nil && w.StartTime == report.LargestWindow.StartTime && w.Value == report.LargestWindow.Value {
			marker += " *"
		}
		table.AddRow(
			marker,
			fmt.Sprintf("%.3f", w.Value),
			fmt.Sprintf("%d", len(w.Entries)),
			fmt.Sprintf("%.0fms", w.StartTime),
			fmt.Sprintf("%.0fms", w.EndTime),
		)
	}
	return table.Render()
}

func renderStats(stats vitals.InteractionStats) string {
	var sb strings.Builder
	sb.WriteString(StyleLabel.Render("Recorded"))
	sb.WriteString(fmt.Sprintf("%d (%d slow)\n", stats.Count, stats.SlowCount))
	if stats.AverageLatency != nil {
		sb.WriteString(StyleLabel.Render("Average latency"))
		sb.WriteString(fmt.Sprintf("%.0fms\n", *stats.AverageLatency))
	}
	sb.WriteString(StyleLabel.Render("Good interactions"))
	style := StyleGood
	if stats.GoodPercentage < 90 {
		style = StyleWarn
	}
	if stats.GoodPercentage < 50 {
		style = StylePoor
	}
	sb.WriteString(style.Render(fmt.Sprintf("%.0f%%", stats.GoodPercentage)))
	sb.WriteString("\n")
	sb.WriteString(StyleLabel.Render("By kind"))
	sb.WriteString(fmt.Sprintf("pointer %d, key %d, tap %d\n",
		stats.CountsByKind[vitals.KindPointer],
		stats.CountsByKind[vitals.KindKey],
		stats.CountsByKind[vitals.KindTap],
	))
	return sb.String()
}

func renderPhases(in *vitals.Interaction) string {
	var sb strings.Builder
	target := in.Target
	if target == "" {
		target = "(unknown target)"
	}
	sb.WriteString(StyleLabel.Render("Slowest"))
	sb.WriteString(fmt.Sprintf("%s on %s: ", in.Kind, target))
	sb.WriteString(RatingStyle(in.Rating).Render(fmt.Sprintf("%.0fms", in.Latency)))
	sb.WriteString("\n")
	sb.WriteString(StyleLabel.Render(""))
	sb.WriteString(StyleMuted.Render(fmt.Sprintf("input %.0fms · processing %.0fms · presentation %.0fms",
		in.Phases.InputDelay, in.Phases.ProcessingDuration, in.Phases.PresentationDelay)))
	sb.WriteString("\n")
	return sb.String()
}

func renderScripts(scripts []vitals.ScriptCost) string {
	table := NewTable("Script", "Total", "Calls", "Origin").AlignRight(1, 2)
	for _, s := range scripts {
		origin := "first-party"
		if s.IsThirdParty {
			origin = "third-party"
		}
		table.AddRow(s.URL, fmt.Sprintf("%.0fms", s.TotalDuration), fmt.Sprintf("%d", s.Occurrences), origin)
	}
	return table.Render()
}

func renderIssues(issues []vitals.Issue) string {
	var sb strings.Builder
	for _, issue := range issues {
		element := issue.Element
		if element == "" {
			element = "(unresolved element)"
		}
		sb.WriteString(StylePoor.Render(string(issue.Category)))
		sb.WriteString(fmt.Sprintf(" %s ", StyleBold.Render(element)))
		sb.WriteString(StyleMuted.Render(fmt.Sprintf("(contribution %.2f)", issue.Contribution)))
		sb.WriteString("\n  ")
		sb.WriteString(issue.Suggestion)
		sb.WriteString("\n")
	}
	return sb.String()
}
