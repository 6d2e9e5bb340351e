package vitals

import (
	"math"
	"strings"

	"github.com/vitalwatch/vitalwatch/internal/dom"
)

// ElementLookup resolves a selector back to a captured element.
// Implementations are best-effort: unresolvable selectors yield nil.
type ElementLookup func(selector string) *dom.Element

// ClassifyShift maps the largest shift sample's dominant source element
// and geometry delta to an issue category. The decision tree is total:
// every shift that reaches it gets a category, with dynamic-content as
// the fallback. Returns nil only when there is no sample to classify.
func ClassifyShift(sample *ShiftSample, lookup ElementLookup, th Thresholds) *Issue {
	if sample == nil {
		return nil
	}

	var attr ShiftAttribution
	if len(sample.Sources) > 0 {
		attr = sample.Sources[0]
	}

	var el *dom.Element
	if attr.Node != "" && lookup != nil {
		el = lookup(attr.Node)
	}

	category := classifyShiftElement(el, attr, th)
	return &Issue{
		Category:     category,
		Element:      attr.Node,
		Contribution: sample.Value,
		Suggestion:   Suggestion(category),
		Timestamp:    sample.StartTime,
	}
}

// classifyShiftElement is the ordered decision tree; first match wins.
func classifyShiftElement(el *dom.Element, attr ShiftAttribution, th Thresholds) IssueCategory {
	if el == nil {
		return IssueDynamicContent
	}

	if dom.IsMediaTag(el) && !dom.HasExplicitDimensions(el) {
		if dom.IsImageTag(el) {
			return IssueImageWithoutDimensions
		}
		return IssueUnsizedMedia
	}

	if strings.EqualFold(el.Tag, "iframe") || dom.InAdContainer(el) {
		return IssueAdEmbedShift
	}

	verticalShift := math.Abs(attr.CurrentRect.Y - attr.PreviousRect.Y)
	if (dom.HasFontMarker(el) || dom.IsTextTag(el)) && verticalShift < th.FontShiftPx {
		return IssueWebFontShift
	}

	if dom.IsAnimated(el) {
		return IssueAnimationShift
	}

	return IssueDynamicContent
}
