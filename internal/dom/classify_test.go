package dom

import "testing"

func TestPredicates_NilElement(t *testing.T) {
	if IsMediaTag(nil) || IsImageTag(nil) || IsTextTag(nil) {
		t.Error("tag predicates must be false for nil")
	}
	if HasExplicitDimensions(nil) || IsAnimated(nil) || InAdContainer(nil) || HasFontMarker(nil) {
		t.Error("style predicates must be false for nil")
	}
}

func TestIsMediaTag(t *testing.T) {
	for _, tag := range []string{"img", "video", "picture", "IMG"} {
		if !IsMediaTag(&Element{Tag: tag}) {
			t.Errorf("expected %q to be a media tag", tag)
		}
	}
	if IsMediaTag(&Element{Tag: "div"}) {
		t.Error("div is not a media tag")
	}
}

func TestHasExplicitDimensions(t *testing.T) {
	withAttrs := &Element{
		Tag:        "img",
		Attributes: map[string]string{"width": "640", "height": "480"},
	}
	if !HasExplicitDimensions(withAttrs) {
		t.Error("width+height attributes should count as explicit sizing")
	}

	widthOnly := &Element{Tag: "img", Attributes: map[string]string{"width": "640"}}
	if HasExplicitDimensions(widthOnly) {
		t.Error("width without height is not explicit sizing")
	}

	withRatio := &Element{Tag: "img", Style: map[string]string{"aspect-ratio": "16 / 9"}}
	if !HasExplicitDimensions(withRatio) {
		t.Error("aspect-ratio should count as explicit sizing")
	}

	autoRatio := &Element{Tag: "img", Style: map[string]string{"aspect-ratio": "auto"}}
	if HasExplicitDimensions(autoRatio) {
		t.Error("auto aspect-ratio is not explicit sizing")
	}

	withStyles := &Element{Tag: "img", Style: map[string]string{"width": "640px", "height": "480px"}}
	if !HasExplicitDimensions(withStyles) {
		t.Error("non-auto width+height styles should count as explicit sizing")
	}

	autoStyles := &Element{Tag: "img", Style: map[string]string{"width": "640px", "height": "auto"}}
	if HasExplicitDimensions(autoStyles) {
		t.Error("auto height is not explicit sizing")
	}
}

func TestIsAnimated(t *testing.T) {
	tests := []struct {
		style map[string]string
		want  bool
	}{
		{map[string]string{"animation-name": "pulse"}, true},
		{map[string]string{"animation-name": "none"}, false},
		{map[string]string{"transition-duration": "0.3s"}, true},
		{map[string]string{"transition-duration": "0s"}, false},
		{map[string]string{"transform": "translateY(10px)"}, true},
		{map[string]string{"transform": "none"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsAnimated(&Element{Tag: "div", Style: tt.style}); got != tt.want {
			t.Errorf("IsAnimated(%v) = %v, want %v", tt.style, got, tt.want)
		}
	}
}

func TestInAdContainer(t *testing.T) {
	root := &Element{
		Tag:     "div",
		Classes: []string{"sidebar-ads"},
		Children: []*Element{
			{Tag: "div", Children: []*Element{{Tag: "img"}}},
		},
	}
	Link(root)
	if !InAdContainer(root.Children[0].Children[0]) {
		t.Error("expected descendant of ad container to be flagged")
	}

	clean := &Element{Tag: "div", Classes: []string{"content"}}
	if InAdContainer(clean) {
		t.Error("content container must not be flagged")
	}

	// "shadow" contains "ad" as a substring but is not an ad marker.
	shadow := &Element{Tag: "div", Classes: []string{"shadow"}}
	if InAdContainer(shadow) {
		t.Error("shadow class must not be treated as an ad marker")
	}

	exact := &Element{Tag: "div", ID: "ad"}
	if !InAdContainer(exact) {
		t.Error("exact \"ad\" id should be flagged")
	}
}

func TestHasFontMarker(t *testing.T) {
	byClass := &Element{Tag: "p", Classes: []string{"font-loaded"}}
	if !HasFontMarker(byClass) {
		t.Error("font class should be a marker")
	}

	byAttr := &Element{Tag: "p", Attributes: map[string]string{"data-font": "inter"}}
	if !HasFontMarker(byAttr) {
		t.Error("data-font attribute should be a marker")
	}

	root := &Element{
		Tag:      "div",
		Classes:  []string{"webfont-active"},
		Children: []*Element{{Tag: "span"}},
	}
	Link(root)
	if !HasFontMarker(root.Children[0]) {
		t.Error("ancestor font marker should apply to descendants")
	}

	plain := &Element{Tag: "p", Classes: []string{"copy"}}
	if HasFontMarker(plain) {
		t.Error("plain text element has no font marker")
	}
}

func TestIsThirdPartyOrigin(t *testing.T) {
	tests := []struct {
		rawURL string
		origin string
		want   bool
	}{
		{"https://cdn.tracker.net/tag.js", "https://example.com", true},
		{"https://example.com/app.js", "https://example.com", false},
		{"https://EXAMPLE.com/app.js", "https://example.com", false},
		{"", "https://example.com", false},
		{"https://cdn.tracker.net/tag.js", "", false},
		{"not a url", "https://example.com", false},
	}
	for _, tt := range tests {
		if got := IsThirdPartyOrigin(tt.rawURL, tt.origin); got != tt.want {
			t.Errorf("IsThirdPartyOrigin(%q, %q) = %v, want %v", tt.rawURL, tt.origin, got, tt.want)
		}
	}
}
