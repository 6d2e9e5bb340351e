package dom

import (
	"net/url"
	"strings"
)

// Narrow yes/no questions about a captured element. Every predicate
// treats a nil element or missing data as a "no" rather than failing,
// so classification degrades instead of aborting.

// mediaTags are the tag names treated as sized media.
var mediaTags = map[string]bool{
	"img":     true,
	"video":   true,
	"picture": true,
}

// textTags are generic text-bearing tags used by the font-shift heuristic.
var textTags = map[string]bool{
	"p": true, "span": true, "a": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "label": true,
}

// adMarkers are substrings of class tokens or ids that mark ad containers.
var adMarkers = []string{"ad-", "-ad", "ads", "advert", "sponsor", "banner"}

// IsMediaTag reports whether the element is an image, video, or picture.
func IsMediaTag(el *Element) bool {
	return el != nil && mediaTags[strings.ToLower(el.Tag)]
}

// IsImageTag reports whether the element is an img.
func IsImageTag(el *Element) bool {
	return el != nil && strings.ToLower(el.Tag) == "img"
}

// IsTextTag reports whether the element is a generic text tag.
func IsTextTag(el *Element) bool {
	return el != nil && textTags[strings.ToLower(el.Tag)]
}

// HasExplicitDimensions reports whether the element reserves layout
// space up front: width and height attributes, or a computed
// aspect-ratio, or explicit non-auto width and height styles.
func HasExplicitDimensions(el *Element) bool {
	if el == nil {
		return false
	}
	if _, hasW := el.Attr("width"); hasW {
		if _, hasH := el.Attr("height"); hasH {
			return true
		}
	}
	if ratio := el.StyleValue("aspect-ratio"); ratio != "" && ratio != "auto" {
		return true
	}
	w, h := el.StyleValue("width"), el.StyleValue("height")
	return w != "" && w != "auto" && h != "" && h != "auto"
}

// IsAnimated reports whether the element's captured computed style
// shows an active animation, transition, or transform.
func IsAnimated(el *Element) bool {
	if el == nil {
		return false
	}
	if name := el.StyleValue("animation-name"); name != "" && name != "none" {
		return true
	}
	if dur := el.StyleValue("transition-duration"); dur != "" && dur != "0s" {
		return true
	}
	if tf := el.StyleValue("transform"); tf != "" && tf != "none" {
		return true
	}
	return false
}

// InAdContainer reports whether the element or any ancestor carries an
// ad marker in its id or class tokens.
func InAdContainer(el *Element) bool {
	for cur := el; cur != nil; cur = cur.Parent() {
		if hasAdMarker(strings.ToLower(cur.ID)) {
			return true
		}
		for _, c := range cur.Classes {
			if hasAdMarker(strings.ToLower(c)) {
				return true
			}
		}
	}
	return false
}

func hasAdMarker(s string) bool {
	if s == "" {
		return false
	}
	if s == "ad" {
		return true
	}
	for _, marker := range adMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// HasFontMarker reports whether the element or an ancestor carries a
// font-related marker: a class token containing "font", a data-font
// attribute, or a captured font-display style.
func HasFontMarker(el *Element) bool {
	for cur := el; cur != nil; cur = cur.Parent() {
		for _, c := range cur.Classes {
			if strings.Contains(strings.ToLower(c), "font") {
				return true
			}
		}
		if _, ok := cur.Attr("data-font"); ok {
			return true
		}
		if cur.StyleValue("font-display") != "" {
			return true
		}
	}
	return false
}

// IsThirdPartyOrigin reports whether rawURL points at a different
// origin than pageOrigin. Unparseable input is conservatively treated
// as first-party.
func IsThirdPartyOrigin(rawURL, pageOrigin string) bool {
	if rawURL == "" || pageOrigin == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}
	p, err := url.Parse(pageOrigin)
	if err != nil || p.Host == "" {
		return false
	}
	return !strings.EqualFold(u.Host, p.Host)
}
