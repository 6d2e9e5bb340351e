// Package dom models captured document elements and derives short,
// human-readable selectors for them. Elements are immutable snapshots
// decoded from a capture file, not live browser nodes.
package dom

import (
	"fmt"
	"strings"
)

// Element is a snapshot of one document element at capture time.
type Element struct {
	// Tag is the lowercase tag name (e.g. "img", "div").
	Tag string `json:"tag"`

	// ID is the element's id attribute, empty if absent.
	ID string `json:"id,omitempty"`

	// Classes are the element's class tokens in document order.
	Classes []string `json:"classes,omitempty"`

	// Attributes maps attribute name to value (excluding id and class).
	Attributes map[string]string `json:"attributes,omitempty"`

	// Style maps computed style property to value as captured.
	Style map[string]string `json:"style,omitempty"`

	// Children are the element's child elements in document order.
	Children []*Element `json:"children,omitempty"`

	// parent is set when a tree is linked; nil for detached elements.
	parent *Element
}

// Link walks the tree rooted at el and sets parent pointers on every
// descendant. Capture decoding produces parentless trees, so callers
// link once after decode.
func Link(el *Element) {
	if el == nil {
		return
	}
	for _, child := range el.Children {
		if child == nil {
			continue
		}
		child.parent = el
		Link(child)
	}
}

// Parent returns the element's parent, or nil for the root or a
// detached element.
func (el *Element) Parent() *Element {
	if el == nil {
		return nil
	}
	return el.parent
}

// Attr returns the named attribute value and whether it was present.
// The id attribute is answered from the ID field.
func (el *Element) Attr(name string) (string, bool) {
	if el == nil {
		return "", false
	}
	if name == "id" {
		return el.ID, el.ID != ""
	}
	v, ok := el.Attributes[name]
	return v, ok
}

// StyleValue returns the captured computed style value for a property,
// or "" if the property was not captured.
func (el *Element) StyleValue(prop string) string {
	if el == nil {
		return ""
	}
	return el.Style[prop]
}

// Selector derives a short locator string for an element:
//
//	#id                 when the element has a non-empty id
//	tag.c1.c2.c3        up to 3 class tokens
//	tag:nth-child(N)    positional fallback when the element has a parent
//	tag                 bare tag name otherwise
//
// A nil element yields "".
func Selector(el *Element) string {
	if el == nil {
		return ""
	}
	if el.ID != "" {
		return "#" + el.ID
	}
	tag := strings.ToLower(el.Tag)
	if len(el.Classes) > 0 {
		classes := el.Classes
		if len(classes) > 3 {
			classes = classes[:3]
		}
		return tag + "." + strings.Join(classes, ".")
	}
	if p := el.parent; p != nil {
		for i, sibling := range p.Children {
			if sibling == el {
				return fmt.Sprintf("%s:nth-child(%d)", tag, i+1)
			}
		}
	}
	return tag
}

// Lookup resolves a selector produced by Selector back to an element in
// the tree rooted at root. Resolution is best-effort: the first element
// matching in depth-first document order wins, and any selector that
// cannot be matched yields nil.
func Lookup(root *Element, selector string) *Element {
	if root == nil || selector == "" {
		return nil
	}

	if strings.HasPrefix(selector, "#") {
		id := selector[1:]
		return find(root, func(el *Element) bool { return el.ID == id })
	}

	if idx := strings.Index(selector, ":nth-child("); idx >= 0 {
		tag := selector[:idx]
		var n int
		if _, err := fmt.Sscanf(selector[idx:], ":nth-child(%d)", &n); err != nil || n < 1 {
			return nil
		}
		return find(root, func(el *Element) bool {
			p := el.parent
			if p == nil || n > len(p.Children) {
				return false
			}
			return strings.EqualFold(el.Tag, tag) && p.Children[n-1] == el
		})
	}

	if idx := strings.Index(selector, "."); idx >= 0 {
		tag := selector[:idx]
		classes := strings.Split(selector[idx+1:], ".")
		return find(root, func(el *Element) bool {
			if !strings.EqualFold(el.Tag, tag) {
				return false
			}
			for _, c := range classes {
				if !hasClass(el, c) {
					return false
				}
			}
			return true
		})
	}

	return find(root, func(el *Element) bool { return strings.EqualFold(el.Tag, selector) })
}

// find returns the first element in depth-first document order for
// which match returns true.
func find(el *Element, match func(*Element) bool) *Element {
	if el == nil {
		return nil
	}
	if match(el) {
		return el
	}
	for _, child := range el.Children {
		if found := find(child, match); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(el *Element, class string) bool {
	for _, c := range el.Classes {
		if c == class {
			return true
		}
	}
	return false
}
