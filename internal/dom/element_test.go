package dom

import "testing"

func TestSelector_Nil(t *testing.T) {
	if got := Selector(nil); got != "" {
		t.Errorf("expected empty selector for nil element, got %q", got)
	}
}

func TestSelector_ID(t *testing.T) {
	el := &Element{Tag: "div", ID: "hero", Classes: []string{"wide"}}
	if got := Selector(el); got != "#hero" {
		t.Errorf("expected #hero, got %q", got)
	}
}

func TestSelector_Classes(t *testing.T) {
	el := &Element{Tag: "DIV", Classes: []string{"card", "wide"}}
	if got := Selector(el); got != "div.card.wide" {
		t.Errorf("expected div.card.wide, got %q", got)
	}
}

func TestSelector_ClassesCappedAtThree(t *testing.T) {
	el := &Element{Tag: "div", Classes: []string{"a", "b", "c", "d", "e"}}
	if got := Selector(el); got != "div.a.b.c" {
		t.Errorf("expected div.a.b.c, got %q", got)
	}
}

func TestSelector_NthChild(t *testing.T) {
	parent := &Element{
		Tag: "ul",
		Children: []*Element{
			{Tag: "li"},
			{Tag: "li"},
			{Tag: "li"},
		},
	}
	Link(parent)
	if got := Selector(parent.Children[1]); got != "li:nth-child(2)" {
		t.Errorf("expected li:nth-child(2), got %q", got)
	}
}

func TestSelector_BareTag(t *testing.T) {
	el := &Element{Tag: "BODY"}
	if got := Selector(el); got != "body" {
		t.Errorf("expected body, got %q", got)
	}
}

// Lookup must invert Selector for elements in a linked tree.
func TestLookup_InvertsSelector(t *testing.T) {
	root := &Element{
		Tag: "body",
		Children: []*Element{
			{Tag: "div", ID: "hero"},
			{
				Tag:     "ul",
				Classes: []string{"nav", "top"},
				Children: []*Element{
					{Tag: "li"},
					{Tag: "li"},
				},
			},
			{Tag: "footer"},
		},
	}
	Link(root)

	targets := []*Element{
		root.Children[0],
		root.Children[1],
		root.Children[1].Children[1],
		root.Children[2],
	}
	for _, want := range targets {
		selector := Selector(want)
		got := Lookup(root, selector)
		if got != want {
			t.Errorf("Lookup(%q) did not return the original element", selector)
		}
	}
}

func TestLookup_Unresolvable(t *testing.T) {
	root := &Element{Tag: "body"}
	if got := Lookup(root, "#missing"); got != nil {
		t.Errorf("expected nil for missing id, got %v", got)
	}
	if got := Lookup(root, "div.absent"); got != nil {
		t.Errorf("expected nil for missing class, got %v", got)
	}
	if got := Lookup(root, "li:nth-child(3)"); got != nil {
		t.Errorf("expected nil for missing positional match, got %v", got)
	}
	if got := Lookup(nil, "body"); got != nil {
		t.Errorf("expected nil for nil root, got %v", got)
	}
	if got := Lookup(root, ""); got != nil {
		t.Errorf("expected nil for empty selector, got %v", got)
	}
}

func TestLookup_FirstMatchInDocumentOrder(t *testing.T) {
	root := &Element{
		Tag: "body",
		Children: []*Element{
			{Tag: "p", Classes: []string{"copy"}},
			{Tag: "p", Classes: []string{"copy"}},
		},
	}
	Link(root)
	if got := Lookup(root, "p.copy"); got != root.Children[0] {
		t.Error("expected the first matching element in document order")
	}
}
