package demo

import (
	"testing"

	"github.com/maderarasto/cordova-jsx/pkg/vtest"
)

func TestRootRenders(t *testing.T) {
	h := vtest.Mount(t, Render)

	h.ExpectContains("<h1>Title</h1><h2>Hello Cordova</h2>")
	h.ExpectContains("<p>State: 1</p>")
	h.ExpectAttribute("#top-header", "class", "class-1 class-2")
	h.ExpectAttribute("img", "src", LogoSrc)

	if got := len(h.Query("ul").Children()); got != len(Items) {
		t.Errorf("list items = %d, want %d", got, len(Items))
	}
}

func TestRootClick(t *testing.T) {
	h := vtest.Mount(t, Render)
	h.ExpectAttribute("div", "style", "color: black; font-size: 1rem")

	tests := []struct {
		state string
		style string
	}{
		{"State: 2", "color: red; font-size: 1rem"},
		{"State: 3", "color: black; font-size: 1rem"},
	}
	for _, tt := range tests {
		h.Click("button")
		h.ExpectContains(tt.state)
		h.ExpectAttribute("div", "style", tt.style)
	}

	// The list is keyed and unchanged; its nodes are kept.
	first := h.Query("li")
	h.Click("button")
	if h.Query("li") != first {
		t.Error("keyed list item was recreated on re-render")
	}
}
