// Package demo contains the sample counter application rendered by the
// cordova CLI.
package demo

import (
	"log/slog"
	"strconv"

	cordova "github.com/maderarasto/cordova-jsx"
	"github.com/maderarasto/cordova-jsx/pkg/surface"
)

// Item is a list entry shown by Root.
type Item struct {
	ID   int
	Name string
}

// Items is the fixed list Root renders.
var Items = []Item{
	{ID: 1, Name: "HTML"},
	{ID: 2, Name: "CSS"},
	{ID: 3, Name: "Javascript"},
	{ID: 4, Name: "Node.js"},
}

// LogoSrc is the image source used by Root.
const LogoSrc = "/img/logo.png"

type root struct {
	cordova.Base
}

func (r *root) id() int {
	id, _ := r.State()["id"].(int)
	return id
}

func (r *root) handleClick(surface.Event) {
	r.SetState(cordova.State{"id": r.id() + 1})
}

func (r *root) Render() any {
	id := r.id()
	color := "black"
	if id%2 == 0 {
		color = "red"
	}

	items := make([]any, 0, len(Items))
	for _, item := range Items {
		items = append(items, cordova.H("li", cordova.Props{"key": item.ID}, item.Name))
	}

	return cordova.H("div", cordova.Props{"style": map[string]any{"fontSize": "1rem", "color": color}},
		cordova.H("div", cordova.Props{"id": "top-header", "class": "class-1 class-2"},
			cordova.H(Header, cordova.Props{"num": id},
				cordova.H("h2", nil, "Hello Cordova"),
			),
			cordova.H("nav", nil, "Navigation"),
		),
		cordova.H("p", nil, "State: ", strconv.Itoa(id)),
		cordova.H("ul", nil, items),
		cordova.H("img", cordova.Props{"src": LogoSrc, "alt": ""}),
		cordova.H("button", cordova.Props{"onClick": cordova.On(r.handleClick)}, "Click"),
	)
}

// Root is the top-level demo component: a counter that recolors itself on
// every click.
var Root = cordova.Define("Root", func(cordova.Props) cordova.Component {
	r := &root{}
	r.InitState(cordova.State{"id": 1})
	return r
})

type header struct {
	cordova.Base
	logger *slog.Logger
}

func (h *header) Render() any {
	children := append([]any{cordova.H("h1", nil, "Title")}, h.Children()...)
	return cordova.H("div", nil, children...)
}

func (h *header) Updated() {
	h.logger.Debug("header updated", "num", h.Prop("num"))
}

// Header renders a title followed by its children.
var Header = cordova.Define("Header", func(cordova.Props) cordova.Component {
	return &header{logger: slog.Default()}
})

// Render is the application render callback.
func Render() any {
	return cordova.H(Root, nil)
}
