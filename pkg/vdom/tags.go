package vdom

// htmlTags lists the HTML element names recognized as elements.
var htmlTags = setOf(
	"a", "abbr", "address", "area", "article", "aside", "audio",
	"b", "base", "bdi", "bdo", "blockquote", "body", "br", "button",
	"canvas", "caption", "cite", "code", "col", "colgroup",
	"data", "datalist", "dd", "del", "details", "dfn", "dialog", "div", "dl", "dt",
	"em", "embed",
	"fieldset", "figcaption", "figure", "footer", "form",
	"h1", "h2", "h3", "h4", "h5", "h6", "head", "header", "hgroup", "hr", "html",
	"i", "iframe", "img", "input", "ins",
	"kbd",
	"label", "legend", "li", "link",
	"main", "map", "mark", "math", "menu", "meta", "meter",
	"nav", "noscript",
	"object", "ol", "optgroup", "option", "output",
	"p", "param", "picture", "pre", "progress",
	"q",
	"rp", "rt", "ruby",
	"s", "samp", "script", "search", "section", "select", "slot", "small", "source",
	"span", "strong", "style", "sub", "summary", "sup",
	"table", "tbody", "td", "template", "textarea", "tfoot", "th", "thead", "time",
	"title", "tr", "track",
	"u", "ul",
	"var", "video",
	"wbr",
)

// svgTags lists the SVG element names recognized as elements.
var svgTags = setOf(
	"a", "altGlyph", "altGlyphDef", "altGlyphItem", "animate", "animateColor",
	"animateMotion", "animateTransform", "animation", "audio",
	"canvas", "circle", "clipPath", "color-profile", "cursor",
	"defs", "desc", "discard",
	"ellipse",
	"feBlend", "feColorMatrix", "feComponentTransfer", "feComposite",
	"feConvolveMatrix", "feDiffuseLighting", "feDisplacementMap",
	"feDistantLight", "feDropShadow", "feFlood", "feFuncA", "feFuncB", "feFuncG",
	"feFuncR", "feGaussianBlur", "feImage", "feMerge", "feMergeNode",
	"feMorphology", "feOffset", "fePointLight", "feSpecularLighting",
	"feSpotLight", "feTile", "feTurbulence",
	"filter", "font", "font-face", "font-face-format", "font-face-name",
	"font-face-src", "font-face-uri", "foreignObject",
	"g", "glyph", "glyphRef",
	"handler", "hatch", "hatchpath", "hkern",
	"iframe", "image",
	"line", "linearGradient", "listener",
	"marker", "mask", "mesh", "meshgradient", "meshpatch", "meshrow",
	"metadata", "missing-glyph", "mpath",
	"path", "pattern", "polygon", "polyline", "prefetch",
	"radialGradient", "rect",
	"script", "set", "solidColor", "solidcolor", "stop", "style", "svg", "switch",
	"symbol",
	"tbreak", "text", "textArea", "textPath", "title", "tref", "tspan",
	"unknown", "use",
	"video", "view", "vkern",
)

func setOf(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// IsElementName reports whether name is a recognized HTML or SVG element.
// Any other string is rendered as text.
func IsElementName(name string) bool {
	return htmlTags[name] || svgTags[name]
}
