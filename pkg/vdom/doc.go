// Package vdom describes what a render produces: structural descriptions of
// elements, text and components, and the contract components implement.
//
// # Descriptions
//
// A Desc is the normalized form of a tree literal: an element name (a tag
// string or a *ComponentType), attributes, and children. Children may be
// nested descriptions, strings, or a slice of descriptions representing a
// dynamically generated sibling group. Members of a sibling group must each
// carry a unique "key" attribute.
//
//	H("ul", nil,
//	    H("li", Props{"key": "a"}, "first"),
//	    items, // []*Desc, every member keyed
//	)
//
// # Components
//
// A component is defined once with Define and referenced by the returned
// *ComponentType; the pointer is the component's identity across renders.
// Components embed Base to receive properties, hold state and request
// re-renders through SetState.
//
// # Reserved attributes
//
// "key" identifies a node among its siblings and is never forwarded as a
// property. "ref" receives the node's surface handle once it is mounted.
// Attributes starting with EventPrefix are event bindings.
package vdom
