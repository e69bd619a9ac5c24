// Package cordova provides the public API of the rendering engine.
//
// This is the recommended import for most applications:
//
//	import cordova "github.com/maderarasto/cordova-jsx"
//
// Usage:
//
//	var Counter = cordova.Define("Counter", func(cordova.Props) cordova.Component {
//	    c := &counter{}
//	    c.InitState(cordova.State{"count": 0})
//	    return c
//	})
//
//	app, _ := cordova.New(cordova.Config{
//	    Render:  func() any { return cordova.H(Counter, nil) },
//	    Surface: surface.NewMemory(),
//	    Target:  "#app",
//	})
package cordova

import (
	"github.com/maderarasto/cordova-jsx/internal/errors"
	"github.com/maderarasto/cordova-jsx/pkg/surface"
	"github.com/maderarasto/cordova-jsx/pkg/vdom"
)

// =============================================================================
// Descriptions (re-export from pkg/vdom)
// =============================================================================

// Desc is a structural description.
type Desc = vdom.Desc

// Props is an attribute or property set.
type Props = vdom.Props

// H creates a description.
func H(name any, attrs Props, children ...any) *Desc {
	return vdom.H(name, attrs, children...)
}

// =============================================================================
// Components (re-export from pkg/vdom)
// =============================================================================

// Component is anything that can render a description.
type Component = vdom.Component

// ComponentType is a component constructor registered with Define.
type ComponentType = vdom.ComponentType

// Base carries props, state and refs. Embed it in components.
type Base = vdom.Base

// State is component-local data.
type State = vdom.State

// Ref is an output slot for a placed element's handle.
type Ref = vdom.Ref

// Define registers a component constructor.
func Define(name string, ctor func(Props) Component) *ComponentType {
	return vdom.Define(name, ctor)
}

// On wraps an event callback for an "on..." attribute.
func On(fn func(surface.Event)) *surface.Listener {
	return vdom.On(fn)
}

// =============================================================================
// Errors
// =============================================================================

// Error is the structured error returned by the engine.
type Error = errors.Error

// IsValidation reports whether err is a ValidationError: a missing or
// duplicate key, an unrenderable value or an invalid binding.
func IsValidation(err error) bool { return errors.IsValidation(err) }

// IsLookup reports whether err is a LookupError, such as removing a
// listener that was never registered.
func IsLookup(err error) bool { return errors.IsLookup(err) }

// IsConfiguration reports whether err is a ConfigurationError.
func IsConfiguration(err error) bool { return errors.IsConfiguration(err) }
