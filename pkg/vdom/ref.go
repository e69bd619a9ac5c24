package vdom

import (
	"sync"

	"github.com/maderarasto/cordova-jsx/pkg/surface"
)

// Ref holds the surface handle of the element it is attached to.
//
// Ref is safe for concurrent access so lifecycle hooks running on their own
// goroutine can read it.
type Ref struct {
	mu    sync.RWMutex
	value surface.Handle
	isSet bool
}

// NewRef creates an unattached ref.
func NewRef() *Ref {
	return &Ref{}
}

// Current returns the attached handle, or nil.
func (r *Ref) Current() surface.Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// Set attaches a handle.
func (r *Ref) Set(h surface.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.value = h
	r.isSet = true
}

// IsSet reports whether a handle is attached.
func (r *Ref) IsSet() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isSet
}

// Clear detaches the handle.
func (r *Ref) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.value = nil
	r.isSet = false
}
