// Package vtest provides testing helpers for cordova components.
//
// A Harness mounts a render callback on an in-memory surface and exposes
// query, event and HTML assertions over the result.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.Mount(t, func() any { return cordova.H(Counter, nil) })
//	    h.Click("button")
//	    h.ExpectContains("count: 1")
//	}
//
// # Render Assertions
//
// Assert on the container's HTML:
//
//	h.ExpectContains("Welcome")
//	h.ExpectNotContains("Login")
//	h.ExpectElement("button")
//	h.ExpectAttribute("#title", "class", "big")
package vtest
