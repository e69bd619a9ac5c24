package shadow

import (
	"reflect"

	"github.com/maderarasto/cordova-jsx/pkg/vdom"
)

// ShallowEqual reports whether two property sets have the same keys and
// identical values per key.
//
// Values are compared by identity, never by content: primitives and
// pointers with ==, maps and slices by their backing storage (and length),
// and functions are never equal. Two deeply identical maps built separately
// are therefore different.
func ShallowEqual(a, b vdom.Props) bool {
	if len(a) != len(b) {
		return false
	}
	for k, bv := range b {
		av, ok := a[k]
		if !ok || !SameValue(av, bv) {
			return false
		}
	}
	return true
}

// SameValue compares two property values by identity.
func SameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	// Value.Comparable looks through interface fields, so a struct holding
	// a slice in an `any` field is not compared with ==.
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	switch ta.Kind() {
	case reflect.Map:
		return va.UnsafePointer() == vb.UnsafePointer()
	case reflect.Slice:
		return va.UnsafePointer() == vb.UnsafePointer() && va.Len() == vb.Len()
	default:
		// Functions, and structs or arrays holding uncomparable values.
		return false
	}
}
