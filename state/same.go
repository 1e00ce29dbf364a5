package state

import "reflect"

// Same reports whether a and b are the same value by identity.
//
// Pointers, maps, channels and unsafe pointers are the same when they share
// an address. Slices are the same when they share data pointer, length and
// capacity. Other comparable values use ==. Funcs and values whose dynamic
// type cannot be compared are never the same, so a reducer returning such a
// value always counts as a change.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Map, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len() && va.Cap() == vb.Cap()
	}
	if va.Kind() == reflect.Func || !va.Comparable() {
		return false
	}
	return va.Equal(vb)
}
