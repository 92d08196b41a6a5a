package notification

import "reflect"

// Identical reports whether a and b refer to the same originator. Two nil
// Objects are identical. Pointer-like values (pointers, channels, maps,
// functions, slices) are identical if they have the same type and address.
// Other comparable values are compared with ==. Non-comparable values that
// are not pointer-like are never identical, not even to themselves.
func Identical(a, b Object) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.Map, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}

	if !va.Type().Comparable() {
		return false
	}

	return a == b
}
