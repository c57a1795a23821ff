package registry

import (
	"reflect"

	"github.com/davecgh/go-spew/spew"
)

// fingerprintConfig dumps descriptors for content comparison. Pointers and
// funcs are printed by address, so two dumps only match if the descriptors
// would compare equal byte by byte.
var fingerprintConfig = spew.ConfigState{
	Indent:            " ",
	DisableMethods:    true,
	DisableCapacities: true,
	SortKeys:          true,
}

func isNil(d any) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

// sameDescriptor reports whether a and b have identical content.
func sameDescriptor(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		if equal, ok := compare(a, b); ok {
			return equal
		}
	}
	return fingerprintConfig.Sdump(a) == fingerprintConfig.Sdump(b)
}

// compare uses the == operator. Comparable types may still hold interface
// fields with non-comparable dynamic values, which makes == panic.
func compare(a, b any) (equal, ok bool) {
	defer func() {
		if recover() != nil {
			equal, ok = false, false
		}
	}()
	return a == b, true
}
