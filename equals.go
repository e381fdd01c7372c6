package prop

import "reflect"

// defaultEquals reports whether two values are the same. Comparable dynamic
// types use ==; slices, maps, and other non-comparable types fall back to
// reflect.DeepEqual. Two nil interface values compare equal.
func defaultEquals[T any](a, b T) bool {
	ta := reflect.TypeOf(a)
	if ta != nil && ta.Comparable() && reflect.TypeOf(b) == ta {
		return any(a) == any(b)
	}
	return reflect.DeepEqual(a, b)
}
