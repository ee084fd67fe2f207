package subst

import "reflect"

// mapPointer extracts a Map's backing-array address via reflection,
// used only as a cache key for Engine's memo table — never
// dereferenced, never compared across garbage-collection pauses
// longer than the Engine's own lifetime.
func mapPointer(m Map) uintptr {
	return reflect.ValueOf(m).Pointer()
}
