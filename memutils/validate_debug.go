//go:build debug_heap

package memutils

// DebugZeroPayloads makes every heap zero the words it reserves or frees, so free-list links and
// stale caller data never survive into a segment's next use
const DebugZeroPayloads bool = true

// DebugValidate will call Validate on the provided object and panics if any errors are returned. This
// method no-ops unless the debug_heap build tag is present
func DebugValidate(validatable Validatable) {
	MustValidate(validatable)
}
