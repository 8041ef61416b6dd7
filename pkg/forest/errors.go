package forest

import "fmt"

// fail panics with a "forest: " prefixed message. Every panic in this
// package is a contract violation — a bug in the caller or in the engine
// itself, never a data condition — so panic rather than an error return
// is the right fit; see SPEC_FULL.md §7.
func fail(format string, args ...any) {
	panic("forest: " + fmt.Sprintf(format, args...))
}
