package cellrender

import "fmt"

// assertf enforces an invariant that should be impossible to violate from
// correct call sites (Rebuild uses it to check that the background array
// holds only background-mode cells). Per the error-handling design,
// these are programmer errors, not runtime conditions callers can recover
// from, so they panic rather than return an error.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("cellrender: invariant violated: "+format, args...))
	}
}
