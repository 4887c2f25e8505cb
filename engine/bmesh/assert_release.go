//go:build !bmeshdebug

package bmesh

const debugChecks = false

func assertf(cond bool, format string, args ...interface{}) {}
