//go:build bmeshdebug

package bmesh

import "fmt"

const debugChecks = true

func assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf("bmesh: "+format, args...))
	}
}
