package engine

import (
	"github.com/spaghettifunk/uvmesh/engine/systems"
)

// Game is the application driven by the engine. Every callback is
// optional.
type Game struct {
	ApplicationConfig *ApplicationConfig
	State             interface{}
	FnInitialize      Initialize
	FnReport          Report
	FnRemoved         Removed
	FnShutdown        Shutdown
}

type Initialize func() error

// Report receives every finished mesh report, one at a time.
type Report func(report *systems.UVReport) error

// Removed is called when a watched model disappears.
type Removed func(path string) error
type Shutdown func() error
