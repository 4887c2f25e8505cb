package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/spaghettifunk/uvmesh/engine/assets"
	"github.com/spaghettifunk/uvmesh/engine/core"
	"github.com/spaghettifunk/uvmesh/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine released every system
	EngineStageShutdown
)

func (s Stage) String() string {
	switch s {
	case EngineStageUninitialized:
		return "uninitialized"
	case EngineStageInitializing:
		return "initializing"
	case EngineStageInitialized:
		return "initialized"
	case EngineStageRunning:
		return "running"
	case EngineStageShuttingDown:
		return "shutting down"
	case EngineStageShutdown:
		return "shut down"
	}
	return fmt.Sprintf("stage(%d)", uint8(s))
}

var ErrWrongStage = errors.New("engine is not in the right stage")

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	assetManager  *assets.AssetManager
	systemManager *systems.SystemManager
	clock         *core.Clock
	metrics       *core.Metrics
}

func New(g *Game) (*Engine, error) {
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = DefaultApplicationConfig()
	}
	cfg := g.ApplicationConfig
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := core.SetLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	am, err := assets.NewAssetManager(cfg.UV.Layer)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	sm, err := systems.NewSystemManager(&systems.SystemManagerConfig{
		Workers:   cfg.Jobs.Workers,
		QueueSize: cfg.Jobs.QueueSize,
		Report: systems.UVReportSystemConfig{
			Layer:      cfg.UV.Layer,
			Aspect:     cfg.aspect(),
			ShareLimit: cfg.shareLimit(),
		},
	}, am)
	if err != nil {
		core.LogError(err.Error())
		am.Shutdown()
		return nil, err
	}

	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		assetManager:  am,
		systemManager: sm,
		clock:         core.NewClock(),
		metrics:       core.NewMetrics(),
	}, nil
}

// Metrics tracks how long each mesh analysis took.
func (e *Engine) Metrics() *core.Metrics {
	return e.metrics
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) expectStage(s Stage) error {
	if e.currentStage != s {
		return fmt.Errorf("%s, want %s: %w", e.currentStage, s, ErrWrongStage)
	}
	return nil
}

func (e *Engine) Initialize() error {
	if err := e.expectStage(EngineStageUninitialized); err != nil {
		return err
	}
	e.currentStage = EngineStageInitializing

	cfg := e.gameInstance.ApplicationConfig
	if cfg.Assets.Dir != "" {
		if err := e.assetManager.Initialize(cfg.Assets.Dir, cfg.Assets.Watch); err != nil {
			return err
		}
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	core.LogDebug("%s initialized with %d workers", cfg.Name, e.systemManager.JobSystem.Workers())
	return nil
}

// Run reports every model passed in files followed by every model found
// in the assets directory. When watching it then keeps reporting changed
// models until ctx is done. The returned error joins the failures of
// every model.
func (e *Engine) Run(ctx context.Context, files ...string) error {
	if err := e.expectStage(EngineStageInitialized); err != nil {
		return err
	}
	e.currentStage = EngineStageRunning
	e.clock.Start()
	defer e.clock.Stop()

	paths := append([]string{}, files...)
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		seen[p] = true
	}
	for _, a := range e.assetManager.Assets() {
		if !seen[a.Path] {
			paths = append(paths, a.Path)
		}
	}

	err := e.inspect(paths)
	e.clock.Update()
	core.LogInfo("inspected %d models in %s, %s per model", len(paths), e.clock.Elapsed(), e.metrics.Average())

	if !e.gameInstance.ApplicationConfig.Assets.Watch {
		return err
	}

	core.LogInfo("watching %s for changes", e.gameInstance.ApplicationConfig.Assets.Dir)
	watchErrors := e.assetManager.Errors()
	for {
		select {
		case <-ctx.Done():
			return err
		case ev, ok := <-e.assetManager.Events():
			if !ok {
				return err
			}
			if ev.Op == assets.AssetRemoved {
				core.LogInfo("%s removed", ev.Path)
				if e.gameInstance.FnRemoved != nil {
					if rerr := e.gameInstance.FnRemoved(ev.Path); rerr != nil {
						return errors.Join(err, rerr)
					}
				}
				continue
			}
			if ierr := e.inspect([]string{ev.Path}); ierr != nil {
				core.LogWarn("%s", ierr)
			}
		case werr, ok := <-watchErrors:
			if !ok {
				watchErrors = nil
				continue
			}
			core.LogWarn("watcher: %s", werr)
		}
	}
}

func (e *Engine) inspect(paths []string) error {
	var errs []error
	reports, err := e.systemManager.Inspect(paths)
	if err != nil {
		errs = append(errs, err)
	}
	for _, r := range reports {
		if r == nil {
			continue
		}
		e.metrics.Update(r.Duration)
		if e.gameInstance.FnReport == nil {
			continue
		}
		if err := e.gameInstance.FnReport(r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShutdown || e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown

	var errs []error
	if e.gameInstance.FnShutdown != nil {
		errs = append(errs, e.gameInstance.FnShutdown())
	}
	errs = append(errs,
		e.assetManager.Shutdown(),
		e.systemManager.Shutdown(),
	)
	e.currentStage = EngineStageShutdown
	return errors.Join(errs...)
}
