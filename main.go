/*
uvinspect loads Wavefront OBJ models and reports on their UV maps:
element counts, flipped and degenerate faces, UV area and bounds, islands,
seams and overlapping islands.

	uvinspect [-config file] [-watch] [-dir assets] [-layer name] [files...]
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/uvmesh/engine"
	"github.com/spaghettifunk/uvmesh/engine/core"
	"github.com/spaghettifunk/uvmesh/engine/systems"
)

func main() {
	configPath := flag.String("config", "", "TOML configuration file")
	watch := flag.Bool("watch", false, "keep watching the assets directory")
	dir := flag.String("dir", "", "assets directory, overrides assets.dir")
	layer := flag.String("layer", "", "UV map to inspect, overrides uv.layer")
	logLevel := flag.String("log-level", "", "log level, overrides log_level")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [files...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := engine.DefaultApplicationConfig()
	if *configPath != "" {
		var err error
		if cfg, err = engine.LoadConfig(*configPath); err != nil {
			core.LogFatal(err.Error())
		}
	}
	if *dir != "" {
		cfg.Assets.Dir = *dir
	}
	if *watch {
		cfg.Assets.Watch = true
	}
	if *layer != "" {
		cfg.UV.Layer = *layer
	}
	if *logLevel != "" {
		cfg.LogLevel = core.LogLevel(*logLevel)
	}
	if flag.NArg() == 0 && cfg.Assets.Dir == "" {
		flag.Usage()
		os.Exit(2)
	}

	g := &engine.Game{
		ApplicationConfig: cfg,
		FnReport: func(r *systems.UVReport) error {
			return r.Write(os.Stdout)
		},
		FnRemoved: func(path string) error {
			_, err := fmt.Fprintf(os.Stdout, "%s\n  removed\n", path)
			return err
		},
	}

	e, err := engine.New(g)
	if err != nil {
		core.LogFatal(err.Error())
	}
	if err := e.Initialize(); err != nil {
		core.LogFatal(err.Error())
	}

	// capture sigterm and other system calls here
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	runErr := e.Run(ctx, flag.Args()...)
	if err := e.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if runErr != nil {
		core.LogError(runErr.Error())
		os.Exit(1)
	}
}
