package engine

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/uvmesh/engine/core"
	"github.com/spaghettifunk/uvmesh/engine/math"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const maxWorkers = 64

type AssetsConfig struct {
	// Directory indexed at start up. Empty means no directory.
	Dir string `toml:"dir"`
	// Keep watching Dir and report every model that changes.
	Watch bool `toml:"watch"`
}

type UVConfig struct {
	// UV map to inspect, the active one when empty.
	Layer string `toml:"layer"`
	// Texture aspect ratio used to weight face centers.
	Aspect [2]float32 `toml:"aspect"`
	// Per-axis distance under which two UVs count as connected.
	ShareLimit [2]float32 `toml:"share_limit"`
}

type JobsConfig struct {
	// Number of workers, 0 picks one per CPU.
	Workers   int `toml:"workers"`
	QueueSize int `toml:"queue_size"`
}

type ApplicationConfig struct {
	// The application name used in log output.
	Name     string        `toml:"name"`
	LogLevel core.LogLevel `toml:"log_level"`
	Assets   AssetsConfig  `toml:"assets"`
	UV       UVConfig      `toml:"uv"`
	Jobs     JobsConfig    `toml:"jobs"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:     "uvinspect",
		LogLevel: "info",
		UV: UVConfig{
			Aspect:     [2]float32{1, 1},
			ShareLimit: [2]float32{1e-6, 1e-6},
		},
		Jobs: JobsConfig{
			QueueSize: 16,
		},
	}
}

// LoadConfig reads a TOML file on top of DefaultApplicationConfig.
func LoadConfig(path string) (*ApplicationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes data on top of DefaultApplicationConfig and
// validates the result. Unknown keys are rejected.
func ParseConfig(data []byte) (*ApplicationConfig, error) {
	cfg := DefaultApplicationConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var missing *toml.StrictMissingError
		if errors.As(err, &missing) {
			return nil, fmt.Errorf("%s: %w", missing.String(), ErrInvalidConfig)
		}
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration and fills in derived defaults.
func (c *ApplicationConfig) Validate() error {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("log_level '%s': %w", c.LogLevel, ErrInvalidConfig)
	}
	if c.UV.Aspect[0] < 0 || c.UV.Aspect[1] < 0 {
		return fmt.Errorf("uv.aspect %v must not be negative: %w", c.UV.Aspect, ErrInvalidConfig)
	}
	if c.UV.ShareLimit[0] < 0 || c.UV.ShareLimit[1] < 0 {
		return fmt.Errorf("uv.share_limit %v must not be negative: %w", c.UV.ShareLimit, ErrInvalidConfig)
	}
	if c.Jobs.QueueSize < 0 {
		return fmt.Errorf("jobs.queue_size %d must not be negative: %w", c.Jobs.QueueSize, ErrInvalidConfig)
	}
	if c.Jobs.Workers <= 0 {
		c.Jobs.Workers = runtime.NumCPU()
	}
	c.Jobs.Workers = math.Clamp(c.Jobs.Workers, 1, maxWorkers)
	if c.Assets.Watch && c.Assets.Dir == "" {
		return fmt.Errorf("assets.watch needs assets.dir: %w", ErrInvalidConfig)
	}
	return nil
}

func (c *ApplicationConfig) aspect() math.Vec2 {
	return math.NewVec2(c.UV.Aspect[0], c.UV.Aspect[1])
}

func (c *ApplicationConfig) shareLimit() math.Vec2 {
	return math.NewVec2(c.UV.ShareLimit[0], c.UV.ShareLimit[1])
}
