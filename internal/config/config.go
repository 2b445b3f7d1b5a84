// Package config loads the editor configuration and the session restored
// between runs. Both are YAML files; a missing file yields the defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultFile = "sceneeditor.yaml"

type Config struct {
	Window      Window      `yaml:"window"`
	Log         Log         `yaml:"log"`
	Storage     Storage     `yaml:"storage"`
	Bus         Bus         `yaml:"bus"`
	Transformer Transformer `yaml:"transformer"`
	Timeline    Timeline    `yaml:"timeline"`
}

type Window struct {
	Width     int32  `yaml:"width"`
	Height    int32  `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int32  `yaml:"targetFPS"`
}

// Log configures the zap logger. File is optional; when set, JSON records are
// also written to a rotated file.
type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
}

type Storage struct {
	Dir     string `yaml:"dir"`
	Project string `yaml:"project"`
	Watch   bool   `yaml:"watch"`
}

type Bus struct {
	MaxDispatchDepth int `yaml:"maxDispatchDepth"`
}

type Transformer struct {
	GizmoLength      float32 `yaml:"gizmoLength"`
	DistanceDivisor  float32 `yaml:"distanceDivisor"`
	CoarseMultiplier float32 `yaml:"coarseMultiplier"`
	FineMultiplier   float32 `yaml:"fineMultiplier"`
}

type Timeline struct {
	Height          float32 `yaml:"height"`
	FramesPerSecond int     `yaml:"framesPerSecond"`
}

func Default() Config {
	return Config{
		Window: Window{Width: 1600, Height: 900, Title: "Scene Editor", TargetFPS: 60},
		Log:    Log{Level: "info", MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 28},
		Storage: Storage{
			Dir:     "projects",
			Project: "scene.editorproject",
		},
		Bus: Bus{MaxDispatchDepth: 16},
		Transformer: Transformer{
			GizmoLength:      2,
			DistanceDivisor:  10,
			CoarseMultiplier: 1,
			FineMultiplier:   0.1,
		},
		Timeline: Timeline{Height: 40, FramesPerSecond: 24},
	}
}

// Load reads path over the defaults. Keys absent from the file keep their
// default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

var ErrInvalid = errors.New("config: invalid value")

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d: %w", c.Window.Width, c.Window.Height, ErrInvalid)
	case c.Bus.MaxDispatchDepth <= 0:
		return fmt.Errorf("bus.maxDispatchDepth %d: %w", c.Bus.MaxDispatchDepth, ErrInvalid)
	case c.Transformer.DistanceDivisor <= 0:
		return fmt.Errorf("transformer.distanceDivisor %v: %w", c.Transformer.DistanceDivisor, ErrInvalid)
	case c.Storage.Project == "":
		return fmt.Errorf("storage.project is empty: %w", ErrInvalid)
	}
	return nil
}

func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
