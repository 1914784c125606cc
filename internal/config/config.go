// Package config loads the CLI and server configuration.
//
// Files are YAML (or JSON, by extension). They are first read into a generic map and
// then decoded with mapstructure, so durations may be written as "250ms" and unknown
// keys are rejected.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/planner"
	"github.com/aretw0/planner/internal/logging"
	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/heuristic"
	"github.com/aretw0/planner/pkg/ports"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Store kinds.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreBadger = "badger"
)

// Config is the top-level configuration.
type Config struct {
	Strategy  string        `yaml:"strategy" json:"strategy"`
	Heuristic string        `yaml:"heuristic" json:"heuristic"`
	Weight    float64       `yaml:"weight" json:"weight"`
	MaxNodes  int           `yaml:"max_nodes" json:"max_nodes"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	LogLevel  string        `yaml:"log_level" json:"log_level"`
	Store     StoreConfig   `yaml:"store" json:"store"`
	Server    ServerConfig  `yaml:"server" json:"server"`
}

// StoreConfig selects and configures the node store backend.
type StoreConfig struct {
	Kind     string       `yaml:"kind" json:"kind"`
	Capacity int          `yaml:"capacity" json:"capacity"`
	Redis    RedisConfig  `yaml:"redis" json:"redis"`
	Badger   BadgerConfig `yaml:"badger" json:"badger"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr" json:"addr"`
	Password string        `yaml:"password" json:"password"`
	DB       int           `yaml:"db" json:"db"`
	Prefix   string        `yaml:"prefix" json:"prefix"`
	TTL      time.Duration `yaml:"ttl" json:"ttl"`
}

type BadgerConfig struct {
	Dir        string `yaml:"dir" json:"dir"`
	InMemory   bool   `yaml:"in_memory" json:"in_memory"`
	SyncWrites bool   `yaml:"sync_writes" json:"sync_writes"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" json:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`

	// MaxNodes and MaxTimeout cap every request's budgets. Zero means no cap.
	MaxNodes   int           `yaml:"max_nodes" json:"max_nodes"`
	MaxTimeout time.Duration `yaml:"max_timeout" json:"max_timeout"`
}

// Limit clamps the search budgets of c to the server caps.
// An unbounded budget (zero) is replaced by the cap.
func (s ServerConfig) Limit(c Config) Config {
	if s.MaxNodes > 0 && (c.MaxNodes == 0 || c.MaxNodes > s.MaxNodes) {
		c.MaxNodes = s.MaxNodes
	}
	if s.MaxTimeout > 0 && (c.Timeout == 0 || c.Timeout > s.MaxTimeout) {
		c.Timeout = s.MaxTimeout
	}
	return c
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Strategy:  string(domain.BreadthFirst),
		Weight:    1,
		LogLevel:  "info",
		Store: StoreConfig{
			Kind: StoreMemory,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "planner:",
				TTL:    time.Hour,
			},
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
			MaxNodes:        100_000,
			MaxTimeout:      30 * time.Second,
		},
	}
}

// Load reads path on top of Default. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	if err := Decode(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return cfg, cfg.Validate()
}

// Decode decodes a loosely typed map into out using the yaml field names.
// Strings are converted to durations and numbers where needed.
func Decode(in map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "yaml",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}

// Validate checks names and ranges.
func (c Config) Validate() error {
	var errs []error
	if _, err := domain.ParseStrategy(c.Strategy); err != nil {
		errs = append(errs, err)
	}
	if c.Weight < 0 {
		errs = append(errs, fmt.Errorf("weight must not be negative, got %v", c.Weight))
	}
	if c.MaxNodes < 0 {
		errs = append(errs, fmt.Errorf("max_nodes must not be negative, got %d", c.MaxNodes))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative, got %s", c.Timeout))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Server.MaxNodes < 0 {
		errs = append(errs, fmt.Errorf("server.max_nodes must not be negative, got %d", c.Server.MaxNodes))
	}
	if c.Server.MaxTimeout < 0 {
		errs = append(errs, fmt.Errorf("server.max_timeout must not be negative, got %s", c.Server.MaxTimeout))
	}
	if c.Store.Capacity < 0 {
		errs = append(errs, fmt.Errorf("store capacity must not be negative, got %d", c.Store.Capacity))
	}
	switch c.Store.Kind {
	case "", StoreMemory:
	case StoreRedis:
		if c.Store.Redis.Addr == "" {
			errs = append(errs, errors.New("store.redis.addr is required"))
		}
	case StoreBadger:
		if c.Store.Badger.Dir == "" && !c.Store.Badger.InMemory {
			errs = append(errs, errors.New("store.badger.dir is required unless in_memory is set"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store kind %q", c.Store.Kind))
	}
	return errors.Join(errs...)
}

// Resolver looks up heuristics that are not part of the built-in registry,
// e.g. ones bundled with a sample problem.
type Resolver func(name string) (ports.HeuristicFactory, bool)

// EngineOptions translates the search settings into planner options.
// An empty heuristic name leaves the engine default (zero) in place.
func (c Config) EngineOptions(extra Resolver) ([]planner.Option, error) {
	strategy, err := domain.ParseStrategy(c.Strategy)
	if err != nil {
		return nil, err
	}
	opts := []planner.Option{
		planner.WithStrategy(strategy),
		planner.WithWeight(c.Weight),
		planner.WithMaxNodes(c.MaxNodes),
		planner.WithTimeout(c.Timeout),
	}
	if c.Heuristic == "" {
		return opts, nil
	}
	if extra != nil {
		if h, ok := extra(c.Heuristic); ok {
			return append(opts, planner.WithHeuristic(h)), nil
		}
	}
	h, err := heuristic.ByName(c.Heuristic)
	if err != nil {
		return nil, err
	}
	return append(opts, planner.WithHeuristic(h)), nil
}
