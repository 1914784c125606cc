package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/planner"
	"github.com/aretw0/planner/internal/config"
	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/dsl"
	"github.com/aretw0/planner/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, config.StoreMemory, cfg.Store.Kind)
}

func TestLoad_YAML(t *testing.T) {
	path := write(t, "planner.yaml", `
strategy: astar
heuristic: hmax
weight: 1.5
max_nodes: "5000"
timeout: 250ms
log_level: debug
store:
  kind: redis
  capacity: 100
  redis:
    addr: cache:6379
    ttl: 10m
server:
  addr: ":9090"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "astar", cfg.Strategy)
	assert.Equal(t, "hmax", cfg.Heuristic)
	assert.Equal(t, 1.5, cfg.Weight)
	assert.Equal(t, 5000, cfg.MaxNodes)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.Equal(t, config.StoreRedis, cfg.Store.Kind)
	assert.Equal(t, 100, cfg.Store.Capacity)
	assert.Equal(t, "cache:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 10*time.Minute, cfg.Store.Redis.TTL)
	assert.Equal(t, "planner:", cfg.Store.Redis.Prefix, "unset keys keep their defaults")
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoad_JSON(t *testing.T) {
	path := write(t, "planner.json", `{"strategy": "greedy", "store": {"kind": "badger", "badger": {"in_memory": true}}}`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "greedy", cfg.Strategy)
	assert.True(t, cfg.Store.Badger.InMemory)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Unknown key", "stratgy: bfs\n"},
		{"Bad duration", "timeout: soon\n"},
		{"Unknown strategy", "strategy: beam\n"},
		{"Negative budget", "max_nodes: -1\n"},
		{"Unknown store", "store:\n  kind: etcd\n"},
		{"Badger without dir", "store:\n  kind: badger\n"},
		{"Unknown log level", "log_level: loud\n"},
		{"Malformed", "strategy: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(write(t, "planner.yaml", tt.content))
			assert.Error(t, err)
		})
	}

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDecode_WeakTyping(t *testing.T) {
	var params struct {
		Size  int      `yaml:"size"`
		Seed  int64    `yaml:"seed"`
		Rooms []string `yaml:"rooms"`
	}
	err := config.Decode(map[string]any{"size": "3", "seed": 7, "rooms": "A,B,C"}, &params)
	require.NoError(t, err)
	assert.Equal(t, 3, params.Size)
	assert.Equal(t, int64(7), params.Seed)
	assert.Equal(t, []string{"A", "B", "C"}, params.Rooms)
}

func TestServerConfig_Limit(t *testing.T) {
	limits := config.ServerConfig{MaxNodes: 100, MaxTimeout: time.Second}

	tests := map[string]struct {
		nodes       int
		timeout     time.Duration
		wantNodes   int
		wantTimeout time.Duration
	}{
		"Unbounded":   {wantNodes: 100, wantTimeout: time.Second},
		"Above cap":   {nodes: 1000, timeout: time.Minute, wantNodes: 100, wantTimeout: time.Second},
		"Within caps": {nodes: 10, timeout: time.Millisecond, wantNodes: 10, wantTimeout: time.Millisecond},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			cfg.MaxNodes, cfg.Timeout = tc.nodes, tc.timeout
			got := limits.Limit(cfg)
			assert.Equal(t, tc.wantNodes, got.MaxNodes)
			assert.Equal(t, tc.wantTimeout, got.Timeout)
		})
	}

	cfg := config.Default()
	assert.Equal(t, cfg, config.ServerConfig{}.Limit(cfg), "zero caps leave budgets alone")
}

func TestEngineOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Strategy = "astar"
	cfg.Heuristic = "custom"

	var used bool
	custom := ports.Fixed(ports.HeuristicFunc(func(domain.State, domain.Goal) float64 {
		used = true
		return 0
	}))
	opts, err := cfg.EngineOptions(func(name string) (ports.HeuristicFactory, bool) {
		return custom, name == "custom"
	})
	require.NoError(t, err)

	eng := planner.New(opts...)
	assert.Equal(t, domain.BestFirst, eng.Strategy())
	res, err := eng.Solve(context.Background(), corridor(t))
	require.NoError(t, err)
	assert.True(t, res.Succeeded())
	assert.True(t, used)

	cfg.Heuristic = "custom"
	_, err = cfg.EngineOptions(nil)
	assert.ErrorIs(t, err, domain.ErrUnknownHeuristic)
}

func TestStores(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name string
		cfg  config.StoreConfig
	}{
		{"Memory", config.StoreConfig{Kind: config.StoreMemory}},
		{"Badger", config.StoreConfig{Kind: config.StoreBadger, Badger: config.BadgerConfig{InMemory: true}}},
		{"Redis", config.StoreConfig{Kind: config.StoreRedis, Redis: config.RedisConfig{Addr: mr.Addr(), Prefix: "test:"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stores, err := config.OpenStores(tt.cfg, nil)
			require.NoError(t, err)
			defer stores.Close()
			assert.Equal(t, tt.cfg.Kind, stores.Kind())

			eng := planner.New(planner.WithStoreFactory(stores.Factory()))
			for i := 0; i < 2; i++ {
				res, err := eng.Solve(context.Background(), corridor(t))
				require.NoError(t, err)
				require.True(t, res.Succeeded(), "search %d", i)
				assert.Equal(t, 2, res.Plan.Len())
			}
		})
	}

	assert.Empty(t, mr.Keys(), "redis namespaces are cleared after each search")
}

func TestStores_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	stores, err := config.OpenStores(config.StoreConfig{Kind: config.StoreRedis, Redis: config.RedisConfig{Addr: addr}}, nil)
	require.NoError(t, err)
	defer stores.Close()

	_, err = planner.New(planner.WithStoreFactory(stores.Factory())).Solve(context.Background(), corridor(t))
	assert.ErrorContains(t, err, "failed to reach redis")
}

func corridor(t *testing.T) *domain.Problem {
	t.Helper()
	b := dsl.New("corridor")
	b.Objects("room", "A", "B", "C")
	b.Action("move").
		Params("x:room", "y:room").
		Pre("at(?x)", "conn(?x,?y)").
		Add("at(?y)").
		Del("at(?x)")
	b.Init("at(A)", "conn(A,B)", "conn(B,C)").Goal("at(C)")
	p, err := b.Build()
	require.NoError(t, err)
	return p
}
