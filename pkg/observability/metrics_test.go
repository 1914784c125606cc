package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/planner"
	"github.com/aretw0/planner/pkg/domain"
	"github.com/aretw0/planner/pkg/dsl"
	"github.com/aretw0/planner/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corridor(t *testing.T) *domain.Problem {
	t.Helper()
	b := dsl.New("corridor")
	b.Objects("room", "A", "B", "C")
	b.Action("move").
		Params("x:room", "y:room").
		Pre("at(?x)", "conn(?x,?y)").
		Add("at(?y)").
		Del("at(?x)")
	b.Init("at(A)", "conn(A,B)", "conn(B,A)", "conn(B,C)", "conn(C,B)").Goal("at(C)")
	p, err := b.Build()
	require.NoError(t, err)
	return p
}

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	eng := planner.New(planner.WithLifecycleHooks(m.Hooks()))
	res, err := eng.Solve(context.Background(), corridor(t))
	require.NoError(t, err)
	require.True(t, res.Succeeded())
	m.ObservePlan(eng.Strategy(), res.Plan)

	expected := `
# HELP planner_searches_total Total number of finished searches
# TYPE planner_searches_total counter
planner_searches_total{reason="",status="SUCCEEDED",strategy="breadth_first"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "planner_searches_total"))

	assert.Equal(t, float64(res.Stats.Expanded), counterValue(t, reg, "planner_nodes_expanded_total"))
	assert.Equal(t, float64(res.Stats.Generated), counterValue(t, reg, "planner_nodes_generated_total"))

	n, err := testutil.GatherAndCount(reg, "planner_search_duration_seconds", "planner_plan_cost")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	running, err := testutil.GatherAndCount(reg, "planner_searches_running")
	require.NoError(t, err)
	assert.Equal(t, 1, running)
}

func TestMetrics_Aborted(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	eng := planner.New(
		planner.WithLifecycleHooks(m.Hooks()),
		planner.WithStrategy(domain.DepthFirst),
		planner.WithMaxNodes(1),
	)
	res, err := eng.Solve(context.Background(), corridor(t))
	require.NoError(t, err)
	require.Equal(t, domain.StatusAborted, res.Status)

	expected := `
# HELP planner_searches_total Total number of finished searches
# TYPE planner_searches_total counter
planner_searches_total{reason="node_budget",status="ABORTED",strategy="depth_first"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "planner_searches_total"))
}

func TestMetrics_Unregistered(t *testing.T) {
	m := observability.NewMetrics(nil)
	assert.NotPanics(t, func() {
		m.ObservePlan(domain.BestFirst, nil)
		m.Hooks().OnSearchStart(context.Background(), &domain.SearchEvent{})
	})
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	eng := planner.New(planner.WithLifecycleHooks(observability.LogHooks(logger)))
	res, err := eng.Solve(context.Background(), corridor(t))
	require.NoError(t, err)
	require.True(t, res.Succeeded())

	out := buf.String()
	assert.Contains(t, out, "msg=search_start")
	assert.Contains(t, out, "msg=node_expand")
	assert.Contains(t, out, "msg=node_generate")
	assert.Contains(t, out, "action=move(A,B)")
	assert.Contains(t, out, "msg=search_end")
	assert.Contains(t, out, "status=SUCCEEDED")
}

// counterValue gathers the value of the single-series counter registered under name.
func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			require.Len(t, f.GetMetric(), 1)
			return f.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}
