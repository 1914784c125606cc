package tui_test

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/aretw0/planner/internal/presentation/tui"
	"github.com/aretw0/planner/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func succeeded() *domain.Result {
	return &domain.Result{
		Status: domain.StatusSucceeded,
		Plan: &domain.Plan{
			Steps: []domain.PlanStep{
				{Action: domain.GroundAction{Schema: "move", Args: []string{"A", "B"}, Cost: 1}},
				{Action: domain.GroundAction{Schema: "move", Args: []string{"B", "C"}, Cost: 1}},
			},
			Cost: 2,
		},
		Stats: domain.Stats{Expanded: 3, Generated: 2, MaxFrontier: 1, Elapsed: 1500 * time.Microsecond},
	}
}

func TestMarkdown(t *testing.T) {
	md := tui.Markdown("rooms", succeeded())
	assert.Contains(t, md, "# rooms")
	assert.Contains(t, md, "**Status:** SUCCEEDED\n")
	assert.Contains(t, md, "2 steps, cost 2")
	assert.Contains(t, md, "1. `move(A,B)`")
	assert.Contains(t, md, "2. `move(B,C)`")
	assert.Contains(t, md, "| 3 | 2 | 0 | 0 | 1 | 1.5ms |")

	aborted := tui.Markdown("rooms", &domain.Result{
		Status: domain.StatusAborted,
		Reason: domain.ReasonStoreFailure,
		Err:    errors.New("connection refused"),
	})
	assert.Contains(t, aborted, "ABORTED (store_failure)")
	assert.Contains(t, aborted, "> connection refused")
	assert.NotContains(t, aborted, "## Plan")
}

func TestRenderer(t *testing.T) {
	render, err := tui.NewRenderer(60, false)
	require.NoError(t, err)

	out, err := render(tui.Markdown("rooms", succeeded()))
	require.NoError(t, err)
	assert.Contains(t, out, "move(A,B)")
	assert.Contains(t, out, "Statistics")
}

func TestStatus_NoColor(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, "SUCCEEDED", tui.Status(&buf, domain.StatusSucceeded))
	assert.Equal(t, "FAILED", tui.Status(&buf, domain.StatusFailed))

	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_|")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestTerminalDetection(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, tui.IsTerminal(f))
	assert.Equal(t, 80, tui.Width(f))
}
