package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/aretw0/planner/internal/samples"
	"github.com/aretw0/planner/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	assert.Contains(t, execute(t, "version"), "planner version ")
}

func TestSamplesCommand(t *testing.T) {
	out := execute(t, "samples")
	assert.Contains(t, out, "rooms")
	assert.Contains(t, out, "heuristic: manhattan")
	assert.Contains(t, out, "width=3")
}

func TestSolveCommand_JSON(t *testing.T) {
	out := execute(t, "solve", "rooms", "--format", "json", "--param", "rooms=A,B,C", "--strategy", "astar")

	var got struct {
		Problem string              `json:"problem"`
		Status  domain.SearchStatus `json:"status"`
		Plan    []string            `json:"plan"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "rooms", got.Problem)
	assert.Equal(t, domain.StatusSucceeded, got.Status)
	assert.Equal(t, []string{"move(A,B)", "move(B,C)"}, got.Plan)
}

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"seed=7", " width = 4 ", "rooms=A,B"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"seed": "7", "width": "4", "rooms": "A,B"}, params)

	_, err = parseParams([]string{"seed"})
	assert.Error(t, err)
	_, err = parseParams([]string{"=3"})
	assert.Error(t, err)
}

func TestPrintResult(t *testing.T) {
	p, err := samples.Rooms().Build(map[string]any{"rooms": "A,B"})
	require.NoError(t, err)
	res := &domain.Result{
		Status: domain.StatusSucceeded,
		Plan: &domain.Plan{
			Steps: []domain.PlanStep{{
				Action: domain.GroundAction{Schema: "move", Args: []string{"A", "B"}, Cost: 1},
				State:  domain.NewState(domain.NewFact("at", "B")),
			}},
			Cost: 1,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, printResult(&buf, "text", p, res))
	assert.Contains(t, buf.String(), "rooms: SUCCEEDED")
	assert.Contains(t, buf.String(), "  1. move(A,B)")
	assert.Contains(t, buf.String(), "cost: 1")

	buf.Reset()
	require.NoError(t, printResult(&buf, "mermaid", p, res))
	assert.Contains(t, buf.String(), `s0 -- "move(A,B)" --> s1`)

	buf.Reset()
	require.NoError(t, printResult(&buf, "markdown", p, res))
	assert.Contains(t, buf.String(), "1. `move(A,B)`")

	aborted := &domain.Result{Status: domain.StatusAborted, Reason: domain.ReasonDeadline}
	buf.Reset()
	require.NoError(t, printResult(&buf, "text", p, aborted))
	assert.Contains(t, buf.String(), "reason: deadline")
	assert.Error(t, printResult(&buf, "mermaid", p, aborted))

	assert.Error(t, printResult(&buf, "yaml", p, res))
}
