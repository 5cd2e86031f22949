package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/dto"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	eng, err := turing.New(turing.WithRunnerOptions(runner.WithIDGenerator(func() string { return "run-1" })))
	require.NoError(t, err)
	return NewServer(eng, nil)
}

func newCallToolRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestListMachines(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleListMachines(context.Background(), newCallToolRequest("list_machines", nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var infos []dto.MachineInfo
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &infos))
	require.Len(t, infos, 3)
	assert.Equal(t, "compare", infos[0].Name)
}

func TestRunMachine(t *testing.T) {
	s := newTestServer(t)

	args := map[string]any{"machine": "compare", "tape": "11111011111"}
	snap, err := s.handleRunMachine(context.Background(), newCallToolRequest("run_machine", args), args)
	require.NoError(t, err)
	assert.Equal(t, "run-1", snap.RunID)
	assert.Equal(t, 8, snap.State)
	assert.Equal(t, "A = B", snap.HaltLabel)
}

func TestRunMachine_CursorAndFill(t *testing.T) {
	s := newTestServer(t)

	// JSON numbers are float64
	args := map[string]any{"machine": "flip-halt", "cursor": float64(2), "fill": "1", "tape": "0"}
	snap, err := s.handleRunMachine(context.Background(), newCallToolRequest("run_machine", args), args)
	require.NoError(t, err)
	assert.True(t, snap.Halted)
	assert.Equal(t, 2, snap.Cursor)
	assert.Equal(t, 1, snap.Steps)
}

func TestRunMachine_FailedRunIsNotAToolError(t *testing.T) {
	s := newTestServer(t)

	args := map[string]any{"machine": "flip-halt", "tape": "1"}
	snap, err := s.handleRunMachine(context.Background(), newCallToolRequest("run_machine", args), args)
	require.NoError(t, err)
	assert.False(t, snap.Halted)
	assert.Contains(t, snap.Error, "out of bound")
}

func TestRunMachine_Errors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		args map[string]any
		is   error
	}{
		{"missing machine", map[string]any{"tape": "1"}, nil},
		{"unknown argument", map[string]any{"machine": "invert", "speed": 2}, nil},
		{"unknown machine", map[string]any{"machine": "nope"}, domain.ErrMachineNotFound},
		{"bad symbol", map[string]any{"machine": "invert", "tape": "2"}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.handleRunMachine(context.Background(), newCallToolRequest("run_machine", tt.args), tt.args)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestGetRun(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	args := map[string]any{"machine": "invert", "tape": "10"}
	_, err := s.handleRunMachine(ctx, newCallToolRequest("run_machine", args), args)
	require.NoError(t, err)

	res, err := s.handleGetRun(ctx, newCallToolRequest("get_run", map[string]any{"run_id": "run-1"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &snap))
	assert.Equal(t, "01", snap.Trimmed(domain.Blank))

	res, err = s.handleGetRun(ctx, newCallToolRequest("get_run", map[string]any{"run_id": "missing"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "not found")

	res, err = s.handleGetRun(ctx, newCallToolRequest("get_run", nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestDecodeRunRequest(t *testing.T) {
	req, err := decodeRunRequest(map[string]any{"machine": "compare", "tape": "101", "cursor": float64(3)})
	require.NoError(t, err)
	assert.Equal(t, "compare", req.Machine)
	assert.Equal(t, "101", req.Tape)
	require.NotNil(t, req.Cursor)
	assert.Equal(t, 3, *req.Cursor)
	assert.Nil(t, req.Fill)
}
