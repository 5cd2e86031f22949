package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/dto"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args against a missing config file, so every
// invocation starts from the defaults with an in-memory store.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "turing version "+strings.TrimSpace(turing.Version)+"\n", out)
}

func TestRun(t *testing.T) {
	t.Run("text output", func(t *testing.T) {
		out, err := execute(t, "", "run", "compare", "110111")
		require.NoError(t, err)
		assert.Contains(t, out, "state=6")
		assert.Contains(t, out, "halted: A < B")
		assert.Contains(t, out, "run ")
	})

	t.Run("json output", func(t *testing.T) {
		out, err := execute(t, "", "run", "compare", "--tape", "1111111111011111", "--json")
		require.NoError(t, err)

		var snap domain.Snapshot
		require.NoError(t, json.Unmarshal([]byte(out), &snap))
		assert.Equal(t, 7, snap.State)
		assert.Equal(t, "A > B", snap.HaltLabel)
		assert.True(t, snap.Halted)
		assert.NotEmpty(t, snap.RunID)
	})

	t.Run("failed run still prints the tape", func(t *testing.T) {
		out, err := execute(t, "", "run", "flip-halt", "11", "--json")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrOutOfBound)

		var snap domain.Snapshot
		require.NoError(t, json.Unmarshal([]byte(out), &snap))
		assert.False(t, snap.Halted)
		assert.Equal(t, 0, snap.Steps)
		assert.Contains(t, snap.Error, "cannot move left of cell 0")
	})

	t.Run("fill and cursor flags", func(t *testing.T) {
		out, err := execute(t, "", "run", "flip-halt", "--cursor", "3", "--fill", "1", "--json")
		require.Error(t, err)

		var snap domain.Snapshot
		require.NoError(t, json.Unmarshal([]byte(out), &snap))
		assert.Equal(t, 3, snap.Steps)
		assert.Equal(t, 0, snap.Cursor)
	})

	t.Run("unknown machine", func(t *testing.T) {
		out, err := execute(t, "", "run", "nope")
		assert.ErrorIs(t, err, domain.ErrMachineNotFound)
		assert.Empty(t, out)
	})

	t.Run("tape given twice", func(t *testing.T) {
		_, err := execute(t, "", "run", "invert", "01", "--tape", "10")
		assert.ErrorContains(t, err, "tape given both")
	})

	t.Run("symbols outside the alphabet", func(t *testing.T) {
		_, err := execute(t, "", "run", "invert", "01x")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("fill outside the alphabet", func(t *testing.T) {
		_, err := execute(t, "", "run", "compare", "101", "--fill", "z")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("max steps flag", func(t *testing.T) {
		_, err := execute(t, "", "--max-steps", "3", "run", "compare", "110111")
		assert.ErrorIs(t, err, domain.ErrStepBudget)
	})
}

func TestBits(t *testing.T) {
	t.Run("encode", func(t *testing.T) {
		out, err := execute(t, "", "bits", "5554")
		require.NoError(t, err)
		assert.Equal(t, "00000000000000000001010110110010\n", out)
	})

	t.Run("decode", func(t *testing.T) {
		out, err := execute(t, "", "bits", "--decode", "1010110110010")
		require.NoError(t, err)
		assert.Equal(t, "5554\n", out)
	})

	t.Run("through a machine", func(t *testing.T) {
		out, err := execute(t, "", "bits", "5554", "--machine", "invert")
		require.NoError(t, err)
		assert.Equal(t,
			"00000000000000000001010110110010 5554\n11111111111111111110101001001101 -5555\n", out)
	})

	t.Run("not an integer", func(t *testing.T) {
		_, err := execute(t, "", "bits", "1e3")
		assert.ErrorContains(t, err, "not a 32-bit integer")
	})
}

func TestList(t *testing.T) {
	out, err := execute(t, "", "list", "--json")
	require.NoError(t, err)

	var infos []dto.MachineInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	assert.Equal(t, []string{"compare", "flip-halt", "invert"}, names)

	out, err = execute(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "| compare |")
}

func TestValidate(t *testing.T) {
	out, err := execute(t, "", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "compare: ok")
	assert.Contains(t, out, "flip-halt: ok (1 states)")

	_, err = execute(t, "", "validate", "nope")
	assert.ErrorIs(t, err, domain.ErrMachineNotFound)
}

func TestRuns(t *testing.T) {
	out, err := execute(t, "", "runs")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "RUN ID"))

	_, err = execute(t, "", "show", "missing")
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestRunsWithSQLite(t *testing.T) {
	t.Setenv("TURING_STORE_DRIVER", "sqlite")
	t.Setenv("TURING_STORE_SQLITE_PATH", filepath.Join(t.TempDir(), "runs.db"))

	out, err := execute(t, "", "run", "invert", "0110", "--json")
	require.NoError(t, err)
	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))

	out, err = execute(t, "", "runs")
	require.NoError(t, err)
	assert.Contains(t, out, snap.RunID)

	out, err = execute(t, "", "show", snap.RunID)
	require.NoError(t, err)
	assert.Contains(t, out, "[1] [0] [0] [1]")

	_, err = execute(t, "", "runs", "delete", snap.RunID)
	require.NoError(t, err)
	_, err = execute(t, "", "show", snap.RunID)
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestRepl(t *testing.T) {
	out, err := execute(t, "110111\n11011\nquit\n", "repl", "compare", "--headless")
	require.NoError(t, err)
	assert.Contains(t, out, "halted: A < B")
	assert.Contains(t, out, "halted: A = B")
	assert.NotContains(t, out, "> ")
}

func TestMCP_UnknownTransport(t *testing.T) {
	_, err := execute(t, "", "mcp", "--transport", "carrier-pigeon")
	assert.ErrorContains(t, err, "unknown transport")
}

func TestRootFlags(t *testing.T) {
	_, err := execute(t, "", "--store", "floppy", "list")
	assert.ErrorContains(t, err, "unknown store driver")
}
