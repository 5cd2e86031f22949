package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/dto"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	n := 0
	eng, err := turing.New(turing.WithRunnerOptions(runner.WithIDGenerator(func() string {
		n++
		return "run-" + string(rune('0'+n))
	})))
	require.NoError(t, err)
	return NewHandler(eng, opts...)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v), w.Body.String())
	return v
}

func TestHealthAndInfo(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/info", "")
	info := decode[map[string]string](t, w)
	assert.Equal(t, "turing-http", info["app"])
	assert.Equal(t, strings.TrimSpace(turing.Version), info["version"])
}

func TestListMachines(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/machines", "")
	require.Equal(t, http.StatusOK, w.Code)

	infos := decode[[]dto.MachineInfo](t, w)
	require.Len(t, infos, 3)
	assert.Equal(t, "compare", infos[0].Name)
	assert.Equal(t, "A = B", infos[0].HaltLabels["8"])
	assert.Equal(t, "flip-halt", infos[1].Name)
	assert.Equal(t, "invert", infos[2].Name)
}

func TestCreateRun(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/machines/compare/runs", `{"tape":"1111111111011111"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	snap := decode[domain.Snapshot](t, w)
	assert.Equal(t, "run-1", snap.RunID)
	assert.True(t, snap.Halted)
	assert.Equal(t, 7, snap.State)
	assert.Equal(t, "A > B", snap.HaltLabel)
}

func TestCreateRun_EmptyBody(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/machines/flip-halt/runs", "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	snap := decode[domain.Snapshot](t, w)
	assert.Equal(t, 1, snap.Steps)
}

func TestCreateRun_Errors(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"unknown machine", "/machines/nope/runs", `{}`, http.StatusNotFound},
		{"bad json", "/machines/invert/runs", `{"tape":`, http.StatusBadRequest},
		{"symbol outside alphabet", "/machines/invert/runs", `{"tape":"012"}`, http.StatusBadRequest},
		{"fill too long", "/machines/invert/runs", `{"fill":"ab"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
			body := decode[map[string]any](t, w)
			assert.NotEmpty(t, body["error"])
			assert.EqualValues(t, tt.status, body["status"])
		})
	}
}

func TestCreateRun_OutOfBound(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/machines/flip-halt/runs", `{"tape":"1"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	snap := decode[domain.Snapshot](t, w)
	assert.False(t, snap.Halted)
	assert.Contains(t, snap.Error, "out of bound")

	// failed runs are stored too
	w = do(t, h, http.MethodGet, "/runs/"+snap.RunID, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRunsLifecycle(t *testing.T) {
	h := newTestHandler(t)

	do(t, h, http.MethodPost, "/machines/invert/runs", `{"tape":"0110"}`)
	do(t, h, http.MethodPost, "/machines/invert/runs", `{"tape":"1"}`)

	w := do(t, h, http.MethodGet, "/runs", "")
	require.Equal(t, http.StatusOK, w.Code)
	runs := decode[[]domain.Snapshot](t, w)
	assert.Len(t, runs, 2)

	w = do(t, h, http.MethodGet, "/runs/run-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[domain.Snapshot](t, w)
	assert.Equal(t, "1001", snap.Trimmed(domain.Blank))

	w = do(t, h, http.MethodDelete, "/runs/run-1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/runs/run-1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsMount(t *testing.T) {
	h := newTestHandler(t)
	w := do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("turing_runs_total 0\n"))
	})
	h = newTestHandler(t, WithMetrics(metrics))
	w = do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "turing_runs_total")
}

func TestCORSPreflight(t *testing.T) {
	h := newTestHandler(t)
	w := do(t, h, http.MethodOptions, "/machines/compare/runs", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents(t *testing.T) {
	streams := NewStreamManager(nil)
	eng, err := turing.New(turing.WithLifecycleHooks(streams.Hooks()))
	require.NoError(t, err)

	srv := httptest.NewServer(NewHandler(eng, WithStreams(streams)))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events?machine=invert", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	require.True(t, lines.Scan())
	assert.Equal(t, "event: ping", lines.Text())

	// the subscription is registered before the ping is flushed
	_, err = eng.Run(ctx, turing.RunRequest{Machine: "flip-halt"})
	require.NoError(t, err)
	_, err = eng.Run(ctx, turing.RunRequest{Machine: "invert", Tape: "01"})
	require.NoError(t, err)

	var data string
	for lines.Scan() {
		if strings.HasPrefix(lines.Text(), "data: {") {
			data = strings.TrimPrefix(lines.Text(), "data: ")
			break
		}
	}
	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal([]byte(data), &snap))
	assert.Equal(t, "invert", snap.Machine, "flip-halt runs are filtered out")
	assert.True(t, snap.Halted)
}

func TestStreamManager(t *testing.T) {
	sm := NewStreamManager(nil)

	all, cancelAll := sm.Subscribe("")
	one, cancelOne := sm.Subscribe("compare")

	sm.Broadcast("compare", "a")
	sm.Broadcast("invert", "b")

	assert.Equal(t, "a", <-one)
	assert.Equal(t, "a", <-all)
	assert.Equal(t, "b", <-all)
	assert.Empty(t, one)

	cancelOne()
	cancelOne()
	_, open := <-one
	assert.False(t, open)

	cancelAll()
	sm.Broadcast("compare", "c")
}
