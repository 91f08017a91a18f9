package observe

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/resumebt"
)

type steps struct {
	done []string
}

func step(id string, runs int) resumebt.Node[steps] {
	return resumebt.TickFunc[steps](func(s *steps) resumebt.Result[steps] {
		if runs > 0 {
			return resumebt.Continue[steps](step(id, runs-1))
		}
		s.done = append(s.done, id)
		return resumebt.Succeeded[steps]()
	})
}

func newObserver(t *testing.T) (*Observer, *prometheus.Registry, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	reg := prometheus.NewRegistry()
	o, err := New(reg, logger)
	require.NoError(t, err)
	return o, reg, &buf
}

func TestWrap_recordsEveryTick(t *testing.T) {
	t.Parallel()

	o, _, buf := newObserver(t)
	r := resumebt.NewRunner(Wrap(o, "root", resumebt.NewSequence(step("a", 1), step("b", 0))))

	var s steps
	_, done := r.Proceed(&s)
	require.False(t, done)
	success, done := r.Proceed(&s)
	require.True(t, done)
	require.True(t, success)
	require.Equal(t, []string{"a", "b"}, s.done)

	assert.Equal(t, 1.0, testutil.ToFloat64(o.Ticks("root", resumebt.Running)))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.Ticks("root", resumebt.Success)))
	assert.Zero(t, testutil.ToFloat64(o.Ticks("root", resumebt.Failure)))

	logs := buf.String()
	assert.Equal(t, 2, strings.Count(logs, "[Observe] tick"))
	assert.Contains(t, logs, "run_id="+o.RunID())
	assert.Contains(t, logs, "status=running")
	assert.Contains(t, logs, "status=success")
}

func TestNew_reusesRegisteredCounter(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	a, err := New(reg, nil)
	require.NoError(t, err)
	b, err := New(reg, nil)
	require.NoError(t, err)
	require.NotEqual(t, a.RunID(), b.RunID())

	a.Ticks("x", resumebt.Success).Inc()
	b.Ticks("x", resumebt.Success).Inc()
	require.Equal(t, 2.0, testutil.ToFloat64(a.Ticks("x", resumebt.Success)))
	count, err := testutil.GatherAndCount(reg, "resumebt_node_ticks_total")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestNew_conflictingCollector(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "resumebt_node_ticks_total",
		Help: "conflict",
	}))
	_, err := New(reg, nil)
	require.Error(t, err)
}

func TestObserver_RunID(t *testing.T) {
	t.Parallel()
	o, _, _ := newObserver(t)
	_, err := uuid.Parse(o.RunID())
	require.NoError(t, err)
}

func TestWrap_dump(t *testing.T) {
	t.Parallel()

	o, _, _ := newObserver(t)
	node := Wrap(o, "guard", resumebt.NewInverter(step("a", 0)))
	require.Equal(t, "Inverter <guard>\n└── TickFunc\n", resumebt.Sprint(node))
}
