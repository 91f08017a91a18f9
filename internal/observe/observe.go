// Package observe decorates nodes with per-tick logging and metrics.
package observe

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/joeycumines/resumebt"
)

// Observer records ticks of the nodes it wraps, tagged with a run id.
type Observer struct {
	runID  string
	logger *slog.Logger
	ticks  *prometheus.CounterVec
}

// New registers the tick counter with reg, or reuses one already registered,
// and returns an Observer with a fresh run id. A nil logger uses
// slog.Default.
func New(reg prometheus.Registerer, logger *slog.Logger) (*Observer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ticks := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resumebt_node_ticks_total",
			Help: "Ticks of observed nodes, by node name and result status.",
		},
		[]string{"node", "status"},
	)
	if err := reg.Register(ticks); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, fmt.Errorf("observe: register metrics: %w", err)
		}
		existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, fmt.Errorf("observe: register metrics: unexpected collector %T", already.ExistingCollector)
		}
		ticks = existing
	}
	runID := uuid.NewString()
	return &Observer{
		runID:  runID,
		logger: logger.With("run_id", runID),
		ticks:  ticks,
	}, nil
}

// RunID returns the id attached to every record.
func (o *Observer) RunID() string {
	return o.runID
}

// Ticks returns the counter for name and status.
func (o *Observer) Ticks(name string, status resumebt.Status) prometheus.Counter {
	return o.ticks.WithLabelValues(name, status.String())
}

func (o *Observer) record(name string, status resumebt.Status) {
	o.Ticks(name, status).Inc()
	o.logger.Debug("[Observe] tick", "node", name, "status", status)
}

// Wrap returns node, decorated so that every tick of it, including ticks of
// its continuations, is recorded under name.
func Wrap[B any](o *Observer, name string, node resumebt.Node[B]) resumebt.Node[B] {
	if node == nil {
		panic("observe.Wrap: node must not be nil")
	}
	return &observed[B]{observer: o, name: name, node: node}
}

type observed[B any] struct {
	observer *Observer
	name     string
	node     resumebt.Node[B]
}

func (n *observed[B]) Tick(bb *B) resumebt.Result[B] {
	result := n.node.Tick(bb)
	n.observer.record(n.name, result.Status())
	if result.IsRunning() {
		return resumebt.Continue[B](&observed[B]{observer: n.observer, name: n.name, node: result.Next()})
	}
	return result
}

// Children exposes the wrapped node's children, so the dump is unaffected.
func (n *observed[B]) Children() []resumebt.Node[B] {
	if parent, ok := n.node.(resumebt.Parent[B]); ok {
		return parent.Children()
	}
	return nil
}

func (n *observed[B]) Label() string {
	var label string
	switch v := n.node.(type) {
	case resumebt.Labeler:
		label = v.Label()
	case fmt.Stringer:
		label = v.String()
	default:
		label = fmt.Sprintf("%T", v)
	}
	return fmt.Sprintf("%s <%s>", label, n.name)
}
