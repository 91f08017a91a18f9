// Package interop connects resumebt trees with github.com/joeycumines/go-behaviortree.
//
// go-behaviortree nodes are stateful closures, ticked without a context
// argument, while resumebt nodes are immutable values ticked against a
// blackboard. FromNode embeds the former as a leaf of the latter, ToNode
// exposes a Runner to the former, and Run paces a Runner on a wall clock
// using a go-behaviortree Ticker.
package interop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	bt "github.com/joeycumines/go-behaviortree"

	"github.com/joeycumines/resumebt"
)

var (
	// ErrTickLimit is returned by Run if the tree was still running after
	// the maximum number of ticks.
	ErrTickLimit = errors.New("interop: tick limit reached")

	// errComplete stops the ticker once the runner completes.
	errComplete = errors.New("interop: complete")
)

// FromNode returns a leaf that ticks node. A go-behaviortree Running status
// resumes the same leaf, any tick error is logged and treated as Failure.
//
// The state of node is owned by node, so the returned leaf must not be shared
// between concurrent runners.
func FromNode[B any](node bt.Node) resumebt.Node[B] {
	if node == nil {
		panic("interop.FromNode: node must not be nil")
	}
	return &leaf[B]{node: node}
}

type leaf[B any] struct {
	node bt.Node
}

func (l *leaf[B]) Tick(*B) resumebt.Result[B] {
	status, err := l.node.Tick()
	if err != nil {
		slog.Error("[Interop] go-behaviortree tick failed", "error", err)
		return resumebt.Failed[B]()
	}
	switch status {
	case bt.Running:
		return resumebt.Continue[B](l)
	case bt.Success:
		return resumebt.Succeeded[B]()
	default:
		return resumebt.Failed[B]()
	}
}

func (l *leaf[B]) Label() string {
	return "go-behaviortree"
}

// ToNode returns a go-behaviortree node that proceeds r against bb on each
// tick, mapping the outcome to a Status. It never returns an error.
func ToNode[B any](r *resumebt.Runner[B], bb *B) bt.Node {
	return bt.New(func([]bt.Node) (bt.Status, error) {
		return toStatus(r.Proceed(bb)), nil
	})
}

func toStatus(success, done bool) bt.Status {
	switch {
	case !done:
		return bt.Running
	case success:
		return bt.Success
	default:
		return bt.Failure
	}
}

// Result summarises a paced run.
type Result struct {
	Success bool
	Ticks   int
}

// Run proceeds r against bb every interval until it completes, ctx is done,
// or maxTicks ticks have run (if maxTicks > 0). Interval must be positive.
func Run[B any](ctx context.Context, interval time.Duration, maxTicks int, r *resumebt.Runner[B], bb *B) (Result, error) {
	if interval <= 0 {
		return Result{}, fmt.Errorf("interop: invalid interval %s", interval)
	}

	var result Result
	ticker := bt.NewTicker(ctx, interval, bt.New(
		func(children []bt.Node) (bt.Status, error) {
			result.Ticks++
			status, _ := children[0].Tick()
			if status != bt.Running {
				result.Success = status == bt.Success
				return status, errComplete
			}
			if maxTicks > 0 && result.Ticks >= maxTicks {
				return status, ErrTickLimit
			}
			return status, nil
		},
		ToNode(r, bb),
	))
	<-ticker.Done()

	if err := ticker.Err(); err != nil && !errors.Is(err, errComplete) {
		return result, fmt.Errorf("interop: run stopped after %d ticks: %w", result.Ticks, err)
	}
	return result, nil
}
