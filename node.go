package resumebt

import (
	"fmt"
)

// Status is the outcome of a single tick.
type Status int

const (
	// Success indicates the node completed successfully.
	Success Status = iota + 1
	// Failure indicates the node completed unsuccessfully.
	Failure
	// Running indicates the node has not completed, and must be resumed via
	// the continuation carried by the Result.
	Running
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the outcome of ticking a Node. The zero value is not valid, use
// Succeeded, Failed, Continue or FromBool.
//
// Only a Running result carries a continuation, which is the node that must be
// ticked next in order to continue the same logical execution.
type Result[B any] struct {
	status Status
	next   Node[B]
}

// Succeeded returns a terminal Success result.
func Succeeded[B any]() Result[B] {
	return Result[B]{status: Success}
}

// Failed returns a terminal Failure result.
func Failed[B any]() Result[B] {
	return Result[B]{status: Failure}
}

// FromBool returns Succeeded if ok, otherwise Failed.
func FromBool[B any](ok bool) Result[B] {
	if ok {
		return Succeeded[B]()
	}
	return Failed[B]()
}

// Continue returns a Running result, resuming at next.
//
// Panics if next is nil, a Running result without a continuation is a
// programming error.
func Continue[B any](next Node[B]) Result[B] {
	if next == nil {
		panic("resumebt.Continue: continuation must not be nil")
	}
	return Result[B]{status: Running, next: next}
}

// Status returns the outcome.
func (r Result[B]) Status() Status {
	return r.status
}

// Next returns the continuation, or nil if the result is terminal.
func (r Result[B]) Next() Node[B] {
	return r.next
}

// IsRunning is shorthand for Status() == Running.
func (r Result[B]) IsRunning() bool {
	return r.status == Running
}

// String implements fmt.Stringer.
func (r Result[B]) String() string {
	return r.status.String()
}

// Node models a single, immutable, behavior tree node, operating on a
// caller-owned context (blackboard) of type B.
//
// Tick must not modify the receiver. Any state needed to resume must be
// captured by the continuation returned via Continue. Leaf implementations
// are expected to read and write the blackboard, composites only relay ticks
// to their children.
type Node[B any] interface {
	Tick(bb *B) Result[B]
}

// TickFunc adapts an ordinary function to a Node.
type TickFunc[B any] func(bb *B) Result[B]

var _ Node[struct{}] = TickFunc[struct{}](nil)

// Tick calls f(bb).
func (f TickFunc[B]) Tick(bb *B) Result[B] {
	return f(bb)
}

// Label implements Labeler.
func (f TickFunc[B]) Label() string {
	return "TickFunc"
}

// Action returns a leaf which calls fn on every tick, and completes
// immediately, with Success if fn returns true, otherwise Failure.
func Action[B any](fn func(bb *B) bool) Node[B] {
	if fn == nil {
		panic("resumebt.Action: fn must not be nil")
	}
	return action[B](fn)
}

type action[B any] func(bb *B) bool

func (a action[B]) Tick(bb *B) Result[B] {
	return FromBool[B](a(bb))
}

func (a action[B]) Label() string {
	return "Action"
}

// Parent is implemented by nodes which have children, and is used for
// structural debug output.
type Parent[B any] interface {
	Node[B]
	Children() []Node[B]
}

// Labeler may be implemented by nodes to provide a short, single-line,
// description, used for structural debug output.
type Labeler interface {
	Label() string
}

// copyChildren snapshots the caller's slice, so later mutations of it can't
// leak into an immutable composite.
func copyChildren[B any](kind string, children []Node[B]) []Node[B] {
	if len(children) == 0 {
		return nil
	}
	out := make([]Node[B], len(children))
	for i, child := range children {
		if child == nil {
			panic(fmt.Sprintf("resumebt.%s: child %d must not be nil", kind, i))
		}
		out[i] = child
	}
	return out
}

func mustChild[B any](kind string, child Node[B]) Node[B] {
	if child == nil {
		panic(fmt.Sprintf("resumebt.%s: child must not be nil", kind))
	}
	return child
}
