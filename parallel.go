package resumebt

import (
	"fmt"
)

// The parallel composites share an API with Sequence and Selector, but rather
// than anchoring on a single running child, every child still running is
// polled on every tick. Polling is sequential, in index order, on the calling
// goroutine.
//
// The continuation of a parallel composite is a parallel composite of the
// same kind over the continuations of the children that were still running,
// i.e. the working set only ever shrinks. A child that completed is never
// ticked again during the same execution.

// ParallelSequence polls all children each tick. It fails as soon as any
// child fails (children after it are not ticked that tick), and succeeds once
// every child has succeeded. An empty ParallelSequence succeeds.
type ParallelSequence[B any] struct {
	children []Node[B]
}

var _ Parent[struct{}] = (*ParallelSequence[struct{}])(nil)

// NewParallelSequence returns a ParallelSequence over children, which are
// copied.
func NewParallelSequence[B any](children ...Node[B]) *ParallelSequence[B] {
	return &ParallelSequence[B]{children: copyChildren("NewParallelSequence", children)}
}

// Tick implements Node.
func (p *ParallelSequence[B]) Tick(bb *B) Result[B] {
	working, result, done := pollAll(Success, p.children, bb)
	if done {
		return result
	}
	return Continue[B](&ParallelSequence[B]{children: working})
}

// Children implements Parent, returning the working set. The returned slice
// must not be modified.
func (p *ParallelSequence[B]) Children() []Node[B] {
	return p.children
}

// Label implements Labeler.
func (p *ParallelSequence[B]) Label() string {
	return fmt.Sprintf("ParallelSequence[%d]", len(p.children))
}

// String returns a structural dump, see Sprint.
func (p *ParallelSequence[B]) String() string {
	return Sprint[B](p)
}

// ParallelSelector polls all children each tick. It succeeds as soon as any
// child succeeds (children after it are not ticked that tick), and fails once
// every child has failed. An empty ParallelSelector fails.
type ParallelSelector[B any] struct {
	children []Node[B]
}

var _ Parent[struct{}] = (*ParallelSelector[struct{}])(nil)

// NewParallelSelector returns a ParallelSelector over children, which are
// copied.
func NewParallelSelector[B any](children ...Node[B]) *ParallelSelector[B] {
	return &ParallelSelector[B]{children: copyChildren("NewParallelSelector", children)}
}

// Tick implements Node.
func (p *ParallelSelector[B]) Tick(bb *B) Result[B] {
	working, result, done := pollAll(Failure, p.children, bb)
	if done {
		return result
	}
	return Continue[B](&ParallelSelector[B]{children: working})
}

// Children implements Parent, returning the working set. The returned slice
// must not be modified.
func (p *ParallelSelector[B]) Children() []Node[B] {
	return p.children
}

// Label implements Labeler.
func (p *ParallelSelector[B]) Label() string {
	return fmt.Sprintf("ParallelSelector[%d]", len(p.children))
}

// String returns a structural dump, see Sprint.
func (p *ParallelSelector[B]) String() string {
	return Sprint[B](p)
}

// pollAll ticks every child. A child reporting drop is removed from the
// working set, the other terminal status short-circuits. If the working set
// empties, the result is drop.
func pollAll[B any](drop Status, children []Node[B], bb *B) (working []Node[B], result Result[B], done bool) {
	for _, child := range children {
		r := child.Tick(bb)
		switch r.Status() {
		case drop:
		case Running:
			working = append(working, r.Next())
		default:
			return nil, r, true
		}
	}
	if len(working) == 0 {
		return nil, Result[B]{status: drop}, true
	}
	return working, Result[B]{}, false
}
