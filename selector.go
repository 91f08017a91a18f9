package resumebt

import (
	"fmt"
)

// Selector ticks its children in order, until one succeeds or is still
// running. It fails only if every child fails. An empty Selector fails.
//
// Resumption mirrors Sequence: a running child anchors the Selector, and
// children already tried are skipped on later ticks.
type Selector[B any] struct {
	children []Node[B]
}

var _ Parent[struct{}] = (*Selector[struct{}])(nil)

// NewSelector returns a Selector over children, which are copied.
func NewSelector[B any](children ...Node[B]) *Selector[B] {
	return &Selector[B]{children: copyChildren("NewSelector", children)}
}

// Tick implements Node.
func (s *Selector[B]) Tick(bb *B) Result[B] {
	return scanOrdered(selectorRule, s.children, 0, bb)
}

// Children implements Parent. The returned slice must not be modified.
func (s *Selector[B]) Children() []Node[B] {
	return s.children
}

// Label implements Labeler.
func (s *Selector[B]) Label() string {
	return fmt.Sprintf("Selector[%d]", len(s.children))
}

// String returns a structural dump, see Sprint.
func (s *Selector[B]) String() string {
	return Sprint[B](s)
}
