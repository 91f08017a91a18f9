package resumebt

import (
	"fmt"
)

// Sequence ticks its children in order, until one fails or is still running.
// It succeeds only if every child succeeds. An empty Sequence succeeds.
//
// A running child anchors the Sequence: the continuation resumes that child,
// and children before it are never ticked again during the same execution.
// Side effects of children that already ran are not rolled back on failure.
type Sequence[B any] struct {
	children []Node[B]
}

var _ Parent[struct{}] = (*Sequence[struct{}])(nil)

// NewSequence returns a Sequence over children, which are copied.
func NewSequence[B any](children ...Node[B]) *Sequence[B] {
	return &Sequence[B]{children: copyChildren("NewSequence", children)}
}

// Tick implements Node.
func (s *Sequence[B]) Tick(bb *B) Result[B] {
	return scanOrdered(sequenceRule, s.children, 0, bb)
}

// Children implements Parent. The returned slice must not be modified.
func (s *Sequence[B]) Children() []Node[B] {
	return s.children
}

// Label implements Labeler.
func (s *Sequence[B]) Label() string {
	return fmt.Sprintf("Sequence[%d]", len(s.children))
}

// String returns a structural dump, see Sprint.
func (s *Sequence[B]) String() string {
	return Sprint[B](s)
}

// orderedRule distinguishes Sequence (AND) from Selector (OR).
type orderedRule struct {
	name string
	// pass is the child outcome which moves on to the next child, the other
	// terminal outcome short-circuits, and is the overall result.
	pass Status
}

var (
	sequenceRule = orderedRule{name: "Sequence", pass: Success}
	selectorRule = orderedRule{name: "Selector", pass: Failure}
)

// scanOrdered ticks children[from:] in order, per rule. Exhausting the
// children yields rule.pass, the identity of the operation.
func scanOrdered[B any](rule orderedRule, children []Node[B], from int, bb *B) Result[B] {
	for i := from; i < len(children); i++ {
		result := children[i].Tick(bb)
		switch result.Status() {
		case rule.pass:
		case Running:
			return Continue[B](&orderedResume[B]{
				rule:     rule,
				children: children,
				index:    i,
				resume:   result.Next(),
			})
		default:
			return result
		}
	}
	return Result[B]{status: rule.pass}
}

// orderedResume is the continuation of a Sequence or Selector, anchored at
// the child that was running.
type orderedResume[B any] struct {
	rule     orderedRule
	children []Node[B] // shared with the original composite
	index    int
	resume   Node[B]
}

func (r *orderedResume[B]) Tick(bb *B) Result[B] {
	result := r.resume.Tick(bb)
	switch result.Status() {
	case r.rule.pass:
		return scanOrdered(r.rule, r.children, r.index+1, bb)
	case Running:
		return Continue[B](&orderedResume[B]{
			rule:     r.rule,
			children: r.children,
			index:    r.index,
			resume:   result.Next(),
		})
	default:
		return result
	}
}

// Children returns the anchored continuation followed by the children yet
// to be tried.
func (r *orderedResume[B]) Children() []Node[B] {
	out := make([]Node[B], 0, len(r.children)-r.index)
	out = append(out, r.resume)
	return append(out, r.children[r.index+1:]...)
}

func (r *orderedResume[B]) Label() string {
	return fmt.Sprintf("%sResume[%d/%d]", r.rule.name, r.index, len(r.children))
}

func (r *orderedResume[B]) String() string {
	return Sprint[B](r)
}

// Index returns the position of the anchored child.
func (r *orderedResume[B]) Index() int {
	return r.index
}
