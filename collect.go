package resumebt

import (
	"iter"
)

// Collect gathers an ordered sequence of nodes, of any concrete type, into a
// slice suitable for the composite constructors. The element type N is
// usually inferred, e.g. Collect[*Context](slices.Values(leaves)).
//
// Panics if any element is a nil interface.
func Collect[B any, N Node[B]](seq iter.Seq[N]) []Node[B] {
	var out []Node[B]
	for n := range seq {
		var node Node[B] = n
		if node == nil {
			panic("resumebt.Collect: node must not be nil")
		}
		out = append(out, node)
	}
	return out
}

// Wrap adapts a sequence of raw values to a sequence of nodes, using fn.
func Wrap[T, B any](seq iter.Seq[T], fn func(T) Node[B]) iter.Seq[Node[B]] {
	return func(yield func(Node[B]) bool) {
		for v := range seq {
			if !yield(fn(v)) {
				return
			}
		}
	}
}

// SequenceOf collects seq into a Sequence.
func SequenceOf[B any, N Node[B]](seq iter.Seq[N]) *Sequence[B] {
	return &Sequence[B]{children: Collect[B](seq)}
}

// SelectorOf collects seq into a Selector.
func SelectorOf[B any, N Node[B]](seq iter.Seq[N]) *Selector[B] {
	return &Selector[B]{children: Collect[B](seq)}
}

// ParallelSequenceOf collects seq into a ParallelSequence.
func ParallelSequenceOf[B any, N Node[B]](seq iter.Seq[N]) *ParallelSequence[B] {
	return &ParallelSequence[B]{children: Collect[B](seq)}
}

// ParallelSelectorOf collects seq into a ParallelSelector.
func ParallelSelectorOf[B any, N Node[B]](seq iter.Seq[N]) *ParallelSelector[B] {
	return &ParallelSelector[B]{children: Collect[B](seq)}
}
