package resumebt

import (
	"fmt"
)

// Repeated ticks its child forever. It never completes: whenever the child
// completes, regardless of outcome, a fresh instance of the child is started,
// within the same tick if the previous iteration was being resumed.
type Repeated[B any] struct {
	child  Node[B]
	resume Node[B]
}

var _ Parent[struct{}] = (*Repeated[struct{}])(nil)

// NewRepeated returns a Repeated over child.
func NewRepeated[B any](child Node[B]) *Repeated[B] {
	return &Repeated[B]{child: mustChild("NewRepeated", child)}
}

// Tick implements Node.
func (r *Repeated[B]) Tick(bb *B) Result[B] {
	if r.resume != nil {
		if result := r.resume.Tick(bb); result.IsRunning() {
			return Continue[B](&Repeated[B]{child: r.child, resume: result.Next()})
		}
	}
	if result := r.child.Tick(bb); result.IsRunning() {
		return Continue[B](&Repeated[B]{child: r.child, resume: result.Next()})
	}
	// restart, we never end
	return Continue[B](&Repeated[B]{child: r.child})
}

// Children implements Parent.
func (r *Repeated[B]) Children() []Node[B] {
	return activeChild(r.child, r.resume)
}

// Label implements Labeler.
func (r *Repeated[B]) Label() string {
	if r.resume != nil {
		return "Repeated(resuming)"
	}
	return "Repeated"
}

// String returns a structural dump, see Sprint.
func (r *Repeated[B]) String() string {
	return Sprint[B](r)
}

// LimitedRepeated ticks its child until it has completed limit times, then
// succeeds.
//
// The limit is checked when the node is ticked, before anything else: once
// reached, the node succeeds without ticking the child. Completions are
// counted irrespective of outcome, a failing child counts the same as a
// succeeding one, and LimitedRepeated never fails. A limit of zero (or less)
// succeeds on the first tick.
//
// Like Repeated, a resumed iteration that completes is followed by a fresh
// child in the same tick, so one tick may complete two iterations. As the
// limit is only checked on entry, that fresh child is ticked even after the
// final completion. If it is still running, the next tick abandons it.
type LimitedRepeated[B any] struct {
	child     Node[B]
	resume    Node[B]
	limit     int
	completed int
}

var _ Parent[struct{}] = (*LimitedRepeated[struct{}])(nil)

// NewLimitedRepeated returns a LimitedRepeated over child.
func NewLimitedRepeated[B any](limit int, child Node[B]) *LimitedRepeated[B] {
	return &LimitedRepeated[B]{
		child: mustChild("NewLimitedRepeated", child),
		limit: limit,
	}
}

// Tick implements Node.
func (r *LimitedRepeated[B]) Tick(bb *B) Result[B] {
	if r.completed >= r.limit {
		return Succeeded[B]()
	}

	completed := r.completed

	if r.resume != nil {
		result := r.resume.Tick(bb)
		if result.IsRunning() {
			return Continue[B](r.next(completed, result.Next()))
		}
		completed++
	}

	result := r.child.Tick(bb)
	if result.IsRunning() {
		return Continue[B](r.next(completed, result.Next()))
	}
	completed++

	// restart until we've completed the repetitions
	return Continue[B](r.next(completed, nil))
}

func (r *LimitedRepeated[B]) next(completed int, resume Node[B]) *LimitedRepeated[B] {
	return &LimitedRepeated[B]{
		child:     r.child,
		resume:    resume,
		limit:     r.limit,
		completed: completed,
	}
}

// Completed returns the number of iterations completed so far.
func (r *LimitedRepeated[B]) Completed() int {
	return r.completed
}

// Limit returns the configured number of iterations.
func (r *LimitedRepeated[B]) Limit() int {
	return r.limit
}

// Children implements Parent.
func (r *LimitedRepeated[B]) Children() []Node[B] {
	return activeChild(r.child, r.resume)
}

// Label implements Labeler.
func (r *LimitedRepeated[B]) Label() string {
	return fmt.Sprintf("LimitedRepeated[%d/%d]", r.completed, r.limit)
}

// String returns a structural dump, see Sprint.
func (r *LimitedRepeated[B]) String() string {
	return Sprint[B](r)
}

// RepeatedUntilFailure ticks its child until it fails, at which point it
// succeeds. Each child success restarts the child, and is reported as Running.
type RepeatedUntilFailure[B any] struct {
	child  Node[B]
	resume Node[B]
}

var _ Parent[struct{}] = (*RepeatedUntilFailure[struct{}])(nil)

// NewRepeatedUntilFailure returns a RepeatedUntilFailure over child.
func NewRepeatedUntilFailure[B any](child Node[B]) *RepeatedUntilFailure[B] {
	return &RepeatedUntilFailure[B]{child: mustChild("NewRepeatedUntilFailure", child)}
}

// Tick implements Node.
func (r *RepeatedUntilFailure[B]) Tick(bb *B) Result[B] {
	if r.resume != nil {
		switch result := r.resume.Tick(bb); result.Status() {
		case Running:
			return Continue[B](&RepeatedUntilFailure[B]{child: r.child, resume: result.Next()})
		case Failure:
			return Succeeded[B]()
		}
	}
	switch result := r.child.Tick(bb); result.Status() {
	case Running:
		return Continue[B](&RepeatedUntilFailure[B]{child: r.child, resume: result.Next()})
	case Success:
		return Continue[B](&RepeatedUntilFailure[B]{child: r.child})
	default:
		// the loop condition broke
		return Succeeded[B]()
	}
}

// Children implements Parent.
func (r *RepeatedUntilFailure[B]) Children() []Node[B] {
	return activeChild(r.child, r.resume)
}

// Label implements Labeler.
func (r *RepeatedUntilFailure[B]) Label() string {
	if r.resume != nil {
		return "RepeatedUntilFailure(resuming)"
	}
	return "RepeatedUntilFailure"
}

// String returns a structural dump, see Sprint.
func (r *RepeatedUntilFailure[B]) String() string {
	return Sprint[B](r)
}

func activeChild[B any](child, resume Node[B]) []Node[B] {
	if resume != nil {
		return []Node[B]{resume}
	}
	return []Node[B]{child}
}
