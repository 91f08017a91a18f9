package resumebt

// Runner drives a tree, tracking where to resume between ticks.
//
// A Runner is not safe for concurrent use, but the tree it wraps may be
// shared by any number of Runners.
type Runner[B any] struct {
	root    Node[B]
	current Node[B]
}

// NewRunner returns a Runner which will start at root.
// Panics if root is nil.
func NewRunner[B any](root Node[B]) *Runner[B] {
	if root == nil {
		panic("resumebt.NewRunner: root must not be nil")
	}
	return &Runner[B]{root: root}
}

// Proceed ticks the resumption point if there is one, otherwise the root.
//
// While the tree is running, done is false, and the continuation is stored
// for the next call. Once the tree completes, done is true, and success
// reports the outcome. The following call will start again at the root.
func (r *Runner[B]) Proceed(bb *B) (success, done bool) {
	node := r.Active()
	r.current = nil
	result := node.Tick(bb)
	switch result.Status() {
	case Running:
		r.current = result.Next()
		return false, false
	case Success:
		return true, true
	default:
		return false, true
	}
}

// IsRunning returns true if the next Proceed will resume a prior execution.
func (r *Runner[B]) IsRunning() bool {
	return r.current != nil
}

// Active returns the node the next Proceed will tick, which is the
// resumption point if there is one, otherwise the root.
func (r *Runner[B]) Active() Node[B] {
	if r.current != nil {
		return r.current
	}
	return r.root
}

// Root returns the tree this Runner was constructed with.
func (r *Runner[B]) Root() Node[B] {
	return r.root
}
