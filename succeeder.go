package resumebt

// Succeeder always succeeds. If it has a child, the child is ticked to
// completion first, and its outcome discarded. The zero value is a Succeeder
// without a child.
type Succeeder[B any] struct {
	child Node[B]
}

var _ Parent[struct{}] = (*Succeeder[struct{}])(nil)

// NewSucceeder returns a Succeeder over child, which may be nil.
func NewSucceeder[B any](child Node[B]) *Succeeder[B] {
	return &Succeeder[B]{child: child}
}

// Tick implements Node.
func (n *Succeeder[B]) Tick(bb *B) Result[B] {
	if n.child == nil {
		return Succeeded[B]()
	}
	if result := n.child.Tick(bb); result.IsRunning() {
		return Continue[B](&Succeeder[B]{child: result.Next()})
	}
	return Succeeded[B]()
}

// Children implements Parent.
func (n *Succeeder[B]) Children() []Node[B] {
	if n.child == nil {
		return nil
	}
	return []Node[B]{n.child}
}

// Label implements Labeler.
func (n *Succeeder[B]) Label() string {
	return "Succeeder"
}

// String returns a structural dump, see Sprint.
func (n *Succeeder[B]) String() string {
	return Sprint[B](n)
}
