package resumebt

// Inverter inverts the result of its child: success becomes failure, failure
// success. A running child is resumed through a new Inverter, so the
// inversion also applies once the child completes.
type Inverter[B any] struct {
	child Node[B]
}

var _ Parent[struct{}] = (*Inverter[struct{}])(nil)

// NewInverter returns an Inverter over child.
func NewInverter[B any](child Node[B]) *Inverter[B] {
	return &Inverter[B]{child: mustChild("NewInverter", child)}
}

// Tick implements Node.
func (n *Inverter[B]) Tick(bb *B) Result[B] {
	switch result := n.child.Tick(bb); result.Status() {
	case Success:
		return Failed[B]()
	case Failure:
		return Succeeded[B]()
	default:
		return Continue[B](&Inverter[B]{child: result.Next()})
	}
}

// Children implements Parent.
func (n *Inverter[B]) Children() []Node[B] {
	return []Node[B]{n.child}
}

// Label implements Labeler.
func (n *Inverter[B]) Label() string {
	return "Inverter"
}

// String returns a structural dump, see Sprint.
func (n *Inverter[B]) String() string {
	return Sprint[B](n)
}
