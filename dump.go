package resumebt

import (
	"fmt"
	"io"
	"strings"
)

// Sprint returns a human-readable, indented, dump of the tree rooted at node.
// The format is intended for diagnostics only, and may change.
func Sprint[B any](node Node[B]) string {
	var b strings.Builder
	_ = Fprint(&b, node)
	return b.String()
}

// Fprint writes the dump described by Sprint to w.
func Fprint[B any](w io.Writer, node Node[B]) error {
	d := dumper[B]{w: w}
	d.line("", node)
	d.children("", node)
	return d.err
}

type dumper[B any] struct {
	w   io.Writer
	err error
}

func (d *dumper[B]) line(prefix string, node Node[B]) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, "%s%s\n", prefix, d.label(node))
}

func (d *dumper[B]) children(indent string, node Node[B]) {
	parent, ok := node.(Parent[B])
	if !ok {
		return
	}
	children := parent.Children()
	for i, child := range children {
		branch, next := "├── ", "│   "
		if i == len(children)-1 {
			branch, next = "└── ", "    "
		}
		d.line(indent+branch, child)
		d.children(indent+next, child)
	}
}

// label returns the single-line description of node: the result of Labeler
// if implemented, otherwise fmt.Stringer for leaves (composites typically
// dump recursively via String), otherwise the dynamic type.
func (d *dumper[B]) label(node Node[B]) string {
	switch v := node.(type) {
	case nil:
		return "<nil>"
	case Labeler:
		return v.Label()
	case Parent[B]:
		return fmt.Sprintf("%T", node)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%T", node)
	}
}
