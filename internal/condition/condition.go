// Package condition implements leaves which evaluate expr-lang expressions
// against a blackboard.
//
// Expressions see each blackboard entry as a variable, e.g.
//
//	count >= 3 && name != "idle"
//
// Undefined variables evaluate to nil. Compiled programs are shared through
// a bounded LRU cache, see SetCacheSize.
package condition

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/joeycumines/resumebt"
	"github.com/joeycumines/resumebt/internal/blackboard"
)

// ErrEmptyExpression is returned by New for a blank expression.
var ErrEmptyExpression = errors.New("condition: empty expression")

// Condition is a leaf that completes immediately, with Success if the
// expression evaluates to true, otherwise Failure. Evaluation errors are
// logged, and reported as Failure.
type Condition struct {
	source  string
	program *vm.Program
}

var _ resumebt.Node[blackboard.Blackboard] = (*Condition)(nil)

// New compiles source, using the shared cache.
func New(source string) (*Condition, error) {
	return NewWithCache(shared, source)
}

// NewWithCache compiles source, using cache, which must not be nil.
func NewWithCache(cache *Cache, source string) (*Condition, error) {
	if source == "" {
		return nil, ErrEmptyExpression
	}
	program, err := compile(cache, source)
	if err != nil {
		return nil, err
	}
	return &Condition{source: source, program: program}, nil
}

func compile(cache *Cache, source string) (*vm.Program, error) {
	if program, ok := cache.Get(source); ok {
		return program, nil
	}
	program, err := expr.Compile(source,
		expr.Env(map[string]any{}),
		expr.AsBool(),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("condition: compile %q: %w", source, err)
	}
	cache.Put(source, program)
	return program, nil
}

// Eval runs the expression against a snapshot of bb.
func (c *Condition) Eval(bb *blackboard.Blackboard) (bool, error) {
	env := bb.Snapshot()
	if env == nil {
		env = map[string]any{}
	}
	out, err := expr.Run(c.program, env)
	if err != nil {
		return false, fmt.Errorf("condition: evaluate %q: %w", c.source, err)
	}
	result, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("condition: evaluate %q: non-boolean result %T", c.source, out)
	}
	return result, nil
}

// Tick implements resumebt.Node.
func (c *Condition) Tick(bb *blackboard.Blackboard) resumebt.Result[blackboard.Blackboard] {
	ok, err := c.Eval(bb)
	if err != nil {
		slog.Error("[Condition] evaluation failed", "expression", c.source, "error", err)
		return resumebt.Failed[blackboard.Blackboard]()
	}
	return resumebt.FromBool[blackboard.Blackboard](ok)
}

// Source returns the expression.
func (c *Condition) Source() string {
	return c.source
}

// Label implements resumebt.Labeler.
func (c *Condition) Label() string {
	return fmt.Sprintf("Condition(%s)", c.source)
}
