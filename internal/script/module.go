package script

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dop251/goja"

	"github.com/joeycumines/resumebt"
	"github.com/joeycumines/resumebt/internal/blackboard"
	"github.com/joeycumines/resumebt/internal/condition"
	"github.com/joeycumines/resumebt/internal/observe"
)

// Status strings, as returned by JS leaves.
const (
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// require loads the native module. Exports:
//   - running, success, failure: status strings
//   - leaf(fn) / leaf(name, fn): JS leaf, fn(blackboard) returns a status or boolean
//   - condition(expression): expr-lang condition over the blackboard
//   - wait(n): running for n ticks, then success
//   - sequence, selector, parallelSequence, parallelSelector: variadic or array of children
//   - inverter(child), succeeder(child?), repeat(child), repeatN(n, child), repeatUntilFailure(child)
//   - observe(name, node): records ticks of node, if the engine has an observer
//
// Anywhere a node is expected, a JS function may be given, and is wrapped by leaf.
func (e *Engine) require(vm *goja.Runtime, module *goja.Object) {
	exports := module.Get("exports").(*goja.Object)

	_ = exports.Set("running", StatusRunning)
	_ = exports.Set("success", StatusSuccess)
	_ = exports.Set("failure", StatusFailure)

	_ = exports.Set("leaf", func(call goja.FunctionCall) goja.Value {
		name, fnArg := "", call.Argument(0)
		if len(call.Arguments) > 1 {
			name, fnArg = call.Argument(0).String(), call.Argument(1)
		}
		fn, ok := goja.AssertFunction(fnArg)
		if !ok {
			panic(vm.NewTypeError("leaf requires a function"))
		}
		return vm.ToValue(Node(&jsLeaf{engine: e, name: name, fn: fn}))
	})

	_ = exports.Set("condition", func(source string) goja.Value {
		c, err := condition.NewWithCache(e.conditions, source)
		if err != nil {
			panic(vm.NewGoError(err))
		}
		return vm.ToValue(Node(c))
	})

	_ = exports.Set("wait", func(n int) goja.Value {
		return vm.ToValue(Node(wait{remaining: n}))
	})

	composite := func(build func(children ...Node) Node) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			return vm.ToValue(build(e.children(vm, call.Arguments)...))
		}
	}
	_ = exports.Set("sequence", composite(func(c ...Node) Node { return resumebt.NewSequence(c...) }))
	_ = exports.Set("selector", composite(func(c ...Node) Node { return resumebt.NewSelector(c...) }))
	_ = exports.Set("parallelSequence", composite(func(c ...Node) Node { return resumebt.NewParallelSequence(c...) }))
	_ = exports.Set("parallelSelector", composite(func(c ...Node) Node { return resumebt.NewParallelSelector(c...) }))

	_ = exports.Set("inverter", func(child goja.Value) goja.Value {
		return vm.ToValue(Node(resumebt.NewInverter(e.mustNode(vm, child))))
	})
	_ = exports.Set("succeeder", func(child goja.Value) goja.Value {
		if child == nil || goja.IsUndefined(child) || goja.IsNull(child) {
			return vm.ToValue(Node(resumebt.NewSucceeder[blackboard.Blackboard](nil)))
		}
		return vm.ToValue(Node(resumebt.NewSucceeder(e.mustNode(vm, child))))
	})
	_ = exports.Set("repeat", func(child goja.Value) goja.Value {
		return vm.ToValue(Node(resumebt.NewRepeated(e.mustNode(vm, child))))
	})
	_ = exports.Set("repeatN", func(limit int, child goja.Value) goja.Value {
		return vm.ToValue(Node(resumebt.NewLimitedRepeated(limit, e.mustNode(vm, child))))
	})
	_ = exports.Set("repeatUntilFailure", func(child goja.Value) goja.Value {
		return vm.ToValue(Node(resumebt.NewRepeatedUntilFailure(e.mustNode(vm, child))))
	})

	_ = exports.Set("observe", func(name string, child goja.Value) goja.Value {
		node := e.mustNode(vm, child)
		if e.observer == nil {
			return vm.ToValue(node)
		}
		return vm.ToValue(observe.Wrap(e.observer, name, node))
	})
}

// toNode converts a JS value to a node, wrapping functions as leaves.
func (e *Engine) toNode(vm *goja.Runtime, value goja.Value) (Node, error) {
	if value == nil || goja.IsUndefined(value) || goja.IsNull(value) {
		return nil, fmt.Errorf("expected a node, got %v", value)
	}
	if fn, ok := goja.AssertFunction(value); ok {
		return &jsLeaf{engine: e, fn: fn}, nil
	}
	if node, ok := value.Export().(Node); ok && node != nil {
		return node, nil
	}
	return nil, fmt.Errorf("expected a node, got %s", value.ExportType())
}

func (e *Engine) mustNode(vm *goja.Runtime, value goja.Value) Node {
	node, err := e.toNode(vm, value)
	if err != nil {
		panic(vm.NewTypeError(err.Error()))
	}
	return node
}

// children accepts either variadic nodes, or a single array of nodes.
func (e *Engine) children(vm *goja.Runtime, args []goja.Value) []Node {
	if len(args) == 1 {
		if obj, ok := args[0].(*goja.Object); ok && obj.ClassName() == "Array" {
			length := obj.Get("length").ToInteger()
			args = make([]goja.Value, length)
			for i := range args {
				args[i] = obj.Get(strconv.Itoa(i))
			}
		}
	}
	out := make([]Node, len(args))
	for i, arg := range args {
		node, err := e.toNode(vm, arg)
		if err != nil {
			panic(vm.NewTypeError(fmt.Sprintf("child %d: %s", i, err)))
		}
		out[i] = node
	}
	return out
}

// jsLeaf calls a JS function on every tick. Any state must be held by the
// function, e.g. via closure or the blackboard.
type jsLeaf struct {
	engine *Engine
	name   string
	fn     goja.Callable
}

func (l *jsLeaf) Tick(bb *blackboard.Blackboard) resumebt.Result[blackboard.Blackboard] {
	var status resumebt.Status
	err := l.engine.run(func(vm *goja.Runtime) error {
		value, err := l.fn(goja.Undefined(), bb.ExposeToJS(vm))
		if err != nil {
			return err
		}
		status, err = parseStatus(value)
		return err
	})
	if err != nil {
		slog.Error("[Script] leaf failed", "leaf", l.Label(), "error", err)
		return resumebt.Failed[blackboard.Blackboard]()
	}
	if status == resumebt.Running {
		return resumebt.Continue[blackboard.Blackboard](l)
	}
	return resumebt.FromBool[blackboard.Blackboard](status == resumebt.Success)
}

func (l *jsLeaf) Label() string {
	if l.name == "" {
		return "Leaf"
	}
	return fmt.Sprintf("Leaf(%s)", l.name)
}

func parseStatus(value goja.Value) (resumebt.Status, error) {
	switch v := value.Export().(type) {
	case bool:
		if v {
			return resumebt.Success, nil
		}
		return resumebt.Failure, nil
	case string:
		switch v {
		case StatusRunning:
			return resumebt.Running, nil
		case StatusSuccess:
			return resumebt.Success, nil
		case StatusFailure:
			return resumebt.Failure, nil
		}
	}
	return 0, fmt.Errorf("invalid leaf result %q", value.String())
}

// wait is running for remaining ticks, then succeeds.
type wait struct {
	remaining int
}

func (w wait) Tick(*blackboard.Blackboard) resumebt.Result[blackboard.Blackboard] {
	if w.remaining > 0 {
		return resumebt.Continue[blackboard.Blackboard](wait{remaining: w.remaining - 1})
	}
	return resumebt.Succeeded[blackboard.Blackboard]()
}

func (w wait) Label() string {
	return fmt.Sprintf("Wait[%d]", w.remaining)
}
