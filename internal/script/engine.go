// Package script builds trees from JavaScript.
//
// Scripts run on a goja_nodejs event loop, with console and a native
// "resumebt" module available via require. The completion value of the
// script is the root of the tree:
//
//	const bt = require("resumebt");
//	blackboard.set("count", 0);
//	bt.sequence(
//	    bt.leaf(bb => { bb.set("count", bb.get("count") + 1); return bt.success; }),
//	    bt.wait(2),
//	    bt.condition("count == 1"),
//	);
//
// Composites and non-JS leaves tick natively, only JS leaves cross onto the
// event loop, so trees may be ticked from any goroutine, one tick at a time.
package script

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/eventloop"
	"github.com/dop251/goja_nodejs/require"

	"github.com/joeycumines/resumebt"
	"github.com/joeycumines/resumebt/internal/blackboard"
	"github.com/joeycumines/resumebt/internal/condition"
	"github.com/joeycumines/resumebt/internal/observe"
)

// Node is the node type built by scripts.
type Node = resumebt.Node[blackboard.Blackboard]

// ModuleName is the name scripts require.
const ModuleName = "resumebt"

var (
	// ErrNoTree indicates the script's completion value was not a node.
	ErrNoTree = errors.New("script: completion value is not a node")

	// ErrClosed indicates the engine was closed.
	ErrClosed = errors.New("script: engine closed")
)

// Engine owns a JS runtime, and the blackboard scripts are given.
type Engine struct {
	mu     sync.RWMutex
	closed bool

	loop       *eventloop.EventLoop
	bb         *blackboard.Blackboard
	observer   *observe.Observer
	conditions *condition.Cache
}

// Option configures an Engine.
type Option func(*Engine)

// WithBlackboard sets the blackboard exposed to scripts as the global
// "blackboard". Defaults to an empty one.
func WithBlackboard(bb *blackboard.Blackboard) Option {
	return func(e *Engine) { e.bb = bb }
}

// WithObserver enables the observe(name, node) function. Without it, observe
// returns node unchanged.
func WithObserver(o *observe.Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithConditionCache sets the cache used to compile condition expressions.
// Defaults to condition.SharedCache.
func WithConditionCache(c *condition.Cache) Option {
	return func(e *Engine) { e.conditions = c }
}

// New starts an Engine. Close must be called to stop its event loop.
func New(opts ...Option) *Engine {
	e := &Engine{
		bb:         new(blackboard.Blackboard),
		conditions: condition.SharedCache(),
	}
	for _, opt := range opts {
		opt(e)
	}

	registry := require.NewRegistry()
	registry.RegisterNativeModule(ModuleName, e.require)

	e.loop = eventloop.NewEventLoop(
		eventloop.WithRegistry(registry),
		eventloop.EnableConsole(true),
	)
	e.loop.Start()
	return e
}

// Close waits for in-flight calls, then stops the event loop. JS leaves
// fail once the engine is closed. Safe to call more than once.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.mu.Unlock()
	e.loop.Stop()
}

// Blackboard returns the blackboard exposed to scripts.
func (e *Engine) Blackboard() *blackboard.Blackboard {
	return e.bb
}

// run executes fn on the event loop, and waits for it.
func (e *Engine) run(fn func(vm *goja.Runtime) error) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return ErrClosed
	}
	errCh := make(chan error, 1)
	if !e.loop.RunOnLoop(func(vm *goja.Runtime) { errCh <- fn(vm) }) {
		return ErrClosed
	}
	return <-errCh
}

// Load runs source, named name in stack traces, and returns the tree it
// evaluates to.
func (e *Engine) Load(name, source string) (Node, error) {
	var root Node
	err := e.run(func(vm *goja.Runtime) error {
		if err := vm.Set("blackboard", e.bb.ExposeToJS(vm)); err != nil {
			return err
		}
		value, err := vm.RunScript(name, source)
		if err != nil {
			return err
		}
		if goja.IsUndefined(value) || goja.IsNull(value) {
			return ErrNoTree
		}
		root, err = e.toNode(vm, value)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrNoTree, err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	slog.Debug("[Script] loaded tree", "name", name)
	return root, nil
}

// LoadFile reads and loads the script at path.
func (e *Engine) LoadFile(path string) (Node, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}
	return e.Load(path, string(source))
}
