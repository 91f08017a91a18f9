package resumebt

import (
	"fmt"
)

type testContext struct {
	stack []int
	trace []string
}

// twoStepPush runs for one tick, then pushes payload.
type twoStepPush struct {
	payload int
	fail    bool
	step    int
}

func (n twoStepPush) Tick(c *testContext) Result[testContext] {
	if n.step < 1 {
		n.step++
		return Continue[testContext](n)
	}
	c.stack = append(c.stack, n.payload)
	return FromBool[testContext](!n.fail)
}

type push1 struct{}

func (push1) Tick(c *testContext) Result[testContext] {
	c.stack = append(c.stack, 1)
	return Succeeded[testContext]()
}

type fibPush struct{}

func (fibPush) Tick(c *testContext) Result[testContext] {
	if n := len(c.stack); n < 2 {
		c.stack = append(c.stack, 1)
	} else {
		c.stack = append(c.stack, c.stack[n-2]+c.stack[n-1])
	}
	return Succeeded[testContext]()
}

type isCapped struct{ cap int }

func (n isCapped) Tick(c *testContext) Result[testContext] {
	for _, v := range c.stack {
		if v > n.cap {
			return Failed[testContext]()
		}
	}
	return Succeeded[testContext]()
}

type succeedAfterSteps struct {
	steps int
	step  int
}

func (n succeedAfterSteps) Tick(*testContext) Result[testContext] {
	if n.step < n.steps {
		n.step++
		return Continue[testContext](n)
	}
	return Succeeded[testContext]()
}

// record appends its id to the trace on every tick, runs for the configured
// number of ticks, then completes with status.
type record struct {
	id     string
	runs   int
	status Status
}

func (n record) Tick(c *testContext) Result[testContext] {
	c.trace = append(c.trace, n.id)
	if n.runs > 0 {
		n.runs--
		return Continue[testContext](n)
	}
	return Result[testContext]{status: n.status}
}

func (n record) String() string {
	return fmt.Sprintf("record(%s)", n.id)
}

func ok(id string) Node[testContext]   { return record{id: id, status: Success} }
func fail(id string) Node[testContext] { return record{id: id, status: Failure} }

// runWithLimit proceeds until done, allowing at most runningLimit Running
// results after the first tick. It reports done == false if the limit was hit.
func runWithLimit[B any](bb *B, r *Runner[B], runningLimit int) (success, done bool) {
	success, done = r.Proceed(bb)
	for count := 0; !done; count++ {
		if count >= runningLimit {
			return false, false
		}
		success, done = r.Proceed(bb)
	}
	return success, done
}

// ticksUntilDone proceeds until done, returning the number of Proceed calls.
func ticksUntilDone[B any](bb *B, r *Runner[B], max int) (success bool, ticks int) {
	for ticks < max {
		ticks++
		if s, done := r.Proceed(bb); done {
			return s, ticks
		}
	}
	return false, ticks
}
