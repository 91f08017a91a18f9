/*
Package resumebt implements behavior trees as persistent values, advanced one
tick at a time against a caller-owned blackboard.

# Ticking Model

Every node implements a single operation:

	Tick(bb *B) Result[B]

The Result is one of Success, Failure, or Running. A Running result carries a
continuation: a NEW node value, representing exactly where to resume. Nodes
are never mutated by ticking. Composites track their progress by returning
continuations that hold whatever bookkeeping they need (an index, the
continuation of a running child, a completion counter), while sharing the
original child slice.

Consequently, a tree may be shared between any number of Runners, goroutines,
or parent trees, and re-ticking the original node always starts a fresh
execution.

# Runner

Runner owns the loop state, the root and the current resumption point:

	runner := resumebt.NewRunner[Context](tree)
	for {
		success, done := runner.Proceed(&ctx)
		if done {
			return success
		}
		// wait for the next frame...
	}

A Runner is not safe for concurrent use. There is no cancellation primitive,
stop calling Proceed and drop the Runner.

# Composites

  - Sequence: AND, in order, stops on the first failure. Empty succeeds.
  - Selector: OR, in order, stops on the first success. Empty fails.
  - ParallelSequence: polls every running child each tick, fails on the first
    failure, succeeds once all children succeeded. Empty succeeds.
  - ParallelSelector: polls every running child each tick, succeeds on the
    first success, fails once all children failed. Empty fails.
  - Repeated: restarts its child forever, never completes.
  - LimitedRepeated: restarts its child until it completed N times (success
    and failure both count), then succeeds. It never fails.
  - RepeatedUntilFailure: restarts its child while it succeeds, and succeeds
    once it fails.
  - Inverter: swaps success and failure.
  - Succeeder: succeeds once its (optional) child completes.

Sequence and Selector skip children that were already tried when resumed.
The parallel composites have no such anchor: the working set is re-polled
every tick, and only shrinks, as children complete.

"Parallel" refers to polling, not concurrency. All ticking happens
synchronously, in index order, on the goroutine calling Tick.

# Leaves

Leaves are user-defined. Any type implementing Node may be used, TickFunc
and Action adapt plain functions. A leaf that needs more than one tick
returns Continue with a node describing its next step (often a modified
copy of itself).

# Construction

Composites copy the children passed to their constructors. Iterator based
construction is provided by Collect, Wrap, and the *Of constructors:

	seq := resumebt.SequenceOf[Context](slices.Values(steps))

# Debugging

Sprint and Fprint render an indented dump of a tree, or of a continuation.
Composites implement fmt.Stringer using the same format. The output is for
humans, and is not stable.
*/
package resumebt
