package resumebt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLimitedRepeated_repeatsToLimit(t *testing.T) {
	t.Parallel()

	var c testContext
	r := NewRunner[testContext](NewLimitedRepeated[testContext](3, push1{}))

	success, done := runWithLimit(&c, r, 3)
	require.True(t, done)
	require.True(t, success)
	require.Equal(t, []int{1, 1, 1}, c.stack)
}

func TestLimitedRepeated_tickByTick(t *testing.T) {
	t.Parallel()

	var c testContext
	r := NewRunner[testContext](NewLimitedRepeated[testContext](3, push1{}))

	for i := 1; i <= 3; i++ {
		_, done := r.Proceed(&c)
		require.False(t, done)
		require.Len(t, c.stack, i)
		require.Equal(t, i, r.Active().(*LimitedRepeated[testContext]).Completed())
	}

	success, done := r.Proceed(&c)
	require.True(t, done)
	require.True(t, success)
	require.Equal(t, []int{1, 1, 1}, c.stack)
}

func TestLimitedRepeated_zeroLimit(t *testing.T) {
	t.Parallel()

	for _, limit := range []int{0, -1} {
		var c testContext
		result := NewLimitedRepeated[testContext](limit, push1{}).Tick(&c)
		require.Equal(t, Success, result.Status())
		require.Empty(t, c.stack)
	}
}

// TestLimitedRepeated_resumingIterations covers iterations that span multiple
// ticks, where completion happens while resuming, and a fresh child is then
// started in the same tick.
func TestLimitedRepeated_resumingIterations(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name  string
		child record
		limit int
		ticks int
		trace int
	}{
		{name: "immediate", child: record{id: "c", status: Success}, limit: 4, ticks: 5, trace: 4},
		{name: "running once", child: record{id: "c", runs: 1, status: Success}, limit: 3, ticks: 5, trace: 7},
		{name: "running twice", child: record{id: "c", runs: 2, status: Failure}, limit: 2, ticks: 6, trace: 7},
		{name: "limit one", child: record{id: "c", runs: 1, status: Success}, limit: 1, ticks: 3, trace: 3},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var c testContext
			success, ticks := ticksUntilDone(&c, NewRunner[testContext](NewLimitedRepeated[testContext](tc.limit, tc.child)), 100)
			require.True(t, success)
			require.Equal(t, tc.ticks, ticks)
			require.Len(t, c.trace, tc.trace)
		})
	}
}

// startDone logs start on its first tick, and done on its second.
type startDone struct{ started bool }

func (n startDone) Tick(c *testContext) Result[testContext] {
	if !n.started {
		c.trace = append(c.trace, "start")
		return Continue[testContext](startDone{started: true})
	}
	c.trace = append(c.trace, "done")
	return Succeeded[testContext]()
}

func TestLimitedRepeated_freshChildAfterFinalCompletion(t *testing.T) {
	t.Parallel()

	var c testContext
	r := NewRunner[testContext](NewLimitedRepeated[testContext](1, startDone{}))

	_, done := r.Proceed(&c)
	require.False(t, done)
	require.Equal(t, []string{"start"}, c.trace)

	// the limit is only checked on entry, so a fresh child still starts
	_, done = r.Proceed(&c)
	require.False(t, done)
	require.Equal(t, []string{"start", "done", "start"}, c.trace)
	require.Equal(t, 1, r.Active().(*LimitedRepeated[testContext]).Completed())

	success, done := r.Proceed(&c)
	require.True(t, done)
	require.True(t, success)
	require.Equal(t, []string{"start", "done", "start"}, c.trace)
}

func TestLimitedRepeated_twoCompletionsInOneTick(t *testing.T) {
	t.Parallel()

	// runs once on the first tick of the tree, then always succeeds
	var child TickFunc[testContext]
	child = func(c *testContext) Result[testContext] {
		first := len(c.trace) == 0
		c.trace = append(c.trace, "c")
		if first {
			return Continue[testContext](child)
		}
		return Succeeded[testContext]()
	}

	var c testContext
	r := NewRunner[testContext](NewLimitedRepeated[testContext](5, child))

	r.Proceed(&c)
	require.Equal(t, 0, r.Active().(*LimitedRepeated[testContext]).Completed())

	_, done := r.Proceed(&c)
	require.False(t, done)
	require.Equal(t, 2, r.Active().(*LimitedRepeated[testContext]).Completed())
	require.Len(t, c.trace, 3)
}

func TestLimitedRepeated_neverFails(t *testing.T) {
	t.Parallel()

	var c testContext
	r := NewRunner[testContext](NewLimitedRepeated[testContext](2, twoStepPush{payload: 7, fail: true}))
	success, done := runWithLimit(&c, r, 10)
	require.True(t, done)
	require.True(t, success)
	require.Equal(t, []int{7, 7}, c.stack)
}

func TestRepeated_neverCompletes(t *testing.T) {
	t.Parallel()

	for _, child := range []Node[testContext]{
		push1{},
		fail("x"),
		twoStepPush{payload: 1},
		twoStepPush{payload: 1, fail: true},
	} {
		var c testContext
		r := NewRunner[testContext](NewRepeated(child))
		for range 50 {
			_, done := r.Proceed(&c)
			require.False(t, done)
		}
	}
}

func TestRepeated_restartsWithinTick(t *testing.T) {
	t.Parallel()

	var c testContext
	r := NewRunner[testContext](NewRepeated[testContext](twoStepPush{payload: 1}))

	// fresh child runs
	r.Proceed(&c)
	require.Empty(t, c.stack)

	// resumed child completes, and a fresh child is started in the same tick
	r.Proceed(&c)
	require.Equal(t, []int{1}, c.stack)
	require.Equal(t, "Repeated(resuming)", r.Active().(*Repeated[testContext]).Label())

	r.Proceed(&c)
	require.Equal(t, []int{1, 1}, c.stack)

	// immediately completing children leave no resumption
	r = NewRunner[testContext](NewRepeated[testContext](push1{}))
	c = testContext{}
	r.Proceed(&c)
	require.Equal(t, []int{1}, c.stack)
	require.Equal(t, "Repeated", r.Active().(*Repeated[testContext]).Label())
}

func TestRepeatedUntilFailure_stopsOnFailure(t *testing.T) {
	t.Parallel()

	var c testContext
	r := NewRunner[testContext](NewRepeatedUntilFailure[testContext](
		NewSequence[testContext](fibPush{}, isCapped{cap: 100}),
	))

	success, done := runWithLimit(&c, r, 11)
	require.True(t, done)
	require.True(t, success)
	require.Equal(t, []int{1, 1, 2, 3, 5, 8, 13, 21, 34, 55, 89, 144}, c.stack)
}

func TestRepeatedUntilFailure_successIffChildFailed(t *testing.T) {
	t.Parallel()

	t.Run("child always succeeds", func(t *testing.T) {
		t.Parallel()
		var c testContext
		r := NewRunner[testContext](NewRepeatedUntilFailure[testContext](twoStepPush{payload: 1}))
		for range 20 {
			_, done := r.Proceed(&c)
			require.False(t, done)
		}
		require.NotEmpty(t, c.stack)
	})

	t.Run("child fails after running", func(t *testing.T) {
		t.Parallel()
		var c testContext
		r := NewRunner[testContext](NewRepeatedUntilFailure[testContext](twoStepPush{payload: 1, fail: true}))
		_, done := r.Proceed(&c)
		require.False(t, done)
		success, done := r.Proceed(&c)
		require.True(t, done)
		require.True(t, success)
		require.Equal(t, []int{1}, c.stack)
	})

	t.Run("resumed success restarts in the same tick", func(t *testing.T) {
		t.Parallel()
		var c testContext
		node := NewRepeatedUntilFailure[testContext](record{id: "c", runs: 1, status: Success})
		result := node.Tick(&c)
		require.True(t, result.IsRunning())
		result = result.Next().Tick(&c)
		require.True(t, result.IsRunning())
		require.Equal(t, []string{"c", "c", "c"}, c.trace)
	})
}

func TestRepeaters_nilChild(t *testing.T) {
	t.Parallel()
	require.Panics(t, func() { NewRepeated[testContext](nil) })
	require.Panics(t, func() { NewLimitedRepeated[testContext](1, nil) })
	require.Panics(t, func() { NewRepeatedUntilFailure[testContext](nil) })
}
