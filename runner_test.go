package resumebt

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRunner_nilRoot(t *testing.T) {
	t.Parallel()
	require.PanicsWithValue(t, "resumebt.NewRunner: root must not be nil", func() {
		NewRunner[testContext](nil)
	})
}

func TestRunner_terminalResults(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name    string
		root    Node[testContext]
		success bool
	}{
		{name: "success", root: ok("a"), success: true},
		{name: "failure", root: fail("a"), success: false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var c testContext
			r := NewRunner(tc.root)
			success, done := r.Proceed(&c)
			require.True(t, done)
			require.Equal(t, tc.success, success)
			require.False(t, r.IsRunning())
			require.Equal(t, tc.root, r.Active())
		})
	}
}

func TestRunner_storesContinuation(t *testing.T) {
	t.Parallel()

	var c testContext
	root := record{id: "a", runs: 2, status: Success}
	r := NewRunner[testContext](root)
	require.False(t, r.IsRunning())
	require.Equal(t, root, r.Active())

	_, done := r.Proceed(&c)
	require.False(t, done)
	require.True(t, r.IsRunning())
	require.Equal(t, record{id: "a", runs: 1, status: Success}, r.Active())
	require.Equal(t, root, r.Root())

	_, done = r.Proceed(&c)
	require.False(t, done)
	require.Equal(t, record{id: "a", runs: 0, status: Success}, r.Active())

	success, done := r.Proceed(&c)
	require.True(t, done)
	require.True(t, success)
	require.False(t, r.IsRunning())
	require.Equal(t, root, r.Active())
	require.Equal(t, []string{"a", "a", "a"}, c.trace)
}

func TestRunner_restartsFromRootAfterCompletion(t *testing.T) {
	t.Parallel()

	var c testContext
	r := NewRunner[testContext](NewSequence[testContext](
		twoStepPush{payload: 1},
		twoStepPush{payload: 2},
	))

	success, done := runWithLimit(&c, r, 9)
	require.True(t, done)
	require.True(t, success)
	require.Equal(t, []int{1, 2}, c.stack)

	success, done = runWithLimit(&c, r, 9)
	require.True(t, done)
	require.True(t, success)
	require.Equal(t, []int{1, 2, 1, 2}, c.stack)
}

// TestRunner_sharedTree ticks one tree from many runners at once, which must
// be safe, since ticking never mutates a node.
func TestRunner_sharedTree(t *testing.T) {
	t.Parallel()

	tree := NewSequence[testContext](
		NewParallelSequence[testContext](twoStepPush{payload: 1}, push1{}),
		NewSelector[testContext](twoStepPush{payload: 3, fail: true}, twoStepPush{payload: 4}),
		NewLimitedRepeated[testContext](2, twoStepPush{payload: 5}),
	)

	const workers = 16
	results := make([][]int, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var c testContext
			r := NewRunner[testContext](tree)
			if success, done := runWithLimit(&c, r, 100); success && done {
				results[i] = c.stack
			}
		}()
	}
	wg.Wait()

	for _, stack := range results {
		require.Equal(t, []int{1, 1, 3, 4, 5, 5}, stack)
	}
}
