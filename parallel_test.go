package resumebt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type diem struct {
	day     int
	paydays []int
}

// paydayWait waits until the day passes time, then records payload at index.
type paydayWait struct {
	index    int
	payload  int
	time     int
	terminal bool
}

func (n paydayWait) Tick(d *diem) Result[diem] {
	if n.time >= d.day {
		return Continue[diem](n)
	}
	for len(d.paydays) <= n.index {
		d.paydays = append(d.paydays, 0)
	}
	d.paydays[n.index] = n.payload
	return FromBool[diem](!n.terminal)
}

func TestParallelSequence_payday(t *testing.T) {
	t.Parallel()

	r := NewRunner[diem](NewParallelSequence[diem](
		paydayWait{index: 0, payload: 19, time: 5},
		paydayWait{index: 1, payload: 42},
		paydayWait{index: 3, time: 13},
	))

	var d diem
	_, done := r.Proceed(&d)
	require.False(t, done)
	require.Equal(t, diem{}, d)

	d.day = 1
	_, done = r.Proceed(&d)
	require.False(t, done)
	require.Equal(t, diem{day: 1, paydays: []int{0, 42}}, d)

	d.day = 6
	_, done = r.Proceed(&d)
	require.False(t, done)
	require.Equal(t, diem{day: 6, paydays: []int{19, 42}}, d)

	d.day = 21
	success, done := r.Proceed(&d)
	require.True(t, done)
	require.True(t, success)
	require.Equal(t, diem{day: 21, paydays: []int{19, 42, 0, 0}}, d)
}

func TestParallelSelector_payday(t *testing.T) {
	t.Parallel()

	r := NewRunner[diem](NewParallelSelector[diem](
		paydayWait{index: 0, payload: 19, time: 5},
		paydayWait{index: 1, payload: 42, terminal: true},
		paydayWait{index: 3, time: 13},
	))

	var d diem
	_, done := r.Proceed(&d)
	require.False(t, done)
	require.Equal(t, diem{}, d)

	d.day = 1
	_, done = r.Proceed(&d)
	require.False(t, done)
	require.Equal(t, diem{day: 1, paydays: []int{0, 42}}, d)

	d = diem{day: 6}
	success, done := r.Proceed(&d)
	require.True(t, done)
	require.True(t, success)
	require.Equal(t, diem{day: 6, paydays: []int{19}}, d)

	// completed, so this starts again from the root
	d = diem{day: 21}
	success, done = r.Proceed(&d)
	require.True(t, done)
	require.True(t, success)
	require.Equal(t, diem{day: 21, paydays: []int{19}}, d)
}

func TestParallelSequence_workingSetShrinks(t *testing.T) {
	t.Parallel()

	var c testContext
	var node Node[testContext] = NewParallelSequence[testContext](
		record{id: "0", runs: 0, status: Success},
		record{id: "1", runs: 2, status: Success},
		record{id: "2", runs: 1, status: Success},
	)

	result := node.Tick(&c)
	require.True(t, result.IsRunning())
	require.Equal(t, []string{"0", "1", "2"}, c.trace)
	require.Len(t, result.Next().(*ParallelSequence[testContext]).Children(), 2)

	c.trace = nil
	result = result.Next().Tick(&c)
	require.True(t, result.IsRunning())
	require.Equal(t, []string{"1", "2"}, c.trace)
	require.Len(t, result.Next().(*ParallelSequence[testContext]).Children(), 1)

	c.trace = nil
	result = result.Next().Tick(&c)
	require.Equal(t, Success, result.Status())
	require.Equal(t, []string{"1"}, c.trace)

	// the original is untouched
	c.trace = nil
	require.True(t, node.Tick(&c).IsRunning())
	require.Equal(t, []string{"0", "1", "2"}, c.trace)
}

func TestParallel_shortCircuit(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name   string
		node   Node[testContext]
		status Status
		trace  []string
	}{
		{
			name: "sequence failure aborts",
			node: NewParallelSequence[testContext](
				record{id: "0", runs: 1, status: Success},
				fail("1"),
				ok("2"),
			),
			status: Failure,
			trace:  []string{"0", "1"},
		},
		{
			name: "selector success aborts",
			node: NewParallelSelector[testContext](
				record{id: "0", runs: 1, status: Failure},
				ok("1"),
				fail("2"),
			),
			status: Success,
			trace:  []string{"0", "1"},
		},
		{
			name: "selector all fail",
			node: NewParallelSelector[testContext](
				fail("0"),
				fail("1"),
			),
			status: Failure,
			trace:  []string{"0", "1"},
		},
		{
			name:   "empty sequence",
			node:   NewParallelSequence[testContext](),
			status: Success,
		},
		{
			name:   "empty selector",
			node:   NewParallelSelector[testContext](),
			status: Failure,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var c testContext
			result := tc.node.Tick(&c)
			require.Equal(t, tc.status, result.Status())
			require.Equal(t, tc.trace, c.trace)
		})
	}
}

func TestParallelSequence_failureAfterRunning(t *testing.T) {
	t.Parallel()

	var c testContext
	r := NewRunner[testContext](NewParallelSequence[testContext](
		record{id: "0", runs: 3, status: Success},
		record{id: "1", runs: 1, status: Failure},
		record{id: "2", runs: 5, status: Success},
	))

	success, ticks := ticksUntilDone(&c, r, 10)
	require.False(t, success)
	require.Equal(t, 2, ticks)
	require.Equal(t, []string{"0", "1", "2", "0", "1"}, c.trace)
}

func TestParallel_reTickingOriginalIsDeterministic(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name    string
		node    Node[testContext]
		success bool
		trace   []string
	}{
		{
			name: "selector",
			node: NewParallelSelector[testContext](
				record{id: "a", runs: 1, status: Failure},
				record{id: "b", runs: 2, status: Success},
				fail("c"),
			),
			success: true,
			trace:   []string{"a", "b", "c", "a", "b", "b"},
		},
		{
			name: "sequence",
			node: NewParallelSequence[testContext](
				ok("x"),
				record{id: "y", runs: 1, status: Success},
				record{id: "z", runs: 2, status: Failure},
			),
			success: false,
			trace:   []string{"x", "y", "z", "y", "z", "z"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			run := func() []string {
				var c testContext
				success, done := runWithLimit(&c, NewRunner(tc.node), 10)
				require.True(t, done)
				require.Equal(t, tc.success, success)
				return c.trace
			}

			first := run()
			require.Equal(t, tc.trace, first)
			require.Equal(t, first, run())
		})
	}
}
