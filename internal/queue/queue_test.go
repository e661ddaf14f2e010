package queue

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// revision stands in for a diagram snapshot
type revision struct {
	Diagram string
	Seq     int
}

func TestQueue_Empty(t *testing.T) {
	q := New[revision]()

	assert.True(t, q.Empty())
	assert.Zero(t, q.Len())

	got, ok := q.Latest()
	assert.False(t, ok)
	assert.Equal(t, revision{}, got)
}

func TestQueue_LatestKeepsNewest(t *testing.T) {
	q := New[revision]()
	q.Push(revision{"play1", 1})
	q.Push(revision{"play1", 2}, revision{"play1", 3})
	require.Equal(t, 3, q.Len())

	got, ok := q.Latest()
	require.True(t, ok)
	assert.Equal(t, revision{"play1", 3}, got)
	assert.True(t, q.Empty(), "older revisions are discarded")

	q.Push(revision{"play1", 4})
	got, ok = q.Latest()
	require.True(t, ok)
	assert.Equal(t, 4, got.Seq)
}

func TestQueue_Bounded(t *testing.T) {
	tests := []struct {
		name        string
		limit       int
		pushes      int
		wantLen     int
		wantDropped int
	}{
		{name: "under limit", limit: 4, pushes: 3, wantLen: 3},
		{name: "at limit", limit: 4, pushes: 4, wantLen: 4},
		{name: "over limit", limit: 4, pushes: 7, wantLen: 4, wantDropped: 3},
		{name: "zero is unbounded", limit: 0, pushes: 50, wantLen: 50},
		{name: "negative is unbounded", limit: -1, pushes: 10, wantLen: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewBounded[revision](tt.limit)
			dropped := 0
			for i := 1; i <= tt.pushes; i++ {
				dropped += q.Push(revision{"play1", i})
			}

			assert.Equal(t, tt.wantLen, q.Len())
			assert.Equal(t, tt.wantDropped, dropped)

			got, ok := q.Latest()
			require.True(t, ok)
			assert.Equal(t, tt.pushes, got.Seq, "newest revision survives trimming")
		})
	}
}

func TestQueue_BoundedBatchPush(t *testing.T) {
	q := NewBounded[int](2)

	dropped := q.Push(1, 2, 3, 4, 5)

	assert.Equal(t, 3, dropped)
	assert.Equal(t, 2, q.Len())
	got, _ := q.Latest()
	assert.Equal(t, 5, got)
}

func TestQueue_ConcurrentPushLatest(t *testing.T) {
	q := NewBounded[revision](64)

	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 250 {
				q.Push(revision{fmt.Sprintf("play%d", w), i})
			}
		}()
	}

	seen := 0
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 500 {
			if _, ok := q.Latest(); ok {
				seen++
			}
		}
	}()

	wg.Wait()
	<-done

	assert.LessOrEqual(t, q.Len(), 64)
	if _, ok := q.Latest(); ok {
		seen++
	}
	assert.Positive(t, seen)
}
