package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopRunsInRequestOrder(t *testing.T) {
	l := NewLoop()
	var got []int
	l.Request(func(time.Duration) { got = append(got, 1) })
	l.Request(func(time.Duration) { got = append(got, 2) })
	l.Request(func(time.Duration) { got = append(got, 3) })

	require.Equal(t, 3, l.Pending())
	l.Tick(16 * time.Millisecond)

	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Equal(t, 0, l.Pending())
}

func TestLoopDefersRequestsMadeDuringTick(t *testing.T) {
	l := NewLoop()
	runs := 0
	var step func(time.Duration)
	step = func(time.Duration) {
		runs++
		l.Request(step)
	}
	l.Request(step)

	l.Tick(1)
	assert.Equal(t, 1, runs, "re-armed callback must wait for the next tick")
	l.Tick(2)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 1, l.Pending())
}

func TestLoopCancel(t *testing.T) {
	l := NewLoop()
	ran := false
	id := l.Request(func(time.Duration) { ran = true })
	l.Cancel(id)
	l.Cancel(id)
	l.Cancel(9999)

	l.Tick(1)
	assert.False(t, ran)
	assert.Equal(t, 0, l.Pending())
}

func TestLoopTimestampsNeverDecrease(t *testing.T) {
	l := NewLoop()
	var seen []time.Duration
	record := func(ts time.Duration) { seen = append(seen, ts) }

	l.Request(record)
	l.Tick(100)
	l.Request(record)
	l.Tick(50)

	assert.Equal(t, []time.Duration{100, 100}, seen)
}

func TestScopeCloseCancelsPending(t *testing.T) {
	l := NewLoop()
	s := l.Scope()
	other := l.Scope()

	ran := 0
	s.Request(func(time.Duration) { ran++ })
	s.Request(func(time.Duration) { ran++ })
	other.Request(func(time.Duration) { ran += 10 })
	require.Equal(t, 2, s.Pending())

	s.Close()
	s.Close()
	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, 1, l.Pending())

	assert.Zero(t, s.Request(func(time.Duration) { ran++ }), "closed scope must refuse requests")

	l.Tick(1)
	assert.Equal(t, 10, ran)
}

func TestScopeForgetsRunCallbacks(t *testing.T) {
	l := NewLoop()
	s := l.Scope()
	s.Request(func(time.Duration) {})
	l.Tick(1)
	assert.Equal(t, 0, s.Pending())
}

func TestLoopReset(t *testing.T) {
	l := NewLoop()
	l.Request(func(time.Duration) { t.Fatal("reset callback ran") })
	l.Reset()
	l.Tick(1)
	assert.Equal(t, 0, l.Pending())
}
