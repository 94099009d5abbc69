package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubEvent struct {
	time float64
	name string
}

func (e *stubEvent) Time() float64 { return e.time }

func (e *stubEvent) Validate(*Polygon) bool { return true }

func (e *stubEvent) String() string { return e.name }

func TestEventQueueOrdering(t *testing.T) {
	q := &EventQueue{}
	q.Push(&stubEvent{time: 5, name: "late"})
	q.Push(&stubEvent{time: 1, name: "early"})
	q.Push(&stubEvent{time: 3, name: "middle"})
	assert.Equal(t, 3, q.Len())

	for _, expected := range []string{"early", "middle", "late"} {
		event, ok := q.Poll()
		assert.True(t, ok)
		assert.Equal(t, expected, event.String())
	}
	assert.Equal(t, 0, q.Len())
}

func TestEventQueueStableTies(t *testing.T) {
	q := &EventQueue{}
	q.Push(&stubEvent{time: 2, name: "first"})
	q.Push(&stubEvent{time: 2, name: "second"})
	q.Push(&stubEvent{time: 2, name: "third"})

	for _, expected := range []string{"first", "second", "third"} {
		event, _ := q.Poll()
		assert.Equal(t, expected, event.String())
	}
}

func TestEventQueuePeek(t *testing.T) {
	q := &EventQueue{}

	_, ok := q.Peek()
	assert.False(t, ok)
	_, ok = q.Poll()
	assert.False(t, ok)

	q.Push(&stubEvent{time: 1, name: "only"})
	event, ok := q.Peek()
	assert.True(t, ok)
	assert.Equal(t, "only", event.String())
	assert.Equal(t, 1, q.Len())
}
