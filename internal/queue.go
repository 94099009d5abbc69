package internal

import "sort"

// EventQueue keeps candidate events in ascending time order. Insertion finds
// the slot with a binary search and places new events after any with equal
// times, so ties resolve in insertion order.
//
// The engine throws the whole queue away and rescans after every applied
// event, so there is no point being cleverer than a sorted slice here.
type EventQueue struct {
	events []Event
}

func (q *EventQueue) Push(event Event) {
	i := sort.Search(len(q.events), func(i int) bool {
		return q.events[i].Time() > event.Time()
	})
	q.events = append(q.events, nil)
	copy(q.events[i+1:], q.events[i:])
	q.events[i] = event
}

// Poll removes and returns the earliest event, or ok=false on an empty
// queue.
func (q *EventQueue) Poll() (Event, bool) {
	if len(q.events) == 0 {
		return nil, false
	}
	event := q.events[0]
	q.events = q.events[1:]
	return event, true
}

// Peek observes the earliest event without removing it.
func (q *EventQueue) Peek() (Event, bool) {
	if len(q.events) == 0 {
		return nil, false
	}
	return q.events[0], true
}

func (q *EventQueue) Len() int {
	return len(q.events)
}
