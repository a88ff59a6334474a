package combat

import "container/heap"

// EventQueue orders pending simulation events by (time ascending,
// operator ID ascending, insertion sequence ascending). The triple is a
// total order, so for any set of scheduled events the dequeue order is
// independent of insertion order across operators, the property the
// replay verifier depends on.
type EventQueue struct {
	h       eventHeap
	nextSeq uint64
}

// NewEventQueue returns an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Schedule inserts an event, stamping its insertion sequence number.
func (q *EventQueue) Schedule(ev *SimulationEvent) {
	ev.Seq = q.nextSeq
	q.nextSeq++
	heap.Push(&q.h, ev)
}

// DequeueNext removes and returns the globally earliest event, or false
// when the queue is empty.
func (q *EventQueue) DequeueNext() (*SimulationEvent, bool) {
	if len(q.h) == 0 {
		return nil, false
	}
	return heap.Pop(&q.h).(*SimulationEvent), true
}

// PeekNext returns the earliest event without removing it.
func (q *EventQueue) PeekNext() (*SimulationEvent, bool) {
	if len(q.h) == 0 {
		return nil, false
	}
	return q.h[0], true
}

// RemoveEventsForOperator purges every pending event belonging to the
// operator and returns how many were removed. The relative order of the
// remaining events is unchanged; ordering is a pure function of each
// event's own key.
func (q *EventQueue) RemoveEventsForOperator(operatorID int) int {
	kept := q.h[:0]
	removed := 0
	for _, ev := range q.h {
		if ev.OperatorID == operatorID {
			removed++
			continue
		}
		kept = append(kept, ev)
	}
	q.h = kept
	heap.Init(&q.h)
	return removed
}

// RemoveMatching purges every pending event the predicate selects and
// returns how many were removed.
func (q *EventQueue) RemoveMatching(match func(*SimulationEvent) bool) int {
	kept := q.h[:0]
	removed := 0
	for _, ev := range q.h {
		if match(ev) {
			removed++
			continue
		}
		kept = append(kept, ev)
	}
	q.h = kept
	heap.Init(&q.h)
	return removed
}

// Clear empties the queue. Sequence numbering continues; it only ever
// moves forward within a session.
func (q *EventQueue) Clear() {
	q.h = q.h[:0]
}

// Count returns the number of pending events.
func (q *EventQueue) Count() int {
	return len(q.h)
}

// eventHeap implements heap.Interface over the (time, operator, seq) key.
type eventHeap []*SimulationEvent

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.TimeMs != b.TimeMs {
		return a.TimeMs < b.TimeMs
	}
	if a.OperatorID != b.OperatorID {
		return a.OperatorID < b.OperatorID
	}
	return a.Seq < b.Seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(*SimulationEvent))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return ev
}
