package timing

import (
	"container/heap"
	"sync"
)

type eventQueue interface {
	Push(evt Event)
	Pop() Event
	Peek() Event
	Len() int
	Remove(eventID string) bool
}

type queuedEvent struct {
	evt   Event
	seq   uint64
	index int
}

// heapEventQueue orders events by time and, for equal times, by the order in
// which they were pushed.
type heapEventQueue struct {
	sync.Mutex
	events  eventHeap
	byID    map[string]*queuedEvent
	nextSeq uint64
}

func newEventQueue() *heapEventQueue {
	q := &heapEventQueue{
		events: make(eventHeap, 0),
		byID:   make(map[string]*queuedEvent),
	}
	heap.Init(&q.events)

	return q
}

func (q *heapEventQueue) Push(evt Event) {
	q.Lock()
	defer q.Unlock()

	if _, dup := q.byID[evt.ID()]; dup {
		panic("timing: event " + evt.ID() + " is already scheduled")
	}

	item := &queuedEvent{evt: evt, seq: q.nextSeq}
	q.nextSeq++
	heap.Push(&q.events, item)
	q.byID[evt.ID()] = item
}

func (q *heapEventQueue) Pop() Event {
	q.Lock()
	defer q.Unlock()

	if q.events.Len() == 0 {
		return nil
	}

	item := heap.Pop(&q.events).(*queuedEvent)
	delete(q.byID, item.evt.ID())

	return item.evt
}

func (q *heapEventQueue) Peek() Event {
	q.Lock()
	defer q.Unlock()

	if q.events.Len() == 0 {
		return nil
	}

	return q.events[0].evt
}

func (q *heapEventQueue) Len() int {
	q.Lock()
	defer q.Unlock()

	return q.events.Len()
}

func (q *heapEventQueue) Remove(eventID string) bool {
	q.Lock()
	defer q.Unlock()

	item, ok := q.byID[eventID]
	if !ok {
		return false
	}

	heap.Remove(&q.events, item.index)
	delete(q.byID, eventID)

	return true
}

type eventHeap []*queuedEvent

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].evt.Time() != h[j].evt.Time() {
		return h[i].evt.Time() < h[j].evt.Time()
	}

	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *eventHeap) Push(x any) {
	item := x.(*queuedEvent)
	item.index = len(*h)
	*h = append(*h, item)
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]

	return item
}
