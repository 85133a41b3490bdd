package input

// eventQueue is a fixed-capacity FIFO of button events.
// Not safe for concurrent use — caller must synchronize.
type eventQueue struct {
	buf      []Event
	capacity int
	head     int // next write position
	count    int
	overflow bool // true while events are being dropped
}

func newEventQueue(capacity int) *eventQueue {
	return &eventQueue{
		buf:      make([]Event, capacity),
		capacity: capacity,
	}
}

// push appends ev, overwriting the oldest event when full. It reports
// whether this push started a new overflow episode.
func (q *eventQueue) push(ev Event) bool {
	if q.count == q.capacity {
		started := !q.overflow
		q.overflow = true
		// Overwrite oldest: head is already pointing at it
		q.buf[q.head] = ev
		q.head = (q.head + 1) % q.capacity
		return started
	}
	q.buf[q.head] = ev
	q.head = (q.head + 1) % q.capacity
	q.count++
	return false
}

// pop removes and returns the oldest event.
func (q *eventQueue) pop() (Event, bool) {
	if q.count == 0 {
		return Event{}, false
	}
	// Oldest item is at (head - count) mod capacity
	start := (q.head - q.count + q.capacity) % q.capacity
	ev := q.buf[start]
	q.buf[start] = Event{}
	q.count--
	if q.count == 0 {
		q.overflow = false
	}
	return ev, true
}

func (q *eventQueue) len() int {
	return q.count
}
