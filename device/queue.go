package device

import (
	"sync"
	"time"

	"go-smf/midi"
)

// Queue is an unbounded byte FIFO shared by one producer and one consumer.
// There is no backpressure: bytes nobody reads accumulate.
type Queue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	buf      []byte
	closed   bool
	interval time.Duration
}

func NewQueue() *Queue {
	q := &Queue{interval: time.Millisecond}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// SetPollInterval sets how often PollByte rechecks an empty queue.
func (q *Queue) SetPollInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.interval = d
}

// Push appends bytes. Pushing to a closed queue is a no-op.
func (q *Queue) Push(b ...byte) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.buf = append(q.buf, b...)
	q.cond.Broadcast()
}

// Poll removes the oldest byte without blocking.
func (q *Queue) Poll() (byte, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pop()
}

func (q *Queue) pop() (byte, bool) {
	if len(q.buf) == 0 {
		return 0, false
	}
	b := q.buf[0]
	q.buf = q.buf[1:]
	if len(q.buf) == 0 {
		q.buf = nil
	}
	return b, true
}

// ReadByte blocks until a byte is available. Once the queue is closed and
// drained it returns midi.ErrKilled.
func (q *Queue) ReadByte() (byte, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.buf) == 0 && !q.closed {
		q.cond.Wait()
	}
	if b, ok := q.pop(); ok {
		return b, nil
	}
	return 0, midi.ErrKilled
}

// PollByte waits up to timeout for a byte, so a Queue can feed a Listener.
func (q *Queue) PollByte(timeout time.Duration) (byte, bool, error) {
	deadline := time.Now().Add(timeout)
	for {
		q.mu.Lock()
		b, ok := q.pop()
		closed := q.closed
		interval := q.interval
		q.mu.Unlock()
		if ok {
			return b, true, nil
		}
		if closed {
			return 0, false, midi.ErrPipeBroken
		}
		if !time.Now().Before(deadline) {
			return 0, false, nil
		}
		time.Sleep(interval)
	}
}

// Len reports the number of unread bytes.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf)
}

// Close wakes blocked readers. Unread bytes can still be drained.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}
