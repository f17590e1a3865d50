package packet

import (
	"sync"

	"github.com/mcproxy/core/proto"
)

// StopSignal is a control message telling the queue's consumer to shut
// down once it drains everything queued ahead of it.
type StopSignal struct{}

// PreferenceUpdate is a control message carrying the name of a preference
// that changed, for the process stage to resolve into synthetic packets.
type PreferenceUpdate struct {
	Name string
}

// Queue is a FIFO of *Packet, StopSignal, and PreferenceUpdate values,
// guarded by a mutex and signaled with a condition variable the way a
// single-producer/single-consumer handoff between goroutines needs.
type Queue struct {
	mu   sync.Mutex
	cond *sync.Cond
	items []any
}

// NewQueue returns an empty, ready-to-use Queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// AppendOne adds a single item and wakes one waiting consumer.
func (q *Queue) AppendOne(item any) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()
	q.cond.Signal()
}

// AppendAll adds a batch of items as a unit and wakes one waiting
// consumer, the same way a process stage re-queues an entire handled
// batch at once.
func (q *Queue) AppendAll(items []any) {
	if len(items) == 0 {
		return
	}
	q.mu.Lock()
	q.items = append(q.items, items...)
	q.mu.Unlock()
	q.cond.Signal()
}

// Empty reports whether the queue currently holds nothing.
func (q *Queue) Empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) == 0
}

// PopAll blocks until at least one item is queued, then returns and clears
// everything queued so far.
func (q *Queue) PopAll() []any {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		q.cond.Wait()
	}
	out := q.items
	q.items = nil
	return out
}

// PackAll drains the queue and packs every *Packet travelling in
// prioritySide's direction into one byte string: each packet (and its
// same-direction children) framed individually, in order, then
// concatenated, so the result is a sequence of complete frames ready for
// one socket write. Packets travelling the other direction, whether queued
// directly or surfaced as a child via Pack, are returned unpacked in rest
// for the caller to hand to that direction's own queue. A PreferenceUpdate
// reaching this far was never resolved upstream in the process stage; it is
// returned in rest untouched rather than silently dropped. Stop reports
// whether a StopSignal was seen in this batch.
func (q *Queue) PackAll(prioritySide proto.Direction, compressionEnabled bool, threshold int) (packed []byte, rest []any, stop bool, err error) {
	items := q.PopAll()
	for _, item := range items {
		switch v := item.(type) {
		case *Packet:
			if v.Direction == prioritySide {
				own, opposite, perr := v.Pack(compressionEnabled, threshold)
				if perr != nil {
					return packed, rest, stop, perr
				}
				packed = append(packed, own...)
				for _, o := range opposite {
					rest = append(rest, o)
				}
			} else {
				rest = append(rest, v)
			}
		case StopSignal:
			stop = true
		default:
			rest = append(rest, v)
		}
	}
	return packed, rest, stop, nil
}
