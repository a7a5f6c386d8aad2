package layer

import "annomap/internal/feature"

// UpdateQueue collects proposed updates in arrival order so the owner can
// decide about them after the input that caused them has been handled.
type UpdateQueue struct {
	events []feature.UpdateEvent
}

// Push appends ev. It has the Handler signature.
func (q *UpdateQueue) Push(ev feature.UpdateEvent) { q.events = append(q.events, ev) }

func (q *UpdateQueue) Len() int { return len(q.events) }

// Drain returns the queued events and empties the queue.
func (q *UpdateQueue) Drain() []feature.UpdateEvent {
	out := q.events
	q.events = nil
	return out
}

// Policy decides about one proposed update. It may return a different
// shape to apply, or false to reject.
type Policy func(ev feature.UpdateEvent) (feature.Shape, bool)

// AcceptAll applies every proposal unchanged.
func AcceptAll(ev feature.UpdateEvent) (feature.Shape, bool) { return ev.Proposed, true }

// CommitAll drains q and commits each update through policy. It returns the
// number applied and the first error.
func (q *UpdateQueue) CommitAll(l *FeatureLayer, policy Policy) (int, error) {
	if policy == nil {
		policy = AcceptAll
	}
	var (
		n        int
		firstErr error
	)
	l.Batch(func() {
		for _, ev := range q.Drain() {
			s, ok := policy(ev)
			if !ok {
				continue
			}
			ev.Proposed = s
			if err := l.Commit(ev); err != nil {
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			n++
		}
	})
	return n, firstErr
}
