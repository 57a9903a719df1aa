// Package playback runs the two audio workers of a looming session: the
// continuously looping background stream and the trigger-driven one-shot
// stimulus stream. The workers are tied together only by two signals: an
// auto-resetting Trigger raised by the tracking loop, and the sticky
// end-session signal carried as context cancellation.
package playback

// Trigger is a single-slot, auto-resetting cross-goroutine signal.
//
// Raising an already-raised trigger is a no-op: rapid raises coalesce into
// one pending trigger. The consumer observes the trigger by receiving from
// Fired and resets it implicitly; Clear drops a pending raise without
// observing it. This is an at-most-one-pending design, not a queue.
type Trigger struct {
	ch chan struct{}
}

// NewTrigger returns an unraised trigger.
func NewTrigger() *Trigger {
	return &Trigger{ch: make(chan struct{}, 1)}
}

// Raise marks the trigger pending. No-op if already pending.
func (t *Trigger) Raise() {
	select {
	case t.ch <- struct{}{}:
	default:
		// Already pending; coalesce.
	}
}

// Fired returns the channel a consumer blocks on. Receiving consumes the
// pending raise.
func (t *Trigger) Fired() <-chan struct{} {
	return t.ch
}

// Clear drops a pending raise, if any, without observing it.
func (t *Trigger) Clear() {
	select {
	case <-t.ch:
	default:
	}
}

// Pending reports whether a raise is waiting to be consumed.
func (t *Trigger) Pending() bool {
	return len(t.ch) > 0
}
