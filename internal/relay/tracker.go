package relay

import (
	"sync"
	"time"
)

// Session is one in-progress call between two identifiers, tracked
// solely to compute its duration when it ends. Seconds is filled in
// when the session is ended, floored to whole seconds (a call ended
// inside the first second has duration 0).
type Session struct {
	Initiator string
	Target    string
	StartedAt time.Time
	Seconds   int
}

// pairKey identifies a session by its two participants regardless of
// which side initiated, so ending with the identifiers reversed still
// resolves the same session.
type pairKey struct {
	a, b string
}

func keyFor(x, y string) pairKey {
	if x > y {
		x, y = y, x
	}
	return pairKey{x, y}
}

// Tracker owns the active-session map. At most one session exists per
// pair; a new offer for a pair that already has one overwrites it and
// the overwritten session's elapsed time is lost. A session whose
// target never registered lingers until the initiator disconnects or
// ends the call; there is no timeout sweep.
type Tracker struct {
	mu     sync.Mutex
	active map[pairKey]Session
	now    func() time.Time
}

func NewTracker() *Tracker {
	return &Tracker{
		active: make(map[pairKey]Session),
		now:    time.Now,
	}
}

// Begin records a new session from initiator to target starting now.
func (t *Tracker) Begin(initiator, target string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active[keyFor(initiator, target)] = Session{
		Initiator: initiator,
		Target:    target,
		StartedAt: t.now(),
	}
}

// End removes and returns the session between a and b, in either
// ordering, with its duration computed. Returns false if no session
// exists for the pair.
func (t *Tracker) End(a, b string) (Session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := keyFor(a, b)
	sess, ok := t.active[key]
	if !ok {
		return Session{}, false
	}
	delete(t.active, key)
	sess.Seconds = t.elapsed(sess)
	return sess, true
}

// EndAllFor removes every session mentioning id on either side and
// returns them with durations computed. Used on disconnect.
func (t *Tracker) EndAllFor(id string) []Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	var ended []Session
	for key, sess := range t.active {
		if sess.Initiator == id || sess.Target == id {
			delete(t.active, key)
			sess.Seconds = t.elapsed(sess)
			ended = append(ended, sess)
		}
	}
	return ended
}

// Count returns the number of active sessions.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.active)
}

func (t *Tracker) elapsed(sess Session) int {
	d := t.now().Sub(sess.StartedAt)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}
