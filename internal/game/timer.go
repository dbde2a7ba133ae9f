package game

import "time"

// now is swappable in tests.
var now = time.Now

// Timer accumulates elapsed play time with pause/resume support. It tracks
// game time independently of wall-clock time, surviving pause cycles and
// save/restore.
type Timer struct {
	startedAt   time.Time
	accumulated time.Duration
	running     bool
	paused      bool
}

// Running reports whether the timer is actively accumulating time.
func (t *Timer) Running() bool { return t.running }

// Paused reports whether the timer was running and is now paused.
func (t *Timer) Paused() bool { return t.paused }

// Start starts the timer. No-op if already running.
func (t *Timer) Start() {
	if t.running {
		return
	}
	t.startedAt = now()
	t.running = true
	t.paused = false
}

// Pause pauses the timer. No-op if not running.
func (t *Timer) Pause() {
	if !t.running {
		return
	}
	t.accumulated += now().Sub(t.startedAt)
	t.running = false
	t.paused = true
}

// Resume resumes a paused timer. No-op otherwise.
func (t *Timer) Resume() {
	if !t.paused {
		return
	}
	t.startedAt = now()
	t.running = true
	t.paused = false
}

// Reset zeroes the timer and stops it.
func (t *Timer) Reset() {
	*t = Timer{}
}

// Elapsed returns the total accumulated play time in seconds.
func (t *Timer) Elapsed() float64 {
	d := t.accumulated
	if t.running {
		d += now().Sub(t.startedAt)
	}
	return d.Seconds()
}

// SetElapsed overwrites the accumulated time, for restoring a saved game.
// Negative values clamp to zero.
func (t *Timer) SetElapsed(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	t.accumulated = time.Duration(seconds * float64(time.Second))
	if t.running {
		t.startedAt = now()
	}
}
