// Package debounce coalesces bursts of input into a single action that runs
// once input has been idle for an interval.
//
// A Debouncer does no timing of its own. The caller schedules a timer for the
// Token returned by Touch and hands the token back to Fire when it expires;
// only the newest token is honored. This keeps every state transition on the
// caller's goroutine, which suits the bubbletea update loop.
package debounce

import (
	"time"
)

// DefaultInterval is how long input must be idle before the action runs.
const DefaultInterval = 500 * time.Millisecond

type State int

const (
	Idle State = iota
	Pending
)

func (s State) String() string {
	return map[State]string{
		Idle:    "idle",
		Pending: "pending",
	}[s]
}

// Token names one scheduled firing.
type Token struct {
	Seq      uint64
	Deadline time.Time
}

type Debouncer struct {
	interval time.Duration
	state    State
	deadline time.Time
	seq      uint64
}

func New(interval time.Duration) Debouncer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return Debouncer{interval: interval}
}

// Touch records activity at now. Any earlier token is invalidated and the
// deadline moves to now+interval.
func (d *Debouncer) Touch(now time.Time) Token {
	d.seq++
	d.state = Pending
	d.deadline = now.Add(d.interval)
	return Token{Seq: d.seq, Deadline: d.deadline}
}

// Fire reports whether the action for t should run, returning to Idle if so.
func (d *Debouncer) Fire(t Token) bool {
	if d.state != Pending || t.Seq != d.seq {
		return false
	}
	d.state = Idle
	d.deadline = time.Time{}
	return true
}

// Cancel drops any pending firing.
func (d *Debouncer) Cancel() {
	d.seq++
	d.state = Idle
	d.deadline = time.Time{}
}

func (d Debouncer) State() State            { return d.state }
func (d Debouncer) Deadline() time.Time     { return d.deadline }
func (d Debouncer) Interval() time.Duration { return d.interval }
