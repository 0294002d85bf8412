// Package eventloop provides cooperative interval timers.
//
// A Loop never spawns goroutines of its own while timers are registered and
// fired: callers either fire timers explicitly (for example from Bubble Tea
// tick messages) or hand control to Run, which fires them by wall clock on
// the calling goroutine. Callbacks therefore never run concurrently.
package eventloop

import (
	"context"
	"sort"
	"time"
)

// TimerID identifies an interval timer.
type TimerID int

// Arm describes a timer that was registered since the last call to Armed.
type Arm struct {
	ID       TimerID
	Interval time.Duration
}

type timer struct {
	id       TimerID
	interval time.Duration
	fn       func()
	next     time.Time
}

// Loop owns a set of interval timers.
type Loop struct {
	now    func() time.Time
	nextID TimerID
	timers map[TimerID]*timer
	armed  []Arm
}

// New creates an empty loop.
func New() *Loop {
	return &Loop{
		now:    time.Now,
		timers: make(map[TimerID]*timer),
	}
}

// SetInterval registers fn to run every d until the timer is cleared.
// Non-positive intervals are treated as one millisecond.
func (l *Loop) SetInterval(d time.Duration, fn func()) TimerID {
	if d <= 0 {
		d = time.Millisecond
	}
	l.nextID++
	id := l.nextID
	l.timers[id] = &timer{id: id, interval: d, fn: fn, next: l.now().Add(d)}
	l.armed = append(l.armed, Arm{ID: id, Interval: d})
	return id
}

// ClearInterval stops a timer. Clearing an unknown timer does nothing.
func (l *Loop) ClearInterval(id TimerID) {
	delete(l.timers, id)
}

// Active reports whether the timer is still registered.
func (l *Loop) Active(id TimerID) bool {
	_, ok := l.timers[id]
	return ok
}

// Len returns the number of registered timers.
func (l *Loop) Len() int { return len(l.timers) }

// Interval returns the interval of a registered timer.
func (l *Loop) Interval(id TimerID) (time.Duration, bool) {
	t, ok := l.timers[id]
	if !ok {
		return 0, false
	}
	return t.interval, true
}

// Armed returns and forgets the timers registered since the previous call.
func (l *Loop) Armed() []Arm {
	out := l.armed
	l.armed = nil
	return out
}

// Fire runs the callback of a registered timer once and reports whether the
// timer is still registered afterwards. Firing a cleared timer is a no-op.
func (l *Loop) Fire(id TimerID) bool {
	t, ok := l.timers[id]
	if !ok {
		return false
	}
	t.next = t.next.Add(t.interval)
	t.fn()
	return l.Active(id)
}

// Ticks fires the timer n times, stopping early once it is cleared.
// It returns the number of callbacks that ran.
func (l *Loop) Ticks(id TimerID, n int) int {
	ran := 0
	for ; ran < n && l.Active(id); ran++ {
		l.Fire(id)
	}
	return ran
}

// Step fires every registered timer once, in registration order, and
// returns how many callbacks ran. Timers registered by a callback during the
// step are not fired until the next step.
func (l *Loop) Step() int {
	ids := make([]TimerID, 0, len(l.timers))
	for id := range l.timers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	ran := 0
	for _, id := range ids {
		if l.Active(id) {
			l.Fire(id)
			ran++
		}
	}
	return ran
}

// Run fires timers as they become due until no timers remain or ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for len(l.timers) > 0 {
		t := l.earliest()
		wait := t.next.Sub(l.now())
		if wait > 0 {
			tm := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				tm.Stop()
				return ctx.Err()
			case <-tm.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		l.Fire(t.id)
	}
	return nil
}

func (l *Loop) earliest() *timer {
	var best *timer
	for _, t := range l.timers {
		if best == nil || t.next.Before(best.next) || (t.next.Equal(best.next) && t.id < best.id) {
			best = t
		}
	}
	return best
}
