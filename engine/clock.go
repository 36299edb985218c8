// Package engine holds the pure progress and achievement rules. Everything
// here mutates snapshots in memory only; loading, locking and persisting the
// snapshot is the calling service's job.
package engine

import "time"

// Clock abstracts "now" so streak and challenge day math stays deterministic
// under test. The production clock carries the configured timezone; calendar
// days are always derived in the clock's location.
type Clock interface {
	Now() time.Time
}

type systemClock struct {
	loc *time.Location
}

func NewSystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &systemClock{loc: loc}
}

func (c *systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Day zeroes the time-of-day, keeping the location. Two timestamps fall on
// the same calendar day iff their Day values are equal.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}
