package analytics

import "time"

// Clock supplies "now" to the service. It is read once per request.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed reporting location
type SystemClock struct {
	Location *time.Location
}

// NewSystemClock creates a SystemClock; a nil location means time.Local
func NewSystemClock(loc *time.Location) SystemClock {
	if loc == nil {
		loc = time.Local
	}
	return SystemClock{Location: loc}
}

// Now returns the current time in the clock's location
func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant. Used by tests and replays.
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant
func (c FixedClock) Now() time.Time {
	return c.At
}
