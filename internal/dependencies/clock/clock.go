package clock

import "time"

// Clock provides time operations that can be mocked for testing
type Clock interface {
	Now() time.Time
}

// Precision is the resolution of timestamps recorded on games. JSON
// documents in every storage backend round trip at this precision.
const Precision = time.Millisecond

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current UTC time truncated to Precision, without a
// monotonic reading
func (c *RealClock) Now() time.Time {
	return time.Now().UTC().Truncate(Precision)
}
