package clock

import (
	"sync"
	"time"
)

// Provider abstracts current time so every time-sensitive rule can be tested
// deterministically. Production uses SystemClock; tests inject a TestClock.
type Provider interface {
	Now() time.Time
	Today() time.Time
}

var Instance Provider = SystemClock{}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

func (SystemClock) Today() time.Time {
	return Midnight(time.Now().UTC())
}

// TestClock is a settable, advanceable clock for tests.
type TestClock struct {
	mu      sync.Mutex
	current time.Time
}

func NewTestClock(initial time.Time) *TestClock {
	if initial.IsZero() {
		initial = time.Now().UTC()
	}
	return &TestClock{current: initial.UTC()}
}

func (c *TestClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *TestClock) Today() time.Time {
	return Midnight(c.Now())
}

func (c *TestClock) TravelTo(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t.UTC()
}

func (c *TestClock) Advance(delta time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(delta)
}

func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WholeDaysBetween returns the number of full 24h periods elapsed from
// earlier to later. Partial days are truncated.
func WholeDaysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}
