package clock

import "time"

// Clock abstracts time.Now so cooldown and expiry logic can be tested with
// a controlled clock.
type Clock interface {
	Now() time.Time
}

func New() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Mock is a manually advanced Clock for tests.
type Mock struct {
	now time.Time
}

func NewMock(now time.Time) *Mock {
	return &Mock{now: now}
}

func (m *Mock) Now() time.Time {
	return m.now
}

func (m *Mock) Advance(d time.Duration) {
	m.now = m.now.Add(d)
}
