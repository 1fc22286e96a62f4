package game

import (
	"fmt"
	"sync"
	"time"
)

// TimeProvider supplies the current time to the loop.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider reads the system clock.
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a TimeProvider that only moves when told to.
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
}

func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{currentTime: start}
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// Clock tracks the next gravity deadline.
type Clock struct {
	Interval time.Duration
	Deadline time.Time

	time TimeProvider
}

func NewClock(tp TimeProvider, interval time.Duration) *Clock {
	if tp == nil {
		tp = RealTimeProvider{}
	}

	cl := &Clock{
		Interval: interval,
		time:     tp,
	}
	cl.Reset()

	return cl
}

func (cl *Clock) String() string {
	r := cl.Remaining()
	return fmt.Sprintf("%d.%03d", int(r.Seconds()), int(r.Milliseconds())%1000)
}

func (cl *Clock) Now() time.Time {
	return cl.time.Now()
}

// Reset starts a full interval from now.
func (cl *Clock) Reset() {
	cl.Deadline = cl.time.Now().Add(cl.Interval)
}

func (cl *Clock) Due() bool {
	return !cl.time.Now().Before(cl.Deadline)
}

// Remaining is the time left until the deadline, never negative.
func (cl *Clock) Remaining() time.Duration {
	r := cl.Deadline.Sub(cl.time.Now())
	if r < 0 {
		return 0
	}

	return r
}
