package engine

import (
	"sync"
	"time"
)

// TimeProvider supplies the current time to the frame loop and camera
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider provides the real system time with monotonic clock readings
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider provides a controllable time source for testing
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockTimeProvider creates a new mock time provider with the given start time
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{
		currentTime: startTime,
	}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Advance advances the current time by the given duration
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// FrameTimer measures real time between ticks, capped to avoid runaway catch-up after a stall
type FrameTimer struct {
	last     time.Time
	maxDelta time.Duration
}

// NewFrameTimer creates a timer that never reports more than maxDelta per step
func NewFrameTimer(maxDelta time.Duration) *FrameTimer {
	return &FrameTimer{maxDelta: maxDelta}
}

// Step returns seconds since the previous step; the first step returns 0
func (ft *FrameTimer) Step(now time.Time) float64 {
	if ft.last.IsZero() {
		ft.last = now
		return 0
	}
	d := now.Sub(ft.last)
	ft.last = now

	if d < 0 {
		d = 0
	}
	if ft.maxDelta > 0 && d > ft.maxDelta {
		d = ft.maxDelta
	}
	return d.Seconds()
}
