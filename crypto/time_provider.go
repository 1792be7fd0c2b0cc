package crypto

import "time"

// TimeProvider abstracts time operations for deterministic testing.
// Implementations must be safe for concurrent use.
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// DefaultTimeProvider uses the standard library time functions.
type DefaultTimeProvider struct{}

// Now returns the current time.
func (DefaultTimeProvider) Now() time.Time { return time.Now() }

// Since returns the duration since the given time.
func (DefaultTimeProvider) Since(t time.Time) time.Duration { return time.Since(t) }

// defaultTimeProvider is the package-level default for functions that need time.
var defaultTimeProvider TimeProvider = DefaultTimeProvider{}

// MockTimeProvider returns a fixed time for reproducible tests.
type MockTimeProvider struct {
	CurrentTime time.Time
}

// Now returns the configured fixed time.
func (m *MockTimeProvider) Now() time.Time { return m.CurrentTime }

// Since returns the duration between the fixed time and t.
func (m *MockTimeProvider) Since(t time.Time) time.Duration { return m.CurrentTime.Sub(t) }
