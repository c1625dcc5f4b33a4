// Copyright 2024 ters-golemi
//
//    All Rights Reserved

package utils

import "time"

// Clock interface
type Clock interface {
	Now() time.Time
}

// RealClock provides a real clock
type RealClock struct{}

// Now returns the current date and time
func (RealClock) Now() time.Time {
	return time.Now()
}

// StubClock provides a settable clock for tests
type StubClock struct {
	Time time.Time
}

// Now returns the stubbed date and time
func (c *StubClock) Now() time.Time {
	return c.Time
}

// Advance moves the stubbed clock forward
func (c *StubClock) Advance(d time.Duration) {
	c.Time = c.Time.Add(d)
}
