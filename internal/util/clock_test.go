package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualClock(t *testing.T) {
	start := time.Unix(1700000000, 0)
	clock := NewManualClock(start)

	assert.Equal(t, start, clock.Now())

	clock.Advance(2 * time.Second)
	assert.Equal(t, start.Add(2*time.Second), clock.Now())

	clock.Set(start.Add(time.Minute))
	assert.Equal(t, start.Add(time.Minute), clock.Now())
}

func TestRealClockAdvances(t *testing.T) {
	clock := RealClock{}
	a := clock.Now()
	b := clock.Now()
	assert.False(t, b.Before(a))
}
