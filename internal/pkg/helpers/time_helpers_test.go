package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, ParseDuration("1h30m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("not-a-duration", time.Hour))
	assert.Equal(t, 24*time.Hour, ParseDuration("", 24*time.Hour))
}

func TestToday(t *testing.T) {
	today := Today()

	assert.Equal(t, 0, today.Hour())
	assert.Equal(t, 0, today.Minute())
	assert.Equal(t, 0, today.Second())
	assert.Equal(t, 0, today.Nanosecond())

	now := time.Now()
	assert.Equal(t, now.Year(), today.Year())
	assert.Equal(t, now.YearDay(), today.YearDay())
}
