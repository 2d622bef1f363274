package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatIST(t *testing.T) {
	// 2026-01-25 20:30 UTC is 2026-01-26 02:00 IST
	utc := time.Date(2026, 1, 25, 20, 30, 0, 0, time.UTC)

	assert.Equal(t, "2026-01-26", FormatIST(utc, DateLayout))
	assert.Equal(t, "02:00 AM", FormatIST(utc, ClockLayout))
	assert.Equal(t, "26 Jan 2026, 02:00 AM", FormatIST(utc, DisplayLayout))
}

func TestToIST(t *testing.T) {
	utc := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	ist := ToIST(utc)

	assert.True(t, utc.Equal(ist))
	_, offset := ist.Zone()
	assert.Equal(t, 5*3600+30*60, offset)
}
