package timezone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocation_FallsBackToDefault(t *testing.T) {
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Mars/Olympus"))

	loc := Location("Mars/Olympus")
	assert.Equal(t, Location(DefaultTimezone).String(), loc.String())
}

func TestClock_PinnedToZone(t *testing.T) {
	now := Clock("UTC")()
	assert.Equal(t, "UTC", now.Location().String())
}
