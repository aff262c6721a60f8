package appointment

import (
	"time"

	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
)

// Interval is the span [Start, End) an appointment occupies.
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start time.Time, duration time.Duration) (Interval, error) {
	if duration <= 0 {
		return Interval{}, httperr.Validation("invalid_duration")
	}
	return Interval{Start: start, End: start.Add(duration)}, nil
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Conflicts is the booking test. Bounds are inclusive on both sides, so an
// interval starting exactly when another ends still conflicts.
func (i Interval) Conflicts(other Interval) bool {
	return !i.Start.After(other.End) && !other.Start.After(i.End)
}

// Overlaps is the half-open test used when laying out the slot grid.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains reports whether t falls in [Start, End).
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}
