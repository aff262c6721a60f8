package appointment

import (
	"time"

	"github.com/google/uuid"
)

type AvailabilityInput struct {
	ProfessionalID uuid.UUID
	ServiceID      uuid.UUID
	Date           time.Time
}

// Slot is a bookable start time on the business-hours grid.
type Slot struct {
	Label     string    `json:"hora"`
	At        time.Time `json:"fecha_hora"`
	Available bool      `json:"disponible"`
}

// BusinessHours are offsets from midnight plus the grid granularity.
type BusinessHours struct {
	Open  time.Duration
	Close time.Duration
	Step  time.Duration
}

var DefaultBusinessHours = BusinessHours{
	Open:  9 * time.Hour,
	Close: 18 * time.Hour,
	Step:  30 * time.Minute,
}

// Window returns the opening and closing instants of the day holding date.
func (h BusinessHours) Window(date time.Time) (time.Time, time.Time) {
	day := StartOfDay(date)
	return day.Add(h.Open), day.Add(h.Close)
}

// Covers reports whether iv lies fully inside the business window of its
// start day.
func (h BusinessHours) Covers(iv Interval) bool {
	openAt, closeAt := h.Window(iv.Start)
	return !iv.Start.Before(openAt) && !iv.End.After(closeAt)
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AvailableSlots walks the grid for date and keeps the starts where a
// booking of duration fits before closing and does not overlap any occupied
// interval. Only available slots are returned.
func AvailableSlots(
	date time.Time,
	duration time.Duration,
	occupied []Interval,
	hours BusinessHours,
) []Slot {

	slots := []Slot{}
	if duration <= 0 || hours.Step <= 0 {
		return slots
	}

	openAt, closeAt := hours.Window(date)

	for cur := openAt; !cur.Add(duration).After(closeAt); cur = cur.Add(hours.Step) {
		candidate := Interval{Start: cur, End: cur.Add(duration)}

		busy := false
		for _, oc := range occupied {
			if candidate.Overlaps(oc) {
				busy = true
				break
			}
		}
		if busy {
			continue
		}

		slots = append(slots, Slot{
			Label:     cur.Format("15:04"),
			At:        cur,
			Available: true,
		})
	}

	return slots
}
