package appointment

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/vet-scheduler/internal/models"
)

// IntervalOf returns the span stored on ap.
func IntervalOf(ap *models.Appointment) Interval {
	return Interval{Start: ap.StartTime, End: ap.EndTime}
}

// Occupies reports whether ap blocks its professional's schedule.
func Occupies(ap *models.Appointment) bool {
	return !ap.IsDeleted() && Status(ap.Status).OccupiesSchedule()
}

// OccupiedIntervals keeps the intervals of the appointments that block the
// schedule.
func OccupiedIntervals(aps []models.Appointment) []Interval {
	out := make([]Interval, 0, len(aps))
	for i := range aps {
		if Occupies(&aps[i]) {
			out = append(out, IntervalOf(&aps[i]))
		}
	}
	return out
}

// HasConflict checks candidate against the occupying appointments in
// existing. Appointments whose id is in skip are ignored.
func HasConflict(candidate Interval, existing []models.Appointment, skip ...uuid.UUID) bool {
	for i := range existing {
		ap := &existing[i]
		if !Occupies(ap) || contains(skip, ap.ID) {
			continue
		}
		if candidate.Conflicts(IntervalOf(ap)) {
			return true
		}
	}
	return false
}

func contains(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
