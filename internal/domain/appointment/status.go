package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusReserved    Status = "reserved"
	StatusConfirmed   Status = "confirmed"
	StatusCheckedIn   Status = "checked_in"
	StatusInTreatment Status = "in_treatment"
	StatusCompleted   Status = "completed"
	StatusRescheduled Status = "rescheduled"
	StatusCancelled   Status = "cancelled"
)

var knownStatuses = map[Status]bool{
	StatusReserved:    true,
	StatusConfirmed:   true,
	StatusCheckedIn:   true,
	StatusInTreatment: true,
	StatusCompleted:   true,
	StatusRescheduled: true,
	StatusCancelled:   true,
}

func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	return st, knownStatuses[st]
}

// IsTerminal reports whether no further transition may leave s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusRescheduled:
		return true
	}
	return false
}

// OccupiesSchedule reports whether an appointment in s blocks its interval.
func (s Status) OccupiesSchedule() bool {
	return s != StatusCancelled && s != StatusRescheduled
}

// InitialStatus is the state of every freshly booked appointment.
func InitialStatus() Status {
	return StatusReserved
}

// FreeingStatuses lists the states excluded from schedule computations.
func FreeingStatuses() []string {
	return []string{string(StatusCancelled), string(StatusRescheduled)}
}
