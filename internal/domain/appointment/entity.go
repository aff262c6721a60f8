package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
	"github.com/BruksfildServices01/vet-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================
//
// Each action validates first and mutates last, so a rejected action leaves
// the appointment untouched.

func advance(ap *models.Appointment, action Action) (Status, error) {
	if ap.IsDeleted() {
		return "", httperr.NotFound("appointment_not_found")
	}
	return Next(action, Status(ap.Status))
}

func Confirm(ap *models.Appointment, actor Actor, now time.Time) error {
	next, err := advance(ap, ActionConfirm)
	if err != nil {
		return err
	}

	ap.Status = string(next)
	ap.ConfirmedAt = &now
	ap.ConfirmedBy = &actor.UserID
	return nil
}

// Cancel moves ap to cancelled. The reason is optional for every actor.
func Cancel(ap *models.Appointment, actor Actor, reason string, now time.Time) error {
	next, err := advance(ap, ActionCancel)
	if err != nil {
		return err
	}

	ap.Status = string(next)
	ap.CancellationReason = reason
	ap.CancelledAt = &now
	ap.CancelledBy = &actor.UserID
	return nil
}

func CheckIn(ap *models.Appointment, actor Actor, roomID uuid.UUID, now time.Time) error {
	next, err := advance(ap, ActionCheckIn)
	if err != nil {
		return err
	}
	if roomID == uuid.Nil {
		return httperr.Validation("room_required")
	}

	ap.Status = string(next)
	ap.RoomID = &roomID
	ap.CheckedInAt = &now
	ap.CheckedInBy = &actor.UserID
	return nil
}

func BeginTreatment(ap *models.Appointment, actor Actor, now time.Time) error {
	next, err := advance(ap, ActionBeginTreatment)
	if err != nil {
		return err
	}

	ap.Status = string(next)
	ap.TreatmentStartedAt = &now
	ap.TreatmentStartedBy = &actor.UserID
	return nil
}

func EndTreatment(ap *models.Appointment, actor Actor, now time.Time) error {
	next, err := advance(ap, ActionEndTreatment)
	if err != nil {
		return err
	}
	if ap.TreatmentStartedAt == nil {
		return httperr.InvalidTransition("treatment_not_started")
	}

	ap.Status = string(next)
	ap.TreatmentEndedAt = &now
	ap.TreatmentEndedBy = &actor.UserID
	return nil
}

// MarkRescheduled closes ap in favour of the appointment replacementID.
func MarkRescheduled(ap *models.Appointment, actor Actor, replacementID uuid.UUID, now time.Time) error {
	next, err := advance(ap, ActionReschedule)
	if err != nil {
		return err
	}

	ap.Status = string(next)
	ap.RescheduledAt = &now
	ap.RescheduledBy = &actor.UserID
	ap.RescheduledToID = &replacementID
	return nil
}
