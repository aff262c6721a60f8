package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
	"github.com/BruksfildServices01/vet-scheduler/internal/models"
)

type CheckInAppointment struct {
	d Deps
}

func NewCheckInAppointment(d Deps) *CheckInAppointment {
	return &CheckInAppointment{d: d}
}

func (uc *CheckInAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uuid.UUID,
	roomID uuid.UUID,
) (*models.Appointment, error) {

	return uc.d.applyTransition(ctx, actor, appointmentID, domain.ActionCheckIn, "appointment_checked_in",
		func(ap *models.Appointment, now time.Time) error {
			// the room only matters once the state allows a check-in
			if roomID != uuid.Nil && domain.CanTransition(domain.ActionCheckIn, domain.Status(ap.Status)) {
				if err := uc.ensureRoom(ctx, roomID); err != nil {
					return err
				}
			}
			return domain.CheckIn(ap, actor, roomID, now)
		},
	)
}

func (uc *CheckInAppointment) ensureRoom(ctx context.Context, roomID uuid.UUID) error {
	ctx, cancel := uc.d.storeCtx(ctx)
	defer cancel()

	room, err := uc.d.Repo.GetRoom(ctx, roomID)
	if err != nil {
		return lookupErr(err, "room_not_found", "get_room")
	}
	if !room.Active {
		return httperr.NotFound("room_not_found")
	}
	return nil
}
