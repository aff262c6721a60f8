package appointment

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
	"github.com/BruksfildServices01/vet-scheduler/internal/models"
)

type GetAppointment struct {
	d Deps
}

func NewGetAppointment(d Deps) *GetAppointment {
	return &GetAppointment{d: d}
}

// Execute returns one appointment. Staff see every appointment, a guardian
// only their own.
func (uc *GetAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	ctx, cancel := uc.d.storeCtx(ctx)
	defer cancel()

	ap, err := uc.d.Repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, lookupErr(err, "appointment_not_found", "get_appointment")
	}

	if actor.Role.IsStaff() {
		return ap, nil
	}

	isOwner, err := uc.d.ownsAppointment(ctx, actor, ap)
	if err != nil {
		return nil, err
	}
	if !isOwner {
		return nil, httperr.Forbidden("not_owner")
	}
	return ap, nil
}
