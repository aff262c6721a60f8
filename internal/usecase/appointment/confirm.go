package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/models"
)

type ConfirmAppointment struct {
	d Deps
}

func NewConfirmAppointment(d Deps) *ConfirmAppointment {
	return &ConfirmAppointment{d: d}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	return uc.d.applyTransition(ctx, actor, appointmentID, domain.ActionConfirm, "appointment_confirmed",
		func(ap *models.Appointment, now time.Time) error {
			return domain.Confirm(ap, actor, now)
		},
	)
}
