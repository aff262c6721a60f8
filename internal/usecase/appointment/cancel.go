package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/models"
)

type CancelAppointment struct {
	d Deps
}

func NewCancelAppointment(d Deps) *CancelAppointment {
	return &CancelAppointment{d: d}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uuid.UUID,
	reason string,
) (*models.Appointment, error) {

	reason = strings.TrimSpace(reason)

	return uc.d.applyTransition(ctx, actor, appointmentID, domain.ActionCancel, "appointment_cancelled",
		func(ap *models.Appointment, now time.Time) error {
			return domain.Cancel(ap, actor, reason, now)
		},
	)
}
