package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/models"
)

type BeginTreatment struct {
	d Deps
}

func NewBeginTreatment(d Deps) *BeginTreatment {
	return &BeginTreatment{d: d}
}

func (uc *BeginTreatment) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	return uc.d.applyTransition(ctx, actor, appointmentID, domain.ActionBeginTreatment, "treatment_started",
		func(ap *models.Appointment, now time.Time) error {
			return domain.BeginTreatment(ap, actor, now)
		},
	)
}

// EndTreatment completes the appointment.
type EndTreatment struct {
	d Deps
}

func NewEndTreatment(d Deps) *EndTreatment {
	return &EndTreatment{d: d}
}

func (uc *EndTreatment) Execute(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uuid.UUID,
) (*models.Appointment, error) {

	return uc.d.applyTransition(ctx, actor, appointmentID, domain.ActionEndTreatment, "appointment_completed",
		func(ap *models.Appointment, now time.Time) error {
			return domain.EndTreatment(ap, actor, now)
		},
	)
}
