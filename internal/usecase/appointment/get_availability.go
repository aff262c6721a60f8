package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
)

type GetAvailability struct {
	d Deps
}

func NewGetAvailability(d Deps) *GetAvailability {
	return &GetAvailability{d: d}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.Slot, error) {

	ctx, cancel := uc.d.storeCtx(ctx)
	defer cancel()

	prof, err := uc.d.Repo.GetProfessional(ctx, in.ProfessionalID)
	if err != nil {
		return nil, lookupErr(err, "professional_not_found", "get_professional")
	}
	if !prof.Active {
		return nil, httperr.NotFound("professional_not_found")
	}

	service, err := uc.d.Repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, lookupErr(err, "service_not_found", "get_service")
	}
	if !service.Active {
		return nil, httperr.NotFound("service_not_found")
	}
	if service.DurationMinutes <= 0 {
		return nil, httperr.Validation("invalid_duration")
	}

	dayStart := domain.StartOfDay(in.Date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	appointments, err := uc.d.Repo.FindActiveAppointments(ctx, in.ProfessionalID, dayStart, dayEnd)
	if err != nil {
		return nil, httperr.Store("find_active_appointments", err)
	}

	return domain.AvailableSlots(
		in.Date,
		time.Duration(service.DurationMinutes)*time.Minute,
		domain.OccupiedIntervals(appointments),
		uc.d.hours(),
	), nil
}
