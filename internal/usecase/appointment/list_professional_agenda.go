package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/dto"
	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
)

type ListProfessionalAgenda struct {
	d Deps
}

func NewListProfessionalAgenda(d Deps) *ListProfessionalAgenda {
	return &ListProfessionalAgenda{d: d}
}

// Execute returns the calling professional's appointments for date, or from
// today onwards when date is nil. Ordered by start.
func (uc *ListProfessionalAgenda) Execute(
	ctx context.Context,
	actor domain.Actor,
	date *time.Time,
) ([]dto.AppointmentListDTO, error) {

	if actor.Role != domain.RoleVeterinarian && actor.Role != domain.RoleAdmin {
		return nil, httperr.Forbidden("forbidden_role")
	}

	ctx, cancel := uc.d.storeCtx(ctx)
	defer cancel()

	prof, err := uc.d.Repo.GetProfessionalByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, lookupErr(err, "professional_not_found", "get_professional")
	}

	var from, to time.Time
	f := domain.ListFilter{
		ProfessionalID: &prof.ID,
		Ascending:      true,
	}

	if date != nil {
		from = domain.StartOfDay(*date)
		to = from.AddDate(0, 0, 1)
		f.To = &to
	} else {
		from = domain.StartOfDay(uc.d.now())
	}
	f.From = &from

	list, _, err := uc.d.Repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, httperr.Store("list_appointments", err)
	}

	return dto.FromAppointments(list), nil
}
