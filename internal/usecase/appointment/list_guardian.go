package appointment

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/dto"
	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
	"github.com/BruksfildServices01/vet-scheduler/internal/models"
)

type GuardianAppointments struct {
	Upcoming []dto.AppointmentListDTO `json:"proximas"`
	Past     []dto.AppointmentListDTO `json:"pasadas"`
	Total    int                      `json:"total"`
}

type ListGuardianAppointments struct {
	d Deps
}

func NewListGuardianAppointments(d Deps) *ListGuardianAppointments {
	return &ListGuardianAppointments{d: d}
}

// Execute splits the guardian's appointments into upcoming (future and
// still open, soonest first) and past (everything else, latest first).
// A non-empty status narrows both lists to that state.
func (uc *ListGuardianAppointments) Execute(
	ctx context.Context,
	actor domain.Actor,
	status string,
) (*GuardianAppointments, error) {

	if actor.Role != domain.RoleGuardian {
		return nil, httperr.Forbidden("forbidden_role")
	}

	f := domain.ListFilter{Ascending: true}
	if status != "" {
		st, ok := domain.ParseStatus(status)
		if !ok {
			return nil, httperr.Validation("invalid_status")
		}
		f.Status = &st
	}

	ctx, cancel := uc.d.storeCtx(ctx)
	defer cancel()

	g, err := uc.d.Repo.GetGuardianByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.NotFound("guardian_not_found")
		}
		return nil, httperr.Store("get_guardian", err)
	}

	f.GuardianID = &g.ID
	list, _, err := uc.d.Repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, httperr.Store("list_appointments", err)
	}

	now := uc.d.now()
	upcoming := make([]models.Appointment, 0, len(list))
	past := make([]models.Appointment, 0, len(list))

	for _, ap := range list {
		if !ap.StartTime.Before(now) && !domain.Status(ap.Status).IsTerminal() {
			upcoming = append(upcoming, ap)
			continue
		}
		past = append(past, ap)
	}

	// latest first
	for i, j := 0, len(past)-1; i < j; i, j = i+1, j-1 {
		past[i], past[j] = past[j], past[i]
	}

	return &GuardianAppointments{
		Upcoming: dto.FromAppointments(upcoming),
		Past:     dto.FromAppointments(past),
		Total:    len(list),
	}, nil
}
