package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
)

type AppointmentStats struct {
	Total     int64 `json:"total"`
	Today     int64 `json:"hoy"`
	Reserved  int64 `json:"reservadas"`
	Confirmed int64 `json:"confirmadas"`
}

type GetAppointmentStats struct {
	d Deps
}

func NewGetAppointmentStats(d Deps) *GetAppointmentStats {
	return &GetAppointmentStats{d: d}
}

// Execute counts live appointments for the staff dashboard. Today is the
// clinic-local day of Deps.Now.
func (uc *GetAppointmentStats) Execute(ctx context.Context, actor domain.Actor) (*AppointmentStats, error) {
	if !actor.Role.IsStaff() {
		return nil, httperr.Forbidden("forbidden_role")
	}

	ctx, cancel := uc.d.storeCtx(ctx)
	defer cancel()

	now := uc.d.now()
	dayStart := domain.StartOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)
	reserved := domain.StatusReserved
	confirmed := domain.StatusConfirmed

	filters := []domain.ListFilter{
		{},
		{From: &dayStart, To: &dayEnd},
		{Status: &reserved},
		{Status: &confirmed},
	}

	counts := make([]int64, len(filters))
	for i, f := range filters {
		// one row is enough, only the total is read
		f.Limit = 1
		_, total, err := uc.d.Repo.ListAppointments(ctx, f)
		if err != nil {
			return nil, httperr.Store("count_appointments", err)
		}
		counts[i] = total
	}

	return &AppointmentStats{
		Total:     counts[0],
		Today:     counts[1],
		Reserved:  counts[2],
		Confirmed: counts[3],
	}, nil
}
