package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/dto"
	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ListAppointmentsInput struct {
	Actor domain.Actor

	Status         string
	From           *time.Time
	To             *time.Time
	ProfessionalID *uuid.UUID

	Page  int
	Limit int
}

type AppointmentPage struct {
	Items []dto.AppointmentListDTO `json:"citas"`
	Total int64                    `json:"total"`
	Page  int                      `json:"page"`
	Limit int                      `json:"limit"`
}

type ListAppointments struct {
	d Deps
}

func NewListAppointments(d Deps) *ListAppointments {
	return &ListAppointments{d: d}
}

// Execute lists appointments for staff, newest first.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) (*AppointmentPage, error) {

	if !in.Actor.Role.IsStaff() {
		return nil, httperr.Forbidden("forbidden_role")
	}

	page, limit := normalizePage(in.Page, in.Limit)

	f := domain.ListFilter{
		From:           in.From,
		To:             in.To,
		ProfessionalID: in.ProfessionalID,
		Limit:          limit,
		Offset:         (page - 1) * limit,
	}

	if in.Status != "" {
		st, ok := domain.ParseStatus(in.Status)
		if !ok {
			return nil, httperr.Validation("invalid_status")
		}
		f.Status = &st
	}

	if in.From != nil && in.To != nil && in.To.Before(*in.From) {
		return nil, httperr.Validation("invalid_date_range")
	}

	ctx, cancel := uc.d.storeCtx(ctx)
	defer cancel()

	list, total, err := uc.d.Repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, httperr.Store("list_appointments", err)
	}

	return &AppointmentPage{
		Items: dto.FromAppointments(list),
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
