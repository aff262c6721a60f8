package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
	"github.com/BruksfildServices01/vet-scheduler/internal/models"
)

type RescheduleInput struct {
	Actor         domain.Actor
	AppointmentID uuid.UUID
	Start         time.Time
}

// RescheduleResult holds the closed appointment and its replacement.
type RescheduleResult struct {
	Previous    *models.Appointment `json:"cita_anterior"`
	Replacement *models.Appointment `json:"cita"`
}

type RescheduleAppointment struct {
	d Deps
}

func NewRescheduleAppointment(d Deps) *RescheduleAppointment {
	return &RescheduleAppointment{d: d}
}

// Execute books the same pet, service and professional at a new start and
// closes the current one as rescheduled. The new interval goes through the
// same conflict check as a fresh booking.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*RescheduleResult, error) {

	ctx, cancel := uc.d.storeCtx(ctx)
	defer cancel()

	ap, err := uc.d.Repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, lookupErr(err, "appointment_not_found", "get_appointment")
	}

	isOwner, err := uc.d.ownsAppointment(ctx, in.Actor, ap)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(domain.ActionReschedule, in.Actor, isOwner); err != nil {
		uc.d.Metrics.Rejected(string(domain.ActionReschedule), httperr.CodeOf(err))
		return nil, err
	}
	if _, err := domain.Next(domain.ActionReschedule, domain.Status(ap.Status)); err != nil {
		uc.d.Metrics.Rejected(string(domain.ActionReschedule), httperr.CodeOf(err))
		return nil, err
	}

	service, err := uc.d.Repo.GetService(ctx, ap.ServiceID)
	if err != nil {
		return nil, lookupErr(err, "service_not_found", "get_service")
	}

	iv, err := domain.NewInterval(in.Start, time.Duration(service.DurationMinutes)*time.Minute)
	if err != nil {
		return nil, err
	}
	now := uc.d.now()
	if iv.Start.Before(now) {
		return nil, httperr.Validation("in_the_past")
	}
	if !uc.d.hours().Covers(iv) {
		return nil, httperr.Validation("outside_business_hours")
	}

	replacement := &models.Appointment{
		ID:                uuid.New(),
		PetID:             ap.PetID,
		GuardianID:        ap.GuardianID,
		ServiceID:         ap.ServiceID,
		ProfessionalID:    ap.ProfessionalID,
		StartTime:         iv.Start,
		EndTime:           iv.End,
		Status:            string(domain.InitialStatus()),
		Reason:            ap.Reason,
		Notes:             ap.Notes,
		CreatedBy:         in.Actor.UserID,
		RescheduledFromID: &ap.ID,
	}

	var previous *models.Appointment
	err = uc.d.Repo.WithProfessionalLock(ctx, ap.ProfessionalID, func(tx domain.Repository) error {
		// re-read under the lock; the row may have moved since
		cur, err := tx.GetAppointment(ctx, ap.ID)
		if err != nil {
			return lookupErr(err, "appointment_not_found", "get_appointment")
		}

		conflict, err := hasConflict(ctx, tx, cur.ProfessionalID, iv, cur.ID)
		if err != nil {
			return err
		}
		if conflict {
			return httperr.Conflict("time_conflict")
		}

		from := domain.Status(cur.Status)
		if err := domain.MarkRescheduled(cur, in.Actor, replacement.ID, now); err != nil {
			return err
		}
		if err := saveTransition(ctx, tx, cur, from); err != nil {
			return err
		}

		previous = cur
		return book(ctx, tx, replacement)
	})
	if errors.Is(err, domain.ErrStaleState) {
		err = httperr.InvalidTransition("invalid_state")
	}
	if err != nil {
		err = httperr.Store("professional_lock", err)
		if httperr.IsBusiness(err, "time_conflict") {
			uc.d.Metrics.Conflict()
		}
		uc.d.Metrics.Rejected(string(domain.ActionReschedule), httperr.CodeOf(err))
		return nil, err
	}

	uc.d.Metrics.Transition(string(domain.ActionReschedule))
	uc.d.Metrics.Booked("reschedule")
	uc.d.dispatch(in.Actor, "appointment_rescheduled", previous, map[string]any{
		"replacement_id": replacement.ID,
		"start":          iv.Start,
		"end":            iv.End,
	})

	return &RescheduleResult{Previous: previous, Replacement: replacement}, nil
}
