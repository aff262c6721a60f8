package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
	"github.com/BruksfildServices01/vet-scheduler/internal/models"
)

// UpdateAppointmentInput carries the editable fields. Nil means unchanged.
type UpdateAppointmentInput struct {
	Actor         domain.Actor
	AppointmentID uuid.UUID

	Reason *string
	Notes  *string
	Start  *time.Time
}

type UpdateResult struct {
	Appointment *models.Appointment `json:"cita"`
	Previous    *models.Appointment `json:"cita_anterior,omitempty"`
}

type UpdateAppointment struct {
	d          Deps
	reschedule *RescheduleAppointment
}

func NewUpdateAppointment(d Deps) *UpdateAppointment {
	return &UpdateAppointment{d: d, reschedule: NewRescheduleAppointment(d)}
}

// Execute edits the consultation reason and notes of an open appointment.
// A new start is never written in place: it goes through reschedule, so the
// returned appointment is then the replacement and Previous the closed one.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*UpdateResult, error) {

	if in.Reason == nil && in.Notes == nil && in.Start == nil {
		return nil, httperr.Validation("nothing_to_update")
	}
	if in.Reason != nil && strings.TrimSpace(*in.Reason) == "" {
		return nil, httperr.Validation("missing_reason")
	}

	out := &UpdateResult{}

	if in.Reason != nil || in.Notes != nil {
		ap, err := uc.editDetails(ctx, in)
		if err != nil {
			return nil, err
		}
		out.Appointment = ap
	}

	if in.Start != nil {
		res, err := uc.reschedule.Execute(ctx, RescheduleInput{
			Actor:         in.Actor,
			AppointmentID: in.AppointmentID,
			Start:         *in.Start,
		})
		if err != nil {
			return nil, err
		}
		out.Appointment = res.Replacement
		out.Previous = res.Previous
	}

	return out, nil
}

func (uc *UpdateAppointment) editDetails(ctx context.Context, in UpdateAppointmentInput) (*models.Appointment, error) {
	ctx, cancel := uc.d.storeCtx(ctx)
	defer cancel()

	ap, err := uc.d.Repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, lookupErr(err, "appointment_not_found", "get_appointment")
	}

	if !in.Actor.Role.IsStaff() {
		isOwner, err := uc.d.ownsAppointment(ctx, in.Actor, ap)
		if err != nil {
			return nil, err
		}
		if !isOwner {
			return nil, httperr.Forbidden("not_owner")
		}
	}

	status := domain.Status(ap.Status)
	if status.IsTerminal() {
		return nil, httperr.InvalidTransition("terminal_state")
	}

	changes := map[string]any{}
	if in.Reason != nil {
		ap.Reason = strings.TrimSpace(*in.Reason)
		changes["reason"] = ap.Reason
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
		changes["notes"] = ap.Notes
	}

	// status unchanged; the conditional update still rejects a concurrent transition
	if err := saveTransition(ctx, uc.d.Repo, ap, status); err != nil {
		return nil, err
	}

	uc.d.dispatch(in.Actor, "appointment_updated", ap, changes)
	return ap, nil
}
