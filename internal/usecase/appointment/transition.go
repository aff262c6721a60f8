package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
	"github.com/BruksfildServices01/vet-scheduler/internal/models"
)

// transitionFunc applies one lifecycle action to ap in memory.
type transitionFunc func(ap *models.Appointment, now time.Time) error

// applyTransition loads the appointment, checks the actor's capability,
// applies fn and persists state, timestamp and actor together.
func (d Deps) applyTransition(
	ctx context.Context,
	actor domain.Actor,
	appointmentID uuid.UUID,
	action domain.Action,
	auditAction string,
	fn transitionFunc,
) (*models.Appointment, error) {

	ctx, cancel := d.storeCtx(ctx)
	defer cancel()

	ap, err := d.Repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, lookupErr(err, "appointment_not_found", "get_appointment")
	}

	isOwner, err := d.ownsAppointment(ctx, actor, ap)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(action, actor, isOwner); err != nil {
		d.Metrics.Rejected(string(action), httperr.CodeOf(err))
		return nil, err
	}

	from := domain.Status(ap.Status)
	if err := fn(ap, d.now()); err != nil {
		d.Metrics.Rejected(string(action), httperr.CodeOf(err))
		return nil, err
	}

	if err := saveTransition(ctx, d.Repo, ap, from); err != nil {
		d.Metrics.Rejected(string(action), httperr.CodeOf(err))
		return nil, err
	}

	d.Metrics.Transition(string(action))
	d.dispatch(actor, auditAction, ap, map[string]any{
		"from": from,
		"to":   ap.Status,
	})

	return ap, nil
}
