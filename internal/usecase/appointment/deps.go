package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/vet-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
	"github.com/BruksfildServices01/vet-scheduler/internal/metrics"
	"github.com/BruksfildServices01/vet-scheduler/internal/models"
)

const defaultStoreTimeout = 5 * time.Second

// Deps are the collaborators shared by every appointment use case.
type Deps struct {
	Repo    domain.Repository
	Audit   *audit.Dispatcher
	Metrics *metrics.Recorder
	Now     func() time.Time
	Hours   domain.BusinessHours
	Timeout time.Duration
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Deps) hours() domain.BusinessHours {
	if d.Hours.Step <= 0 {
		return domain.DefaultBusinessHours
	}
	return d.Hours
}

// storeCtx bounds every store round trip of one operation.
func (d Deps) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// lookupErr maps a repository error to not-found or store failure.
func lookupErr(err error, notFoundCode, op string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.NotFound(notFoundCode)
	}
	return httperr.Store(op, err)
}

// ownsAppointment tells whether a guardian actor owns ap. Staff never own.
func (d Deps) ownsAppointment(ctx context.Context, actor domain.Actor, ap *models.Appointment) (bool, error) {
	if actor.Role != domain.RoleGuardian {
		return false, nil
	}
	g, err := d.Repo.GetGuardianByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, httperr.Store("get_guardian", err)
	}
	return g.ID == ap.GuardianID, nil
}

func (d Deps) dispatch(actor domain.Actor, action string, ap *models.Appointment, meta any) {
	d.Audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: meta,
	})
}
