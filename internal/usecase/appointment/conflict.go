package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
)

// ConflictDetector answers whether a professional is free for an interval.
type ConflictDetector struct {
	d Deps
}

func NewConflictDetector(d Deps) *ConflictDetector {
	return &ConflictDetector{d: d}
}

func (uc *ConflictDetector) HasConflict(
	ctx context.Context,
	professionalID uuid.UUID,
	start time.Time,
	end time.Time,
) (bool, error) {

	if !end.After(start) {
		return false, httperr.Validation("invalid_duration")
	}

	ctx, cancel := uc.d.storeCtx(ctx)
	defer cancel()

	return hasConflict(ctx, uc.d.Repo, professionalID, domain.Interval{Start: start, End: end})
}

func hasConflict(
	ctx context.Context,
	repo domain.Repository,
	professionalID uuid.UUID,
	candidate domain.Interval,
	skip ...uuid.UUID,
) (bool, error) {

	existing, err := repo.FindActiveAppointments(ctx, professionalID, candidate.Start, candidate.End)
	if err != nil {
		return false, httperr.Store("find_active_appointments", err)
	}
	return domain.HasConflict(candidate, existing, skip...), nil
}
