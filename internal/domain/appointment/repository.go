package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/vet-scheduler/internal/models"
)

var (
	// ErrNotFound is returned when a lookup matches no live row.
	ErrNotFound = errors.New("record not found")

	// ErrStaleState is returned by UpdateAppointment when the stored status
	// no longer matches the one the caller read.
	ErrStaleState = errors.New("appointment status changed concurrently")
)

// ListFilter narrows ListAppointments. From is inclusive and To exclusive,
// both matched against the start time. A zero Limit means no limit.
type ListFilter struct {
	Status         *Status
	From           *time.Time
	To             *time.Time
	ProfessionalID *uuid.UUID
	GuardianID     *uuid.UUID
	Ascending      bool
	Limit          int
	Offset         int
}

type Repository interface {
	// -------- Catalog (read-only) --------
	GetService(ctx context.Context, id uuid.UUID) (*models.Service, error)
	GetPet(ctx context.Context, id uuid.UUID) (*models.Pet, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error)
	GetProfessional(ctx context.Context, id uuid.UUID) (*models.Professional, error)
	GetProfessionalByUserID(ctx context.Context, userID uuid.UUID) (*models.Professional, error)
	GetGuardianByUserID(ctx context.Context, userID uuid.UUID) (*models.Guardian, error)

	// -------- Appointment --------

	// FindActiveAppointments returns the occupying appointments of the
	// professional whose interval touches [from, to].
	FindActiveAppointments(
		ctx context.Context,
		professionalID uuid.UUID,
		from time.Time,
		to time.Time,
	) ([]models.Appointment, error)

	GetAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	UpdateAppointment(ctx context.Context, ap *models.Appointment, from Status) error
	ListAppointments(ctx context.Context, f ListFilter) ([]models.Appointment, int64, error)

	// WithProfessionalLock runs fn in a transaction serialized against every
	// other booking for the same professional. fn receives a repository
	// bound to that transaction; returning an error rolls back.
	WithProfessionalLock(
		ctx context.Context,
		professionalID uuid.UUID,
		fn func(tx Repository) error,
	) error
}
