package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
	"github.com/BruksfildServices01/vet-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Actor domain.Actor

	PetID          uuid.UUID
	ServiceID      uuid.UUID
	ProfessionalID uuid.UUID

	Start  time.Time
	Reason string
	Notes  string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	d Deps
}

func NewCreateAppointment(d Deps) *CreateAppointment {
	return &CreateAppointment{d: d}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if strings.TrimSpace(in.Reason) == "" {
		return nil, httperr.Validation("missing_reason")
	}

	ctx, cancel := uc.d.storeCtx(ctx)
	defer cancel()

	// --------------------------------------------------
	// Pet and ownership
	// --------------------------------------------------
	pet, err := uc.d.Repo.GetPet(ctx, in.PetID)
	if err != nil {
		return nil, lookupErr(err, "pet_not_found", "get_pet")
	}

	isOwner := false
	if in.Actor.Role == domain.RoleGuardian {
		guardian, err := uc.d.Repo.GetGuardianByUserID(ctx, in.Actor.UserID)
		if err != nil {
			return nil, lookupErr(err, "guardian_not_found", "get_guardian")
		}
		isOwner = guardian.ID == pet.GuardianID
	}

	if err := domain.Authorize(domain.ActionCreate, in.Actor, isOwner); err != nil {
		return nil, err
	}

	if pet.Status != models.PetApproved {
		return nil, httperr.Validation("pet_not_approved")
	}

	// --------------------------------------------------
	// Professional and service
	// --------------------------------------------------
	prof, err := uc.d.Repo.GetProfessional(ctx, in.ProfessionalID)
	if err != nil {
		return nil, lookupErr(err, "professional_not_found", "get_professional")
	}
	if !prof.Active {
		return nil, httperr.NotFound("professional_not_found")
	}

	service, err := uc.d.Repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, lookupErr(err, "service_not_found", "get_service")
	}
	if !service.Active {
		return nil, httperr.NotFound("service_not_found")
	}

	// --------------------------------------------------
	// Interval: end always derived from the service
	// --------------------------------------------------
	iv, err := domain.NewInterval(in.Start, time.Duration(service.DurationMinutes)*time.Minute)
	if err != nil {
		return nil, err
	}
	if iv.Start.Before(uc.d.now()) {
		return nil, httperr.Validation("in_the_past")
	}
	if !uc.d.hours().Covers(iv) {
		return nil, httperr.Validation("outside_business_hours")
	}

	ap := &models.Appointment{
		ID:             uuid.New(),
		PetID:          pet.ID,
		GuardianID:     pet.GuardianID,
		ServiceID:      service.ID,
		ProfessionalID: prof.ID,
		StartTime:      iv.Start,
		EndTime:        iv.End,
		Status:         string(domain.InitialStatus()),
		Reason:         strings.TrimSpace(in.Reason),
		Notes:          in.Notes,
		CreatedBy:      in.Actor.UserID,
	}

	// --------------------------------------------------
	// Conflict check + insert, serialized per professional
	// --------------------------------------------------
	err = uc.d.Repo.WithProfessionalLock(ctx, prof.ID, func(tx domain.Repository) error {
		return book(ctx, tx, ap)
	})
	if err != nil {
		err = httperr.Store("professional_lock", err)
		if httperr.IsBusiness(err, "time_conflict") {
			uc.d.Metrics.Conflict()
			uc.d.dispatch(in.Actor, "appointment_conflict", ap, map[string]any{
				"professional_id": prof.ID,
				"start":           iv.Start,
				"end":             iv.End,
			})
		}
		return nil, err
	}

	uc.d.Metrics.Booked("create")
	uc.d.dispatch(in.Actor, "appointment_created", ap, nil)

	return ap, nil
}

// book inserts ap unless its interval conflicts. tx must hold the
// professional lock.
func book(ctx context.Context, tx domain.Repository, ap *models.Appointment, skip ...uuid.UUID) error {
	conflict, err := hasConflict(ctx, tx, ap.ProfessionalID, domain.IntervalOf(ap), skip...)
	if err != nil {
		return err
	}
	if conflict {
		return httperr.Conflict("time_conflict")
	}

	if err := tx.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsExclusionConflict(err) {
			return httperr.Conflict("time_conflict")
		}
		return httperr.Store("create_appointment", err)
	}
	return nil
}

// saveTransition persists ap after a state change read in status from.
func saveTransition(ctx context.Context, repo domain.Repository, ap *models.Appointment, from domain.Status) error {
	if err := repo.UpdateAppointment(ctx, ap, from); err != nil {
		if errors.Is(err, domain.ErrStaleState) {
			return httperr.InvalidTransition("invalid_state")
		}
		if httperr.IsExclusionConflict(err) {
			return httperr.Conflict("time_conflict")
		}
		return httperr.Store("update_appointment", err)
	}
	return nil
}
