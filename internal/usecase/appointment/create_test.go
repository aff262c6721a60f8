package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
	"github.com/BruksfildServices01/vet-scheduler/internal/models"
)

func TestCreateAppointment_GuardianBooksOwnPet(t *testing.T) {
	f := newFixture(t)

	ap, err := NewCreateAppointment(f.deps).Execute(context.Background(), f.createInput(f.guardian, at(10, 0)))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusReserved), ap.Status)
	assert.Equal(t, at(10, 0), ap.StartTime)
	assert.Equal(t, at(10, 30), ap.EndTime)
	assert.Equal(t, f.guardianID, ap.GuardianID)
	assert.Equal(t, f.guardian.UserID, ap.CreatedBy)

	stored, err := f.repo.GetAppointment(context.Background(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, ap.EndTime, stored.EndTime)

	assert.Equal(t, []string{"appointment_created"}, f.flushAudit())
}

func TestCreateAppointment_EndFollowsServiceDuration(t *testing.T) {
	f := newFixture(t)

	in := f.createInput(f.frontDesk, at(14, 0))
	in.ServiceID = f.longServiceID

	ap, err := NewCreateAppointment(f.deps).Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, ap.EndTime.Sub(ap.StartTime))
}

func TestCreateAppointment_SameSlotConflicts(t *testing.T) {
	f := newFixture(t)
	f.seed(at(10, 0), 30, domain.StatusReserved)

	_, err := NewCreateAppointment(f.deps).Execute(context.Background(), f.createInput(f.guardian, at(10, 0)))
	require.Error(t, err)
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
	assert.Equal(t, "time_conflict", httperr.CodeOf(err))

	assert.Len(t, f.repo.Appointments(), 1)
	assert.Equal(t, []string{"appointment_conflict"}, f.flushAudit())
}

func TestCreateAppointment_BackToBackConflicts(t *testing.T) {
	f := newFixture(t)
	f.seed(at(10, 0), 30, domain.StatusConfirmed)

	_, err := NewCreateAppointment(f.deps).Execute(context.Background(), f.createInput(f.guardian, at(10, 30)))
	require.Error(t, err)
	assert.Equal(t, "time_conflict", httperr.CodeOf(err))
}

func TestCreateAppointment_FreedSlotIsBookable(t *testing.T) {
	f := newFixture(t)
	f.seed(at(10, 0), 30, domain.StatusCancelled)
	f.seed(at(10, 0), 30, domain.StatusRescheduled)

	_, err := NewCreateAppointment(f.deps).Execute(context.Background(), f.createInput(f.guardian, at(10, 0)))
	require.NoError(t, err)
}

func TestCreateAppointment_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(f *fixture, in *CreateAppointmentInput)
		kind   httperr.Kind
		code   string
	}{
		{
			name:   "missing reason",
			mutate: func(_ *fixture, in *CreateAppointmentInput) { in.Reason = "  " },
			kind:   httperr.KindValidation,
			code:   "missing_reason",
		},
		{
			name:   "someone else's pet",
			mutate: func(f *fixture, in *CreateAppointmentInput) { in.Actor = f.otherGuardian },
			kind:   httperr.KindForbidden,
			code:   "not_owner",
		},
		{
			name: "pet not approved",
			mutate: func(f *fixture, in *CreateAppointmentInput) {
				pet := models.Pet{ID: in.PetID, GuardianID: f.guardianID, Status: "pendiente"}
				f.repo.AddPet(pet)
			},
			kind: httperr.KindValidation,
			code: "pet_not_approved",
		},
		{
			name:   "in the past",
			mutate: func(_ *fixture, in *CreateAppointmentInput) { in.Start = at(7, 0) },
			kind:   httperr.KindValidation,
			code:   "in_the_past",
		},
		{
			name:   "runs past closing",
			mutate: func(_ *fixture, in *CreateAppointmentInput) { in.Start = at(17, 45) },
			kind:   httperr.KindValidation,
			code:   "outside_business_hours",
		},
		{
			name: "inactive professional",
			mutate: func(f *fixture, in *CreateAppointmentInput) {
				f.repo.AddProfessional(models.Professional{ID: in.ProfessionalID, Active: false})
			},
			kind: httperr.KindNotFound,
			code: "professional_not_found",
		},
		{
			name:   "unknown pet",
			mutate: func(_ *fixture, in *CreateAppointmentInput) { in.PetID = in.ServiceID },
			kind:   httperr.KindNotFound,
			code:   "pet_not_found",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			in := f.createInput(f.guardian, at(10, 0))
			tc.mutate(f, &in)

			_, err := NewCreateAppointment(f.deps).Execute(context.Background(), in)
			require.Error(t, err)
			assert.Equal(t, tc.kind, httperr.KindOf(err))
			assert.Equal(t, tc.code, httperr.CodeOf(err))
			assert.Empty(t, f.repo.Appointments())
		})
	}
}

func TestCreateAppointment_ConcurrentBookingsNeverDoubleBook(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateAppointment(f.deps)

	starts := []time.Time{at(10, 0), at(10, 0), at(10, 30), at(10, 0), at(11, 0), at(10, 30), at(11, 30), at(11, 0)}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		for _, s := range starts {
			wg.Add(1)
			go func(start time.Time) {
				defer wg.Done()
				_, _ = uc.Execute(context.Background(), f.createInput(f.frontDesk, start))
			}(s)
		}
	}
	wg.Wait()

	stored := f.repo.Appointments()
	require.NotEmpty(t, stored)
	for i := range stored {
		for j := i + 1; j < len(stored); j++ {
			a := domain.IntervalOf(&stored[i])
			b := domain.IntervalOf(&stored[j])
			assert.False(t, a.Conflicts(b), "double booking: %v and %v", a, b)
		}
	}
}

func TestConflictDetector(t *testing.T) {
	f := newFixture(t)
	f.seed(at(10, 0), 30, domain.StatusReserved)
	det := NewConflictDetector(f.deps)

	busy, err := det.HasConflict(context.Background(), f.professionalID, at(10, 30), at(11, 0))
	require.NoError(t, err)
	assert.True(t, busy)

	busy, err = det.HasConflict(context.Background(), f.professionalID, at(11, 0), at(11, 30))
	require.NoError(t, err)
	assert.False(t, busy)

	_, err = det.HasConflict(context.Background(), f.professionalID, at(11, 0), at(11, 0))
	require.Error(t, err)
	assert.Equal(t, "invalid_duration", httperr.CodeOf(err))
}

func TestConflictDetector_StoreFailureIsRetryable(t *testing.T) {
	f := newFixture(t)
	f.deps.Repo = failingRepo{Repository: f.repo}

	_, err := NewConflictDetector(f.deps).HasConflict(context.Background(), f.professionalID, at(10, 0), at(10, 30))
	require.Error(t, err)
	assert.Equal(t, httperr.KindStore, httperr.KindOf(err))
	assert.ErrorIs(t, err, errStore)

	var se *httperr.StoreError
	require.ErrorAs(t, err, &se)
	assert.True(t, se.Retryable())
}

func TestGetAvailability_OmitsBookedSlot(t *testing.T) {
	f := newFixture(t)
	f.seed(at(10, 0), 30, domain.StatusReserved)
	f.seed(at(12, 0), 30, domain.StatusCancelled)

	slots, err := NewGetAvailability(f.deps).Execute(context.Background(), domain.AvailabilityInput{
		ProfessionalID: f.professionalID,
		ServiceID:      f.serviceID,
		Date:           clinicDay,
	})
	require.NoError(t, err)

	var labels []string
	for _, s := range slots {
		labels = append(labels, s.Label)
	}
	assert.NotContains(t, labels, "10:00")
	assert.Contains(t, labels, "09:30")
	assert.Contains(t, labels, "10:30")
	assert.Contains(t, labels, "12:00")
}

func TestGetAvailability_UnknownProfessional(t *testing.T) {
	f := newFixture(t)

	_, err := NewGetAvailability(f.deps).Execute(context.Background(), domain.AvailabilityInput{
		ProfessionalID: f.petID,
		ServiceID:      f.serviceID,
		Date:           clinicDay,
	})
	require.Error(t, err)
	assert.Equal(t, "professional_not_found", httperr.CodeOf(err))
}

func TestGetAvailability_InactiveServiceNotOffered(t *testing.T) {
	f := newFixture(t)
	retired := uuid.New()
	f.repo.AddService(models.Service{ID: retired, Name: "Baño medicado", DurationMinutes: 30, Active: false})

	_, err := NewGetAvailability(f.deps).Execute(context.Background(), domain.AvailabilityInput{
		ProfessionalID: f.professionalID,
		ServiceID:      retired,
		Date:           clinicDay,
	})
	require.Error(t, err)
	assert.Equal(t, "service_not_found", httperr.CodeOf(err))

	in := f.createInput(f.guardian, at(10, 0))
	in.ServiceID = retired
	_, err = NewCreateAppointment(f.deps).Execute(context.Background(), in)
	assert.Equal(t, "service_not_found", httperr.CodeOf(err))
}
