package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/httperr"
)

func strPtr(s string) *string { return &s }

func TestUpdateAppointment_EditsReasonAndNotes(t *testing.T) {
	f := newFixture(t)
	ap := f.seed(at(10, 0), 30, domain.StatusConfirmed)

	res, err := NewUpdateAppointment(f.deps).Execute(context.Background(), UpdateAppointmentInput{
		Actor:         f.guardian,
		AppointmentID: ap.ID,
		Reason:        strPtr("  cojera  "),
		Notes:         strPtr("en ayunas"),
	})
	require.NoError(t, err)
	assert.Nil(t, res.Previous)
	assert.Equal(t, "cojera", res.Appointment.Reason)

	stored, err := f.repo.GetAppointment(context.Background(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "cojera", stored.Reason)
	assert.Equal(t, "en ayunas", stored.Notes)
	assert.Equal(t, string(domain.StatusConfirmed), stored.Status)
	assert.True(t, stored.StartTime.Equal(ap.StartTime))

	assert.Contains(t, f.flushAudit(), "appointment_updated")
}

func TestUpdateAppointment_Rejections(t *testing.T) {
	f := newFixture(t)
	open := f.seed(at(10, 0), 30, domain.StatusReserved)
	done := f.seed(at(11, 0), 30, domain.StatusCompleted)
	uc := NewUpdateAppointment(f.deps)

	cases := []struct {
		name string
		in   UpdateAppointmentInput
		code string
	}{
		{"nothing", UpdateAppointmentInput{Actor: f.guardian, AppointmentID: open.ID}, "nothing_to_update"},
		{"blank reason", UpdateAppointmentInput{Actor: f.guardian, AppointmentID: open.ID, Reason: strPtr(" ")}, "missing_reason"},
		{"other guardian", UpdateAppointmentInput{Actor: f.otherGuardian, AppointmentID: open.ID, Notes: strPtr("x")}, "not_owner"},
		{"terminal", UpdateAppointmentInput{Actor: f.frontDesk, AppointmentID: done.ID, Notes: strPtr("x")}, "terminal_state"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.in)
			require.Error(t, err)
			assert.Equal(t, tc.code, httperr.CodeOf(err))
		})
	}

	stored, err := f.repo.GetAppointment(context.Background(), open.ID)
	require.NoError(t, err)
	assert.Equal(t, "control", stored.Reason)
	assert.Empty(t, stored.Notes)
}

func TestUpdateAppointment_NewStartReschedules(t *testing.T) {
	f := newFixture(t)
	ap := f.seed(at(10, 0), 30, domain.StatusReserved)
	f.seed(at(14, 0), 30, domain.StatusReserved)
	uc := NewUpdateAppointment(f.deps)

	busy := at(14, 0)
	_, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		Actor:         f.frontDesk,
		AppointmentID: ap.ID,
		Start:         &busy,
	})
	require.Error(t, err)
	assert.Equal(t, "time_conflict", httperr.CodeOf(err))

	free := at(16, 0)
	res, err := uc.Execute(context.Background(), UpdateAppointmentInput{
		Actor:         f.frontDesk,
		AppointmentID: ap.ID,
		Start:         &free,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Previous)
	assert.Equal(t, ap.ID, res.Previous.ID)
	assert.Equal(t, string(domain.StatusRescheduled), res.Previous.Status)
	assert.True(t, res.Appointment.StartTime.Equal(free))
	assert.Equal(t, string(domain.StatusReserved), res.Appointment.Status)
}

func TestGetAppointmentStats(t *testing.T) {
	f := newFixture(t)
	f.seed(at(10, 0), 30, domain.StatusReserved)
	f.seed(at(11, 0), 30, domain.StatusConfirmed)
	f.seed(at(12, 0), 30, domain.StatusCancelled)
	f.seed(at(10, 0).AddDate(0, 0, 1), 30, domain.StatusReserved)

	stats, err := NewGetAppointmentStats(f.deps).Execute(context.Background(), f.frontDesk)
	require.NoError(t, err)
	assert.Equal(t, AppointmentStats{Total: 4, Today: 3, Reserved: 2, Confirmed: 1}, *stats)

	_, err = NewGetAppointmentStats(f.deps).Execute(context.Background(), f.guardian)
	assert.Equal(t, "forbidden_role", httperr.CodeOf(err))
}

func TestListGuardianAppointments_StatusFilter(t *testing.T) {
	f := newFixture(t)
	f.seed(at(10, 0), 30, domain.StatusReserved)
	f.seed(at(11, 0), 30, domain.StatusCancelled)

	out, err := NewListGuardianAppointments(f.deps).Execute(context.Background(), f.guardian, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)
	assert.Empty(t, out.Upcoming)
	require.Len(t, out.Past, 1)

	_, err = NewListGuardianAppointments(f.deps).Execute(context.Background(), f.guardian, "perdida")
	assert.Equal(t, "invalid_status", httperr.CodeOf(err))
}
