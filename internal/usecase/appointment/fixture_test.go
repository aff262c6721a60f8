package appointment

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/vet-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/vet-scheduler/internal/models"
)

var (
	clinicDay = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	fixedNow  = clinicDay.Add(8 * time.Hour)
)

func at(h, m int) time.Time {
	return clinicDay.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

type memRecorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *memRecorder) Record(ev audit.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *memRecorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

type fixture struct {
	repo       *repository.MemoryRepository
	recorder   *memRecorder
	dispatcher *audit.Dispatcher
	deps       Deps

	guardian      domain.Actor
	otherGuardian domain.Actor
	frontDesk     domain.Actor
	vet           domain.Actor

	guardianID     uuid.UUID
	petID          uuid.UUID
	serviceID      uuid.UUID
	longServiceID  uuid.UUID
	professionalID uuid.UUID
	roomID         uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	f := &fixture{
		repo:     repository.NewMemoryRepository(),
		recorder: &memRecorder{},

		guardian:      domain.Actor{UserID: uuid.New(), Role: domain.RoleGuardian},
		otherGuardian: domain.Actor{UserID: uuid.New(), Role: domain.RoleGuardian},
		frontDesk:     domain.Actor{UserID: uuid.New(), Role: domain.RoleFrontDesk},
		vet:           domain.Actor{UserID: uuid.New(), Role: domain.RoleVeterinarian},

		guardianID:     uuid.New(),
		petID:          uuid.New(),
		serviceID:      uuid.New(),
		longServiceID:  uuid.New(),
		professionalID: uuid.New(),
		roomID:         uuid.New(),
	}
	f.dispatcher = audit.NewDispatcher(f.recorder, log)
	t.Cleanup(f.dispatcher.Close)

	f.repo.AddGuardian(models.Guardian{ID: f.guardianID, UserID: f.guardian.UserID})
	f.repo.AddGuardian(models.Guardian{ID: uuid.New(), UserID: f.otherGuardian.UserID})
	f.repo.AddPet(models.Pet{ID: f.petID, GuardianID: f.guardianID, Name: "Firulais", Status: models.PetApproved})
	f.repo.AddService(models.Service{ID: f.serviceID, Name: "Consulta general", DurationMinutes: 30, Active: true})
	f.repo.AddService(models.Service{ID: f.longServiceID, Name: "Cirugía menor", DurationMinutes: 45, Active: true})
	f.repo.AddProfessional(models.Professional{ID: f.professionalID, UserID: f.vet.UserID, Active: true})
	f.repo.AddRoom(models.Room{ID: f.roomID, Name: "Consultorio 1", Active: true})

	f.deps = Deps{
		Repo:    f.repo,
		Audit:   f.dispatcher,
		Now:     func() time.Time { return fixedNow },
		Hours:   domain.DefaultBusinessHours,
		Timeout: time.Second,
	}
	return f
}

// seed stores an appointment for the fixture's pet and professional.
func (f *fixture) seed(start time.Time, minutes int, st domain.Status) models.Appointment {
	ap := models.Appointment{
		ID:             uuid.New(),
		PetID:          f.petID,
		GuardianID:     f.guardianID,
		ServiceID:      f.serviceID,
		ProfessionalID: f.professionalID,
		StartTime:      start,
		EndTime:        start.Add(time.Duration(minutes) * time.Minute),
		Status:         string(st),
		Reason:         "control",
	}
	f.repo.AddAppointment(ap)
	return ap
}

func (f *fixture) createInput(actor domain.Actor, start time.Time) CreateAppointmentInput {
	return CreateAppointmentInput{
		Actor:          actor,
		PetID:          f.petID,
		ServiceID:      f.serviceID,
		ProfessionalID: f.professionalID,
		Start:          start,
		Reason:         "vacunación anual",
	}
}

// flushAudit waits for queued audit events and returns their actions.
func (f *fixture) flushAudit() []string {
	f.dispatcher.Close()
	return f.recorder.actions()
}

// failingRepo returns errStore from appointment reads.
type failingRepo struct {
	domain.Repository
}

var errStore = errors.New("connection refused")

func (failingRepo) GetAppointment(context.Context, uuid.UUID) (*models.Appointment, error) {
	return nil, errStore
}

func (failingRepo) FindActiveAppointments(context.Context, uuid.UUID, time.Time, time.Time) ([]models.Appointment, error) {
	return nil, errStore
}

// staleRepo hands out a copy of the appointment as it was before a
// concurrent change landed.
type staleRepo struct {
	domain.Repository
	snapshot models.Appointment
}

func (r staleRepo) GetAppointment(context.Context, uuid.UUID) (*models.Appointment, error) {
	ap := r.snapshot
	return &ap, nil
}
