package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/models"
)

// MemoryRepository keeps everything in maps. It backs tests and local runs
// without postgres. One mutex per professional serializes locked blocks;
// their writes are staged and applied only when fn succeeds and every staged
// update still finds the status it was read with.
type MemoryRepository struct {
	mu sync.RWMutex

	services      map[uuid.UUID]models.Service
	pets          map[uuid.UUID]models.Pet
	rooms         map[uuid.UUID]models.Room
	professionals map[uuid.UUID]models.Professional
	guardians     map[uuid.UUID]models.Guardian
	appointments  map[uuid.UUID]models.Appointment

	locksMu sync.Mutex
	locks   map[uuid.UUID]*sync.Mutex
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		services:      map[uuid.UUID]models.Service{},
		pets:          map[uuid.UUID]models.Pet{},
		rooms:         map[uuid.UUID]models.Room{},
		professionals: map[uuid.UUID]models.Professional{},
		guardians:     map[uuid.UUID]models.Guardian{},
		appointments:  map[uuid.UUID]models.Appointment{},
		locks:         map[uuid.UUID]*sync.Mutex{},
	}
}

// --------------------------------------------------
// Seeding
// --------------------------------------------------

func (r *MemoryRepository) AddService(s models.Service) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[s.ID] = s
}

func (r *MemoryRepository) AddPet(p models.Pet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pets[p.ID] = p
}

func (r *MemoryRepository) AddRoom(rm models.Room) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[rm.ID] = rm
}

func (r *MemoryRepository) AddProfessional(p models.Professional) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.professionals[p.ID] = p
}

func (r *MemoryRepository) AddGuardian(g models.Guardian) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guardians[g.ID] = g
}

// AddAppointment stores ap as is, bypassing every check.
func (r *MemoryRepository) AddAppointment(ap models.Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments[ap.ID] = ap
}

// Appointments returns a snapshot of every stored appointment.
func (r *MemoryRepository) Appointments() []models.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Appointment, 0, len(r.appointments))
	for _, ap := range r.appointments {
		out = append(out, ap)
	}
	sortByStart(out, true)
	return out
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *MemoryRepository) GetService(_ context.Context, id uuid.UUID) (*models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.services[id]
	if !ok || s.DeletedAt.Valid {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *MemoryRepository) GetPet(_ context.Context, id uuid.UUID) (*models.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pets[id]
	if !ok || p.DeletedAt.Valid {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) GetRoom(_ context.Context, id uuid.UUID) (*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.rooms[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rm, nil
}

func (r *MemoryRepository) GetProfessional(_ context.Context, id uuid.UUID) (*models.Professional, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.professionals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) GetProfessionalByUserID(_ context.Context, userID uuid.UUID) (*models.Professional, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.professionals {
		if p.UserID == userID {
			p := p
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MemoryRepository) GetGuardianByUserID(_ context.Context, userID uuid.UUID) (*models.Guardian, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, g := range r.guardians {
		if g.UserID == userID {
			g := g
			return &g, nil
		}
	}
	return nil, domain.ErrNotFound
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *MemoryRepository) FindActiveAppointments(
	ctx context.Context,
	professionalID uuid.UUID,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return findActive(r.appointments, nil, professionalID, from, to), nil
}

func (r *MemoryRepository) GetAppointment(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ap, ok := r.appointments[id]
	if !ok || ap.DeletedAt.Valid {
		return nil, domain.ErrNotFound
	}
	return &ap, nil
}

func (r *MemoryRepository) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stamp(ap, true)
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *MemoryRepository) UpdateAppointment(_ context.Context, ap *models.Appointment, from domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.appointments[ap.ID]
	if !ok || cur.DeletedAt.Valid || cur.Status != string(from) {
		return domain.ErrStaleState
	}
	stamp(ap, false)
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *MemoryRepository) ListAppointments(_ context.Context, f domain.ListFilter) ([]models.Appointment, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.DeletedAt.Valid || !matches(ap, f) {
			continue
		}
		ap.Pet = r.petRef(ap.PetID)
		ap.Service = r.serviceRef(ap.ServiceID)
		out = append(out, ap)
	}
	sortByStart(out, f.Ascending)

	total := int64(len(out))
	if f.Limit > 0 {
		if f.Offset >= len(out) {
			return []models.Appointment{}, total, nil
		}
		end := f.Offset + f.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[f.Offset:end]
	}
	return out, total, nil
}

func (r *MemoryRepository) WithProfessionalLock(
	ctx context.Context,
	professionalID uuid.UUID,
	fn func(tx domain.Repository) error,
) error {

	lock := r.lockFor(professionalID)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memoryTx{
		MemoryRepository: r,
		staged:           map[uuid.UUID]models.Appointment{},
		expected:         map[uuid.UUID]domain.Status{},
	}
	if err := fn(tx); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Writes outside the lock may have moved a row since it was staged.
	for id, from := range tx.expected {
		cur, ok := r.appointments[id]
		if !ok || cur.DeletedAt.Valid || cur.Status != string(from) {
			return domain.ErrStaleState
		}
	}
	for id, ap := range tx.staged {
		r.appointments[id] = ap
	}
	return nil
}

func (r *MemoryRepository) lockFor(professionalID uuid.UUID) *sync.Mutex {
	r.locksMu.Lock()
	defer r.locksMu.Unlock()
	l, ok := r.locks[professionalID]
	if !ok {
		l = &sync.Mutex{}
		r.locks[professionalID] = l
	}
	return l
}

func (r *MemoryRepository) petRef(id uuid.UUID) *models.Pet {
	if p, ok := r.pets[id]; ok {
		return &p
	}
	return nil
}

func (r *MemoryRepository) serviceRef(id uuid.UUID) *models.Service {
	if s, ok := r.services[id]; ok {
		return &s
	}
	return nil
}

// memoryTx stages appointment writes until the enclosing lock commits.
type memoryTx struct {
	*MemoryRepository
	staged map[uuid.UUID]models.Appointment

	// expected holds, per updated stored row, the status it had when first read.
	expected map[uuid.UUID]domain.Status
}

func (t *memoryTx) FindActiveAppointments(
	_ context.Context,
	professionalID uuid.UUID,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return findActive(t.appointments, t.staged, professionalID, from, to), nil
}

func (t *memoryTx) GetAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	if ap, ok := t.staged[id]; ok {
		return &ap, nil
	}
	return t.MemoryRepository.GetAppointment(ctx, id)
}

func (t *memoryTx) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	stamp(ap, true)
	t.staged[ap.ID] = *ap
	return nil
}

func (t *memoryTx) UpdateAppointment(ctx context.Context, ap *models.Appointment, from domain.Status) error {
	cur, err := t.GetAppointment(ctx, ap.ID)
	if err != nil || cur.Status != string(from) {
		return domain.ErrStaleState
	}
	// rows already staged are either new or tracked by their first update
	if _, staged := t.staged[ap.ID]; !staged {
		t.expected[ap.ID] = from
	}
	stamp(ap, false)
	t.staged[ap.ID] = *ap
	return nil
}

func (t *memoryTx) WithProfessionalLock(
	_ context.Context,
	_ uuid.UUID,
	fn func(tx domain.Repository) error,
) error {
	return fn(t)
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func findActive(
	stored map[uuid.UUID]models.Appointment,
	staged map[uuid.UUID]models.Appointment,
	professionalID uuid.UUID,
	from time.Time,
	to time.Time,
) []models.Appointment {

	merged := make(map[uuid.UUID]models.Appointment, len(stored)+len(staged))
	for id, ap := range stored {
		merged[id] = ap
	}
	for id, ap := range staged {
		merged[id] = ap
	}

	out := []models.Appointment{}
	for _, ap := range merged {
		if ap.ProfessionalID != professionalID || ap.DeletedAt.Valid {
			continue
		}
		if !domain.Status(ap.Status).OccupiesSchedule() {
			continue
		}
		if ap.StartTime.After(to) || ap.EndTime.Before(from) {
			continue
		}
		out = append(out, ap)
	}
	sortByStart(out, true)
	return out
}

func matches(ap models.Appointment, f domain.ListFilter) bool {
	if f.Status != nil && ap.Status != string(*f.Status) {
		return false
	}
	if f.From != nil && ap.StartTime.Before(*f.From) {
		return false
	}
	if f.To != nil && !ap.StartTime.Before(*f.To) {
		return false
	}
	if f.ProfessionalID != nil && ap.ProfessionalID != *f.ProfessionalID {
		return false
	}
	if f.GuardianID != nil && ap.GuardianID != *f.GuardianID {
		return false
	}
	return true
}

func sortByStart(list []models.Appointment, asc bool) {
	sort.SliceStable(list, func(i, j int) bool {
		if asc {
			return list[i].StartTime.Before(list[j].StartTime)
		}
		return list[i].StartTime.After(list[j].StartTime)
	})
}

func stamp(ap *models.Appointment, created bool) {
	now := time.Now()
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	if created {
		ap.CreatedAt = now
	}
	ap.UpdatedAt = now
}

// Compile-time check
var _ domain.Repository = (*MemoryRepository)(nil)
