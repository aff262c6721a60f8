package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/vet-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/vet-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB

	// set on the copy handed out by WithProfessionalLock
	inTx bool
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func first[T any](ctx context.Context, db *gorm.DB, query string, args ...any) (*T, error) {
	var out T
	if err := db.WithContext(ctx).Where(query, args...).First(&out).Error; err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	return first[models.Service](ctx, r.db, "id = ?", id)
}

func (r *AppointmentGormRepository) GetPet(ctx context.Context, id uuid.UUID) (*models.Pet, error) {
	return first[models.Pet](ctx, r.db, "id = ?", id)
}

func (r *AppointmentGormRepository) GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	return first[models.Room](ctx, r.db, "id = ?", id)
}

func (r *AppointmentGormRepository) GetProfessional(ctx context.Context, id uuid.UUID) (*models.Professional, error) {
	return first[models.Professional](ctx, r.db, "id = ?", id)
}

func (r *AppointmentGormRepository) GetProfessionalByUserID(ctx context.Context, userID uuid.UUID) (*models.Professional, error) {
	return first[models.Professional](ctx, r.db, "user_id = ?", userID)
}

func (r *AppointmentGormRepository) GetGuardianByUserID(ctx context.Context, userID uuid.UUID) (*models.Guardian, error) {
	return first[models.Guardian](ctx, r.db, "user_id = ?", userID)
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) FindActiveAppointments(
	ctx context.Context,
	professionalID uuid.UUID,
	from time.Time,
	to time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"professional_id = ? AND status NOT IN ? AND start_time <= ? AND end_time >= ?",
			professionalID,
			domain.FreeingStatuses(),
			to,
			from,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	q := r.db.WithContext(ctx)
	if r.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var ap models.Appointment
	if err := q.Where("id = ?", id).First(&ap).Error; err != nil {
		return nil, translate(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
}

// UpdateAppointment writes every column of ap, but only while the stored
// status is still from.
func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(ap).
		Where("status = ?", string(from)).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(ap)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStaleState
	}
	return nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})

	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}
	if f.From != nil {
		q = q.Where("start_time >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("start_time < ?", *f.To)
	}
	if f.ProfessionalID != nil {
		q = q.Where("professional_id = ?", *f.ProfessionalID)
	}
	if f.GuardianID != nil {
		q = q.Where("guardian_id = ?", *f.GuardianID)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "start_time DESC"
	if f.Ascending {
		order = "start_time ASC"
	}
	q = q.Preload("Pet").Preload("Service").Order(order)

	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var apps []models.Appointment
	if err := q.Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// WithProfessionalLock takes a transaction scoped advisory lock keyed on the
// professional, so check-then-insert sequences for one professional run one
// at a time. The lock is released on commit or rollback.
func (r *AppointmentGormRepository) WithProfessionalLock(
	ctx context.Context,
	professionalID uuid.UUID,
	fn func(tx domain.Repository) error,
) error {

	if r.inTx {
		return fn(r)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(hashtext(?))",
			professionalID.String(),
		).Error; err != nil {
			return err
		}
		return fn(&AppointmentGormRepository{db: tx, inTx: true})
	})
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
