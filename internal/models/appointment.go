package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	PetID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"mascota_id"`
	GuardianID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"tutor_id"`
	ServiceID      uuid.UUID  `gorm:"type:uuid;not null" json:"servicio_id"`
	ProfessionalID uuid.UUID  `gorm:"type:uuid;not null;index:idx_appointments_professional_start" json:"profesional_id"`
	RoomID         *uuid.UUID `gorm:"type:uuid" json:"consultorio_id"`

	Pet     *Pet     `gorm:"foreignKey:PetID" json:"mascota,omitempty"`
	Service *Service `gorm:"foreignKey:ServiceID" json:"servicio,omitempty"`

	StartTime time.Time `gorm:"not null;index:idx_appointments_professional_start" json:"fecha_hora"`
	EndTime   time.Time `gorm:"not null" json:"fecha_hora_fin"`

	Status string `gorm:"size:20;not null;default:'reserved'" json:"estado"`

	Reason             string `gorm:"size:500" json:"motivo_consulta"`
	Notes              string `gorm:"size:1000" json:"observaciones"`
	CancellationReason string `gorm:"size:500" json:"motivo_cancelacion,omitempty"`

	CreatedBy uuid.UUID `gorm:"type:uuid" json:"creada_por"`

	ConfirmedAt *time.Time `json:"fecha_confirmacion,omitempty"`
	ConfirmedBy *uuid.UUID `gorm:"type:uuid" json:"confirmada_por,omitempty"`

	CheckedInAt *time.Time `json:"hora_check_in,omitempty"`
	CheckedInBy *uuid.UUID `gorm:"type:uuid" json:"check_in_por,omitempty"`

	TreatmentStartedAt *time.Time `json:"hora_inicio_atencion,omitempty"`
	TreatmentStartedBy *uuid.UUID `gorm:"type:uuid" json:"inicio_atencion_por,omitempty"`

	TreatmentEndedAt *time.Time `json:"hora_fin_atencion,omitempty"`
	TreatmentEndedBy *uuid.UUID `gorm:"type:uuid" json:"fin_atencion_por,omitempty"`

	CancelledAt *time.Time `json:"fecha_cancelacion,omitempty"`
	CancelledBy *uuid.UUID `gorm:"type:uuid" json:"cancelada_por,omitempty"`

	RescheduledAt     *time.Time `json:"fecha_reprogramacion,omitempty"`
	RescheduledBy     *uuid.UUID `gorm:"type:uuid" json:"reprogramada_por,omitempty"`
	RescheduledToID   *uuid.UUID `gorm:"type:uuid" json:"reprogramada_a,omitempty"`
	RescheduledFromID *uuid.UUID `gorm:"type:uuid" json:"reprogramada_desde,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ap *Appointment) BeforeCreate(_ *gorm.DB) error {
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	return nil
}

// IsDeleted reports whether the row carries a soft-delete marker.
func (ap *Appointment) IsDeleted() bool {
	return ap.DeletedAt.Valid
}
