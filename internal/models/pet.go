package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const PetApproved = "aprobado"

type Pet struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GuardianID uuid.UUID `gorm:"type:uuid;not null;index" json:"tutor_id"`

	Name    string `gorm:"size:100;not null" json:"nombre"`
	Species string `gorm:"size:50" json:"especie"`
	Breed   string `gorm:"size:100" json:"raza"`
	Status  string `gorm:"size:20;default:'pendiente'" json:"estado"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
