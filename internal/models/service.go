package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name            string   `gorm:"size:100;not null" json:"nombre"`
	Kind            string   `gorm:"size:50" json:"tipo"`
	Description     string   `gorm:"size:255" json:"descripcion"`
	DurationMinutes int      `gorm:"not null" json:"duracion_minutos"`
	BasePrice       *float64 `json:"precio_base"`
	Active          bool     `gorm:"default:true" json:"activo"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
