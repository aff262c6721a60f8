package models

import (
	"time"

	"github.com/google/uuid"
)

// Room is a consultation room ("consultorio").
type Room struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name   string    `gorm:"size:100;not null" json:"nombre"`
	Number string    `gorm:"size:20" json:"numero"`
	Active bool      `gorm:"default:true" json:"activo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
