package models

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors the clinic's users table. Credentials live with the identity
// provider; AuthUserID is the provider's subject.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthUserID string    `gorm:"size:100;uniqueIndex;not null" json:"auth_user_id"`

	FullName string `gorm:"size:150;not null" json:"nombre_completo"`
	Email    string `gorm:"size:150" json:"email"`
	Phone    string `gorm:"size:30" json:"telefono"`
	Role     string `gorm:"size:20;not null;default:'tutor'" json:"rol"`
	Active   bool   `gorm:"default:true" json:"activo"`

	LastAccessAt *time.Time `json:"ultimo_acceso"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
