// internal/models/vendedor.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Vendedor is a sales profile row. Role governs board visibility: admins see
// everything, vendedores see their own leads plus the intake pool.
type Vendedor struct {
	BaseModel
	Nome         string     `json:"nome" gorm:"size:255"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	Role         Role       `json:"role" gorm:"type:varchar(20);default:'vendedor'"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

func (Vendedor) TableName() string {
	return "profiles"
}

func (v *Vendedor) IsAdmin() bool {
	return v.Role == RoleAdmin
}

func (v *Vendedor) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	v.PasswordHash = string(hashedPassword)
	return nil
}

func (v *Vendedor) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(v.PasswordHash), []byte(password))
}
