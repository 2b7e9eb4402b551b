package model

import (
	"time"

	"gorm.io/gorm"
)

// Roles a user can register as. Every identity carries exactly one.
const (
	RolePatient      = "patient"
	RoleDoctor       = "doctor"
	RoleHealthWorker = "healthworker"
)

// User represents the identity row shared by all profile types.
// Uniqueness: (phone, role) always, (email, role) when email is present,
// employee_id globally when present.
type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Role         string         `json:"role" gorm:"type:varchar(20);not null;uniqueIndex:uk_phone_role,priority:2;uniqueIndex:uk_email_role,priority:2"`
	Phone        string         `json:"phone" gorm:"type:varchar(15);not null;uniqueIndex:uk_phone_role,priority:1"`
	Email        *string        `json:"email,omitempty" gorm:"type:varchar(255);uniqueIndex:uk_email_role,priority:1"`
	PasswordHash *string        `json:"-" gorm:"type:varchar(255)"`
	EmployeeID   *string        `json:"employee_id,omitempty" gorm:"type:varchar(50);uniqueIndex"`
	IsVerified   bool           `json:"is_verified" gorm:"default:true"`
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// HasSecret reports whether this role authenticates with a password.
// Patients authenticate by phone alone.
func (u *User) HasSecret() bool {
	return u.Role == RoleDoctor || u.Role == RoleHealthWorker
}
