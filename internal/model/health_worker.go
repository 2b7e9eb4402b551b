package model

import (
	"time"
)

// HealthWorker represents the health-worker-specific profile, owned 1:1 by a User
type HealthWorker struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"user_id" gorm:"not null;uniqueIndex"`
	Name            string    `json:"name" gorm:"type:varchar(100);not null"`
	AssignedVillage string    `json:"assigned_village" gorm:"type:varchar(100);not null"`
	Phone           string    `json:"phone" gorm:"type:varchar(15);not null"`
	Email           string    `json:"email" gorm:"type:varchar(255);not null"`
	EmployeeID      string    `json:"employee_id" gorm:"type:varchar(50);not null"`
	Qualification   string    `json:"qualification" gorm:"type:varchar(200);default:'ANM/GNM'"`
	ShiftTiming     string    `json:"shift_timing" gorm:"type:varchar(50);default:'Day Shift'"`
	IsOnDuty        bool      `json:"is_on_duty" gorm:"default:true"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// BindUser attaches the profile to its freshly created identity row
func (h *HealthWorker) BindUser(u *User) {
	h.UserID = u.ID
}
