package model

import (
	"time"
)

// Doctor represents the doctor-specific profile, owned 1:1 by a User.
// Phone, email and employee id are duplicated from the identity row for
// profile-local queries.
type Doctor struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	UserID            uint      `json:"user_id" gorm:"not null;uniqueIndex"`
	Name              string    `json:"name" gorm:"type:varchar(100);not null"`
	Phone             string    `json:"phone" gorm:"type:varchar(15);not null"`
	Email             string    `json:"email" gorm:"type:varchar(255);not null"`
	EmployeeID        string    `json:"employee_id" gorm:"type:varchar(50);not null"`
	Specialization    string    `json:"specialization" gorm:"type:varchar(100);default:'General Medicine'"`
	Qualification     string    `json:"qualification" gorm:"type:varchar(200);default:'MBBS'"`
	YearsOfExperience int       `json:"years_of_experience" gorm:"default:0"`
	ConsultationFee   float64   `json:"consultation_fee" gorm:"type:decimal(10,2);default:0.00"`
	IsAvailable       bool      `json:"is_available" gorm:"default:true"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// BindUser attaches the profile to its freshly created identity row
func (d *Doctor) BindUser(u *User) {
	d.UserID = u.ID
}
