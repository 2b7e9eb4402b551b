package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Gender values accepted for patient profiles
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Patient represents the patient-specific profile, owned 1:1 by a User
type Patient struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	UserID              uint      `json:"user_id" gorm:"not null;uniqueIndex"`
	Name                string    `json:"name" gorm:"type:varchar(100);not null"`
	Age                 int       `json:"age" gorm:"not null"`
	Gender              string    `json:"gender" gorm:"type:varchar(10);not null"`
	Village             string    `json:"village" gorm:"type:varchar(100);not null"`
	RegistrationDate    time.Time `json:"registration_date" gorm:"type:date"`
	MedicalRecordNumber string    `json:"medical_record_number" gorm:"type:varchar(20);uniqueIndex"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// BeforeCreate derives the medical record number from the owning user id.
// The hook runs inside the registration transaction, after the identity row
// has been inserted and the generated id is known.
func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.MedicalRecordNumber == "" {
		p.MedicalRecordNumber = fmt.Sprintf("MRN%06d", p.UserID)
	}
	if p.RegistrationDate.IsZero() {
		p.RegistrationDate = time.Now()
	}
	return nil
}

// BindUser attaches the profile to its freshly created identity row
func (p *Patient) BindUser(u *User) {
	p.UserID = u.ID
}
