package model

import (
	"testing"
	"time"
)

func TestPatientBeforeCreate_DerivesMRN(t *testing.T) {
	tests := []struct {
		userID uint
		want   string
	}{
		{1, "MRN000001"},
		{42, "MRN000042"},
		{999999, "MRN999999"},
		{1234567, "MRN1234567"}, // beyond six digits the number just grows
	}
	for _, tt := range tests {
		p := &Patient{UserID: tt.userID}
		if err := p.BeforeCreate(nil); err != nil {
			t.Fatalf("BeforeCreate(%d) unexpected error: %v", tt.userID, err)
		}
		if p.MedicalRecordNumber != tt.want {
			t.Errorf("UserID %d: MRN = %q, want %q", tt.userID, p.MedicalRecordNumber, tt.want)
		}
		if p.RegistrationDate.IsZero() {
			t.Errorf("UserID %d: registration date not set", tt.userID)
		}
	}
}

func TestPatientBeforeCreate_KeepsExistingValues(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	p := &Patient{UserID: 42, MedicalRecordNumber: "MRN000007", RegistrationDate: day}
	if err := p.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate() unexpected error: %v", err)
	}
	if p.MedicalRecordNumber != "MRN000007" {
		t.Errorf("MRN overwritten to %q", p.MedicalRecordNumber)
	}
	if !p.RegistrationDate.Equal(day) {
		t.Errorf("registration date overwritten to %v", p.RegistrationDate)
	}
}

func TestBindUser(t *testing.T) {
	u := &User{ID: 5, Role: RoleDoctor}
	profiles := []Profile{&Patient{}, &Doctor{}, &HealthWorker{}}
	for _, p := range profiles {
		p.BindUser(u)
	}
	if got := profiles[0].(*Patient).UserID; got != 5 {
		t.Errorf("Patient.UserID = %d, want 5", got)
	}
	if got := profiles[1].(*Doctor).UserID; got != 5 {
		t.Errorf("Doctor.UserID = %d, want 5", got)
	}
	if got := profiles[2].(*HealthWorker).UserID; got != 5 {
		t.Errorf("HealthWorker.UserID = %d, want 5", got)
	}
}
