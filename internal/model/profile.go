package model

// Profile is the role-specific attribute set owned 1:1 by an identity.
// The three concrete types are Patient, Doctor and HealthWorker; role
// dispatch happens in one place (the repository's profile lookup) rather
// than being scattered across call sites.
type Profile interface {
	BindUser(u *User)
}

// ValidRole reports whether role names one of the supported profile types
func ValidRole(role string) bool {
	switch role {
	case RolePatient, RoleDoctor, RoleHealthWorker:
		return true
	}
	return false
}
