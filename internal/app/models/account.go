package models

// Account is a login held by the records backend. Backend roles are admin,
// student and advisor; graduated students keep their account with IsAlumni set.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	Name         string
	StudentRef   int64
	AdvisorRef   int64
	AlumniRef    int64
	IsAlumni     bool
}
