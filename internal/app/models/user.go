package models

// User is the signed-in account kept in the session file
type User struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Role       Role   `json:"role"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	StudentID  string `json:"student_id,omitempty"`
	AlumniID   string `json:"alumni_id,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Faculty    string `json:"faculty,omitempty"`
	Department string `json:"department,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Year       int    `json:"year,omitempty"`
	AdvisorID  string `json:"advisor_id,omitempty"`
}

// MapRole converts a backend role into a session role; advisors are teachers.
func MapRole(backend string) Role {
	if Role(backend) == RoleAdvisor {
		return RoleTeacher
	}
	return Role(backend)
}

// LoginUser is the user object inside a login response
type LoginUser struct {
	ID       FlexString `json:"id"`
	Username string     `json:"username"`
	Role     string     `json:"role"`
}

// Profile is the loosely typed /auth/profile payload
type Profile struct {
	ID         FlexString `json:"id"`
	Name       FlexString `json:"name"`
	FirstName  FlexString `json:"first_name"`
	LastName   FlexString `json:"last_name"`
	Email      FlexString `json:"email"`
	Faculty    FlexString `json:"faculty"`
	Department FlexString `json:"department"`
	Phone      FlexString `json:"phone"`
	StudentID  FlexString `json:"student_id"`
	AdvisorID  FlexString `json:"advisor_id"`
	AlumniID   FlexString `json:"alumni_id"`
	Year       FlexInt    `json:"year"`
	IsAlumni   FlexBool   `json:"is_alumni"`
}
