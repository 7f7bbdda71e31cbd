package models

// Role defines the session user role
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAlumni  Role = "alumni"

	// RoleAdvisor is the backend's name for teachers
	RoleAdvisor Role = "advisor"
)

// Label returns the Thai display name of the role.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "ผู้ดูแลระบบ"
	case RoleStudent:
		return "นักศึกษา"
	case RoleTeacher, RoleAdvisor:
		return "อาจารย์"
	case RoleAlumni:
		return "ศิษย์เก่า"
	default:
		return string(r)
	}
}

// StudentStatus is the enrolment state of a student
type StudentStatus string

const (
	StatusActive    StudentStatus = "Active"
	StatusGraduated StudentStatus = "Graduated"
	StatusSuspended StudentStatus = "Suspended"
)

// Valid reports whether s is one of the known statuses.
func (s StudentStatus) Valid() bool {
	return s == StatusActive || s == StatusGraduated || s == StatusSuspended
}

// Label returns the Thai display name of the status.
func (s StudentStatus) Label() string {
	switch s {
	case StatusActive:
		return "กำลังศึกษา"
	case StatusGraduated:
		return "จบการศึกษา"
	case StatusSuspended:
		return "พักการศึกษา"
	default:
		return string(s)
	}
}

// EmploymentStatus of an alumnus
type EmploymentStatus string

const (
	EmploymentEmployed EmploymentStatus = "employed"
	EmploymentSeeking  EmploymentStatus = "seeking"
)

// Label returns the Thai badge text.
func (e EmploymentStatus) Label() string {
	if e == EmploymentEmployed {
		return "ทำงานแล้ว"
	}
	return "กำลังหางาน"
}

// ProjectStatus is the approval state of a project
type ProjectStatus string

const (
	ProjectDraft     ProjectStatus = "Draft"
	ProjectApproved  ProjectStatus = "Approved"
	ProjectCompleted ProjectStatus = "Completed"
)

// Valid reports whether s is one of the known project states.
func (s ProjectStatus) Valid() bool {
	return s == ProjectDraft || s == ProjectApproved || s == ProjectCompleted
}

// ProjectType tells individual from group work
type ProjectType string

const (
	ProjectIndividual ProjectType = "individual"
	ProjectGroup      ProjectType = "group"
)

// Label returns the Thai name used in exports.
func (t ProjectType) Label() string {
	if t == ProjectGroup {
		return "กลุ่ม"
	}
	return "เดี่ยว"
}

// AvailableTags are the project tags offered by the project form.
var AvailableTags = []string{
	"Web Application",
	"Mobile App",
	"AI/ML",
	"IoT",
	"Data Science",
	"Blockchain",
	"Game Development",
	"Cloud Computing",
}
