// Package repositories keeps the records backend's data in memory.
package repositories

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository    *UserRepository
	StudentRepository *StudentRepository
	AlumniRepository  *AlumniRepository
	AdvisorRepository *AdvisorRepository
	ProjectRepository *ProjectRepository
}

// NewRepositories initializes all repositories
func NewRepositories() *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(),
		StudentRepository: NewStudentRepository(),
		AlumniRepository:  NewAlumniRepository(),
		AdvisorRepository: NewAdvisorRepository(),
		ProjectRepository: NewProjectRepository(),
	}
}
