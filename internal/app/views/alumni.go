package views

import (
	"github.com/yigit/unirecords/internal/app/auth"
	"github.com/yigit/unirecords/internal/app/models"
)

// AlumniFilter holds the alumni page search box and filters
type AlumniFilter struct {
	Search  string
	Faculty string
	Year    int
}

// Active reports whether any filter narrows the list.
func (f AlumniFilter) Active() bool {
	return f.Search != "" || f.Faculty != "" || f.Year != 0
}

func (f AlumniFilter) matches(a models.Alumni) bool {
	if f.Search != "" && !containsFold(a.FirstName, f.Search) && !containsFold(a.LastName, f.Search) && !containsFold(a.Workplace, f.Search) {
		return false
	}
	if f.Faculty != "" && a.Faculty != f.Faculty {
		return false
	}
	return f.Year == 0 || a.GraduationYear == f.Year
}

// ScopeAlumni limits alumni users to their own department.
func ScopeAlumni(user *models.User, alumni []models.Alumni) []models.Alumni {
	if user == nil || user.Role != models.RoleAlumni || user.Department == "" {
		return alumni
	}
	return filter(alumni, func(a models.Alumni) bool { return a.Department == user.Department })
}

// FilterAlumni applies role scoping then f.
func FilterAlumni(user *models.User, alumni []models.Alumni, f AlumniFilter) []models.Alumni {
	return filter(ScopeAlumni(user, alumni), f.matches)
}

// AlumniFaculties lists the distinct faculties of the scoped list.
func AlumniFaculties(user *models.User, alumni []models.Alumni) []string {
	return uniqueInOrder(ScopeAlumni(user, alumni), func(a models.Alumni) string { return a.Faculty })
}

// AlumniYears lists the distinct graduation years of the scoped list, newest first.
func AlumniYears(user *models.User, alumni []models.Alumni) []int {
	return uniqueSorted(ScopeAlumni(user, alumni), func(a models.Alumni) int { return a.GraduationYear }, true)
}

// MyAlumniRecord finds the signed-in alumnus' own record.
func MyAlumniRecord(user *models.User, alumni []models.Alumni) (models.Alumni, bool) {
	for _, a := range ScopeAlumni(user, alumni) {
		if auth.IsOwnAlumniRecord(user, a) {
			return a, true
		}
	}
	return models.Alumni{}, false
}
