package views

import "github.com/yigit/unirecords/internal/app/models"

// AdvisorFilter holds the advisors page search box and faculty filter
type AdvisorFilter struct {
	Search  string
	Faculty string
}

// FilterAdvisors matches names case-insensitively and the faculty exactly.
func FilterAdvisors(advisors []models.Advisor, f AdvisorFilter) []models.Advisor {
	return filter(advisors, func(a models.Advisor) bool {
		if f.Search != "" && !containsFold(a.Name, f.Search) {
			return false
		}
		return f.Faculty == "" || a.Faculty == f.Faculty
	})
}

// AdvisorFaculties lists the distinct faculties in first-seen order.
func AdvisorFaculties(advisors []models.Advisor) []string {
	return uniqueInOrder(advisors, func(a models.Advisor) string { return a.Faculty })
}
