package views

import "github.com/yigit/unirecords/internal/app/models"

// ProjectFilter holds the projects page search box and filters
type ProjectFilter struct {
	Search string
	Year   int
	Status models.ProjectStatus
	Type   models.ProjectType
}

// Active reports whether any filter narrows the list.
func (f ProjectFilter) Active() bool {
	return f.Search != "" || f.Year != 0 || f.Status != "" || f.Type != ""
}

func (f ProjectFilter) matches(p models.Project) bool {
	if f.Search != "" && !containsFold(p.TitleTH, f.Search) && !containsFold(p.TitleEN, f.Search) && !tagMatches(p.Tags, f.Search) {
		return false
	}
	if f.Year != 0 && p.Year != f.Year {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	return f.Type == "" || p.Type == f.Type
}

func tagMatches(tags []string, query string) bool {
	for _, tag := range tags {
		if containsFold(tag, query) {
			return true
		}
	}
	return false
}

// ScopeProjects limits non-admin users with a department to projects
// supervised by an advisor of that department.
func ScopeProjects(user *models.User, projects []models.Project, advisors []models.Advisor) []models.Project {
	if user == nil || user.Role == models.RoleAdmin || user.Department == "" {
		return projects
	}
	names := make(map[string]struct{})
	for _, a := range advisors {
		if a.Department == user.Department {
			names[a.Name] = struct{}{}
		}
	}
	return filter(projects, func(p models.Project) bool {
		_, ok := names[p.Advisor]
		return ok
	})
}

// FilterProjects applies role scoping then f.
func FilterProjects(user *models.User, projects []models.Project, advisors []models.Advisor, f ProjectFilter) []models.Project {
	return filter(ScopeProjects(user, projects, advisors), f.matches)
}

// ProjectYears lists the distinct project years, newest first.
func ProjectYears(projects []models.Project) []int {
	return uniqueSorted(projects, func(p models.Project) int { return p.Year }, true)
}

// FindProject looks a project up by record id or project code.
func FindProject(projects []models.Project, key string) (models.Project, bool) {
	for _, p := range projects {
		if p.ID == key || p.ProjectID == key {
			return p, true
		}
	}
	return models.Project{}, false
}
